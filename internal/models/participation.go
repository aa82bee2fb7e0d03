package models

import "time"

// Participation porte les comptages bruts d'un bureau de vote pour une
// élection et une date. Exactement un enregistrement par
// (id_election, id_bureau, date_election); created_at fait foi pour
// l'évolution temporelle et n'est jamais modifié.
type Participation struct {
	IDElection             uint      `gorm:"column:id_election;primaryKey;autoIncrement:false" json:"id_election"`
	IDBureau               uint      `gorm:"column:id_bureau;primaryKey;autoIncrement:false" json:"id_bureau"`
	DateElection           string    `gorm:"column:date_election;type:date;primaryKey" json:"date_election"`
	NombreElecteur         int       `gorm:"column:nombre_electeur;not null;default:0" json:"nombre_electeur"`
	NombreVotant           int       `gorm:"column:nombre_votant;not null;default:0" json:"nombre_votant"`
	NombreVotantHorsBureau int       `gorm:"column:nombre_votant_hors_bureau;not null;default:0" json:"nombre_votant_hors_bureau"`
	NombreBulletinNull     int       `gorm:"column:nombre_bulletin_null;not null;default:0" json:"nombre_bulletin_null"`
	NombreSuffrage         int       `gorm:"column:nombre_suffrage;not null;default:0" json:"nombre_suffrage"`
	CreatedAt              time.Time `json:"created_at"`
}
