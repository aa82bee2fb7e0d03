package models

import "time"

type Election struct {
	IDElection   uint      `gorm:"column:id_election;primaryKey" json:"id_election"`
	TypeElection string    `gorm:"column:type_election;size:100;not null;unique" json:"type_election"` // ex: PRESIDENTIELLE
	IsDeleted    bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Candidat struct {
	IDCandidat  uint      `gorm:"column:id_candidat;primaryKey" json:"id_candidat"`
	NomCandidat string    `gorm:"column:nom_candidat;size:150;not null;unique" json:"nom_candidat"` // stocké en majuscules
	IsDeleted   bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InscriptionElection enregistre la candidature d'un candidat à une élection
// pour une date donnée. Un même candidat peut être inscrit à la même élection
// à plusieurs dates distinctes (scrutins à plusieurs tours).
type InscriptionElection struct {
	IDElection   uint      `gorm:"column:id_election;primaryKey;autoIncrement:false" json:"id_election"`
	IDCandidat   uint      `gorm:"column:id_candidat;primaryKey;autoIncrement:false" json:"id_candidat"`
	DateElection string    `gorm:"column:date_election;type:date;primaryKey" json:"date_election"`
	CreatedAt    time.Time `json:"created_at"`
}

func (InscriptionElection) TableName() string { return "inscription_elections" }
