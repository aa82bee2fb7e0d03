package models

import "time"

// ResultatVote porte le score d'un candidat dans un bureau pour une élection
// et une date. Un enregistrement par (id_election, id_bureau, id_candidat,
// date_election).
type ResultatVote struct {
	IDElection   uint      `gorm:"column:id_election;primaryKey;autoIncrement:false" json:"id_election"`
	IDBureau     uint      `gorm:"column:id_bureau;primaryKey;autoIncrement:false" json:"id_bureau"`
	IDCandidat   uint      `gorm:"column:id_candidat;primaryKey;autoIncrement:false" json:"id_candidat"`
	DateElection string    `gorm:"column:date_election;type:date;primaryKey" json:"date_election"`
	Voix         int       `gorm:"column:voix;not null;default:0" json:"voix"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ResultatVote) TableName() string { return "resultat_votes" }
