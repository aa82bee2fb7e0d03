package models

import "time"

// Hiérarchie géographique: Region > Departement > Commune > CentreVote > BureauVote.

type Region struct {
	IDRegion  uint      `gorm:"column:id_region;primaryKey" json:"id_region"`
	NomRegion string    `gorm:"column:nom_region;size:100;not null;unique" json:"nom_region"` // stocké en majuscules
	IsDeleted bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Departements []Departement `gorm:"foreignKey:IDRegion" json:"departements,omitempty"`
}

type Departement struct {
	IDDepartement  uint      `gorm:"column:id_departement;primaryKey" json:"id_departement"`
	NomDepartement string    `gorm:"column:nom_departement;size:100;not null;unique" json:"nom_departement"`
	IDRegion       uint      `gorm:"column:id_region;not null;index" json:"id_region"`
	IsDeleted      bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Communes []Commune `gorm:"foreignKey:IDDepartement" json:"communes,omitempty"`
}

type Commune struct {
	IDCommune     uint      `gorm:"column:id_commune;primaryKey" json:"id_commune"`
	NomCommune    string    `gorm:"column:nom_commune;size:100;not null;unique" json:"nom_commune"`
	IDDepartement uint      `gorm:"column:id_departement;not null;index" json:"id_departement"`
	IsDeleted     bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	CentresVote []CentreVote `gorm:"foreignKey:IDCommune;constraint:OnDelete:CASCADE" json:"centres_vote,omitempty"`
}

// CentreVote est unique par (nom_centre, id_commune).
type CentreVote struct {
	IDCentre  uint      `gorm:"column:id_centre;primaryKey" json:"id_centre"`
	NomCentre string    `gorm:"column:nom_centre;size:150;not null;index:uk_centre_vote_commune,unique,priority:1" json:"nom_centre"`
	IDCommune uint      `gorm:"column:id_commune;not null;index:uk_centre_vote_commune,unique,priority:2" json:"id_commune"`
	IsDeleted bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BureauxVote []BureauVote `gorm:"foreignKey:IDCentre;constraint:OnDelete:CASCADE" json:"bureaux_vote,omitempty"`
}

// BureauVote est la feuille de la hiérarchie, unique par (numero_bureau, id_centre).
type BureauVote struct {
	IDBureau     uint      `gorm:"column:id_bureau;primaryKey" json:"id_bureau"`
	NumeroBureau int       `gorm:"column:numero_bureau;not null;index:uk_bureau_numero_centre,unique,priority:1" json:"numero_bureau"`
	Implantation string    `gorm:"column:implantation;size:200;not null" json:"implantation"`
	IDCentre     uint      `gorm:"column:id_centre;not null;index:uk_bureau_numero_centre,unique,priority:2" json:"id_centre"`
	IsDeleted    bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
