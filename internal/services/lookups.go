package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/diewo77/elections-api/internal/apperr"
	"github.com/diewo77/elections-api/internal/models"
)

// Recherches par identifiant partagées entre services; chaque absence est
// remontée comme NotFound nommant l'entité et son identifiant.

func electionByID(db *gorm.DB, id uint) (*models.Election, error) {
	var e models.Election
	err := db.Where("id_election = ?", id).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Élection avec l'ID %d introuvable", id)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func regionByID(db *gorm.DB, id uint) (*models.Region, error) {
	var r models.Region
	err := db.Where("id_region = ?", id).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Région avec l'ID %d introuvable", id)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func departementByID(db *gorm.DB, id uint) (*models.Departement, error) {
	var d models.Departement
	err := db.Where("id_departement = ?", id).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Département avec l'ID %d introuvable", id)
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func communeByID(db *gorm.DB, id uint) (*models.Commune, error) {
	var c models.Commune
	err := db.Where("id_commune = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Commune avec l'ID %d introuvable", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func centreByID(db *gorm.DB, id uint) (*models.CentreVote, error) {
	var c models.CentreVote
	err := db.Where("id_centre = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Centre de vote avec l'ID %d introuvable", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func bureauByID(db *gorm.DB, id uint) (*models.BureauVote, error) {
	var b models.BureauVote
	err := db.Where("id_bureau = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Bureau avec l'ID %d introuvable", id)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func candidatByID(db *gorm.DB, id uint) (*models.Candidat, error) {
	var c models.Candidat
	err := db.Where("id_candidat = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Candidat avec l'ID %d introuvable", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Page est l'enveloppe commune des listes paginées.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
}
