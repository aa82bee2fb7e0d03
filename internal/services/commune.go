package services

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/elections-api/internal/apperr"
	"github.com/diewo77/elections-api/internal/models"
)

type CommuneService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewCommuneService(db *gorm.DB, log *zap.Logger) *CommuneService {
	return &CommuneService{DB: db, Log: log}
}

type CommuneInput struct {
	NomCommune    string `json:"nom_commune"`
	IDDepartement uint   `json:"id_departement"`
}

func (s *CommuneService) Create(in CommuneInput) (*models.Commune, error) {
	if _, err := departementByID(s.DB, in.IDDepartement); err != nil {
		return nil, err
	}
	nom := strings.ToUpper(strings.TrimSpace(in.NomCommune))
	var existing models.Commune
	err := s.DB.Where("nom_commune = ?", nom).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("Une commune avec le nom '%s' existe déjà", nom)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	commune := models.Commune{NomCommune: nom, IDDepartement: in.IDDepartement}
	if err := s.DB.Create(&commune).Error; err != nil {
		return nil, err
	}
	s.Log.Info("commune créée", zap.Uint("id_commune", commune.IDCommune), zap.String("nom_commune", nom))
	return &commune, nil
}

func (s *CommuneService) Get(id uint) (*models.Commune, error) {
	return communeByID(s.DB, id)
}

func (s *CommuneService) List(page, limit int) (*Page[models.Commune], error) {
	offset := (page - 1) * limit
	var communes []models.Commune
	if err := s.DB.Order("nom_commune").Offset(offset).Limit(limit).Find(&communes).Error; err != nil {
		return nil, err
	}
	var total int64
	if err := s.DB.Model(&models.Commune{}).Count(&total).Error; err != nil {
		return nil, err
	}
	return &Page[models.Commune]{Data: communes, Total: total}, nil
}

func (s *CommuneService) Update(id uint, in CommuneInput) (*models.Commune, error) {
	commune, err := communeByID(s.DB, id)
	if err != nil {
		return nil, err
	}
	if _, err := departementByID(s.DB, in.IDDepartement); err != nil {
		return nil, err
	}
	nom := strings.ToUpper(strings.TrimSpace(in.NomCommune))
	var existing models.Commune
	err = s.DB.Where("nom_commune = ? AND id_commune <> ?", nom, id).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("Une commune avec le nom '%s' existe déjà", nom)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	commune.NomCommune = nom
	commune.IDDepartement = in.IDDepartement
	if err := s.DB.Save(commune).Error; err != nil {
		return nil, err
	}
	return commune, nil
}

// Delete supprime la commune avec ses centres et leurs bureaux. La cascade
// est faite explicitement pour rester portable entre drivers.
func (s *CommuneService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := communeByID(tx, id); err != nil {
			return err
		}
		var idsCentres []uint
		if err := tx.Model(&models.CentreVote{}).Where("id_commune = ?", id).
			Pluck("id_centre", &idsCentres).Error; err != nil {
			return err
		}
		if len(idsCentres) > 0 {
			if err := tx.Where("id_centre IN ?", idsCentres).Delete(&models.BureauVote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id_commune = ?", id).Delete(&models.CentreVote{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("id_commune = ?", id).Delete(&models.Commune{}).Error
	})
}

func (s *CommuneService) Centres(id uint) ([]models.CentreVote, error) {
	if _, err := communeByID(s.DB, id); err != nil {
		return nil, err
	}
	var centres []models.CentreVote
	if err := s.DB.Where("id_commune = ?", id).Order("nom_centre").Find(&centres).Error; err != nil {
		return nil, err
	}
	return centres, nil
}
