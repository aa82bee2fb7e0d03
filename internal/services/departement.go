package services

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/elections-api/internal/apperr"
	"github.com/diewo77/elections-api/internal/models"
)

type DepartementService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewDepartementService(db *gorm.DB, log *zap.Logger) *DepartementService {
	return &DepartementService{DB: db, Log: log}
}

type DepartementInput struct {
	NomDepartement string `json:"nom_departement"`
	IDRegion       uint   `json:"id_region"`
}

func (s *DepartementService) Create(in DepartementInput) (*models.Departement, error) {
	if _, err := regionByID(s.DB, in.IDRegion); err != nil {
		return nil, err
	}
	nom := strings.ToUpper(strings.TrimSpace(in.NomDepartement))
	var existing models.Departement
	err := s.DB.Where("nom_departement = ?", nom).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("Un département avec le nom '%s' existe déjà", nom)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	departement := models.Departement{NomDepartement: nom, IDRegion: in.IDRegion}
	if err := s.DB.Create(&departement).Error; err != nil {
		return nil, err
	}
	s.Log.Info("département créé", zap.Uint("id_departement", departement.IDDepartement), zap.String("nom_departement", nom))
	return &departement, nil
}

func (s *DepartementService) Get(id uint) (*models.Departement, error) {
	return departementByID(s.DB, id)
}

func (s *DepartementService) List(page, limit int) (*Page[models.Departement], error) {
	offset := (page - 1) * limit
	var departements []models.Departement
	if err := s.DB.Order("nom_departement").Offset(offset).Limit(limit).Find(&departements).Error; err != nil {
		return nil, err
	}
	var total int64
	if err := s.DB.Model(&models.Departement{}).Count(&total).Error; err != nil {
		return nil, err
	}
	return &Page[models.Departement]{Data: departements, Total: total}, nil
}

func (s *DepartementService) Update(id uint, in DepartementInput) (*models.Departement, error) {
	departement, err := departementByID(s.DB, id)
	if err != nil {
		return nil, err
	}
	if _, err := regionByID(s.DB, in.IDRegion); err != nil {
		return nil, err
	}
	nom := strings.ToUpper(strings.TrimSpace(in.NomDepartement))
	var existing models.Departement
	err = s.DB.Where("nom_departement = ? AND id_departement <> ?", nom, id).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("Un département avec le nom '%s' existe déjà", nom)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	departement.NomDepartement = nom
	departement.IDRegion = in.IDRegion
	if err := s.DB.Save(departement).Error; err != nil {
		return nil, err
	}
	return departement, nil
}

// Delete refuse de supprimer un département qui a encore des communes.
func (s *DepartementService) Delete(id uint) error {
	if _, err := departementByID(s.DB, id); err != nil {
		return err
	}
	var count int64
	if err := s.DB.Model(&models.Commune{}).Where("id_departement = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Validation("Impossible de supprimer le département: %d commune(s) y sont rattachées", count)
	}
	return s.DB.Where("id_departement = ?", id).Delete(&models.Departement{}).Error
}

func (s *DepartementService) Communes(id uint) ([]models.Commune, error) {
	if _, err := departementByID(s.DB, id); err != nil {
		return nil, err
	}
	var communes []models.Commune
	if err := s.DB.Where("id_departement = ?", id).Order("nom_commune").Find(&communes).Error; err != nil {
		return nil, err
	}
	return communes, nil
}
