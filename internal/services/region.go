package services

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/elections-api/internal/apperr"
	"github.com/diewo77/elections-api/internal/models"
)

// RegionService gère la racine de la hiérarchie géographique.
type RegionService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewRegionService(db *gorm.DB, log *zap.Logger) *RegionService {
	return &RegionService{DB: db, Log: log}
}

type RegionInput struct {
	NomRegion string `json:"nom_region"`
}

// Create insère une région, nom normalisé en majuscules. Un nom déjà pris est
// rejeté.
func (s *RegionService) Create(in RegionInput) (*models.Region, error) {
	nom := strings.ToUpper(strings.TrimSpace(in.NomRegion))
	var existing models.Region
	err := s.DB.Where("nom_region = ?", nom).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("Une région avec le nom '%s' existe déjà", nom)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	region := models.Region{NomRegion: nom}
	if err := s.DB.Create(&region).Error; err != nil {
		return nil, err
	}
	s.Log.Info("région créée", zap.Uint("id_region", region.IDRegion), zap.String("nom_region", nom))
	return &region, nil
}

func (s *RegionService) Get(id uint) (*models.Region, error) {
	return regionByID(s.DB, id)
}

func (s *RegionService) List(page, limit int) (*Page[models.Region], error) {
	offset := (page - 1) * limit
	var regions []models.Region
	if err := s.DB.Order("nom_region").Offset(offset).Limit(limit).Find(&regions).Error; err != nil {
		return nil, err
	}
	var total int64
	if err := s.DB.Model(&models.Region{}).Count(&total).Error; err != nil {
		return nil, err
	}
	return &Page[models.Region]{Data: regions, Total: total}, nil
}

// ListAll renvoie toutes les régions sans pagination, pour les listes de
// sélection.
func (s *RegionService) ListAll() ([]models.Region, error) {
	var regions []models.Region
	if err := s.DB.Order("nom_region").Find(&regions).Error; err != nil {
		return nil, err
	}
	return regions, nil
}

func (s *RegionService) Update(id uint, in RegionInput) (*models.Region, error) {
	region, err := regionByID(s.DB, id)
	if err != nil {
		return nil, err
	}
	nom := strings.ToUpper(strings.TrimSpace(in.NomRegion))
	var existing models.Region
	err = s.DB.Where("nom_region = ? AND id_region <> ?", nom, id).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("Une région avec le nom '%s' existe déjà", nom)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	region.NomRegion = nom
	if err := s.DB.Save(region).Error; err != nil {
		return nil, err
	}
	return region, nil
}

// Delete refuse de supprimer une région qui a encore des départements.
func (s *RegionService) Delete(id uint) error {
	if _, err := regionByID(s.DB, id); err != nil {
		return err
	}
	var count int64
	if err := s.DB.Model(&models.Departement{}).Where("id_region = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Validation("Impossible de supprimer la région: %d département(s) y sont rattachés", count)
	}
	return s.DB.Where("id_region = ?", id).Delete(&models.Region{}).Error
}

// Departements liste les départements d'une région.
func (s *RegionService) Departements(id uint) ([]models.Departement, error) {
	if _, err := regionByID(s.DB, id); err != nil {
		return nil, err
	}
	var departements []models.Departement
	if err := s.DB.Where("id_region = ?", id).Order("nom_departement").Find(&departements).Error; err != nil {
		return nil, err
	}
	return departements, nil
}
