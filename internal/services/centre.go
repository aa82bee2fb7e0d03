package services

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/elections-api/internal/apperr"
	"github.com/diewo77/elections-api/internal/models"
)

type CentreService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewCentreService(db *gorm.DB, log *zap.Logger) *CentreService {
	return &CentreService{DB: db, Log: log}
}

type CentreInput struct {
	NomCentre string `json:"nom_centre"`
	IDCommune uint   `json:"id_commune"`
}

// Create insère un centre; le nom n'est unique qu'au sein de sa commune.
func (s *CentreService) Create(in CentreInput) (*models.CentreVote, error) {
	if _, err := communeByID(s.DB, in.IDCommune); err != nil {
		return nil, err
	}
	nom := strings.ToUpper(strings.TrimSpace(in.NomCentre))
	var existing models.CentreVote
	err := s.DB.Where("nom_centre = ? AND id_commune = ?", nom, in.IDCommune).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("Un centre avec le nom '%s' existe déjà dans cette commune", nom)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	centre := models.CentreVote{NomCentre: nom, IDCommune: in.IDCommune}
	if err := s.DB.Create(&centre).Error; err != nil {
		return nil, err
	}
	s.Log.Info("centre créé", zap.Uint("id_centre", centre.IDCentre), zap.String("nom_centre", nom))
	return &centre, nil
}

func (s *CentreService) Get(id uint) (*models.CentreVote, error) {
	return centreByID(s.DB, id)
}

func (s *CentreService) List(page, limit int) (*Page[models.CentreVote], error) {
	offset := (page - 1) * limit
	var centres []models.CentreVote
	if err := s.DB.Order("nom_centre").Offset(offset).Limit(limit).Find(&centres).Error; err != nil {
		return nil, err
	}
	var total int64
	if err := s.DB.Model(&models.CentreVote{}).Count(&total).Error; err != nil {
		return nil, err
	}
	return &Page[models.CentreVote]{Data: centres, Total: total}, nil
}

func (s *CentreService) Update(id uint, in CentreInput) (*models.CentreVote, error) {
	centre, err := centreByID(s.DB, id)
	if err != nil {
		return nil, err
	}
	if _, err := communeByID(s.DB, in.IDCommune); err != nil {
		return nil, err
	}
	nom := strings.ToUpper(strings.TrimSpace(in.NomCentre))
	var existing models.CentreVote
	err = s.DB.Where("nom_centre = ? AND id_commune = ? AND id_centre <> ?", nom, in.IDCommune, id).
		First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("Un centre avec le nom '%s' existe déjà dans cette commune", nom)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	centre.NomCentre = nom
	centre.IDCommune = in.IDCommune
	if err := s.DB.Save(centre).Error; err != nil {
		return nil, err
	}
	return centre, nil
}

// Delete refuse de supprimer un centre qui a encore des bureaux.
func (s *CentreService) Delete(id uint) error {
	if _, err := centreByID(s.DB, id); err != nil {
		return err
	}
	var count int64
	if err := s.DB.Model(&models.BureauVote{}).Where("id_centre = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Validation("Impossible de supprimer le centre: %d bureau(x) y sont rattachés", count)
	}
	return s.DB.Where("id_centre = ?", id).Delete(&models.CentreVote{}).Error
}

func (s *CentreService) Bureaux(id uint) ([]models.BureauVote, error) {
	if _, err := centreByID(s.DB, id); err != nil {
		return nil, err
	}
	var bureaux []models.BureauVote
	if err := s.DB.Where("id_centre = ?", id).Order("numero_bureau").Find(&bureaux).Error; err != nil {
		return nil, err
	}
	return bureaux, nil
}
