package services

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/elections-api/internal/apperr"
	"github.com/diewo77/elections-api/internal/models"
)

// CandidatService gère le référentiel des candidats.
type CandidatService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewCandidatService(db *gorm.DB, log *zap.Logger) *CandidatService {
	return &CandidatService{DB: db, Log: log}
}

type CandidatInput struct {
	NomCandidat string `json:"nom_candidat"`
}

func (s *CandidatService) Create(in CandidatInput) (*models.Candidat, error) {
	nom := strings.ToUpper(strings.TrimSpace(in.NomCandidat))
	var existing models.Candidat
	err := s.DB.Where("nom_candidat = ?", nom).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("Un candidat avec le nom '%s' existe déjà", nom)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	candidat := models.Candidat{NomCandidat: nom}
	if err := s.DB.Create(&candidat).Error; err != nil {
		return nil, err
	}
	s.Log.Info("candidat créé", zap.Uint("id_candidat", candidat.IDCandidat), zap.String("nom_candidat", nom))
	return &candidat, nil
}

func (s *CandidatService) Get(id uint) (*models.Candidat, error) {
	return candidatByID(s.DB, id)
}

func (s *CandidatService) List(page, limit int) (*Page[models.Candidat], error) {
	offset := (page - 1) * limit
	var candidats []models.Candidat
	if err := s.DB.Order("nom_candidat").Offset(offset).Limit(limit).Find(&candidats).Error; err != nil {
		return nil, err
	}
	var total int64
	if err := s.DB.Model(&models.Candidat{}).Count(&total).Error; err != nil {
		return nil, err
	}
	return &Page[models.Candidat]{Data: candidats, Total: total}, nil
}

// ListAll renvoie tous les candidats sans pagination.
func (s *CandidatService) ListAll() ([]models.Candidat, error) {
	var candidats []models.Candidat
	if err := s.DB.Order("nom_candidat").Find(&candidats).Error; err != nil {
		return nil, err
	}
	return candidats, nil
}

func (s *CandidatService) Update(id uint, in CandidatInput) (*models.Candidat, error) {
	candidat, err := candidatByID(s.DB, id)
	if err != nil {
		return nil, err
	}
	nom := strings.ToUpper(strings.TrimSpace(in.NomCandidat))
	var existing models.Candidat
	err = s.DB.Where("nom_candidat = ? AND id_candidat <> ?", nom, id).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("Un candidat avec le nom '%s' existe déjà", nom)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	candidat.NomCandidat = nom
	if err := s.DB.Save(candidat).Error; err != nil {
		return nil, err
	}
	return candidat, nil
}

func (s *CandidatService) Delete(id uint) error {
	if _, err := candidatByID(s.DB, id); err != nil {
		return err
	}
	return s.DB.Where("id_candidat = ?", id).Delete(&models.Candidat{}).Error
}
