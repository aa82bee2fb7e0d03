package services

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/elections-api/internal/apperr"
	"github.com/diewo77/elections-api/internal/models"
)

type BureauService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewBureauService(db *gorm.DB, log *zap.Logger) *BureauService {
	return &BureauService{DB: db, Log: log}
}

type BureauInput struct {
	NumeroBureau int    `json:"numero_bureau"`
	Implantation string `json:"implantation"`
	IDCentre     uint   `json:"id_centre"`
}

// Create insère un bureau; le numéro n'est unique qu'au sein de son centre.
func (s *BureauService) Create(in BureauInput) (*models.BureauVote, error) {
	if _, err := centreByID(s.DB, in.IDCentre); err != nil {
		return nil, err
	}
	var existing models.BureauVote
	err := s.DB.Where("numero_bureau = ? AND id_centre = ?", in.NumeroBureau, in.IDCentre).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("Un bureau numéro %d existe déjà dans ce centre", in.NumeroBureau)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	bureau := models.BureauVote{
		NumeroBureau: in.NumeroBureau,
		Implantation: strings.TrimSpace(in.Implantation),
		IDCentre:     in.IDCentre,
	}
	if err := s.DB.Create(&bureau).Error; err != nil {
		return nil, err
	}
	s.Log.Info("bureau créé", zap.Uint("id_bureau", bureau.IDBureau), zap.Int("numero_bureau", bureau.NumeroBureau))
	return &bureau, nil
}

func (s *BureauService) Get(id uint) (*models.BureauVote, error) {
	return bureauByID(s.DB, id)
}

func (s *BureauService) List(page, limit int) (*Page[models.BureauVote], error) {
	offset := (page - 1) * limit
	var bureaux []models.BureauVote
	if err := s.DB.Order("id_bureau").Offset(offset).Limit(limit).Find(&bureaux).Error; err != nil {
		return nil, err
	}
	var total int64
	if err := s.DB.Model(&models.BureauVote{}).Count(&total).Error; err != nil {
		return nil, err
	}
	return &Page[models.BureauVote]{Data: bureaux, Total: total}, nil
}

func (s *BureauService) Update(id uint, in BureauInput) (*models.BureauVote, error) {
	bureau, err := bureauByID(s.DB, id)
	if err != nil {
		return nil, err
	}
	if _, err := centreByID(s.DB, in.IDCentre); err != nil {
		return nil, err
	}
	var existing models.BureauVote
	err = s.DB.Where("numero_bureau = ? AND id_centre = ? AND id_bureau <> ?", in.NumeroBureau, in.IDCentre, id).
		First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("Un bureau numéro %d existe déjà dans ce centre", in.NumeroBureau)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	bureau.NumeroBureau = in.NumeroBureau
	bureau.Implantation = strings.TrimSpace(in.Implantation)
	bureau.IDCentre = in.IDCentre
	if err := s.DB.Save(bureau).Error; err != nil {
		return nil, err
	}
	return bureau, nil
}

func (s *BureauService) Delete(id uint) error {
	if _, err := bureauByID(s.DB, id); err != nil {
		return err
	}
	return s.DB.Where("id_bureau = ?", id).Delete(&models.BureauVote{}).Error
}
