package services

import (
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/elections-api/internal/apperr"
	"github.com/diewo77/elections-api/internal/models"
)

// ElectionService gère le référentiel des types d'élection.
type ElectionService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewElectionService(db *gorm.DB, log *zap.Logger) *ElectionService {
	return &ElectionService{DB: db, Log: log}
}

type ElectionInput struct {
	TypeElection string `json:"type_election"`
}

func (s *ElectionService) Create(in ElectionInput) (*models.Election, error) {
	typeElection := strings.ToUpper(strings.TrimSpace(in.TypeElection))
	var existing models.Election
	err := s.DB.Where("type_election = ?", typeElection).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("Une élection de type '%s' existe déjà", typeElection)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	election := models.Election{TypeElection: typeElection}
	if err := s.DB.Create(&election).Error; err != nil {
		return nil, err
	}
	s.Log.Info("élection créée", zap.Uint("id_election", election.IDElection), zap.String("type_election", typeElection))
	return &election, nil
}

func (s *ElectionService) Get(id uint) (*models.Election, error) {
	return electionByID(s.DB, id)
}

func (s *ElectionService) List(page, limit int) (*Page[models.Election], error) {
	offset := (page - 1) * limit
	var elections []models.Election
	if err := s.DB.Order("type_election").Offset(offset).Limit(limit).Find(&elections).Error; err != nil {
		return nil, err
	}
	var total int64
	if err := s.DB.Model(&models.Election{}).Count(&total).Error; err != nil {
		return nil, err
	}
	return &Page[models.Election]{Data: elections, Total: total}, nil
}

func (s *ElectionService) Update(id uint, in ElectionInput) (*models.Election, error) {
	election, err := electionByID(s.DB, id)
	if err != nil {
		return nil, err
	}
	typeElection := strings.ToUpper(strings.TrimSpace(in.TypeElection))
	var existing models.Election
	err = s.DB.Where("type_election = ? AND id_election <> ?", typeElection, id).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("Une élection de type '%s' existe déjà", typeElection)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	election.TypeElection = typeElection
	if err := s.DB.Save(election).Error; err != nil {
		return nil, err
	}
	return election, nil
}

func (s *ElectionService) Delete(id uint) error {
	if _, err := electionByID(s.DB, id); err != nil {
		return err
	}
	return s.DB.Where("id_election = ?", id).Delete(&models.Election{}).Error
}

func (s *ElectionService) dates(q func(modele any) *gorm.DB) ([]string, error) {
	var datesInscriptions, datesParticipations []string
	if err := q(&models.InscriptionElection{}).
		Distinct("date_election").Pluck("date_election", &datesInscriptions).Error; err != nil {
		return nil, err
	}
	if err := q(&models.Participation{}).
		Distinct("date_election").Pluck("date_election", &datesParticipations).Error; err != nil {
		return nil, err
	}
	vues := make(map[string]struct{}, len(datesInscriptions)+len(datesParticipations))
	var dates []string
	for _, d := range append(datesInscriptions, datesParticipations...) {
		if _, ok := vues[d]; ok {
			continue
		}
		vues[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}

// Dates liste les dates de scrutin connues d'une élection, réunion des dates
// d'inscription et des dates de participation, triées.
func (s *ElectionService) Dates(id uint) ([]string, error) {
	if _, err := electionByID(s.DB, id); err != nil {
		return nil, err
	}
	return s.dates(func(modele any) *gorm.DB {
		return s.DB.Model(modele).Where("id_election = ?", id)
	})
}

// AllDates liste les dates de scrutin connues toutes élections confondues.
func (s *ElectionService) AllDates() ([]string, error) {
	return s.dates(func(modele any) *gorm.DB {
		return s.DB.Model(modele)
	})
}
