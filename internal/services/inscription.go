package services

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/elections-api/internal/apperr"
	"github.com/diewo77/elections-api/internal/models"
)

// InscriptionService gère les candidatures: quel candidat concourt à quelle
// élection, à quelle date.
type InscriptionService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewInscriptionService(db *gorm.DB, log *zap.Logger) *InscriptionService {
	return &InscriptionService{DB: db, Log: log}
}

type InscriptionInput struct {
	IDElection   uint   `json:"id_election"`
	IDCandidat   uint   `json:"id_candidat"`
	DateElection string `json:"date_election"`
}

// InscriptionBulkInput inscrit plusieurs candidats à la même élection et date.
type InscriptionBulkInput struct {
	IDElection   uint   `json:"id_election"`
	IDsCandidats []uint `json:"ids_candidats"`
	DateElection string `json:"date_election"`
}

// InscriptionDetail joint la candidature à ses libellés.
type InscriptionDetail struct {
	IDElection   uint   `json:"id_election"`
	TypeElection string `json:"type_election"`
	IDCandidat   uint   `json:"id_candidat"`
	NomCandidat  string `json:"nom_candidat"`
	DateElection string `json:"date_election"`
}

// Create inscrit un candidat. Élection et candidat doivent exister; une
// candidature déjà présente pour la même clé vaut conflit.
func (s *InscriptionService) Create(in InscriptionInput) (*models.InscriptionElection, error) {
	var created *models.InscriptionElection
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := electionByID(tx, in.IDElection); err != nil {
			return err
		}
		if _, err := candidatByID(tx, in.IDCandidat); err != nil {
			return err
		}
		var existing models.InscriptionElection
		err := tx.Where("id_election = ? AND id_candidat = ? AND date_election = ?",
			in.IDElection, in.IDCandidat, in.DateElection).First(&existing).Error
		if err == nil {
			return apperr.Conflict("Le candidat est déjà inscrit à cette élection pour cette date")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		i := models.InscriptionElection{
			IDElection:   in.IDElection,
			IDCandidat:   in.IDCandidat,
			DateElection: in.DateElection,
		}
		if err := tx.Create(&i).Error; err != nil {
			return err
		}
		created = &i
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info("inscription créée",
		zap.Uint("id_election", created.IDElection),
		zap.Uint("id_candidat", created.IDCandidat))
	return created, nil
}

// CreateBulk inscrit chaque candidat de la liste au mieux: les identifiants
// inconnus et les candidatures déjà présentes sont ignorés sans faire échouer
// les autres. Si aucune inscription n'aboutit, la requête entière est rejetée.
func (s *InscriptionService) CreateBulk(in InscriptionBulkInput) ([]models.InscriptionElection, error) {
	var created []models.InscriptionElection
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := electionByID(tx, in.IDElection); err != nil {
			return err
		}
		for _, idCandidat := range in.IDsCandidats {
			if _, err := candidatByID(tx, idCandidat); err != nil {
				var ae *apperr.Error
				if errors.As(err, &ae) {
					s.Log.Warn("candidat inconnu ignoré", zap.Uint("id_candidat", idCandidat))
					continue
				}
				return err
			}
			var existing models.InscriptionElection
			err := tx.Where("id_election = ? AND id_candidat = ? AND date_election = ?",
				in.IDElection, idCandidat, in.DateElection).First(&existing).Error
			if err == nil {
				s.Log.Warn("inscription existante ignorée", zap.Uint("id_candidat", idCandidat))
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			i := models.InscriptionElection{
				IDElection:   in.IDElection,
				IDCandidat:   idCandidat,
				DateElection: in.DateElection,
			}
			if err := tx.Create(&i).Error; err != nil {
				return err
			}
			created = append(created, i)
		}
		if len(created) == 0 {
			return apperr.Validation("Aucune inscription n'a pu être créée")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Delete retire la candidature identifiée par le nom du candidat.
func (s *InscriptionService) Delete(idElection uint, nomCandidat, dateElection string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := electionByID(tx, idElection); err != nil {
			return err
		}
		candidat, err := ResolveCandidat(tx, nomCandidat)
		if err != nil {
			return err
		}
		var existing models.InscriptionElection
		err = tx.Where("id_election = ? AND id_candidat = ? AND date_election = ?",
			idElection, candidat.IDCandidat, dateElection).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Inscription introuvable pour cette élection, candidat et date")
		}
		if err != nil {
			return err
		}
		return tx.Where("id_election = ? AND id_candidat = ? AND date_election = ?",
			idElection, candidat.IDCandidat, dateElection).Delete(&models.InscriptionElection{}).Error
	})
}

func (s *InscriptionService) List(page, limit int) (*Page[models.InscriptionElection], error) {
	offset := (page - 1) * limit
	var inscriptions []models.InscriptionElection
	if err := s.DB.Offset(offset).Limit(limit).Find(&inscriptions).Error; err != nil {
		return nil, err
	}
	var total int64
	if err := s.DB.Model(&models.InscriptionElection{}).Count(&total).Error; err != nil {
		return nil, err
	}
	return &Page[models.InscriptionElection]{Data: inscriptions, Total: total}, nil
}

// ListWithDetails renvoie les candidatures avec les libellés d'élection et de
// candidat.
func (s *InscriptionService) ListWithDetails() ([]InscriptionDetail, error) {
	var details []InscriptionDetail
	err := s.DB.Model(&models.InscriptionElection{}).
		Joins("JOIN elections ON elections.id_election = inscription_elections.id_election").
		Joins("JOIN candidats ON candidats.id_candidat = inscription_elections.id_candidat").
		Select("inscription_elections.id_election AS id_election, elections.type_election AS type_election, " +
			"inscription_elections.id_candidat AS id_candidat, candidats.nom_candidat AS nom_candidat, " +
			"inscription_elections.date_election AS date_election").
		Order("inscription_elections.date_election, candidats.nom_candidat").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (s *InscriptionService) ListByElection(idElection uint, dateElection string) ([]models.InscriptionElection, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	var inscriptions []models.InscriptionElection
	if err := s.DB.Where("id_election = ? AND date_election = ?", idElection, dateElection).
		Find(&inscriptions).Error; err != nil {
		return nil, err
	}
	return inscriptions, nil
}

// ListByCandidat désigne le candidat par son nom.
func (s *InscriptionService) ListByCandidat(nomCandidat string) ([]models.InscriptionElection, error) {
	candidat, err := ResolveCandidat(s.DB, nomCandidat)
	if err != nil {
		return nil, err
	}
	var inscriptions []models.InscriptionElection
	if err := s.DB.Where("id_candidat = ?", candidat.IDCandidat).Find(&inscriptions).Error; err != nil {
		return nil, err
	}
	return inscriptions, nil
}
