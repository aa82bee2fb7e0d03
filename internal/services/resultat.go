package services

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/elections-api/internal/apperr"
	"github.com/diewo77/elections-api/internal/models"
)

// ResultatService gère le registre des résultats (voix par candidat, bureau,
// élection et date) et les statistiques de résultats à tous les niveaux.
type ResultatService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewResultatService(db *gorm.DB, log *zap.Logger) *ResultatService {
	return &ResultatService{DB: db, Log: log}
}

// ResultatInput crée le résultat d'un seul candidat dans un bureau.
type ResultatInput struct {
	TypeElection string `json:"type_election"`
	Commune      string `json:"commune"`
	Centre       string `json:"centre"`
	Bureau       int    `json:"bureau"`
	NomCandidat  string `json:"nom_candidat"`
	Voix         int    `json:"voix"`
	DateElection string `json:"date_election"`
}

// VoixCandidat est une ligne de la charge de création en masse.
type VoixCandidat struct {
	NomCandidat string `json:"nom_candidat"`
	Voix        int    `json:"voix"`
}

// ResultatBulkInput porte les voix de tous les candidats d'un même bureau.
type ResultatBulkInput struct {
	TypeElection string         `json:"type_election"`
	Commune      string         `json:"commune"`
	Centre       string         `json:"centre"`
	Bureau       int            `json:"bureau"`
	DateElection string         `json:"date_election"`
	Resultats    []VoixCandidat `json:"resultats"`
}

func (s *ResultatService) createOne(tx *gorm.DB, res *BureauResolution, nomCandidat string, voix int, dateElection string) (*models.ResultatVote, error) {
	candidat, err := ResolveCandidat(tx, nomCandidat)
	if err != nil {
		return nil, err
	}

	var existing models.ResultatVote
	err = tx.Where("id_election = ? AND id_bureau = ? AND id_candidat = ? AND date_election = ?",
		res.Election.IDElection, res.Bureau.IDBureau, candidat.IDCandidat, dateElection).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("Le bureau a deja ete enregistre")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	r := models.ResultatVote{
		IDElection:   res.Election.IDElection,
		IDBureau:     res.Bureau.IDBureau,
		IDCandidat:   candidat.IDCandidat,
		DateElection: dateElection,
		Voix:         voix,
	}
	if err := tx.Create(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// Create insère le résultat d'un candidat; une ligne déjà présente pour la
// même clé vaut conflit.
func (s *ResultatService) Create(in ResultatInput) (*models.ResultatVote, error) {
	var created *models.ResultatVote
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res, err := ResolveBureau(tx, in.TypeElection, in.Commune, in.Centre, in.Bureau)
		if err != nil {
			return err
		}
		created, err = s.createOne(tx, res, in.NomCandidat, in.Voix, in.DateElection)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info("résultat créé",
		zap.Uint("id_election", created.IDElection),
		zap.Uint("id_bureau", created.IDBureau),
		zap.Uint("id_candidat", created.IDCandidat))
	return created, nil
}

// CreateBulk insère les voix de tous les candidats d'un bureau en une seule
// transaction. Tout candidat inconnu ou déjà enregistré annule l'ensemble:
// rien n'est écrit si une seule ligne échoue.
func (s *ResultatService) CreateBulk(in ResultatBulkInput) ([]models.ResultatVote, error) {
	var created []models.ResultatVote
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res, err := ResolveBureau(tx, in.TypeElection, in.Commune, in.Centre, in.Bureau)
		if err != nil {
			return err
		}
		for _, vc := range in.Resultats {
			r, err := s.createOne(tx, res, vc.NomCandidat, vc.Voix, in.DateElection)
			if err != nil {
				return err
			}
			created = append(created, *r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info("résultats créés en masse", zap.Int("nombre", len(created)))
	return created, nil
}

func centreByNom(db *gorm.DB, nomCentre string) (*models.CentreVote, error) {
	var centre models.CentreVote
	err := db.Where("UPPER(nom_centre) = ?", strings.ToUpper(strings.TrimSpace(nomCentre))).
		Order("id_centre").First(&centre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Centre de vote '%s' introuvable", nomCentre)
	}
	if err != nil {
		return nil, err
	}
	return &centre, nil
}

// Delete supprime un résultat identifié par ses clés humaines: centre par
// nom, bureau par numéro dans ce centre, candidat par nom.
func (s *ResultatService) Delete(idElection uint, nomCentre string, numeroBureau int, nomCandidat, dateElection string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := electionByID(tx, idElection); err != nil {
			return err
		}
		centre, err := centreByNom(tx, nomCentre)
		if err != nil {
			return err
		}
		var bureau models.BureauVote
		err = tx.Where("id_centre = ? AND numero_bureau = ?", centre.IDCentre, numeroBureau).First(&bureau).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Bureau numéro '%d' introuvable dans le centre '%s'", numeroBureau, nomCentre)
		}
		if err != nil {
			return err
		}
		candidat, err := ResolveCandidat(tx, nomCandidat)
		if err != nil {
			return err
		}
		var existing models.ResultatVote
		err = tx.Where("id_election = ? AND id_bureau = ? AND id_candidat = ? AND date_election = ?",
			idElection, bureau.IDBureau, candidat.IDCandidat, dateElection).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Résultat introuvable pour cette élection, bureau, candidat et date")
		}
		if err != nil {
			return err
		}
		return tx.Where("id_election = ? AND id_bureau = ? AND id_candidat = ? AND date_election = ?",
			idElection, bureau.IDBureau, candidat.IDCandidat, dateElection).Delete(&models.ResultatVote{}).Error
	})
}

func (s *ResultatService) List(page, limit int) (*Page[models.ResultatVote], error) {
	offset := (page - 1) * limit
	var resultats []models.ResultatVote
	if err := s.DB.Offset(offset).Limit(limit).Find(&resultats).Error; err != nil {
		return nil, err
	}
	var total int64
	if err := s.DB.Model(&models.ResultatVote{}).Count(&total).Error; err != nil {
		return nil, err
	}
	return &Page[models.ResultatVote]{Data: resultats, Total: total}, nil
}

func (s *ResultatService) ListByBureau(idBureau uint) ([]models.ResultatVote, error) {
	if _, err := bureauByID(s.DB, idBureau); err != nil {
		return nil, err
	}
	var resultats []models.ResultatVote
	if err := s.DB.Where("id_bureau = ?", idBureau).Find(&resultats).Error; err != nil {
		return nil, err
	}
	return resultats, nil
}

// ResultatCandidat est le score agrégé d'un candidat dans un périmètre avec
// sa part des voix exprimées de ce périmètre.
type ResultatCandidat struct {
	NomCandidat string  `json:"nom_candidat"`
	TotalVoix   int     `json:"total_voix"`
	Pourcentage float64 `json:"pourcentage"`
}

// StatistiquesResultat agrège les voix d'un périmètre par candidat. Les
// pourcentages se partagent le total global du périmètre (somme = 100 quand
// le total est non nul).
type StatistiquesResultat struct {
	TotalVoixGlobal    int                `json:"total_voix_global"`
	ResultatsCandidats []ResultatCandidat `json:"resultats_candidats"`
}

func (s *ResultatService) baseQuery(idElection uint, dateElection string) *gorm.DB {
	return s.DB.Model(&models.ResultatVote{}).
		Where("resultat_votes.id_election = ? AND resultat_votes.date_election = ?", idElection, dateElection)
}

func (s *ResultatService) statistiques(q *gorm.DB) (*StatistiquesResultat, error) {
	type ligne struct {
		NomCandidat string
		TotalVoix   int
	}
	var lignes []ligne
	if err := q.Joins("JOIN candidats ON candidats.id_candidat = resultat_votes.id_candidat").
		Select("candidats.nom_candidat AS nom_candidat, COALESCE(SUM(resultat_votes.voix),0) AS total_voix").
		Group("candidats.id_candidat, candidats.nom_candidat").
		Order("total_voix DESC").Scan(&lignes).Error; err != nil {
		return nil, err
	}
	total := 0
	for _, l := range lignes {
		total += l.TotalVoix
	}
	stat := StatistiquesResultat{
		TotalVoixGlobal:    total,
		ResultatsCandidats: make([]ResultatCandidat, 0, len(lignes)),
	}
	for _, l := range lignes {
		stat.ResultatsCandidats = append(stat.ResultatsCandidats, ResultatCandidat{
			NomCandidat: l.NomCandidat,
			TotalVoix:   l.TotalVoix,
			Pourcentage: pourcentage(l.TotalVoix, total),
		})
	}
	return &stat, nil
}

func (s *ResultatService) StatistiquesNationales(idElection uint, dateElection string) (*StatistiquesResultat, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	return s.statistiques(s.baseQuery(idElection, dateElection))
}

func (s *ResultatService) StatistiquesRegion(idRegion, idElection uint, dateElection string) (*StatistiquesResultat, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := regionByID(s.DB, idRegion); err != nil {
		return nil, err
	}
	return s.statistiques(scopeRegion(s.baseQuery(idElection, dateElection), "resultat_votes", idRegion))
}

func (s *ResultatService) StatistiquesDepartement(idDepartement, idElection uint, dateElection string) (*StatistiquesResultat, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := departementByID(s.DB, idDepartement); err != nil {
		return nil, err
	}
	return s.statistiques(scopeDepartement(s.baseQuery(idElection, dateElection), "resultat_votes", idDepartement))
}

func (s *ResultatService) StatistiquesCommune(idCommune, idElection uint, dateElection string) (*StatistiquesResultat, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := communeByID(s.DB, idCommune); err != nil {
		return nil, err
	}
	return s.statistiques(scopeCommune(s.baseQuery(idElection, dateElection), "resultat_votes", idCommune))
}

// StatistiquesCentre agrège les résultats d'un centre désigné par son nom.
func (s *ResultatService) StatistiquesCentre(nomCentre string, idElection uint, dateElection string) (*StatistiquesResultat, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	centre, err := centreByNom(s.DB, nomCentre)
	if err != nil {
		return nil, err
	}
	return s.statistiques(scopeCentre(s.baseQuery(idElection, dateElection), "resultat_votes", centre.IDCentre))
}

func (s *ResultatService) StatistiquesBureau(idBureau, idElection uint, dateElection string) (*StatistiquesResultat, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := bureauByID(s.DB, idBureau); err != nil {
		return nil, err
	}
	q := s.baseQuery(idElection, dateElection).Where("resultat_votes.id_bureau = ?", idBureau)
	return s.statistiques(q)
}

func (s *ResultatService) voixCandidat(q *gorm.DB, idCandidat uint, nomExpr, groupExpr string) (map[string]int, error) {
	type ligne struct {
		Nom  string
		Voix int
	}
	var lignes []ligne
	if err := q.Where("resultat_votes.id_candidat = ?", idCandidat).
		Select(nomExpr + " AS nom, COALESCE(SUM(resultat_votes.voix),0) AS voix").
		Group(groupExpr).Scan(&lignes).Error; err != nil {
		return nil, err
	}
	voix := make(map[string]int, len(lignes))
	for _, l := range lignes {
		voix[l.Nom] = l.Voix
	}
	return voix, nil
}

// VoixCandidatParRegion ventile les voix nationales d'un candidat par région.
// Seules les régions où le candidat a des voix enregistrées apparaissent.
func (s *ResultatService) VoixCandidatParRegion(idCandidat, idElection uint, dateElection string) (map[string]int, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	candidat, err := candidatByID(s.DB, idCandidat)
	if err != nil {
		return nil, err
	}
	q := s.baseQuery(idElection, dateElection).
		Joins("JOIN bureau_votes ON bureau_votes.id_bureau = resultat_votes.id_bureau").
		Joins("JOIN centre_votes ON centre_votes.id_centre = bureau_votes.id_centre").
		Joins("JOIN communes ON communes.id_commune = centre_votes.id_commune").
		Joins("JOIN departements ON departements.id_departement = communes.id_departement").
		Joins("JOIN regions ON regions.id_region = departements.id_region")
	return s.voixCandidat(q, candidat.IDCandidat, "regions.nom_region", "regions.id_region, regions.nom_region")
}

func (s *ResultatService) VoixCandidatParDepartement(idCandidat, idRegion, idElection uint, dateElection string) (map[string]int, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := regionByID(s.DB, idRegion); err != nil {
		return nil, err
	}
	candidat, err := candidatByID(s.DB, idCandidat)
	if err != nil {
		return nil, err
	}
	q := scopeRegion(s.baseQuery(idElection, dateElection), "resultat_votes", idRegion)
	return s.voixCandidat(q, candidat.IDCandidat, "departements.nom_departement", "departements.id_departement, departements.nom_departement")
}

func (s *ResultatService) VoixCandidatParCommune(idCandidat, idDepartement, idElection uint, dateElection string) (map[string]int, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := departementByID(s.DB, idDepartement); err != nil {
		return nil, err
	}
	candidat, err := candidatByID(s.DB, idCandidat)
	if err != nil {
		return nil, err
	}
	q := scopeDepartement(s.baseQuery(idElection, dateElection), "resultat_votes", idDepartement)
	return s.voixCandidat(q, candidat.IDCandidat, "communes.nom_commune", "communes.id_commune, communes.nom_commune")
}

func (s *ResultatService) VoixCandidatParCentre(idCandidat, idCommune, idElection uint, dateElection string) (map[string]int, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := communeByID(s.DB, idCommune); err != nil {
		return nil, err
	}
	candidat, err := candidatByID(s.DB, idCandidat)
	if err != nil {
		return nil, err
	}
	q := scopeCommune(s.baseQuery(idElection, dateElection), "resultat_votes", idCommune)
	return s.voixCandidat(q, candidat.IDCandidat, "centre_votes.nom_centre", "centre_votes.id_centre, centre_votes.nom_centre")
}

// VoixCandidatParBureau ventile les voix d'un candidat par bureau du centre
// désigné par son nom, clé "Bureau N".
func (s *ResultatService) VoixCandidatParBureau(idCandidat uint, nomCentre string, idElection uint, dateElection string) (map[string]int, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	centre, err := centreByNom(s.DB, nomCentre)
	if err != nil {
		return nil, err
	}
	candidat, err := candidatByID(s.DB, idCandidat)
	if err != nil {
		return nil, err
	}
	type ligne struct {
		NumeroBureau int
		Voix         int
	}
	var lignes []ligne
	q := scopeCentre(s.baseQuery(idElection, dateElection), "resultat_votes", centre.IDCentre)
	if err := q.Where("resultat_votes.id_candidat = ?", candidat.IDCandidat).
		Select("bureau_votes.numero_bureau AS numero_bureau, COALESCE(SUM(resultat_votes.voix),0) AS voix").
		Group("bureau_votes.id_bureau, bureau_votes.numero_bureau").
		Order("bureau_votes.numero_bureau").Scan(&lignes).Error; err != nil {
		return nil, err
	}
	voix := make(map[string]int, len(lignes))
	for _, l := range lignes {
		voix[fmt.Sprintf("Bureau %d", l.NumeroBureau)] = l.Voix
	}
	return voix, nil
}
