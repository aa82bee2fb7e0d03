package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/elections-api/internal/apperr"
	"github.com/diewo77/elections-api/internal/models"
)

// ParticipationService gère le registre de participation (un enregistrement
// par élection, bureau et date) et toutes les statistiques de participation.
type ParticipationService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewParticipationService(db *gorm.DB, log *zap.Logger) *ParticipationService {
	return &ParticipationService{DB: db, Log: log}
}

// ParticipationInput est la charge de création: le bureau est identifié par
// la saisie humaine (commune, fragment de centre, numéro).
type ParticipationInput struct {
	TypeElection           string `json:"type_election"`
	Commune                string `json:"commune"`
	Centre                 string `json:"centre"`
	Bureau                 int    `json:"bureau"`
	NombreElecteur         int    `json:"nombre_electeur"`
	NombreVotant           int    `json:"nombre_votant"`
	NombreVotantHorsBureau int    `json:"nombre_votant_hors_bureau"`
	NombreBulletinNull     int    `json:"nombre_bulletin_null"`
	NombreSuffrage         int    `json:"nombre_suffrage"`
	DateElection           string `json:"date_election"`
}

// ParticipationCounts porte les seuls champs modifiables d'une participation.
type ParticipationCounts struct {
	NombreElecteur         int `json:"nombre_electeur"`
	NombreVotant           int `json:"nombre_votant"`
	NombreVotantHorsBureau int `json:"nombre_votant_hors_bureau"`
	NombreBulletinNull     int `json:"nombre_bulletin_null"`
	NombreSuffrage         int `json:"nombre_suffrage"`
}

// Create résout le bureau via la saisie humaine puis insère la participation.
// Un enregistrement existant pour la même clé (élection, bureau, date) est un
// conflit, jamais un écrasement.
func (s *ParticipationService) Create(in ParticipationInput) (*models.Participation, error) {
	var created *models.Participation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res, err := ResolveBureau(tx, in.TypeElection, in.Commune, in.Centre, in.Bureau)
		if err != nil {
			return err
		}

		var existing models.Participation
		err = tx.Where("id_election = ? AND id_bureau = ? AND date_election = ?",
			res.Election.IDElection, res.Bureau.IDBureau, in.DateElection).First(&existing).Error
		if err == nil {
			s.Log.Warn("participation existante",
				zap.Uint("id_election", res.Election.IDElection),
				zap.Uint("id_bureau", res.Bureau.IDBureau),
				zap.String("date_election", in.DateElection))
			return apperr.Conflict("Une participation existe déjà pour cette élection, bureau et date")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		p := models.Participation{
			IDElection:             res.Election.IDElection,
			IDBureau:               res.Bureau.IDBureau,
			DateElection:           in.DateElection,
			NombreElecteur:         in.NombreElecteur,
			NombreVotant:           in.NombreVotant,
			NombreVotantHorsBureau: in.NombreVotantHorsBureau,
			NombreBulletinNull:     in.NombreBulletinNull,
			NombreSuffrage:         in.NombreSuffrage,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		created = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info("participation créée",
		zap.Uint("id_election", created.IDElection),
		zap.Uint("id_bureau", created.IDBureau))
	return created, nil
}

func (s *ParticipationService) byKeys(db *gorm.DB, idElection, idBureau uint, dateElection string) (*models.Participation, error) {
	var p models.Participation
	err := db.Where("id_election = ? AND id_bureau = ? AND date_election = ?",
		idElection, idBureau, dateElection).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Participation introuvable pour cette élection, bureau et date")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update remplace les champs de comptage, jamais la clé.
func (s *ParticipationService) Update(idElection, idBureau uint, dateElection string, counts ParticipationCounts) (*models.Participation, error) {
	var updated *models.Participation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := electionByID(tx, idElection); err != nil {
			return err
		}
		if _, err := bureauByID(tx, idBureau); err != nil {
			return err
		}
		p, err := s.byKeys(tx, idElection, idBureau, dateElection)
		if err != nil {
			return err
		}
		p.NombreElecteur = counts.NombreElecteur
		p.NombreVotant = counts.NombreVotant
		p.NombreVotantHorsBureau = counts.NombreVotantHorsBureau
		p.NombreBulletinNull = counts.NombreBulletinNull
		p.NombreSuffrage = counts.NombreSuffrage
		if err := tx.Model(&models.Participation{}).
			Where("id_election = ? AND id_bureau = ? AND date_election = ?", idElection, idBureau, dateElection).
			Updates(map[string]any{
				"nombre_electeur":           counts.NombreElecteur,
				"nombre_votant":             counts.NombreVotant,
				"nombre_votant_hors_bureau": counts.NombreVotantHorsBureau,
				"nombre_bulletin_null":      counts.NombreBulletinNull,
				"nombre_suffrage":           counts.NombreSuffrage,
			}).Error; err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ParticipationService) Delete(idElection, idBureau uint, dateElection string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := electionByID(tx, idElection); err != nil {
			return err
		}
		if _, err := bureauByID(tx, idBureau); err != nil {
			return err
		}
		if _, err := s.byKeys(tx, idElection, idBureau, dateElection); err != nil {
			return err
		}
		return tx.Where("id_election = ? AND id_bureau = ? AND date_election = ?",
			idElection, idBureau, dateElection).Delete(&models.Participation{}).Error
	})
}

func (s *ParticipationService) List(page, limit int) (*Page[models.Participation], error) {
	offset := (page - 1) * limit
	var participations []models.Participation
	if err := s.DB.Offset(offset).Limit(limit).Find(&participations).Error; err != nil {
		return nil, err
	}
	var total int64
	if err := s.DB.Model(&models.Participation{}).Count(&total).Error; err != nil {
		return nil, err
	}
	return &Page[models.Participation]{Data: participations, Total: total}, nil
}

// StatistiquesParticipation agrège les comptages bruts d'un périmètre
// géographique et en dérive les taux.
type StatistiquesParticipation struct {
	TotalElecteurs         int     `json:"total_electeurs"`
	TotalVotants           int     `json:"total_votants"`
	TotalVotantsHorsBureau int     `json:"total_votants_hors_bureau"`
	TotalBulletinsNuls     int     `json:"total_bulletins_nuls"`
	TotalSuffrages         int     `json:"total_suffrages"`
	TauxParticipation      float64 `json:"taux_participation"`
	TauxSuffragesValides   float64 `json:"taux_suffrages_valides"`
}

type SommeParticipation struct {
	TotalElecteurs         int
	TotalVotants           int
	TotalVotantsHorsBureau int
	TotalBulletinsNuls     int
	TotalSuffrages         int
}

const SommeParticipationSelect = "COALESCE(SUM(participations.nombre_electeur),0) AS total_electeurs, " +
	"COALESCE(SUM(participations.nombre_votant),0) AS total_votants, " +
	"COALESCE(SUM(participations.nombre_votant_hors_bureau),0) AS total_votants_hors_bureau, " +
	"COALESCE(SUM(participations.nombre_bulletin_null),0) AS total_bulletins_nuls, " +
	"COALESCE(SUM(participations.nombre_suffrage),0) AS total_suffrages"

func statsFromSomme(somme SommeParticipation) StatistiquesParticipation {
	return StatistiquesParticipation{
		TotalElecteurs:         somme.TotalElecteurs,
		TotalVotants:           somme.TotalVotants,
		TotalVotantsHorsBureau: somme.TotalVotantsHorsBureau,
		TotalBulletinsNuls:     somme.TotalBulletinsNuls,
		TotalSuffrages:         somme.TotalSuffrages,
		TauxParticipation:      tauxParticipation(somme.TotalVotants, somme.TotalElecteurs),
		TauxSuffragesValides:   tauxSuffragesValides(somme.TotalSuffrages, somme.TotalVotants),
	}
}

func (s *ParticipationService) baseQuery(idElection uint, dateElection string) *gorm.DB {
	return s.DB.Model(&models.Participation{}).
		Where("participations.id_election = ? AND participations.date_election = ?", idElection, dateElection)
}

func (s *ParticipationService) somme(q *gorm.DB) (*StatistiquesParticipation, error) {
	var somme SommeParticipation
	if err := q.Select(SommeParticipationSelect).Scan(&somme).Error; err != nil {
		return nil, err
	}
	stat := statsFromSomme(somme)
	return &stat, nil
}

// StatistiquesNationales somme toutes les participations de l'élection à la
// date donnée, sans filtre géographique.
func (s *ParticipationService) StatistiquesNationales(idElection uint, dateElection string) (*StatistiquesParticipation, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	return s.somme(s.baseQuery(idElection, dateElection))
}

// StatistiquesBureau renvoie les comptages du bureau, zéro partout si le
// bureau n'a pas encore de participation pour cette élection/date.
func (s *ParticipationService) StatistiquesBureau(idBureau, idElection uint, dateElection string) (*StatistiquesParticipation, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := bureauByID(s.DB, idBureau); err != nil {
		return nil, err
	}
	var p models.Participation
	err := s.DB.Where("id_bureau = ? AND id_election = ? AND date_election = ?",
		idBureau, idElection, dateElection).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &StatistiquesParticipation{}, nil
	}
	if err != nil {
		return nil, err
	}
	stat := statsFromSomme(SommeParticipation{
		TotalElecteurs:         p.NombreElecteur,
		TotalVotants:           p.NombreVotant,
		TotalVotantsHorsBureau: p.NombreVotantHorsBureau,
		TotalBulletinsNuls:     p.NombreBulletinNull,
		TotalSuffrages:         p.NombreSuffrage,
	})
	return &stat, nil
}

func (s *ParticipationService) StatistiquesCentre(idCentre, idElection uint, dateElection string) (*StatistiquesParticipation, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := centreByID(s.DB, idCentre); err != nil {
		return nil, err
	}
	return s.somme(scopeCentre(s.baseQuery(idElection, dateElection), "participations", idCentre))
}

func (s *ParticipationService) StatistiquesCommune(idCommune, idElection uint, dateElection string) (*StatistiquesParticipation, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := communeByID(s.DB, idCommune); err != nil {
		return nil, err
	}
	return s.somme(scopeCommune(s.baseQuery(idElection, dateElection), "participations", idCommune))
}

func (s *ParticipationService) StatistiquesDepartement(idDepartement, idElection uint, dateElection string) (*StatistiquesParticipation, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := departementByID(s.DB, idDepartement); err != nil {
		return nil, err
	}
	return s.somme(scopeDepartement(s.baseQuery(idElection, dateElection), "participations", idDepartement))
}

func (s *ParticipationService) StatistiquesRegion(idRegion, idElection uint, dateElection string) (*StatistiquesParticipation, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := regionByID(s.DB, idRegion); err != nil {
		return nil, err
	}
	return s.somme(scopeRegion(s.baseQuery(idElection, dateElection), "participations", idRegion))
}

type SommeParticipationGroupe struct {
	Nom string
	SommeParticipation
}

func (s *ParticipationService) repartition(q *gorm.DB, nomExpr, groupExpr string) (map[string]StatistiquesParticipation, error) {
	var rows []SommeParticipationGroupe
	if err := q.Select(nomExpr + " AS nom, " + SommeParticipationSelect).
		Group(groupExpr).Scan(&rows).Error; err != nil {
		return nil, err
	}
	stats := make(map[string]StatistiquesParticipation, len(rows))
	for _, row := range rows {
		stats[row.Nom] = statsFromSomme(row.SommeParticipation)
	}
	return stats, nil
}

// RepartitionRegions groupe les totaux nationaux par région. Seules les
// régions ayant au moins une participation apparaissent.
func (s *ParticipationService) RepartitionRegions(idElection uint, dateElection string) (map[string]StatistiquesParticipation, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	q := s.baseQuery(idElection, dateElection).
		Joins("JOIN bureau_votes ON bureau_votes.id_bureau = participations.id_bureau").
		Joins("JOIN centre_votes ON centre_votes.id_centre = bureau_votes.id_centre").
		Joins("JOIN communes ON communes.id_commune = centre_votes.id_commune").
		Joins("JOIN departements ON departements.id_departement = communes.id_departement").
		Joins("JOIN regions ON regions.id_region = departements.id_region")
	return s.repartition(q, "regions.nom_region", "regions.id_region, regions.nom_region")
}

func (s *ParticipationService) RepartitionDepartements(idRegion, idElection uint, dateElection string) (map[string]StatistiquesParticipation, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := regionByID(s.DB, idRegion); err != nil {
		return nil, err
	}
	q := scopeRegion(s.baseQuery(idElection, dateElection), "participations", idRegion)
	return s.repartition(q, "departements.nom_departement", "departements.id_departement, departements.nom_departement")
}

func (s *ParticipationService) RepartitionCommunes(idDepartement, idElection uint, dateElection string) (map[string]StatistiquesParticipation, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := departementByID(s.DB, idDepartement); err != nil {
		return nil, err
	}
	q := scopeDepartement(s.baseQuery(idElection, dateElection), "participations", idDepartement)
	return s.repartition(q, "communes.nom_commune", "communes.id_commune, communes.nom_commune")
}

func (s *ParticipationService) RepartitionCentres(idCommune, idElection uint, dateElection string) (map[string]StatistiquesParticipation, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := communeByID(s.DB, idCommune); err != nil {
		return nil, err
	}
	q := scopeCommune(s.baseQuery(idElection, dateElection), "participations", idCommune)
	return s.repartition(q, "centre_votes.nom_centre", "centre_votes.id_centre, centre_votes.nom_centre")
}

// RepartitionBureaux groupe par bureau du centre, clé "Bureau N".
func (s *ParticipationService) RepartitionBureaux(idCentre, idElection uint, dateElection string) (map[string]StatistiquesParticipation, error) {
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	if _, err := centreByID(s.DB, idCentre); err != nil {
		return nil, err
	}
	type bureauRow struct {
		NumeroBureau int
		SommeParticipation
	}
	var rows []bureauRow
	q := scopeCentre(s.baseQuery(idElection, dateElection), "participations", idCentre)
	if err := q.Select("bureau_votes.numero_bureau AS numero_bureau, " + SommeParticipationSelect).
		Group("bureau_votes.id_bureau, bureau_votes.numero_bureau").
		Order("bureau_votes.numero_bureau").Scan(&rows).Error; err != nil {
		return nil, err
	}
	stats := make(map[string]StatistiquesParticipation, len(rows))
	for _, row := range rows {
		stats[fmt.Sprintf("Bureau %d", row.NumeroBureau)] = statsFromSomme(row.SommeParticipation)
	}
	return stats, nil
}

// PointEvolution est un intervalle peuplé de l'évolution temporelle.
type PointEvolution struct {
	Intervalle      time.Time `json:"intervalle"`
	NouveauxVotants int       `json:"nouveaux_votants"`
	CumulVotants    int       `json:"cumul_votants"`
}

// EvolutionVotants est la réponse complète d'une évolution, avec le périmètre
// résolu en tête quand la requête est filtrée géographiquement.
type EvolutionVotants struct {
	IDRegion          uint             `json:"id_region,omitempty"`
	NomRegion         string           `json:"nom_region,omitempty"`
	IDDepartement     uint             `json:"id_departement,omitempty"`
	NomDepartement    string           `json:"nom_departement,omitempty"`
	IDCommune         uint             `json:"id_commune,omitempty"`
	NomCommune        string           `json:"nom_commune,omitempty"`
	IDCentre          uint             `json:"id_centre,omitempty"`
	NomCentre         string           `json:"nom_centre,omitempty"`
	IDElection        uint             `json:"id_election"`
	DateElection      string           `json:"date_election"`
	IntervalMinutes   int              `json:"interval_minutes"`
	TotalVotants      int              `json:"total_votants"`
	NombreIntervalles int              `json:"nombre_intervalles"`
	Evolution         []PointEvolution `json:"evolution"`
}

func validIntervalle(intervalMinutes int) bool {
	switch intervalMinutes {
	case 15, 30, 60, 120:
		return true
	}
	return false
}

// debutIntervalle aligne un horodatage sur le début de son intervalle:
// plancher de l'heure + floor(secondes-depuis-l'heure / intervalle) × intervalle.
func debutIntervalle(t time.Time, intervalMinutes int) time.Time {
	heure := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	ivalSecs := intervalMinutes * 60
	secs := int(t.Sub(heure).Seconds())
	return heure.Add(time.Duration(secs/ivalSecs*ivalSecs) * time.Second)
}

// evolution agrège les lignes du périmètre en intervalles chronologiques avec
// cumul. Seuls les intervalles peuplés sont émis.
func (s *ParticipationService) evolution(q *gorm.DB, intervalMinutes int) ([]PointEvolution, int, error) {
	type ligne struct {
		CreatedAt    time.Time
		NombreVotant int
	}
	var lignes []ligne
	if err := q.Select("participations.created_at AS created_at, participations.nombre_votant AS nombre_votant").
		Order("participations.created_at").Scan(&lignes).Error; err != nil {
		return nil, 0, err
	}

	parIntervalle := make(map[time.Time]int)
	var ordre []time.Time
	for _, l := range lignes {
		debut := debutIntervalle(l.CreatedAt, intervalMinutes)
		if _, ok := parIntervalle[debut]; !ok {
			ordre = append(ordre, debut)
		}
		parIntervalle[debut] += l.NombreVotant
	}

	evolution := make([]PointEvolution, 0, len(ordre))
	cumul := 0
	for _, debut := range ordre {
		cumul += parIntervalle[debut]
		evolution = append(evolution, PointEvolution{
			Intervalle:      debut,
			NouveauxVotants: parIntervalle[debut],
			CumulVotants:    cumul,
		})
	}
	return evolution, cumul, nil
}

func (s *ParticipationService) Evolution(idElection uint, dateElection string, intervalMinutes int) (*EvolutionVotants, error) {
	if !validIntervalle(intervalMinutes) {
		return nil, apperr.Validation("Intervalle non valide. Choisissez parmi: 15, 30, 60, 120 minutes.")
	}
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	evolution, total, err := s.evolution(s.baseQuery(idElection, dateElection), intervalMinutes)
	if err != nil {
		return nil, err
	}
	return &EvolutionVotants{
		IDElection:        idElection,
		DateElection:      dateElection,
		IntervalMinutes:   intervalMinutes,
		TotalVotants:      total,
		NombreIntervalles: len(evolution),
		Evolution:         evolution,
	}, nil
}

func (s *ParticipationService) EvolutionRegion(idRegion, idElection uint, dateElection string, intervalMinutes int) (*EvolutionVotants, error) {
	if !validIntervalle(intervalMinutes) {
		return nil, apperr.Validation("Intervalle non valide. Choisissez parmi: 15, 30, 60, 120 minutes.")
	}
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	region, err := regionByID(s.DB, idRegion)
	if err != nil {
		return nil, err
	}
	evolution, total, err := s.evolution(scopeRegion(s.baseQuery(idElection, dateElection), "participations", idRegion), intervalMinutes)
	if err != nil {
		return nil, err
	}
	return &EvolutionVotants{
		IDRegion:          region.IDRegion,
		NomRegion:         region.NomRegion,
		IDElection:        idElection,
		DateElection:      dateElection,
		IntervalMinutes:   intervalMinutes,
		TotalVotants:      total,
		NombreIntervalles: len(evolution),
		Evolution:         evolution,
	}, nil
}

func (s *ParticipationService) EvolutionDepartement(idDepartement, idElection uint, dateElection string, intervalMinutes int) (*EvolutionVotants, error) {
	if !validIntervalle(intervalMinutes) {
		return nil, apperr.Validation("Intervalle non valide. Choisissez parmi: 15, 30, 60, 120 minutes.")
	}
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	departement, err := departementByID(s.DB, idDepartement)
	if err != nil {
		return nil, err
	}
	evolution, total, err := s.evolution(scopeDepartement(s.baseQuery(idElection, dateElection), "participations", idDepartement), intervalMinutes)
	if err != nil {
		return nil, err
	}
	return &EvolutionVotants{
		IDDepartement:     departement.IDDepartement,
		NomDepartement:    departement.NomDepartement,
		IDElection:        idElection,
		DateElection:      dateElection,
		IntervalMinutes:   intervalMinutes,
		TotalVotants:      total,
		NombreIntervalles: len(evolution),
		Evolution:         evolution,
	}, nil
}

func (s *ParticipationService) EvolutionCommune(idCommune, idElection uint, dateElection string, intervalMinutes int) (*EvolutionVotants, error) {
	if !validIntervalle(intervalMinutes) {
		return nil, apperr.Validation("Intervalle non valide. Choisissez parmi: 15, 30, 60, 120 minutes.")
	}
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	commune, err := communeByID(s.DB, idCommune)
	if err != nil {
		return nil, err
	}
	evolution, total, err := s.evolution(scopeCommune(s.baseQuery(idElection, dateElection), "participations", idCommune), intervalMinutes)
	if err != nil {
		return nil, err
	}
	return &EvolutionVotants{
		IDCommune:         commune.IDCommune,
		NomCommune:        commune.NomCommune,
		IDElection:        idElection,
		DateElection:      dateElection,
		IntervalMinutes:   intervalMinutes,
		TotalVotants:      total,
		NombreIntervalles: len(evolution),
		Evolution:         evolution,
	}, nil
}

func (s *ParticipationService) EvolutionCentre(idCentre, idElection uint, dateElection string, intervalMinutes int) (*EvolutionVotants, error) {
	if !validIntervalle(intervalMinutes) {
		return nil, apperr.Validation("Intervalle non valide. Choisissez parmi: 15, 30, 60, 120 minutes.")
	}
	if _, err := electionByID(s.DB, idElection); err != nil {
		return nil, err
	}
	centre, err := centreByID(s.DB, idCentre)
	if err != nil {
		return nil, err
	}
	evolution, total, err := s.evolution(scopeCentre(s.baseQuery(idElection, dateElection), "participations", idCentre), intervalMinutes)
	if err != nil {
		return nil, err
	}
	return &EvolutionVotants{
		IDCentre:          centre.IDCentre,
		NomCentre:         centre.NomCentre,
		IDElection:        idElection,
		DateElection:      dateElection,
		IntervalMinutes:   intervalMinutes,
		TotalVotants:      total,
		NombreIntervalles: len(evolution),
		Evolution:         evolution,
	}, nil
}
