package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/elections-api/internal/apperr"
	"github.com/diewo77/elections-api/internal/models"
)

// BureauResolution identifie le bureau de vote visé par une saisie humaine
// (type d'élection, nom de commune, fragment de nom de centre, numéro de
// bureau). MatchingCentres compte les centres de la commune contenant le
// fragment: > 1 signale une résolution ambiguë, tranchée par le premier
// centre par ordre d'insertion.
type BureauResolution struct {
	Election        models.Election
	Centre          models.CentreVote
	Bureau          models.BureauVote
	MatchingCentres int
}

// ResolveBureau traduit l'identification humaine d'un bureau en lignes
// internes. Le nom de commune et le type d'élection sont comparés après mise
// en majuscules; le fragment de centre est une sous-chaîne insensible à la
// casse, le premier centre correspondant (ordre id_centre) est retenu.
func ResolveBureau(db *gorm.DB, typeElection, nomCommune, centreFragment string, numeroBureau int) (*BureauResolution, error) {
	var election models.Election
	err := db.Where("type_election = ?", strings.ToUpper(strings.TrimSpace(typeElection))).First(&election).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Élection de type '%s' introuvable", typeElection)
	}
	if err != nil {
		return nil, err
	}

	var commune models.Commune
	err = db.Where("nom_commune = ?", strings.ToUpper(strings.TrimSpace(nomCommune))).First(&commune).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Commune '%s' introuvable", nomCommune)
	}
	if err != nil {
		return nil, err
	}

	var centres []models.CentreVote
	if err := db.Where("id_commune = ?", commune.IDCommune).Order("id_centre").Find(&centres).Error; err != nil {
		return nil, err
	}

	// Correspondance partielle insensible à la casse; le premier centre
	// correspondant gagne, même si plusieurs contiennent le fragment.
	fragment := strings.ToUpper(centreFragment)
	var matched []models.CentreVote
	for _, c := range centres {
		if strings.Contains(strings.ToUpper(c.NomCentre), fragment) {
			matched = append(matched, c)
		}
	}
	if len(matched) == 0 {
		return nil, apperr.NotFound("Centre contenant '%s' introuvable", centreFragment)
	}
	centre := matched[0]

	var bureau models.BureauVote
	err = db.Where("id_centre = ? AND numero_bureau = ?", centre.IDCentre, numeroBureau).First(&bureau).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Bureau numéro '%d' introuvable dans le centre '%s'", numeroBureau, centreFragment)
	}
	if err != nil {
		return nil, err
	}

	return &BureauResolution{
		Election:        election,
		Centre:          centre,
		Bureau:          bureau,
		MatchingCentres: len(matched),
	}, nil
}

// ResolveCandidat recherche un candidat par son nom exact (après mise en
// majuscules).
func ResolveCandidat(db *gorm.DB, nomCandidat string) (*models.Candidat, error) {
	var candidat models.Candidat
	err := db.Where("nom_candidat = ?", strings.ToUpper(strings.TrimSpace(nomCandidat))).First(&candidat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Candidat '%s' introuvable", nomCandidat)
	}
	if err != nil {
		return nil, err
	}
	return &candidat, nil
}
