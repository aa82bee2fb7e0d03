package services

import (
	"math"

	"gorm.io/gorm"
)

// Formules de taux communes au moteur statistique. Les dénominateurs nuls
// donnent 0.0, jamais une division par zéro ni une valeur absente.

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func tauxParticipation(totalVotants, totalElecteurs int) float64 {
	if totalElecteurs == 0 {
		return 0.0
	}
	return round2(float64(totalVotants) / float64(totalElecteurs) * 100)
}

func tauxSuffragesValides(totalSuffrages, totalVotants int) float64 {
	if totalVotants == 0 {
		return 0.0
	}
	return round2(float64(totalSuffrages) / float64(totalVotants) * 100)
}

func pourcentage(voix, totalVoixGlobal int) float64 {
	if totalVoixGlobal == 0 {
		return 0.0
	}
	return round2(float64(voix) / float64(totalVoixGlobal) * 100)
}

// Jointures remontant des lignes de registre (participations ou
// resultat_votes, désignées par table) vers le niveau géographique filtré.
// Chaque niveau n'ajoute que les jointures dont il a besoin.

func scopeCentre(q *gorm.DB, table string, idCentre uint) *gorm.DB {
	return q.Joins("JOIN bureau_votes ON bureau_votes.id_bureau = "+table+".id_bureau").
		Where("bureau_votes.id_centre = ?", idCentre)
}

func scopeCommune(q *gorm.DB, table string, idCommune uint) *gorm.DB {
	return q.Joins("JOIN bureau_votes ON bureau_votes.id_bureau = "+table+".id_bureau").
		Joins("JOIN centre_votes ON centre_votes.id_centre = bureau_votes.id_centre").
		Where("centre_votes.id_commune = ?", idCommune)
}

func scopeDepartement(q *gorm.DB, table string, idDepartement uint) *gorm.DB {
	return q.Joins("JOIN bureau_votes ON bureau_votes.id_bureau = "+table+".id_bureau").
		Joins("JOIN centre_votes ON centre_votes.id_centre = bureau_votes.id_centre").
		Joins("JOIN communes ON communes.id_commune = centre_votes.id_commune").
		Where("communes.id_departement = ?", idDepartement)
}

func scopeRegion(q *gorm.DB, table string, idRegion uint) *gorm.DB {
	return q.Joins("JOIN bureau_votes ON bureau_votes.id_bureau = "+table+".id_bureau").
		Joins("JOIN centre_votes ON centre_votes.id_centre = bureau_votes.id_centre").
		Joins("JOIN communes ON communes.id_commune = centre_votes.id_commune").
		Joins("JOIN departements ON departements.id_departement = communes.id_departement").
		Where("departements.id_region = ?", idRegion)
}
