package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/elections-api/internal/apperr"
	"github.com/diewo77/elections-api/internal/models"
)

func resultatInput(bureau int, candidat string, voix int) ResultatInput {
	return ResultatInput{
		TypeElection: "PRESIDENTIELLE",
		Commune:      "MEDINA",
		Centre:       "MANGIN A",
		Bureau:       bureau,
		NomCandidat:  candidat,
		Voix:         voix,
		DateElection: jourScrutin,
	}
}

func TestResultatCreateEtConflit(t *testing.T) {
	f := newFixture(t)
	svc := NewResultatService(f.DB, testLogger())

	r, err := svc.Create(resultatInput(1, "AMADOU DIOP", 40))
	require.NoError(t, err)
	assert.Equal(t, f.Diop.IDCandidat, r.IDCandidat)

	// même candidat, même bureau, même date: conflit
	_, err = svc.Create(resultatInput(1, "amadou diop", 40))
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
	assert.Equal(t, "Le bureau a deja ete enregistre", apperr.DetailOf(err))

	// autre candidat dans le même bureau: pas de conflit
	_, err = svc.Create(resultatInput(1, "AISSATOU FALL", 20))
	require.NoError(t, err)
}

func TestResultatCreateBulkAtomique(t *testing.T) {
	f := newFixture(t)
	svc := NewResultatService(f.DB, testLogger())

	in := ResultatBulkInput{
		TypeElection: "PRESIDENTIELLE",
		Commune:      "MEDINA",
		Centre:       "MANGIN A",
		Bureau:       1,
		DateElection: jourScrutin,
		Resultats: []VoixCandidat{
			{NomCandidat: "AMADOU DIOP", Voix: 40},
			{NomCandidat: "CANDIDAT FANTOME", Voix: 5},
		},
	}
	_, err := svc.CreateBulk(in)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))

	// candidat inconnu: rien ne doit avoir été écrit
	var count int64
	require.NoError(t, f.DB.Model(&models.ResultatVote{}).Count(&count).Error)
	assert.Zero(t, count)

	in.Resultats = []VoixCandidat{
		{NomCandidat: "AMADOU DIOP", Voix: 40},
		{NomCandidat: "AISSATOU FALL", Voix: 20},
	}
	created, err := svc.CreateBulk(in)
	require.NoError(t, err)
	assert.Len(t, created, 2)

	// rejouer la même charge: conflit, toujours rien de plus écrit
	_, err = svc.CreateBulk(in)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
	require.NoError(t, f.DB.Model(&models.ResultatVote{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestResultatDeleteParClesHumaines(t *testing.T) {
	f := newFixture(t)
	svc := NewResultatService(f.DB, testLogger())

	_, err := svc.Create(resultatInput(1, "AMADOU DIOP", 40))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(f.Election.IDElection, "ECOLE MANGIN A", 1, "AMADOU DIOP", jourScrutin))

	err = svc.Delete(f.Election.IDElection, "ECOLE MANGIN A", 1, "AMADOU DIOP", jourScrutin)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestStatistiquesResultatPartitionDesPourcentages(t *testing.T) {
	f := newFixture(t)
	svc := NewResultatService(f.DB, testLogger())

	_, err := svc.Create(resultatInput(1, "AMADOU DIOP", 40))
	require.NoError(t, err)
	_, err = svc.Create(resultatInput(1, "AISSATOU FALL", 20))
	require.NoError(t, err)
	_, err = svc.Create(resultatInput(2, "AMADOU DIOP", 15))
	require.NoError(t, err)

	stats, err := svc.StatistiquesNationales(f.Election.IDElection, jourScrutin)
	require.NoError(t, err)
	assert.Equal(t, 75, stats.TotalVoixGlobal)
	require.Len(t, stats.ResultatsCandidats, 2)

	// trié par voix décroissantes
	assert.Equal(t, "AMADOU DIOP", stats.ResultatsCandidats[0].NomCandidat)
	assert.Equal(t, 55, stats.ResultatsCandidats[0].TotalVoix)
	assert.Equal(t, 73.33, stats.ResultatsCandidats[0].Pourcentage)
	assert.Equal(t, 26.67, stats.ResultatsCandidats[1].Pourcentage)
}

func TestStatistiquesResultatSansDonnees(t *testing.T) {
	f := newFixture(t)
	svc := NewResultatService(f.DB, testLogger())

	stats, err := svc.StatistiquesNationales(f.Election.IDElection, jourScrutin)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalVoixGlobal)
	assert.Empty(t, stats.ResultatsCandidats)
}

func TestStatistiquesResultatCentreParNom(t *testing.T) {
	f := newFixture(t)
	svc := NewResultatService(f.DB, testLogger())

	_, err := svc.Create(resultatInput(1, "AMADOU DIOP", 40))
	require.NoError(t, err)

	stats, err := svc.StatistiquesCentre("ecole mangin a", f.Election.IDElection, jourScrutin)
	require.NoError(t, err)
	assert.Equal(t, 40, stats.TotalVoixGlobal)

	_, err = svc.StatistiquesCentre("INEXISTANT", f.Election.IDElection, jourScrutin)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestVoixCandidatParNiveau(t *testing.T) {
	f := newFixture(t)
	svc := NewResultatService(f.DB, testLogger())

	_, err := svc.Create(resultatInput(1, "AMADOU DIOP", 40))
	require.NoError(t, err)
	_, err = svc.Create(resultatInput(2, "AMADOU DIOP", 15))
	require.NoError(t, err)

	parRegion, err := svc.VoixCandidatParRegion(f.Diop.IDCandidat, f.Election.IDElection, jourScrutin)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"DAKAR": 55}, parRegion)

	parCentre, err := svc.VoixCandidatParCentre(f.Diop.IDCandidat, f.Medina.IDCommune, f.Election.IDElection, jourScrutin)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"ECOLE MANGIN A": 55}, parCentre)

	parBureau, err := svc.VoixCandidatParBureau(f.Diop.IDCandidat, "ECOLE MANGIN A", f.Election.IDElection, jourScrutin)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Bureau 1": 40, "Bureau 2": 15}, parBureau)

	// centre inconnu: 404
	_, err = svc.VoixCandidatParBureau(f.Diop.IDCandidat, "INEXISTANT", f.Election.IDElection, jourScrutin)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))

	// candidat sans voix: ventilation vide, pas d'erreur
	vide, err := svc.VoixCandidatParRegion(f.Fall.IDCandidat, f.Election.IDElection, jourScrutin)
	require.NoError(t, err)
	assert.Empty(t, vide)
}
