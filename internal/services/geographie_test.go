package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/elections-api/internal/apperr"
	"github.com/diewo77/elections-api/internal/models"
)

func TestRegionCreateNormaliseEtRefuseLesDoublons(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegionService(db, testLogger())

	region, err := svc.Create(RegionInput{NomRegion: "  thiès "})
	require.NoError(t, err)
	assert.Equal(t, "THIÈS", region.NomRegion)

	_, err = svc.Create(RegionInput{NomRegion: "Thiès"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestRegionDeleteRefuseSiDepartements(t *testing.T) {
	f := newFixture(t)
	svc := NewRegionService(f.DB, testLogger())

	err := svc.Delete(f.Region.IDRegion)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	vide, err := svc.Create(RegionInput{NomRegion: "FATICK"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(vide.IDRegion))
}

func TestDepartementExigeUneRegionExistante(t *testing.T) {
	db := newTestDB(t)
	svc := NewDepartementService(db, testLogger())

	_, err := svc.Create(DepartementInput{NomDepartement: "RUFISQUE", IDRegion: 42})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestDepartementDeleteRefuseSiCommunes(t *testing.T) {
	f := newFixture(t)
	svc := NewDepartementService(f.DB, testLogger())

	err := svc.Delete(f.Departement.IDDepartement)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestCommuneDeleteCascadeCentresEtBureaux(t *testing.T) {
	f := newFixture(t)
	svc := NewCommuneService(f.DB, testLogger())

	require.NoError(t, svc.Delete(f.Medina.IDCommune))

	var centres, bureaux int64
	require.NoError(t, f.DB.Model(&models.CentreVote{}).Where("id_commune = ?", f.Medina.IDCommune).Count(&centres).Error)
	assert.Zero(t, centres)
	require.NoError(t, f.DB.Model(&models.BureauVote{}).
		Where("id_centre IN ?", []uint{f.ManginA.IDCentre, f.ManginB.IDCentre}).Count(&bureaux).Error)
	assert.Zero(t, bureaux)

	// la commune voisine est intacte
	var kennedy int64
	require.NoError(t, f.DB.Model(&models.BureauVote{}).Where("id_centre = ?", f.Kennedy.IDCentre).Count(&kennedy).Error)
	assert.Equal(t, int64(2), kennedy)
}

func TestCentreNomUniqueParCommuneSeulement(t *testing.T) {
	f := newFixture(t)
	svc := NewCentreService(f.DB, testLogger())

	// même nom dans une autre commune: autorisé
	_, err := svc.Create(CentreInput{NomCentre: "ECOLE MANGIN A", IDCommune: f.Plateau.IDCommune})
	require.NoError(t, err)

	_, err = svc.Create(CentreInput{NomCentre: "ecole mangin a", IDCommune: f.Medina.IDCommune})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestCentreDeleteRefuseSiBureaux(t *testing.T) {
	f := newFixture(t)
	svc := NewCentreService(f.DB, testLogger())

	err := svc.Delete(f.ManginA.IDCentre)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestBureauNumeroUniqueParCentre(t *testing.T) {
	f := newFixture(t)
	svc := NewBureauService(f.DB, testLogger())

	_, err := svc.Create(BureauInput{NumeroBureau: 1, Implantation: "annexe", IDCentre: f.ManginA.IDCentre})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	bureau, err := svc.Create(BureauInput{NumeroBureau: 3, Implantation: "annexe", IDCentre: f.ManginA.IDCentre})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(bureau.IDBureau))
}

func TestElectionDatesReunitInscriptionsEtParticipations(t *testing.T) {
	f := newFixture(t)
	svc := NewElectionService(f.DB, testLogger())

	require.NoError(t, f.DB.Create(&models.InscriptionElection{
		IDElection: f.Election.IDElection, IDCandidat: f.Diop.IDCandidat, DateElection: "2024-04-07",
	}).Error)
	require.NoError(t, f.DB.Create(&models.Participation{
		IDElection: f.Election.IDElection, IDBureau: f.Bureaux[f.ManginA.IDCentre][0].IDBureau,
		DateElection: jourScrutin, NombreVotant: 10,
	}).Error)

	dates, err := svc.Dates(f.Election.IDElection)
	require.NoError(t, err)
	assert.Equal(t, []string{jourScrutin, "2024-04-07"}, dates)
}

func TestCandidatCreateNormaliseEtRefuseLesDoublons(t *testing.T) {
	f := newFixture(t)
	svc := NewCandidatService(f.DB, testLogger())

	_, err := svc.Create(CandidatInput{NomCandidat: "amadou diop"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	candidat, err := svc.Create(CandidatInput{NomCandidat: "ousmane ndiaye"})
	require.NoError(t, err)
	assert.Equal(t, "OUSMANE NDIAYE", candidat.NomCandidat)
}
