package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/elections-api/internal/apperr"
)

func TestInscriptionCreateEtConflit(t *testing.T) {
	f := newFixture(t)
	svc := NewInscriptionService(f.DB, testLogger())

	in := InscriptionInput{IDElection: f.Election.IDElection, IDCandidat: f.Diop.IDCandidat, DateElection: jourScrutin}
	_, err := svc.Create(in)
	require.NoError(t, err)

	_, err = svc.Create(in)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))

	// même candidat, autre date: second tour autorisé
	in.DateElection = "2024-04-07"
	_, err = svc.Create(in)
	require.NoError(t, err)

	_, err = svc.Create(InscriptionInput{IDElection: 9999, IDCandidat: f.Diop.IDCandidat, DateElection: jourScrutin})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestInscriptionCreateBulkAuMieux(t *testing.T) {
	f := newFixture(t)
	svc := NewInscriptionService(f.DB, testLogger())

	// FALL déjà inscrite, 9999 inconnu: seuls les autres passent
	_, err := svc.Create(InscriptionInput{IDElection: f.Election.IDElection, IDCandidat: f.Fall.IDCandidat, DateElection: jourScrutin})
	require.NoError(t, err)

	created, err := svc.CreateBulk(InscriptionBulkInput{
		IDElection:   f.Election.IDElection,
		IDsCandidats: []uint{f.Diop.IDCandidat, f.Fall.IDCandidat, 9999},
		DateElection: jourScrutin,
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, f.Diop.IDCandidat, created[0].IDCandidat)
}

func TestInscriptionCreateBulkRienDeCree(t *testing.T) {
	f := newFixture(t)
	svc := NewInscriptionService(f.DB, testLogger())

	_, err := svc.Create(InscriptionInput{IDElection: f.Election.IDElection, IDCandidat: f.Diop.IDCandidat, DateElection: jourScrutin})
	require.NoError(t, err)

	_, err = svc.CreateBulk(InscriptionBulkInput{
		IDElection:   f.Election.IDElection,
		IDsCandidats: []uint{f.Diop.IDCandidat, 9999},
		DateElection: jourScrutin,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Equal(t, "Aucune inscription n'a pu être créée", apperr.DetailOf(err))
}

func TestInscriptionDeleteParNomCandidat(t *testing.T) {
	f := newFixture(t)
	svc := NewInscriptionService(f.DB, testLogger())

	_, err := svc.Create(InscriptionInput{IDElection: f.Election.IDElection, IDCandidat: f.Diop.IDCandidat, DateElection: jourScrutin})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(f.Election.IDElection, "amadou diop", jourScrutin))

	err = svc.Delete(f.Election.IDElection, "AMADOU DIOP", jourScrutin)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestInscriptionListes(t *testing.T) {
	f := newFixture(t)
	svc := NewInscriptionService(f.DB, testLogger())

	for _, id := range []uint{f.Diop.IDCandidat, f.Fall.IDCandidat} {
		_, err := svc.Create(InscriptionInput{IDElection: f.Election.IDElection, IDCandidat: id, DateElection: jourScrutin})
		require.NoError(t, err)
	}

	page, err := svc.List(1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	details, err := svc.ListWithDetails()
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "PRESIDENTIELLE", details[0].TypeElection)
	assert.Equal(t, "AISSATOU FALL", details[0].NomCandidat)

	parCandidat, err := svc.ListByCandidat("AMADOU DIOP")
	require.NoError(t, err)
	assert.Len(t, parCandidat, 1)

	parElection, err := svc.ListByElection(f.Election.IDElection, jourScrutin)
	require.NoError(t, err)
	assert.Len(t, parElection, 2)

	autreJour, err := svc.ListByElection(f.Election.IDElection, "2025-01-05")
	require.NoError(t, err)
	assert.Empty(t, autreJour)
}
