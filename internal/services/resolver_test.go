package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/elections-api/internal/apperr"
)

func TestResolveBureauExactChain(t *testing.T) {
	f := newFixture(t)

	res, err := ResolveBureau(f.DB, "presidentielle", "medina", "MANGIN A", 2)
	require.NoError(t, err)
	assert.Equal(t, f.Election.IDElection, res.Election.IDElection)
	assert.Equal(t, f.ManginA.IDCentre, res.Centre.IDCentre)
	assert.Equal(t, 2, res.Bureau.NumeroBureau)
	assert.Equal(t, 1, res.MatchingCentres)
}

func TestResolveBureauFragmentAmbigu(t *testing.T) {
	f := newFixture(t)

	// "mangin" correspond aux deux centres; le premier par id gagne
	res, err := ResolveBureau(f.DB, "PRESIDENTIELLE", "MEDINA", "mangin", 1)
	require.NoError(t, err)
	assert.Equal(t, f.ManginA.IDCentre, res.Centre.IDCentre)
	assert.Equal(t, 2, res.MatchingCentres)
}

func TestResolveBureauIntrouvable(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name                          string
		typeElection, commune, centre string
		bureau                        int
	}{
		{"election inconnue", "SENATORIALE", "MEDINA", "MANGIN", 1},
		{"commune inconnue", "PRESIDENTIELLE", "YOFF", "MANGIN", 1},
		{"centre inconnu", "PRESIDENTIELLE", "MEDINA", "UNIVERSITE", 1},
		{"numero inconnu", "PRESIDENTIELLE", "MEDINA", "MANGIN A", 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveBureau(f.DB, tc.typeElection, tc.commune, tc.centre, tc.bureau)
			require.Error(t, err)
			assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
		})
	}
}

func TestResolveBureauFragmentPasDansUneAutreCommune(t *testing.T) {
	f := newFixture(t)

	// KENNEDY n'existe qu'à PLATEAU, la recherche reste bornée à la commune
	_, err := ResolveBureau(f.DB, "PRESIDENTIELLE", "MEDINA", "KENNEDY", 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestResolveCandidat(t *testing.T) {
	f := newFixture(t)

	candidat, err := ResolveCandidat(f.DB, "amadou diop")
	require.NoError(t, err)
	assert.Equal(t, f.Diop.IDCandidat, candidat.IDCandidat)

	_, err = ResolveCandidat(f.DB, "INCONNU")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}
