package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/elections-api/internal/models"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Region{}, &models.Departement{}, &models.Commune{},
		&models.CentreVote{}, &models.BureauVote{},
		&models.Election{}, &models.Candidat{}, &models.InscriptionElection{},
		&models.Participation{}, &models.ResultatVote{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewApp(db, zap.NewNop())
}

func do(t *testing.T, app *App, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", resp.Body.String(), err)
	}
}

// seedViaAPI construit la hiérarchie minimale par les endpoints eux-mêmes.
func seedViaAPI(t *testing.T, app *App) {
	t.Helper()
	steps := []struct{ path, body string }{
		{"/regions/", `{"nom_region":"DAKAR"}`},
		{"/departements/", `{"nom_departement":"DAKAR","id_region":1}`},
		{"/communes/", `{"nom_commune":"MEDINA","id_departement":1}`},
		{"/centres-votes/", `{"nom_centre":"ECOLE MANGIN","id_commune":1}`},
		{"/bureaux-votes/", `{"numero_bureau":1,"implantation":"salle 1","id_centre":1}`},
		{"/elections/", `{"type_election":"PRESIDENTIELLE"}`},
		{"/candidats/", `{"nom_candidat":"AMADOU DIOP"}`},
	}
	for _, step := range steps {
		resp := do(t, app, http.MethodPost, step.path, step.body)
		if resp.Code != http.StatusCreated {
			t.Fatalf("seed %s: expected 201 got %d body=%s", step.path, resp.Code, resp.Body.String())
		}
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	resp := do(t, app, http.MethodGet, "/health", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestHierarchieCRUDFlow(t *testing.T) {
	app := newTestApp(t)
	seedViaAPI(t, app)

	// lecture
	resp := do(t, app, http.MethodGet, "/regions/1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var region models.Region
	decodeBody(t, resp, &region)
	if region.NomRegion != "DAKAR" {
		t.Fatalf("expected DAKAR got %q", region.NomRegion)
	}

	// doublon de nom: 400 avec enveloppe detail
	resp = do(t, app, http.MethodPost, "/regions/", `{"nom_region":"dakar"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	var envelope map[string]any
	decodeBody(t, resp, &envelope)
	if envelope["detail"] == "" {
		t.Fatalf("expected detail in %s", resp.Body.String())
	}

	// suppression bloquée par les enfants
	resp = do(t, app, http.MethodDelete, "/regions/1", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", resp.Code, resp.Body.String())
	}

	// inconnu: 404
	resp = do(t, app, http.MethodGet, "/communes/99", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}

	// navigation
	resp = do(t, app, http.MethodGet, "/communes/1/centres", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	// validation: champs manquants listés dans errors
	resp = do(t, app, http.MethodPost, "/departements/", `{"nom_departement":""}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	decodeBody(t, resp, &envelope)
	if envelope["errors"] == nil {
		t.Fatalf("expected errors in %s", resp.Body.String())
	}
}

func TestNavigationParEnfant(t *testing.T) {
	app := newTestApp(t)
	seedViaAPI(t, app)

	resp := do(t, app, http.MethodGet, "/centres-votes/commune/1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	var centres []models.CentreVote
	decodeBody(t, resp, &centres)
	if len(centres) != 1 || centres[0].NomCentre != "ECOLE MANGIN" {
		t.Fatalf("expected ECOLE MANGIN got %+v", centres)
	}

	resp = do(t, app, http.MethodGet, "/bureaux-votes/centre/1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	var bureaux []models.BureauVote
	decodeBody(t, resp, &bureaux)
	if len(bureaux) != 1 || bureaux[0].NumeroBureau != 1 {
		t.Fatalf("expected bureau 1 got %+v", bureaux)
	}
}

func TestParticipationFlowHTTP(t *testing.T) {
	app := newTestApp(t)
	seedViaAPI(t, app)

	body := `{"type_election":"presidentielle","commune":"medina","centre":"MANGIN","bureau":1,` +
		`"nombre_electeur":100,"nombre_votant":60,"nombre_bulletin_null":2,"nombre_suffrage":58,` +
		`"date_election":"2024-03-24"}`

	resp := do(t, app, http.MethodPost, "/elections/participations/", body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", resp.Code, resp.Body.String())
	}

	// aucune Election fantôme ne doit naître d'un POST sur le registre
	resp = do(t, app, http.MethodGet, "/elections/2", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", resp.Code, resp.Body.String())
	}

	// rejeu: 409
	resp = do(t, app, http.MethodPost, "/elections/participations/", body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", resp.Code, resp.Body.String())
	}

	// statistiques nationales
	resp = do(t, app, http.MethodGet, "/elections/participations/statistiques/national/1/2024-03-24", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	var stats map[string]any
	decodeBody(t, resp, &stats)
	if stats["taux_participation"] != 60.0 {
		t.Fatalf("expected taux 60 got %v", stats["taux_participation"])
	}

	// intervalle non supporté: 400
	resp = do(t, app, http.MethodGet,
		"/elections/participations/statistiques/evolution-votants-temporelle/1/2024-03-24?interval_minutes=45", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", resp.Code, resp.Body.String())
	}

	// intervalle absent: défaut 15 minutes
	resp = do(t, app, http.MethodGet,
		"/elections/participations/statistiques/evolution-votants-temporelle/1/2024-03-24", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	var evolution map[string]any
	decodeBody(t, resp, &evolution)
	if evolution["interval_minutes"] != 15.0 {
		t.Fatalf("expected interval 15 got %v", evolution["interval_minutes"])
	}
	if evolution["total_votants"] != 60.0 {
		t.Fatalf("expected total 60 got %v", evolution["total_votants"])
	}

	// mise à jour des comptages par clé composite
	resp = do(t, app, http.MethodPut, "/elections/participations/1/1/2024-03-24",
		`{"nombre_electeur":100,"nombre_votant":80,"nombre_suffrage":78}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	resp = do(t, app, http.MethodDelete, "/elections/participations/1/1/2024-03-24", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
}

func TestResultatFlowHTTP(t *testing.T) {
	app := newTestApp(t)
	seedViaAPI(t, app)
	resp := do(t, app, http.MethodPost, "/candidats/", `{"nom_candidat":"AISSATOU FALL"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("seed candidat: got %d", resp.Code)
	}

	bulk := `{"type_election":"PRESIDENTIELLE","commune":"MEDINA","centre":"MANGIN","bureau":1,` +
		`"date_election":"2024-03-24","resultats":[{"nom_candidat":"AMADOU DIOP","voix":40},{"nom_candidat":"AISSATOU FALL","voix":20}]}`
	resp = do(t, app, http.MethodPost, "/elections/resultats-votes/bulk", bulk)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", resp.Code, resp.Body.String())
	}

	// rejeu: 409, aucun doublon écrit
	resp = do(t, app, http.MethodPost, "/elections/resultats-votes/bulk", bulk)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", resp.Code, resp.Body.String())
	}

	resp = do(t, app, http.MethodGet, "/elections/resultats-votes/statistiques/national/1/2024-03-24", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	var stats map[string]any
	decodeBody(t, resp, &stats)
	if stats["total_voix_global"] != 60.0 {
		t.Fatalf("expected 60 voix got %v", stats["total_voix_global"])
	}

	resp = do(t, app, http.MethodGet,
		"/elections/resultats-votes/votes-candidat-par-region/1/1/2024-03-24", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	var parRegion map[string]int
	decodeBody(t, resp, &parRegion)
	if parRegion["DAKAR"] != 40 {
		t.Fatalf("expected 40 voix à DAKAR got %v", parRegion)
	}

	resp = do(t, app, http.MethodDelete,
		"/elections/resultats-votes/1/ECOLE%20MANGIN/1/AMADOU%20DIOP/2024-03-24", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
}

func TestInscriptionFlowHTTP(t *testing.T) {
	app := newTestApp(t)
	seedViaAPI(t, app)

	resp := do(t, app, http.MethodPost, "/elections/inscriptions-elections/",
		`{"id_election":1,"id_candidat":1,"date_election":"2024-03-24"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", resp.Code, resp.Body.String())
	}

	// en masse, tout déjà inscrit ou inconnu: 400
	resp = do(t, app, http.MethodPost, "/elections/inscriptions-elections/bulk",
		`{"id_election":1,"ids_candidats":[1,42],"date_election":"2024-03-24"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", resp.Code, resp.Body.String())
	}

	resp = do(t, app, http.MethodGet, "/elections/inscriptions-elections/avec-details", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	resp = do(t, app, http.MethodGet, "/elections/inscriptions-elections/election/1/2024-03-24", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	var inscriptions []models.InscriptionElection
	decodeBody(t, resp, &inscriptions)
	if len(inscriptions) != 1 {
		t.Fatalf("expected 1 inscription got %d", len(inscriptions))
	}

	resp = do(t, app, http.MethodGet, "/elections/inscriptions-elections/candidat/AMADOU%20DIOP", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}

	resp = do(t, app, http.MethodDelete, "/elections/inscriptions-elections/1/AMADOU%20DIOP/2024-03-24", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}

	resp = do(t, app, http.MethodGet, "/elections/1/dates", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
