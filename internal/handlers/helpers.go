package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/diewo77/elections-api/internal/httpx"
	"github.com/diewo77/elections-api/internal/validation"
)

// decodeJSON lit le corps de la requête; un corps illisible vaut 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.Detail(w, http.StatusBadRequest, "Corps de requête JSON invalide")
		return false
	}
	return true
}

// pathUint extrait un identifiant numérique du chemin.
func pathUint(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httpx.Detail(w, http.StatusBadRequest, "Identifiant '"+raw+"' invalide")
		return 0, false
	}
	return uint(id), true
}

// pagination lit page et limit avec les défauts des listes.
func pagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// electionScope lit les segments de chemin communs aux statistiques:
// id_election et date_election.
func electionScope(w http.ResponseWriter, r *http.Request) (uint, string, bool) {
	rawID := r.PathValue("id_election")
	dateElection := r.PathValue("date_election")

	v := make(validation.Violations)
	validation.Date("date_election", dateElection, v)
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		v["id_election"] = "must_be_integer"
	}
	if !v.Empty() {
		httpx.ValidationError(w, "Paramètres de statistiques invalides", v)
		return 0, "", false
	}
	return uint(id), dateElection, true
}

// intervalParam lit interval_minutes, défaut 15. La valeur est validée plus
// loin par le service.
func intervalParam(r *http.Request) int {
	raw := r.URL.Query().Get("interval_minutes")
	if raw == "" {
		return 15
	}
	interval, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return interval
}
