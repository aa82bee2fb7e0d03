package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/elections-api/internal/httpx"
	"github.com/diewo77/elections-api/internal/services"
	"github.com/diewo77/elections-api/internal/validation"
)

// ResultatHandler expose le registre des résultats et les statistiques de
// résultats.
type ResultatHandler struct {
	service *services.ResultatService
}

func NewResultatHandler(service *services.ResultatService) *ResultatHandler {
	return &ResultatHandler{service: service}
}

func (h *ResultatHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ResultatInput
	if !decodeJSON(w, r, &in) {
		return
	}
	v := make(validation.Violations)
	validation.Required("type_election", in.TypeElection, v)
	validation.Required("commune", in.Commune, v)
	validation.Required("centre", in.Centre, v)
	validation.PositiveInt("bureau", in.Bureau, v)
	validation.Required("nom_candidat", in.NomCandidat, v)
	validation.NonNegativeInt("voix", in.Voix, v)
	validation.Date("date_election", in.DateElection, v)
	if !v.Empty() {
		httpx.ValidationError(w, "Résultat invalide", v)
		return
	}
	resultat, err := h.service.Create(in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, resultat)
}

func (h *ResultatHandler) CreateBulk(w http.ResponseWriter, r *http.Request) {
	var in services.ResultatBulkInput
	if !decodeJSON(w, r, &in) {
		return
	}
	v := make(validation.Violations)
	validation.Required("type_election", in.TypeElection, v)
	validation.Required("commune", in.Commune, v)
	validation.Required("centre", in.Centre, v)
	validation.PositiveInt("bureau", in.Bureau, v)
	validation.Date("date_election", in.DateElection, v)
	if len(in.Resultats) == 0 {
		v["resultats"] = "required"
	}
	for _, vc := range in.Resultats {
		if vc.NomCandidat == "" {
			v["resultats"] = "nom_candidat_required"
		}
		if vc.Voix < 0 {
			v["resultats"] = "voix_must_be_non_negative"
		}
	}
	if !v.Empty() {
		httpx.ValidationError(w, "Résultats invalides", v)
		return
	}
	resultats, err := h.service.CreateBulk(in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, resultats)
}

func (h *ResultatHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	resultats, err := h.service.List(page, limit)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resultats)
}

func (h *ResultatHandler) ListByBureau(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	resultats, err := h.service.ListByBureau(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resultats)
}

// Delete identifie le résultat par ses clés humaines portées par le chemin.
func (h *ResultatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	idElection, ok := pathUint(w, r, "id_election")
	if !ok {
		return
	}
	nomCentre := r.PathValue("nom_centre")
	nomCandidat := r.PathValue("nom_candidat")
	dateElection := r.PathValue("date_election")

	v := make(validation.Violations)
	validation.Date("date_election", dateElection, v)
	numeroBureau, err := strconv.Atoi(r.PathValue("numero_bureau"))
	if err != nil {
		v["numero_bureau"] = "must_be_integer"
	}
	if !v.Empty() {
		httpx.ValidationError(w, "Clé de résultat invalide", v)
		return
	}
	if err := h.service.Delete(idElection, nomCentre, numeroBureau, nomCandidat, dateElection); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"detail": "Résultat supprimé"})
}

func (h *ResultatHandler) StatistiquesNationales(w http.ResponseWriter, r *http.Request) {
	idElection, dateElection, ok := electionScope(w, r)
	if !ok {
		return
	}
	stats, err := h.service.StatistiquesNationales(idElection, dateElection)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *ResultatHandler) statistiquesScope(
	w http.ResponseWriter, r *http.Request,
	fn func(idScope, idElection uint, dateElection string) (*services.StatistiquesResultat, error),
) {
	idScope, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	idElection, dateElection, ok := electionScope(w, r)
	if !ok {
		return
	}
	stats, err := fn(idScope, idElection, dateElection)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *ResultatHandler) StatistiquesRegion(w http.ResponseWriter, r *http.Request) {
	h.statistiquesScope(w, r, h.service.StatistiquesRegion)
}

func (h *ResultatHandler) StatistiquesDepartement(w http.ResponseWriter, r *http.Request) {
	h.statistiquesScope(w, r, h.service.StatistiquesDepartement)
}

func (h *ResultatHandler) StatistiquesCommune(w http.ResponseWriter, r *http.Request) {
	h.statistiquesScope(w, r, h.service.StatistiquesCommune)
}

func (h *ResultatHandler) StatistiquesBureau(w http.ResponseWriter, r *http.Request) {
	h.statistiquesScope(w, r, h.service.StatistiquesBureau)
}

// StatistiquesCentre désigne le centre par son nom dans le chemin.
func (h *ResultatHandler) StatistiquesCentre(w http.ResponseWriter, r *http.Request) {
	nomCentre := r.PathValue("nom_centre")
	idElection, dateElection, ok := electionScope(w, r)
	if !ok {
		return
	}
	stats, err := h.service.StatistiquesCentre(nomCentre, idElection, dateElection)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *ResultatHandler) VoixCandidatParRegion(w http.ResponseWriter, r *http.Request) {
	idCandidat, ok := pathUint(w, r, "id_candidat")
	if !ok {
		return
	}
	idElection, dateElection, ok := electionScope(w, r)
	if !ok {
		return
	}
	voix, err := h.service.VoixCandidatParRegion(idCandidat, idElection, dateElection)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, voix)
}

func (h *ResultatHandler) voixCandidatScope(
	w http.ResponseWriter, r *http.Request,
	fn func(idCandidat, idScope, idElection uint, dateElection string) (map[string]int, error),
) {
	idCandidat, ok := pathUint(w, r, "id_candidat")
	if !ok {
		return
	}
	idScope, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	idElection, dateElection, ok := electionScope(w, r)
	if !ok {
		return
	}
	voix, err := fn(idCandidat, idScope, idElection, dateElection)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, voix)
}

func (h *ResultatHandler) VoixCandidatParDepartement(w http.ResponseWriter, r *http.Request) {
	h.voixCandidatScope(w, r, h.service.VoixCandidatParDepartement)
}

func (h *ResultatHandler) VoixCandidatParCommune(w http.ResponseWriter, r *http.Request) {
	h.voixCandidatScope(w, r, h.service.VoixCandidatParCommune)
}

func (h *ResultatHandler) VoixCandidatParCentre(w http.ResponseWriter, r *http.Request) {
	h.voixCandidatScope(w, r, h.service.VoixCandidatParCentre)
}

// VoixCandidatParBureau désigne le centre par son nom dans le chemin.
func (h *ResultatHandler) VoixCandidatParBureau(w http.ResponseWriter, r *http.Request) {
	idCandidat, ok := pathUint(w, r, "id_candidat")
	if !ok {
		return
	}
	nomCentre := r.PathValue("nom_centre")
	idElection, dateElection, ok := electionScope(w, r)
	if !ok {
		return
	}
	voix, err := h.service.VoixCandidatParBureau(idCandidat, nomCentre, idElection, dateElection)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, voix)
}
