package handlers

import (
	"net/http"

	"github.com/diewo77/elections-api/internal/httpx"
	"github.com/diewo77/elections-api/internal/services"
	"github.com/diewo77/elections-api/internal/validation"
)

type InscriptionHandler struct {
	service *services.InscriptionService
}

func NewInscriptionHandler(service *services.InscriptionService) *InscriptionHandler {
	return &InscriptionHandler{service: service}
}

func (h *InscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.InscriptionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	v := make(validation.Violations)
	if in.IDElection == 0 {
		v["id_election"] = "required"
	}
	if in.IDCandidat == 0 {
		v["id_candidat"] = "required"
	}
	validation.Date("date_election", in.DateElection, v)
	if !v.Empty() {
		httpx.ValidationError(w, "Inscription invalide", v)
		return
	}
	inscription, err := h.service.Create(in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inscription)
}

func (h *InscriptionHandler) CreateBulk(w http.ResponseWriter, r *http.Request) {
	var in services.InscriptionBulkInput
	if !decodeJSON(w, r, &in) {
		return
	}
	v := make(validation.Violations)
	if in.IDElection == 0 {
		v["id_election"] = "required"
	}
	if len(in.IDsCandidats) == 0 {
		v["ids_candidats"] = "required"
	}
	validation.Date("date_election", in.DateElection, v)
	if !v.Empty() {
		httpx.ValidationError(w, "Inscriptions invalides", v)
		return
	}
	inscriptions, err := h.service.CreateBulk(in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inscriptions)
}

func (h *InscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	inscriptions, err := h.service.List(page, limit)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inscriptions)
}

func (h *InscriptionHandler) ListWithDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.ListWithDetails()
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, details)
}

func (h *InscriptionHandler) ListByElection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id_election")
	if !ok {
		return
	}
	dateElection := r.PathValue("date_election")
	v := make(validation.Violations)
	validation.Date("date_election", dateElection, v)
	if !v.Empty() {
		httpx.ValidationError(w, "Paramètres d'inscription invalides", v)
		return
	}
	inscriptions, err := h.service.ListByElection(id, dateElection)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inscriptions)
}

func (h *InscriptionHandler) ListByCandidat(w http.ResponseWriter, r *http.Request) {
	inscriptions, err := h.service.ListByCandidat(r.PathValue("nom_candidat"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inscriptions)
}

// Delete retire une candidature, candidat désigné par son nom.
func (h *InscriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	idElection, ok := pathUint(w, r, "id_election")
	if !ok {
		return
	}
	nomCandidat := r.PathValue("nom_candidat")
	dateElection := r.PathValue("date_election")
	v := make(validation.Violations)
	validation.Required("nom_candidat", nomCandidat, v)
	validation.Date("date_election", dateElection, v)
	if !v.Empty() {
		httpx.ValidationError(w, "Clé d'inscription invalide", v)
		return
	}
	if err := h.service.Delete(idElection, nomCandidat, dateElection); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"detail": "Inscription supprimée"})
}
