package handlers

import (
	"net/http"

	"github.com/diewo77/elections-api/internal/httpx"
	"github.com/diewo77/elections-api/internal/services"
	"github.com/diewo77/elections-api/internal/validation"
)

type CandidatHandler struct {
	service *services.CandidatService
}

func NewCandidatHandler(service *services.CandidatService) *CandidatHandler {
	return &CandidatHandler{service: service}
}

func (h *CandidatHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CandidatInput
	if !decodeJSON(w, r, &in) {
		return
	}
	v := make(validation.Violations)
	validation.Required("nom_candidat", in.NomCandidat, v)
	if !v.Empty() {
		httpx.ValidationError(w, "Candidat invalide", v)
		return
	}
	candidat, err := h.service.Create(in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, candidat)
}

func (h *CandidatHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	candidats, err := h.service.List(page, limit)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, candidats)
}

func (h *CandidatHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	candidats, err := h.service.ListAll()
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, candidats)
}

func (h *CandidatHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	candidat, err := h.service.Get(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, candidat)
}

func (h *CandidatHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	var in services.CandidatInput
	if !decodeJSON(w, r, &in) {
		return
	}
	v := make(validation.Violations)
	validation.Required("nom_candidat", in.NomCandidat, v)
	if !v.Empty() {
		httpx.ValidationError(w, "Candidat invalide", v)
		return
	}
	candidat, err := h.service.Update(id, in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, candidat)
}

func (h *CandidatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"detail": "Candidat supprimé"})
}
