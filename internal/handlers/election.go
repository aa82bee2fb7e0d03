package handlers

import (
	"net/http"

	"github.com/diewo77/elections-api/internal/httpx"
	"github.com/diewo77/elections-api/internal/services"
	"github.com/diewo77/elections-api/internal/validation"
)

type ElectionHandler struct {
	service *services.ElectionService
}

func NewElectionHandler(service *services.ElectionService) *ElectionHandler {
	return &ElectionHandler{service: service}
}

func (h *ElectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ElectionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	v := make(validation.Violations)
	validation.Required("type_election", in.TypeElection, v)
	if !v.Empty() {
		httpx.ValidationError(w, "Élection invalide", v)
		return
	}
	election, err := h.service.Create(in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, election)
}

func (h *ElectionHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	elections, err := h.service.List(page, limit)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, elections)
}

func (h *ElectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	election, err := h.service.Get(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, election)
}

func (h *ElectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	var in services.ElectionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	v := make(validation.Violations)
	validation.Required("type_election", in.TypeElection, v)
	if !v.Empty() {
		httpx.ValidationError(w, "Élection invalide", v)
		return
	}
	election, err := h.service.Update(id, in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, election)
}

func (h *ElectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"detail": "Élection supprimée"})
}

// AllDates liste les dates de scrutin connues, toutes élections confondues.
func (h *ElectionHandler) AllDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.AllDates()
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"dates": dates})
}

// Dates liste les dates de scrutin connues de l'élection.
func (h *ElectionHandler) Dates(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	dates, err := h.service.Dates(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id_election": id, "dates": dates})
}
