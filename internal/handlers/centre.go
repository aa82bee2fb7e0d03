package handlers

import (
	"net/http"

	"github.com/diewo77/elections-api/internal/httpx"
	"github.com/diewo77/elections-api/internal/services"
	"github.com/diewo77/elections-api/internal/validation"
)

type CentreHandler struct {
	service *services.CentreService
}

func NewCentreHandler(service *services.CentreService) *CentreHandler {
	return &CentreHandler{service: service}
}

func (h *CentreHandler) validate(in services.CentreInput) validation.Violations {
	v := make(validation.Violations)
	validation.Required("nom_centre", in.NomCentre, v)
	if in.IDCommune == 0 {
		v["id_commune"] = "required"
	}
	return v
}

func (h *CentreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CentreInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if v := h.validate(in); !v.Empty() {
		httpx.ValidationError(w, "Centre de vote invalide", v)
		return
	}
	centre, err := h.service.Create(in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, centre)
}

func (h *CentreHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	centres, err := h.service.List(page, limit)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, centres)
}

func (h *CentreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	centre, err := h.service.Get(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, centre)
}

func (h *CentreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	var in services.CentreInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if v := h.validate(in); !v.Empty() {
		httpx.ValidationError(w, "Centre de vote invalide", v)
		return
	}
	centre, err := h.service.Update(id, in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, centre)
}

func (h *CentreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"detail": "Centre de vote supprimé"})
}

func (h *CentreHandler) Bureaux(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	bureaux, err := h.service.Bureaux(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bureaux)
}
