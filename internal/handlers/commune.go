package handlers

import (
	"net/http"

	"github.com/diewo77/elections-api/internal/httpx"
	"github.com/diewo77/elections-api/internal/services"
	"github.com/diewo77/elections-api/internal/validation"
)

type CommuneHandler struct {
	service *services.CommuneService
}

func NewCommuneHandler(service *services.CommuneService) *CommuneHandler {
	return &CommuneHandler{service: service}
}

func (h *CommuneHandler) validate(in services.CommuneInput) validation.Violations {
	v := make(validation.Violations)
	validation.Required("nom_commune", in.NomCommune, v)
	if in.IDDepartement == 0 {
		v["id_departement"] = "required"
	}
	return v
}

func (h *CommuneHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CommuneInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if v := h.validate(in); !v.Empty() {
		httpx.ValidationError(w, "Commune invalide", v)
		return
	}
	commune, err := h.service.Create(in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, commune)
}

func (h *CommuneHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	communes, err := h.service.List(page, limit)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, communes)
}

func (h *CommuneHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	commune, err := h.service.Get(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, commune)
}

func (h *CommuneHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	var in services.CommuneInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if v := h.validate(in); !v.Empty() {
		httpx.ValidationError(w, "Commune invalide", v)
		return
	}
	commune, err := h.service.Update(id, in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, commune)
}

func (h *CommuneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"detail": "Commune supprimée avec ses centres et bureaux"})
}

func (h *CommuneHandler) Centres(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	centres, err := h.service.Centres(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, centres)
}
