package handlers

import (
	"net/http"

	"github.com/diewo77/elections-api/internal/httpx"
	"github.com/diewo77/elections-api/internal/services"
	"github.com/diewo77/elections-api/internal/validation"
)

type DepartementHandler struct {
	service *services.DepartementService
}

func NewDepartementHandler(service *services.DepartementService) *DepartementHandler {
	return &DepartementHandler{service: service}
}

func (h *DepartementHandler) validate(in services.DepartementInput) validation.Violations {
	v := make(validation.Violations)
	validation.Required("nom_departement", in.NomDepartement, v)
	if in.IDRegion == 0 {
		v["id_region"] = "required"
	}
	return v
}

func (h *DepartementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.DepartementInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if v := h.validate(in); !v.Empty() {
		httpx.ValidationError(w, "Département invalide", v)
		return
	}
	departement, err := h.service.Create(in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, departement)
}

func (h *DepartementHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	departements, err := h.service.List(page, limit)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, departements)
}

func (h *DepartementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	departement, err := h.service.Get(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, departement)
}

func (h *DepartementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	var in services.DepartementInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if v := h.validate(in); !v.Empty() {
		httpx.ValidationError(w, "Département invalide", v)
		return
	}
	departement, err := h.service.Update(id, in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, departement)
}

func (h *DepartementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"detail": "Département supprimé"})
}

func (h *DepartementHandler) Communes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	communes, err := h.service.Communes(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, communes)
}
