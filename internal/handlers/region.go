package handlers

import (
	"net/http"

	"github.com/diewo77/elections-api/internal/httpx"
	"github.com/diewo77/elections-api/internal/services"
	"github.com/diewo77/elections-api/internal/validation"
)

type RegionHandler struct {
	service *services.RegionService
}

func NewRegionHandler(service *services.RegionService) *RegionHandler {
	return &RegionHandler{service: service}
}

func (h *RegionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.RegionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	v := make(validation.Violations)
	validation.Required("nom_region", in.NomRegion, v)
	if !v.Empty() {
		httpx.ValidationError(w, "Région invalide", v)
		return
	}
	region, err := h.service.Create(in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, region)
}

func (h *RegionHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	regions, err := h.service.List(page, limit)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, regions)
}

func (h *RegionHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	regions, err := h.service.ListAll()
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, regions)
}

func (h *RegionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	region, err := h.service.Get(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, region)
}

func (h *RegionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	var in services.RegionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	v := make(validation.Violations)
	validation.Required("nom_region", in.NomRegion, v)
	if !v.Empty() {
		httpx.ValidationError(w, "Région invalide", v)
		return
	}
	region, err := h.service.Update(id, in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, region)
}

func (h *RegionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"detail": "Région supprimée"})
}

func (h *RegionHandler) Departements(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	departements, err := h.service.Departements(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, departements)
}
