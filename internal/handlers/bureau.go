package handlers

import (
	"net/http"

	"github.com/diewo77/elections-api/internal/httpx"
	"github.com/diewo77/elections-api/internal/services"
	"github.com/diewo77/elections-api/internal/validation"
)

type BureauHandler struct {
	service *services.BureauService
}

func NewBureauHandler(service *services.BureauService) *BureauHandler {
	return &BureauHandler{service: service}
}

func (h *BureauHandler) validate(in services.BureauInput) validation.Violations {
	v := make(validation.Violations)
	validation.PositiveInt("numero_bureau", in.NumeroBureau, v)
	validation.Required("implantation", in.Implantation, v)
	if in.IDCentre == 0 {
		v["id_centre"] = "required"
	}
	return v
}

func (h *BureauHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.BureauInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if v := h.validate(in); !v.Empty() {
		httpx.ValidationError(w, "Bureau de vote invalide", v)
		return
	}
	bureau, err := h.service.Create(in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, bureau)
}

func (h *BureauHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	bureaux, err := h.service.List(page, limit)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bureaux)
}

func (h *BureauHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	bureau, err := h.service.Get(id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bureau)
}

func (h *BureauHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	var in services.BureauInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if v := h.validate(in); !v.Empty() {
		httpx.ValidationError(w, "Bureau de vote invalide", v)
		return
	}
	bureau, err := h.service.Update(id, in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bureau)
}

func (h *BureauHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"detail": "Bureau de vote supprimé"})
}
