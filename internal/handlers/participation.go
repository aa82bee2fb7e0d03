package handlers

import (
	"net/http"

	"github.com/diewo77/elections-api/internal/httpx"
	"github.com/diewo77/elections-api/internal/services"
	"github.com/diewo77/elections-api/internal/validation"
)

// ParticipationHandler expose le registre de participation et toutes les
// statistiques de participation.
type ParticipationHandler struct {
	service *services.ParticipationService
}

func NewParticipationHandler(service *services.ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{service: service}
}

func (h *ParticipationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ParticipationInput
	if !decodeJSON(w, r, &in) {
		return
	}
	v := make(validation.Violations)
	validation.Required("type_election", in.TypeElection, v)
	validation.Required("commune", in.Commune, v)
	validation.Required("centre", in.Centre, v)
	validation.PositiveInt("bureau", in.Bureau, v)
	validation.Date("date_election", in.DateElection, v)
	validation.NonNegativeInt("nombre_electeur", in.NombreElecteur, v)
	validation.NonNegativeInt("nombre_votant", in.NombreVotant, v)
	validation.NonNegativeInt("nombre_votant_hors_bureau", in.NombreVotantHorsBureau, v)
	validation.NonNegativeInt("nombre_bulletin_null", in.NombreBulletinNull, v)
	validation.NonNegativeInt("nombre_suffrage", in.NombreSuffrage, v)
	if !v.Empty() {
		httpx.ValidationError(w, "Participation invalide", v)
		return
	}
	participation, err := h.service.Create(in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, participation)
}

func (h *ParticipationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	participations, err := h.service.List(page, limit)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, participations)
}

func (h *ParticipationHandler) participationKey(w http.ResponseWriter, r *http.Request) (uint, uint, string, bool) {
	idElection, ok := pathUint(w, r, "id_election")
	if !ok {
		return 0, 0, "", false
	}
	idBureau, ok := pathUint(w, r, "id_bureau")
	if !ok {
		return 0, 0, "", false
	}
	dateElection := r.PathValue("date_election")
	v := make(validation.Violations)
	validation.Date("date_election", dateElection, v)
	if !v.Empty() {
		httpx.ValidationError(w, "Clé de participation invalide", v)
		return 0, 0, "", false
	}
	return idElection, idBureau, dateElection, true
}

func (h *ParticipationHandler) Update(w http.ResponseWriter, r *http.Request) {
	idElection, idBureau, dateElection, ok := h.participationKey(w, r)
	if !ok {
		return
	}
	var counts services.ParticipationCounts
	if !decodeJSON(w, r, &counts) {
		return
	}
	v := make(validation.Violations)
	validation.NonNegativeInt("nombre_electeur", counts.NombreElecteur, v)
	validation.NonNegativeInt("nombre_votant", counts.NombreVotant, v)
	validation.NonNegativeInt("nombre_votant_hors_bureau", counts.NombreVotantHorsBureau, v)
	validation.NonNegativeInt("nombre_bulletin_null", counts.NombreBulletinNull, v)
	validation.NonNegativeInt("nombre_suffrage", counts.NombreSuffrage, v)
	if !v.Empty() {
		httpx.ValidationError(w, "Comptages invalides", v)
		return
	}
	participation, err := h.service.Update(idElection, idBureau, dateElection, counts)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, participation)
}

func (h *ParticipationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	idElection, idBureau, dateElection, ok := h.participationKey(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(idElection, idBureau, dateElection); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"detail": "Participation supprimée"})
}

func (h *ParticipationHandler) StatistiquesNationales(w http.ResponseWriter, r *http.Request) {
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

// statistiquesScope factorise les variantes par niveau géographique: l'id du
// périmètre vient du chemin, l'élection et la date de la query string.
func (h *ParticipationHandler) statistiquesScope(
	w http.ResponseWriter, r *http.Request,
	fn func(idScope, idElection uint, dateElection string) (*services.StatistiquesParticipation, error),
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

func (h *ParticipationHandler) StatistiquesBureau(w http.ResponseWriter, r *http.Request) {
	h.statistiquesScope(w, r, h.service.StatistiquesBureau)
}

func (h *ParticipationHandler) StatistiquesCentre(w http.ResponseWriter, r *http.Request) {
	h.statistiquesScope(w, r, h.service.StatistiquesCentre)
}

func (h *ParticipationHandler) StatistiquesCommune(w http.ResponseWriter, r *http.Request) {
	h.statistiquesScope(w, r, h.service.StatistiquesCommune)
}

func (h *ParticipationHandler) StatistiquesDepartement(w http.ResponseWriter, r *http.Request) {
	h.statistiquesScope(w, r, h.service.StatistiquesDepartement)
}

func (h *ParticipationHandler) StatistiquesRegion(w http.ResponseWriter, r *http.Request) {
	h.statistiquesScope(w, r, h.service.StatistiquesRegion)
}

func (h *ParticipationHandler) RepartitionRegions(w http.ResponseWriter, r *http.Request) {
	idElection, dateElection, ok := electionScope(w, r)
	if !ok {
		return
	}
	repartition, err := h.service.RepartitionRegions(idElection, dateElection)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, repartition)
}

func (h *ParticipationHandler) repartitionScope(
	w http.ResponseWriter, r *http.Request,
	fn func(idScope, idElection uint, dateElection string) (map[string]services.StatistiquesParticipation, error),
) {
	idScope, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	idElection, dateElection, ok := electionScope(w, r)
	if !ok {
		return
	}
	repartition, err := fn(idScope, idElection, dateElection)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, repartition)
}

func (h *ParticipationHandler) RepartitionDepartements(w http.ResponseWriter, r *http.Request) {
	h.repartitionScope(w, r, h.service.RepartitionDepartements)
}

func (h *ParticipationHandler) RepartitionCommunes(w http.ResponseWriter, r *http.Request) {
	h.repartitionScope(w, r, h.service.RepartitionCommunes)
}

func (h *ParticipationHandler) RepartitionCentres(w http.ResponseWriter, r *http.Request) {
	h.repartitionScope(w, r, h.service.RepartitionCentres)
}

func (h *ParticipationHandler) RepartitionBureaux(w http.ResponseWriter, r *http.Request) {
	h.repartitionScope(w, r, h.service.RepartitionBureaux)
}

func (h *ParticipationHandler) Evolution(w http.ResponseWriter, r *http.Request) {
	idElection, dateElection, ok := electionScope(w, r)
	if !ok {
		return
	}
	evolution, err := h.service.Evolution(idElection, dateElection, intervalParam(r))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, evolution)
}

func (h *ParticipationHandler) evolutionScope(
	w http.ResponseWriter, r *http.Request,
	fn func(idScope, idElection uint, dateElection string, intervalMinutes int) (*services.EvolutionVotants, error),
) {
	idScope, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	idElection, dateElection, ok := electionScope(w, r)
	if !ok {
		return
	}
	evolution, err := fn(idScope, idElection, dateElection, intervalParam(r))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, evolution)
}

func (h *ParticipationHandler) EvolutionRegion(w http.ResponseWriter, r *http.Request) {
	h.evolutionScope(w, r, h.service.EvolutionRegion)
}

func (h *ParticipationHandler) EvolutionDepartement(w http.ResponseWriter, r *http.Request) {
	h.evolutionScope(w, r, h.service.EvolutionDepartement)
}

func (h *ParticipationHandler) EvolutionCommune(w http.ResponseWriter, r *http.Request) {
	h.evolutionScope(w, r, h.service.EvolutionCommune)
}

func (h *ParticipationHandler) EvolutionCentre(w http.ResponseWriter, r *http.Request) {
	h.evolutionScope(w, r, h.service.EvolutionCentre)
}
