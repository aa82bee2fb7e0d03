package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/elections-api/internal/handlers"
	"github.com/diewo77/elections-api/internal/httpx"
	"github.com/diewo77/elections-api/internal/services"
)

// App est le handler racine de l'API: tous les endpoints y sont câblés.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB
	log *zap.Logger
}

// NewApp construit l'application avec toutes ses routes.
func NewApp(db *gorm.DB, log *zap.Logger) *App {
	app := &App{
		mux: http.NewServeMux(),
		db:  db,
		log: log,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP applique le middleware global puis route la requête.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.withRecover(a.withLogging(a.mux)).ServeHTTP(w, r)
}

func (a *App) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		a.log.Info("requête",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

func (a *App) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				a.log.Error("panique dans un handler",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path))
				httpx.Detail(w, http.StatusInternalServerError, "Erreur interne du serveur")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (a *App) setupRoutes() {
	regions := handlers.NewRegionHandler(services.NewRegionService(a.db, a.log))
	departements := handlers.NewDepartementHandler(services.NewDepartementService(a.db, a.log))
	communes := handlers.NewCommuneHandler(services.NewCommuneService(a.db, a.log))
	centres := handlers.NewCentreHandler(services.NewCentreService(a.db, a.log))
	bureaux := handlers.NewBureauHandler(services.NewBureauService(a.db, a.log))
	elections := handlers.NewElectionHandler(services.NewElectionService(a.db, a.log))
	candidats := handlers.NewCandidatHandler(services.NewCandidatService(a.db, a.log))
	inscriptions := handlers.NewInscriptionHandler(services.NewInscriptionService(a.db, a.log))
	participations := handlers.NewParticipationHandler(services.NewParticipationService(a.db, a.log))
	resultats := handlers.NewResultatHandler(services.NewResultatService(a.db, a.log))

	a.mux.HandleFunc("GET /health", a.health)
	a.mux.HandleFunc("GET /healthz", a.health)

	// Hiérarchie géographique
	a.mux.HandleFunc("POST /regions/{$}", regions.Create)
	a.mux.HandleFunc("GET /regions/{$}", regions.List)
	a.mux.HandleFunc("GET /regions/all", regions.ListAll)
	a.mux.HandleFunc("GET /regions/{id}", regions.Get)
	a.mux.HandleFunc("PUT /regions/{id}", regions.Update)
	a.mux.HandleFunc("DELETE /regions/{id}", regions.Delete)
	a.mux.HandleFunc("GET /regions/{id}/departements", regions.Departements)

	a.mux.HandleFunc("POST /departements/{$}", departements.Create)
	a.mux.HandleFunc("GET /departements/{$}", departements.List)
	a.mux.HandleFunc("GET /departements/{id}", departements.Get)
	a.mux.HandleFunc("PUT /departements/{id}", departements.Update)
	a.mux.HandleFunc("DELETE /departements/{id}", departements.Delete)
	a.mux.HandleFunc("GET /departements/{id}/communes", departements.Communes)

	a.mux.HandleFunc("POST /communes/{$}", communes.Create)
	a.mux.HandleFunc("GET /communes/{$}", communes.List)
	a.mux.HandleFunc("GET /communes/{id}", communes.Get)
	a.mux.HandleFunc("PUT /communes/{id}", communes.Update)
	a.mux.HandleFunc("DELETE /communes/{id}", communes.Delete)
	a.mux.HandleFunc("GET /communes/{id}/centres", communes.Centres)

	a.mux.HandleFunc("POST /centres-votes/{$}", centres.Create)
	a.mux.HandleFunc("GET /centres-votes/{$}", centres.List)
	a.mux.HandleFunc("GET /centres-votes/{id}", centres.Get)
	a.mux.HandleFunc("PUT /centres-votes/{id}", centres.Update)
	a.mux.HandleFunc("DELETE /centres-votes/{id}", centres.Delete)
	a.mux.HandleFunc("GET /centres-votes/commune/{id}", communes.Centres)

	a.mux.HandleFunc("POST /bureaux-votes/{$}", bureaux.Create)
	a.mux.HandleFunc("GET /bureaux-votes/{$}", bureaux.List)
	a.mux.HandleFunc("GET /bureaux-votes/{id}", bureaux.Get)
	a.mux.HandleFunc("PUT /bureaux-votes/{id}", bureaux.Update)
	a.mux.HandleFunc("DELETE /bureaux-votes/{id}", bureaux.Delete)
	a.mux.HandleFunc("GET /bureaux-votes/centre/{id}", centres.Bureaux)

	// Référentiel électoral
	a.mux.HandleFunc("POST /elections/{$}", elections.Create)
	a.mux.HandleFunc("GET /elections/{$}", elections.List)
	a.mux.HandleFunc("GET /elections/dates", elections.AllDates)
	a.mux.HandleFunc("GET /elections/{id}", elections.Get)
	a.mux.HandleFunc("PUT /elections/{id}", elections.Update)
	a.mux.HandleFunc("DELETE /elections/{id}", elections.Delete)
	a.mux.HandleFunc("GET /elections/{id}/dates", elections.Dates)

	a.mux.HandleFunc("POST /candidats/{$}", candidats.Create)
	a.mux.HandleFunc("GET /candidats/{$}", candidats.List)
	a.mux.HandleFunc("GET /candidats/all", candidats.ListAll)
	a.mux.HandleFunc("GET /candidats/{id}", candidats.Get)
	a.mux.HandleFunc("PUT /candidats/{id}", candidats.Update)
	a.mux.HandleFunc("DELETE /candidats/{id}", candidats.Delete)

	// Inscriptions des candidats aux élections
	a.mux.HandleFunc("POST /elections/inscriptions-elections/{$}", inscriptions.Create)
	a.mux.HandleFunc("POST /elections/inscriptions-elections/bulk", inscriptions.CreateBulk)
	a.mux.HandleFunc("GET /elections/inscriptions-elections/{$}", inscriptions.List)
	a.mux.HandleFunc("GET /elections/inscriptions-elections/avec-details", inscriptions.ListWithDetails)
	a.mux.HandleFunc("GET /elections/inscriptions-elections/election/{id_election}/{date_election}", inscriptions.ListByElection)
	a.mux.HandleFunc("GET /elections/inscriptions-elections/candidat/{nom_candidat}", inscriptions.ListByCandidat)
	a.mux.HandleFunc("DELETE /elections/inscriptions-elections/{id_election}/{nom_candidat}/{date_election}", inscriptions.Delete)

	// Registre de participation et statistiques
	a.mux.HandleFunc("POST /elections/participations/{$}", participations.Create)
	a.mux.HandleFunc("GET /elections/participations/{$}", participations.List)
	a.mux.HandleFunc("PUT /elections/participations/{id_election}/{id_bureau}/{date_election}", participations.Update)
	a.mux.HandleFunc("DELETE /elections/participations/{id_election}/{id_bureau}/{date_election}", participations.Delete)

	a.mux.HandleFunc("GET /elections/participations/statistiques/national/{id_election}/{date_election}", participations.StatistiquesNationales)
	a.mux.HandleFunc("GET /elections/participations/statistiques/region/{id}/{id_election}/{date_election}", participations.StatistiquesRegion)
	a.mux.HandleFunc("GET /elections/participations/statistiques/departement/{id}/{id_election}/{date_election}", participations.StatistiquesDepartement)
	a.mux.HandleFunc("GET /elections/participations/statistiques/commune/{id}/{id_election}/{date_election}", participations.StatistiquesCommune)
	a.mux.HandleFunc("GET /elections/participations/statistiques/centre/{id}/{id_election}/{date_election}", participations.StatistiquesCentre)
	a.mux.HandleFunc("GET /elections/participations/statistiques/bureau/{id}/{id_election}/{date_election}", participations.StatistiquesBureau)

	a.mux.HandleFunc("GET /elections/participations/statistiques/repartition-regions/{id_election}/{date_election}", participations.RepartitionRegions)
	a.mux.HandleFunc("GET /elections/participations/statistiques/repartition-departements/{id}/{id_election}/{date_election}", participations.RepartitionDepartements)
	a.mux.HandleFunc("GET /elections/participations/statistiques/repartition-communes/{id}/{id_election}/{date_election}", participations.RepartitionCommunes)
	a.mux.HandleFunc("GET /elections/participations/statistiques/repartition-centres/{id}/{id_election}/{date_election}", participations.RepartitionCentres)
	a.mux.HandleFunc("GET /elections/participations/statistiques/repartition-bureaux/{id}/{id_election}/{date_election}", participations.RepartitionBureaux)

	a.mux.HandleFunc("GET /elections/participations/statistiques/evolution-votants-temporelle/{id_election}/{date_election}", participations.Evolution)
	a.mux.HandleFunc("GET /elections/participations/statistiques/evolution-votants-temporelle-region/{id}/{id_election}/{date_election}", participations.EvolutionRegion)
	a.mux.HandleFunc("GET /elections/participations/statistiques/evolution-votants-temporelle-departement/{id}/{id_election}/{date_election}", participations.EvolutionDepartement)
	a.mux.HandleFunc("GET /elections/participations/statistiques/evolution-votants-temporelle-commune/{id}/{id_election}/{date_election}", participations.EvolutionCommune)
	a.mux.HandleFunc("GET /elections/participations/statistiques/evolution-votants-temporelle-centre/{id}/{id_election}/{date_election}", participations.EvolutionCentre)

	// Registre des résultats et statistiques
	a.mux.HandleFunc("POST /elections/resultats-votes/{$}", resultats.Create)
	a.mux.HandleFunc("POST /elections/resultats-votes/bulk", resultats.CreateBulk)
	a.mux.HandleFunc("GET /elections/resultats-votes/{$}", resultats.List)
	a.mux.HandleFunc("GET /elections/resultats-votes/bureau/{id}", resultats.ListByBureau)
	a.mux.HandleFunc("DELETE /elections/resultats-votes/{id_election}/{nom_centre}/{numero_bureau}/{nom_candidat}/{date_election}", resultats.Delete)

	a.mux.HandleFunc("GET /elections/resultats-votes/statistiques/national/{id_election}/{date_election}", resultats.StatistiquesNationales)
	a.mux.HandleFunc("GET /elections/resultats-votes/statistiques/region/{id}/{id_election}/{date_election}", resultats.StatistiquesRegion)
	a.mux.HandleFunc("GET /elections/resultats-votes/statistiques/departement/{id}/{id_election}/{date_election}", resultats.StatistiquesDepartement)
	a.mux.HandleFunc("GET /elections/resultats-votes/statistiques/commune/{id}/{id_election}/{date_election}", resultats.StatistiquesCommune)
	a.mux.HandleFunc("GET /elections/resultats-votes/statistiques/centre/{nom_centre}/{id_election}/{date_election}", resultats.StatistiquesCentre)
	a.mux.HandleFunc("GET /elections/resultats-votes/statistiques/bureau/{id}/{id_election}/{date_election}", resultats.StatistiquesBureau)

	a.mux.HandleFunc("GET /elections/resultats-votes/votes-candidat-par-region/{id_candidat}/{id_election}/{date_election}", resultats.VoixCandidatParRegion)
	a.mux.HandleFunc("GET /elections/resultats-votes/votes-candidat-par-departement/{id_candidat}/{id}/{id_election}/{date_election}", resultats.VoixCandidatParDepartement)
	a.mux.HandleFunc("GET /elections/resultats-votes/votes-candidat-par-commune/{id_candidat}/{id}/{id_election}/{date_election}", resultats.VoixCandidatParCommune)
	a.mux.HandleFunc("GET /elections/resultats-votes/votes-candidat-par-centre/{id_candidat}/{id}/{id_election}/{date_election}", resultats.VoixCandidatParCentre)
	a.mux.HandleFunc("GET /elections/resultats-votes/votes-candidat-par-bureau/{id_candidat}/{nom_centre}/{id_election}/{date_election}", resultats.VoixCandidatParBureau)
}

// health vérifie que le magasin répond avant de déclarer le service sain.
func (a *App) health(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		a.log.Error("base de données injoignable", zap.Error(err))
		httpx.Detail(w, http.StatusServiceUnavailable, "Base de données indisponible")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
