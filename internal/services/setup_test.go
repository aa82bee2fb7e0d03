package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/elections-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// base mémoire unique par test pour éviter les fuites via le cache partagé
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Region{}, &models.Departement{}, &models.Commune{},
		&models.CentreVote{}, &models.BureauVote{},
		&models.Election{}, &models.Candidat{}, &models.InscriptionElection{},
		&models.Participation{}, &models.ResultatVote{},
	))
	return db
}

// fixture porte une petite hiérarchie complète utilisée par la plupart des
// tests: une région, un département, deux communes, trois centres, deux
// bureaux par centre, une élection et deux candidats.
type fixture struct {
	DB          *gorm.DB
	Region      models.Region
	Departement models.Departement
	Medina      models.Commune
	Plateau     models.Commune
	ManginA     models.CentreVote
	ManginB     models.CentreVote
	Kennedy     models.CentreVote
	Bureaux     map[uint][]models.BureauVote
	Election    models.Election
	Diop        models.Candidat
	Fall        models.Candidat
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{DB: db, Bureaux: map[uint][]models.BureauVote{}}

	f.Region = models.Region{NomRegion: "DAKAR"}
	require.NoError(t, db.Create(&f.Region).Error)
	f.Departement = models.Departement{NomDepartement: "DAKAR", IDRegion: f.Region.IDRegion}
	require.NoError(t, db.Create(&f.Departement).Error)
	f.Medina = models.Commune{NomCommune: "MEDINA", IDDepartement: f.Departement.IDDepartement}
	require.NoError(t, db.Create(&f.Medina).Error)
	f.Plateau = models.Commune{NomCommune: "PLATEAU", IDDepartement: f.Departement.IDDepartement}
	require.NoError(t, db.Create(&f.Plateau).Error)

	f.ManginA = models.CentreVote{NomCentre: "ECOLE MANGIN A", IDCommune: f.Medina.IDCommune}
	require.NoError(t, db.Create(&f.ManginA).Error)
	f.ManginB = models.CentreVote{NomCentre: "ECOLE MANGIN B", IDCommune: f.Medina.IDCommune}
	require.NoError(t, db.Create(&f.ManginB).Error)
	f.Kennedy = models.CentreVote{NomCentre: "LYCEE KENNEDY", IDCommune: f.Plateau.IDCommune}
	require.NoError(t, db.Create(&f.Kennedy).Error)

	for _, centre := range []models.CentreVote{f.ManginA, f.ManginB, f.Kennedy} {
		for numero := 1; numero <= 2; numero++ {
			bureau := models.BureauVote{
				NumeroBureau: numero,
				Implantation: fmt.Sprintf("%s salle %d", centre.NomCentre, numero),
				IDCentre:     centre.IDCentre,
			}
			require.NoError(t, db.Create(&bureau).Error)
			f.Bureaux[centre.IDCentre] = append(f.Bureaux[centre.IDCentre], bureau)
		}
	}

	f.Election = models.Election{TypeElection: "PRESIDENTIELLE"}
	require.NoError(t, db.Create(&f.Election).Error)
	f.Diop = models.Candidat{NomCandidat: "AMADOU DIOP"}
	require.NoError(t, db.Create(&f.Diop).Error)
	f.Fall = models.Candidat{NomCandidat: "AISSATOU FALL"}
	require.NoError(t, db.Create(&f.Fall).Error)

	return f
}

func testLogger() *zap.Logger { return zap.NewNop() }
