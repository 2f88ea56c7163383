package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/trampo-app/trampo/internal/domain/ad"
	"github.com/trampo-app/trampo/internal/domain/highlight"
	"github.com/trampo-app/trampo/internal/domain/payment"
	"github.com/trampo-app/trampo/internal/domain/plan"
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/domain/vaga"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/repository/postgres"
	"github.com/trampo-app/trampo/internal/testutil"
)

// testEnv wires repositories over a fresh migrated database
type testEnv struct {
	db           *sql.DB
	users        user.Repository
	tokens       user.TokenRepository
	plans        plan.Repository
	highlights   highlight.Repository
	ads          ad.Repository
	vagas        vaga.Repository
	candidaturas vaga.CandidaturaRepository
	favoritas    vaga.FavoritaRepository
	events       payment.EventRepository
	mailer       *testutil.MockMailer
	notifier     *Notifier
	log          *logger.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := testutil.NewTestLogger()
	users := postgres.NewUserRepository(db)
	mailer := &testutil.MockMailer{}

	return &testEnv{
		db:           db,
		users:        users,
		tokens:       postgres.NewTokenRepository(db),
		plans:        postgres.NewPlanRepository(db),
		highlights:   postgres.NewHighlightRepository(db),
		ads:          postgres.NewAdRepository(db),
		vagas:        postgres.NewVagaRepository(db),
		candidaturas: postgres.NewCandidaturaRepository(db),
		favoritas:    postgres.NewFavoritaRepository(db),
		events:       postgres.NewPaymentEventRepository(db),
		mailer:       mailer,
		notifier:     NewNotifier(mailer, users, "https://trampo.test", log),
		log:          log,
	}
}

func (e *testEnv) user(t *testing.T, role user.Role, name string) *user.User {
	t.Helper()
	return testutil.CreateUser(t, e.db, role, name)
}

func (e *testEnv) vaga(t *testing.T, owner *user.User, title string) *vaga.Vaga {
	t.Helper()
	v, err := NewVagaService(e.vagas, e.users, e.log).Create(context.Background(), owner.ID, vaga.Input{
		Title:       title,
		Description: "Descrição da vaga " + title,
		City:        "Campinas",
		State:       "SP",
	})
	if err != nil {
		t.Fatalf("Failed to create vaga: %v", err)
	}
	return v
}

func (e *testEnv) highlight(t *testing.T, u *user.User, code plan.Code, now time.Time) {
	t.Helper()
	p := testutil.Plan(t, e.db, code)
	h := &highlight.Highlight{
		UserID:   u.ID,
		PlanID:   p.ID,
		StartsAt: now,
		EndsAt:   now.Add(p.Duration()),
		Status:   highlight.StatusActive,
	}
	if err := e.highlights.Supersede(context.Background(), h, now); err != nil {
		t.Fatalf("Failed to create highlight: %v", err)
	}
}

func (e *testEnv) fulfillers() map[payment.PurchaseType]payment.Fulfiller {
	return map[payment.PurchaseType]payment.Fulfiller{
		payment.TypeHighlight: NewHighlightFulfiller(e.plans, e.highlights),
		payment.TypeAd:        NewAdFulfiller(e.plans, e.ads),
		payment.TypeJobBoost:  NewJobBoostFulfiller(e.vagas),
	}
}

func int64Ptr(v int64) *int64 { return &v }

func float64Ptr(v float64) *float64 { return &v }
