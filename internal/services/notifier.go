package services

import (
	"context"
	"time"

	"github.com/trampo-app/trampo/internal/domain/payment"
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/domain/vaga"
	"github.com/trampo-app/trampo/internal/email"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/metrics"
)

// Notifier sends transactional email. Every method is best effort: failures
// are logged and counted, never returned.
type Notifier struct {
	mailer email.Mailer
	users  user.Repository
	appURL string
	logger *logger.Logger
}

// NewNotifier creates a new notifier
func NewNotifier(mailer email.Mailer, users user.Repository, appURL string, log *logger.Logger) *Notifier {
	return &Notifier{
		mailer: mailer,
		users:  users,
		appURL: appURL,
		logger: log,
	}
}

// Welcome greets a newly registered user
func (n *Notifier) Welcome(ctx context.Context, u *user.User) {
	n.send(ctx, email.TemplateWelcome, u.Email, map[string]interface{}{
		"Name":   u.Name,
		"Role":   string(u.Role),
		"AppURL": n.appURL,
	})
}

// PurchaseConfirmed tells the buyer a payment was applied
func (n *Notifier) PurchaseConfirmed(ctx context.Context, m *payment.LedgerMutation) {
	u, err := n.users.GetByID(ctx, m.UserID)
	if err != nil {
		n.logger.WithFields(map[string]interface{}{
			"user_id": m.UserID,
		}).WithError(err).Warn("Skipping purchase confirmation, buyer not found")
		return
	}

	n.send(ctx, email.TemplatePurchaseConfirmed, u.Email, map[string]interface{}{
		"Name":   u.Name,
		"Item":   m.Label,
		"EndsAt": m.EndsAt.In(saoPaulo).Format("02/01/2006 15:04"),
		"AppURL": n.appURL,
	})
}

// ApplicationReceived tells an employer someone applied to their vaga
func (n *Notifier) ApplicationReceived(ctx context.Context, v *vaga.Vaga, candidate *user.User, c *vaga.Candidatura) {
	employer, err := n.users.GetByID(ctx, v.EmployerID)
	if err != nil {
		n.logger.WithError(err).Warn("Skipping application notice, employer not found")
		return
	}

	n.send(ctx, email.TemplateApplicationReceived, employer.Email, map[string]interface{}{
		"Name":      employer.Name,
		"Candidate": candidate.Name,
		"VagaTitle": v.Title,
		"Message":   c.Message,
		"AppURL":    n.appURL,
	})
}

// ApplicationStatusChanged tells a candidate their application moved
func (n *Notifier) ApplicationStatusChanged(ctx context.Context, v *vaga.Vaga, c *vaga.Candidatura) {
	candidate, err := n.users.GetByID(ctx, c.PrestadorID)
	if err != nil {
		n.logger.WithError(err).Warn("Skipping status notice, candidate not found")
		return
	}

	n.send(ctx, email.TemplateApplicationStatus, candidate.Email, map[string]interface{}{
		"Name":      candidate.Name,
		"VagaTitle": v.Title,
		"Status":    statusLabels[c.Status],
		"AppURL":    n.appURL,
	})
}

func (n *Notifier) send(ctx context.Context, template, to string, data map[string]interface{}) {
	msg, err := email.Render(template, to, data)
	if err == nil {
		err = n.mailer.Send(ctx, msg)
	}
	if err != nil {
		metrics.RecordEmail(template, "failed")
		n.logger.WithFields(map[string]interface{}{
			"template": template,
			"to":       to,
		}).ErrorWithErr(err, "Failed to send email")
		return
	}
	metrics.RecordEmail(template, "sent")
}

var statusLabels = map[vaga.CandidaturaStatus]string{
	vaga.CandidaturaPendente:    "Pendente",
	vaga.CandidaturaEmAvaliacao: "Em avaliação",
	vaga.CandidaturaEntrevista:  "Entrevista",
	vaga.CandidaturaFinalista:   "Finalista",
	vaga.CandidaturaRecusada:    "Recusada",
}

var saoPaulo = loadLocation("America/Sao_Paulo")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
}
