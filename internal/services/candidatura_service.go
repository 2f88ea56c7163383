package services

import (
	"context"
	"strings"
	"time"

	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/domain/vaga"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/policy"
)

// maxCandidaturaMessage bounds the free-text message of an application
const maxCandidaturaMessage = 2000

// CandidaturaService implements vaga.CandidaturaService
type CandidaturaService struct {
	repo     vaga.CandidaturaRepository
	vagas    vaga.Repository
	users    user.Repository
	notifier *Notifier
	logger   *logger.Logger
	now      func() time.Time
}

// NewCandidaturaService creates a new application service
func NewCandidaturaService(
	repo vaga.CandidaturaRepository,
	vagas vaga.Repository,
	users user.Repository,
	notifier *Notifier,
	log *logger.Logger,
) vaga.CandidaturaService {
	return &CandidaturaService{
		repo:     repo,
		vagas:    vagas,
		users:    users,
		notifier: notifier,
		logger:   log,
		now:      time.Now,
	}
}

// Apply submits a worker's application. A second application to the same
// vaga fails with a conflict whether it is caught here or by the database.
func (s *CandidaturaService) Apply(ctx context.Context, prestadorID, vagaID, message string) (*vaga.Candidatura, error) {
	u, err := s.users.GetByID(ctx, prestadorID)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireRole(u, user.RolePrestador); err != nil {
		return nil, err
	}

	message = strings.TrimSpace(message)
	if len([]rune(message)) > maxCandidaturaMessage {
		return nil, errors.FieldError("message", "must be at most 2000 characters")
	}

	v, err := s.vagas.GetByID(ctx, vagaID)
	if err != nil {
		return nil, err
	}
	if v.Status != vaga.StatusAberta {
		return nil, errors.BadRequest("This vaga is not accepting applications")
	}

	exists, err := s.repo.Exists(ctx, vagaID, prestadorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Conflict("You have already applied to this vaga")
	}

	c := &vaga.Candidatura{
		VagaID:      vagaID,
		PrestadorID: prestadorID,
		Message:     message,
		Status:      vaga.CandidaturaPendente,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	c.PrestadorName = u.Name
	c.VagaTitle = v.Title

	s.logger.WithFields(map[string]interface{}{
		"candidatura_id": c.ID,
		"vaga_id":        vagaID,
		"prestador_id":   prestadorID,
	}).Info("Candidatura submitted")

	if s.notifier != nil {
		s.notifier.ApplicationReceived(ctx, v, u, c)
	}
	return c, nil
}

// ListForVaga lists applications to a vaga owned by userID
func (s *CandidaturaService) ListForVaga(ctx context.Context, userID, vagaID string) ([]*vaga.Candidatura, error) {
	v, err := s.vagas.GetByID(ctx, vagaID)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireOwner(userID, v, "view applications for this vaga"); err != nil {
		return nil, err
	}
	return s.repo.ListByVaga(ctx, vagaID)
}

// ListMine lists the worker's own applications
func (s *CandidaturaService) ListMine(ctx context.Context, prestadorID string) ([]*vaga.Candidatura, error) {
	return s.repo.ListByPrestador(ctx, prestadorID)
}

// UpdateStatus moves an application through the pipeline. Only the owner of
// the vaga may do it.
func (s *CandidaturaService) UpdateStatus(ctx context.Context, userID, candidaturaID string, status vaga.CandidaturaStatus) (*vaga.Candidatura, error) {
	if !status.Valid() {
		return nil, errors.FieldError("status", "unknown application status")
	}

	c, err := s.repo.GetByID(ctx, candidaturaID)
	if err != nil {
		return nil, err
	}
	v, err := s.vagas.GetByID(ctx, c.VagaID)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireOwner(userID, v, "manage applications for this vaga"); err != nil {
		return nil, err
	}
	if c.Status == status {
		return c, nil
	}
	if !c.Status.CanMoveTo(status) {
		return nil, errors.BadRequest("Cannot move application from " + string(c.Status) + " to " + string(status))
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, c.ID, status, now); err != nil {
		return nil, err
	}
	c.Status = status
	c.UpdatedAt = now
	c.VagaTitle = v.Title

	s.logger.WithFields(map[string]interface{}{
		"candidatura_id": c.ID,
		"status":         status,
	}).Info("Candidatura status changed")

	if s.notifier != nil {
		s.notifier.ApplicationStatusChanged(ctx, v, c)
	}
	return c, nil
}
