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

// VagaService implements vaga.Service
type VagaService struct {
	repo   vaga.Repository
	users  user.Repository
	logger *logger.Logger
	now    func() time.Time
}

// NewVagaService creates a new vaga service
func NewVagaService(repo vaga.Repository, users user.Repository, log *logger.Logger) vaga.Service {
	return &VagaService{
		repo:   repo,
		users:  users,
		logger: log,
		now:    time.Now,
	}
}

// Create publishes an open vaga for an employer
func (s *VagaService) Create(ctx context.Context, employerID string, in vaga.Input) (*vaga.Vaga, error) {
	u, err := s.users.GetByID(ctx, employerID)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireRole(u, user.RoleEmpregador); err != nil {
		return nil, err
	}
	if err := validateVagaInput(&in); err != nil {
		return nil, err
	}

	v := &vaga.Vaga{
		EmployerID: employerID,
		Status:     vaga.StatusAberta,
	}
	applyVagaInput(v, in)
	if len(v.Etapas) == 0 {
		v.Etapas = etapas(vaga.DefaultEtapas)
	}

	if err := s.repo.Create(ctx, v); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create vaga")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"vaga_id":     v.ID,
		"employer_id": employerID,
	}).Info("Vaga created")

	return v, nil
}

// Get returns a vaga with its etapas
func (s *VagaService) Get(ctx context.Context, id string) (*vaga.Vaga, error) {
	return s.repo.GetByID(ctx, id)
}

// Update edits a vaga owned by userID. Omitting etapas keeps the current ones.
func (s *VagaService) Update(ctx context.Context, userID, id string, in vaga.Input) (*vaga.Vaga, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireOwner(userID, v, "edit this vaga"); err != nil {
		return nil, err
	}
	if err := validateVagaInput(&in); err != nil {
		return nil, err
	}

	current := v.Etapas
	applyVagaInput(v, in)
	if len(in.Etapas) == 0 {
		v.Etapas = current
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// SetStatus opens, pauses or closes a vaga owned by userID
func (s *VagaService) SetStatus(ctx context.Context, userID, id string, status vaga.Status) (*vaga.Vaga, error) {
	if !status.Valid() {
		return nil, errors.FieldError("status", "must be ABERTA, PAUSADA or FECHADA")
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireOwner(userID, v, "change this vaga"); err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, err
	}
	v.Status = status
	v.UpdatedAt = now

	s.logger.WithFields(map[string]interface{}{
		"vaga_id": id,
		"status":  status,
	}).Info("Vaga status changed")

	return v, nil
}

// List returns open vagas, boosted first
func (s *VagaService) List(ctx context.Context, filter vaga.Filter, limit, offset int) (*vaga.Page, error) {
	if filter.Status == "" {
		filter.Status = vaga.StatusAberta
	}
	items, total, err := s.repo.List(ctx, filter, s.now(), limit, offset)
	if err != nil {
		return nil, err
	}
	return &vaga.Page{Items: items, Total: total}, nil
}

// ListMine returns every vaga posted by employerID
func (s *VagaService) ListMine(ctx context.Context, employerID string) ([]*vaga.Vaga, error) {
	return s.repo.ListByEmployer(ctx, employerID)
}

func validateVagaInput(in *vaga.Input) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return errors.FieldError("title", "is required")
	}
	if in.Description == "" {
		return errors.FieldError("description", "is required")
	}

	switch in.SalaryType {
	case "":
		in.SalaryType = vaga.SalaryACombinar
	case vaga.SalaryFixo, vaga.SalaryACombinar:
	default:
		return errors.FieldError("salaryType", "must be FIXO or A_COMBINAR")
	}
	if in.SalaryType == vaga.SalaryFixo && (in.SalaryCents == nil || *in.SalaryCents <= 0) {
		return errors.FieldError("salary", "is required for a fixed salary")
	}
	if in.SalaryType == vaga.SalaryACombinar {
		in.SalaryCents = nil
	}

	for i, name := range in.Etapas {
		in.Etapas[i] = strings.TrimSpace(name)
		if in.Etapas[i] == "" {
			return errors.FieldError("etapas", "stage names must not be empty")
		}
	}
	return nil
}

func applyVagaInput(v *vaga.Vaga, in vaga.Input) {
	v.CategoryID = in.CategoryID
	v.Title = in.Title
	v.Description = in.Description
	v.City = strings.TrimSpace(in.City)
	v.State = strings.ToUpper(strings.TrimSpace(in.State))
	v.SalaryType = in.SalaryType
	v.SalaryCents = in.SalaryCents
	v.Etapas = etapas(in.Etapas)
}

func etapas(names []string) []vaga.Etapa {
	out := make([]vaga.Etapa, 0, len(names))
	for _, name := range names {
		out = append(out, vaga.Etapa{Name: name})
	}
	return out
}
