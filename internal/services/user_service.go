package services

import (
	"context"
	"strings"

	"github.com/trampo-app/trampo/internal/auth"
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
)

// UserService implements user.Service
type UserService struct {
	repo       user.Repository
	notifier   *Notifier
	bcryptCost int
	logger     *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, notifier *Notifier, bcryptCost int, log *logger.Logger) user.Service {
	return &UserService{
		repo:       repo,
		notifier:   notifier,
		bcryptCost: bcryptCost,
		logger:     log,
	}
}

// Register creates an account with its empty role profile
func (s *UserService) Register(ctx context.Context, in user.RegisterInput) (*user.Profile, error) {
	if !in.Role.Valid() {
		return nil, errors.FieldError("role", "must be PRESTADOR or EMPREGADOR")
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	u := &user.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		Phone:        in.Phone,
		City:         in.City,
		State:        strings.ToUpper(in.State),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"role":    u.Role,
	}).Info("User registered")

	if s.notifier != nil {
		s.notifier.Welcome(ctx, u)
	}

	return s.GetProfile(ctx, u.ID)
}

// Authenticate checks credentials. Unknown emails and wrong passwords get the
// same error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if errors.IsNotFound(err) {
		return nil, errors.Unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, errors.Unauthorized("Invalid email or password")
	}
	return u, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetProfile returns the user with its role profile
func (s *UserService) GetProfile(ctx context.Context, userID string) (*user.Profile, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &user.Profile{User: u}
	switch u.Role {
	case user.RolePrestador:
		p.Worker, err = s.repo.GetWorkerProfile(ctx, userID)
	case user.RoleEmpregador:
		p.Employer, err = s.repo.GetEmployerProfile(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProfile applies a partial update to the user and its role profile
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd user.ProfileUpdate) (*user.Profile, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	u := p.User
	setString(&u.Name, upd.Name)
	setString(&u.Phone, upd.Phone)
	setString(&u.City, upd.City)
	setString(&u.State, upd.State)
	setString(&u.AvatarURL, upd.AvatarURL)
	u.State = strings.ToUpper(u.State)
	if strings.TrimSpace(u.Name) == "" {
		return nil, errors.FieldError("name", "is required")
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	switch {
	case p.Worker != nil:
		w := p.Worker
		if upd.CategoryID != nil {
			if *upd.CategoryID == "" {
				w.CategoryID = nil
			} else {
				w.CategoryID = upd.CategoryID
			}
		}
		setString(&w.Description, upd.Description)
		if upd.AveragePriceCents != nil {
			if *upd.AveragePriceCents < 0 {
				return nil, errors.FieldError("averagePrice", "must not be negative")
			}
			w.AveragePriceCents = upd.AveragePriceCents
		}
		if err := s.repo.UpdateWorkerProfile(ctx, w); err != nil {
			return nil, err
		}
	case p.Employer != nil:
		e := p.Employer
		setString(&e.CompanyName, upd.CompanyName)
		setString(&e.AdvertisedService, upd.AdvertisedService)
		if upd.BudgetCents != nil {
			if *upd.BudgetCents < 0 {
				return nil, errors.FieldError("budget", "must not be negative")
			}
			e.BudgetCents = upd.BudgetCents
		}
		if err := s.repo.UpdateEmployerProfile(ctx, e); err != nil {
			return nil, err
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
	}).Info("Profile updated")

	return p, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
