package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/trampo-app/trampo/internal/domain/user"
)

func newUserService(env *testEnv) user.Service {
	return NewUserService(env.users, env.notifier, bcrypt.MinCost, env.log)
}

func TestUserService_Register(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(env)

	tests := []struct {
		name   string
		in     user.RegisterInput
		status int
	}{
		{
			name: "worker",
			in: user.RegisterInput{
				Email: "joana@example.com", Password: "segredo123", Name: " Joana ",
				Role: user.RolePrestador, City: "Recife", State: "pe",
			},
			status: http.StatusOK,
		},
		{
			name: "employer",
			in: user.RegisterInput{
				Email: "padaria@example.com", Password: "segredo123", Name: "Padaria",
				Role: user.RoleEmpregador,
			},
			status: http.StatusOK,
		},
		{
			name: "duplicate email",
			in: user.RegisterInput{
				Email: "joana@example.com", Password: "outra123", Name: "Outra",
				Role: user.RolePrestador,
			},
			status: http.StatusConflict,
		},
		{
			name: "unknown role",
			in: user.RegisterInput{
				Email: "admin@example.com", Password: "segredo123", Name: "Admin",
				Role: "ADMIN",
			},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := svc.Register(context.Background(), tt.in)
			if tt.status != http.StatusOK {
				if err == nil {
					t.Fatal("Register() expected error")
				}
				if got := statusOf(t, err); got != tt.status {
					t.Errorf("status = %d, want %d", got, tt.status)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if p.User.Name != strings.TrimSpace(tt.in.Name) {
				t.Errorf("name = %q", p.User.Name)
			}
			if p.User.PasswordHash == tt.in.Password {
				t.Error("password stored in clear text")
			}
			switch tt.in.Role {
			case user.RolePrestador:
				if p.Worker == nil || p.Employer != nil {
					t.Errorf("worker profile = %+v / %+v", p.Worker, p.Employer)
				}
				if p.User.State != "PE" {
					t.Errorf("state = %q, want PE", p.User.State)
				}
			case user.RoleEmpregador:
				if p.Employer == nil || p.Worker != nil {
					t.Errorf("employer profile = %+v / %+v", p.Employer, p.Worker)
				}
			}
		})
	}

	if sent := env.mailer.Sent(); len(sent) != 2 {
		t.Errorf("welcome emails = %d, want 2", len(sent))
	}
}

func TestUserService_Authenticate(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(env)
	if _, err := svc.Register(context.Background(), user.RegisterInput{
		Email: "rui@example.com", Password: "senha-forte", Name: "Rui", Role: user.RolePrestador,
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	u, err := svc.Authenticate(context.Background(), "rui@example.com", "senha-forte")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if u.Email != "rui@example.com" {
		t.Errorf("Authenticate() email = %q", u.Email)
	}

	for _, c := range []struct{ email, password string }{
		{"rui@example.com", "errada"},
		{"ninguem@example.com", "senha-forte"},
	} {
		_, err := svc.Authenticate(context.Background(), c.email, c.password)
		if statusOf(t, err) != http.StatusUnauthorized {
			t.Errorf("Authenticate(%s) status = %d, want 401", c.email, statusOf(t, err))
		}
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(env)
	worker := env.user(t, user.RolePrestador, "lucas")
	employer := env.user(t, user.RoleEmpregador, "clinica")

	desc := "Eletricista residencial"
	p, err := svc.UpdateProfile(context.Background(), worker.ID, user.ProfileUpdate{
		Description:       &desc,
		AveragePriceCents: int64Ptr(12000),
		CompanyName:       &desc,
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if p.Worker.Description != desc || p.Worker.AveragePriceCents == nil || *p.Worker.AveragePriceCents != 12000 {
		t.Errorf("worker profile = %+v", p.Worker)
	}

	stored, err := svc.GetProfile(context.Background(), worker.ID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if stored.Worker.Description != desc || stored.Employer != nil {
		t.Errorf("stored profile = %+v", stored)
	}

	budget := int64Ptr(500000)
	p, err = svc.UpdateProfile(context.Background(), employer.ID, user.ProfileUpdate{BudgetCents: budget})
	if err != nil {
		t.Fatalf("UpdateProfile() employer error = %v", err)
	}
	if p.Employer.BudgetCents == nil || *p.Employer.BudgetCents != 500000 {
		t.Errorf("employer budget = %v", p.Employer.BudgetCents)
	}

	blank := "  "
	tests := []struct {
		name   string
		userID string
		upd    user.ProfileUpdate
		status int
	}{
		{name: "blank name", userID: worker.ID, upd: user.ProfileUpdate{Name: &blank}, status: http.StatusBadRequest},
		{name: "negative price", userID: worker.ID, upd: user.ProfileUpdate{AveragePriceCents: int64Ptr(-1)}, status: http.StatusBadRequest},
		{name: "negative budget", userID: employer.ID, upd: user.ProfileUpdate{BudgetCents: int64Ptr(-1)}, status: http.StatusBadRequest},
		{name: "unknown user", userID: "00000000-0000-0000-0000-000000000000", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateProfile(context.Background(), tt.userID, tt.upd)
			if err == nil {
				t.Fatal("UpdateProfile() expected error")
			}
			if got := statusOf(t, err); got != tt.status {
				t.Errorf("status = %d, want %d", got, tt.status)
			}
		})
	}
}
