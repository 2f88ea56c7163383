package policy

import (
	"testing"

	"github.com/trampo-app/trampo/internal/domain/ad"
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/domain/vaga"
	"github.com/trampo-app/trampo/internal/pkg/errors"
)

func TestOwns(t *testing.T) {
	v := &vaga.Vaga{EmployerID: "emp-1"}
	a := &ad.Ad{UserID: "emp-2"}

	tests := []struct {
		name     string
		userID   string
		resource Ownable
		want     bool
	}{
		{"vaga owner", "emp-1", v, true},
		{"vaga stranger", "emp-2", v, false},
		{"ad owner", "emp-2", a, true},
		{"empty user", "", &vaga.Vaga{}, false},
		{"nil resource", "emp-1", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Owns(tt.userID, tt.resource); got != tt.want {
				t.Errorf("Owns() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequireOwner(t *testing.T) {
	v := &vaga.Vaga{EmployerID: "emp-1"}
	if err := RequireOwner("emp-1", v, "edit this vaga"); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	err := RequireOwner("emp-9", v, "edit this vaga")
	if !errors.Is(err, errors.ErrCodeForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	if err := RequireRole(&user.User{Role: user.RoleEmpregador}, user.RoleEmpregador); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if err := RequireRole(&user.User{Role: user.RolePrestador}, user.RoleEmpregador); !errors.Is(err, errors.ErrCodeForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
	if err := RequireRole(nil, user.RolePrestador); err == nil {
		t.Error("expected error for nil user")
	}
}
