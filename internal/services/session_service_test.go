package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trampo-app/trampo/internal/auth"
	"github.com/trampo-app/trampo/internal/config"
	"github.com/trampo-app/trampo/internal/domain/user"
)

const testJWTSecret = "test-secret-at-least-32-characters-long"

func newSessionService(env *testEnv) *SessionService {
	return NewSessionService(newUserService(env), env.tokens, config.AuthConfig{
		JWTSecret:          testJWTSecret,
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		BCryptCost:         bcrypt.MinCost,
	}, env.log)
}

func TestSessionService_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := newSessionService(env)

	s, err := svc.Register(context.Background(), user.RegisterInput{
		Email: "maria@example.com", Password: "segredo123", Name: "Maria", Role: user.RoleEmpregador,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	claims, err := auth.ParseTyped(s.AccessToken, testJWTSecret, auth.TokenTypeAccess)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims.UserID != s.User.ID || claims.Role != string(user.RoleEmpregador) {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := svc.Login(context.Background(), "maria@example.com", "segredo123"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	_, err = svc.Login(context.Background(), "maria@example.com", "nope")
	if statusOf(t, err) != http.StatusUnauthorized {
		t.Errorf("Login() wrong password status = %d, want 401", statusOf(t, err))
	}
}

func TestSessionService_RefreshRotates(t *testing.T) {
	env := newTestEnv(t)
	svc := newSessionService(env)

	s, err := svc.Register(context.Background(), user.RegisterInput{
		Email: "tiago@example.com", Password: "segredo123", Name: "Tiago", Role: user.RolePrestador,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	next, err := svc.Refresh(context.Background(), s.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if next.RefreshToken == s.RefreshToken {
		t.Error("Refresh() must issue a new refresh token")
	}

	_, err = svc.Refresh(context.Background(), s.RefreshToken)
	if statusOf(t, err) != http.StatusUnauthorized {
		t.Errorf("reused refresh token status = %d, want 401", statusOf(t, err))
	}

	_, err = svc.Refresh(context.Background(), next.AccessToken)
	if statusOf(t, err) != http.StatusUnauthorized {
		t.Errorf("access token as refresh status = %d, want 401", statusOf(t, err))
	}

	if err := svc.Logout(context.Background(), next.RefreshToken); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	_, err = svc.Refresh(context.Background(), next.RefreshToken)
	if statusOf(t, err) != http.StatusUnauthorized {
		t.Errorf("revoked refresh token status = %d, want 401", statusOf(t, err))
	}

	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Errorf("Logout(\"\") error = %v", err)
	}
}
