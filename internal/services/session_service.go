package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/trampo-app/trampo/internal/auth"
	"github.com/trampo-app/trampo/internal/config"
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
)

// Session is the result of a successful sign in
type Session struct {
	auth.TokenPair
	User *user.User `json:"user"`
}

// SessionService issues and rotates JWT sessions. Refresh tokens are single
// use; only their SHA-256 hashes are stored.
type SessionService struct {
	users  user.Service
	tokens user.TokenRepository
	cfg    config.AuthConfig
	logger *logger.Logger
	now    func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(users user.Service, tokens user.TokenRepository, cfg config.AuthConfig, log *logger.Logger) *SessionService {
	return &SessionService{
		users:  users,
		tokens: tokens,
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
}

// Register creates the account and signs it in
func (s *SessionService) Register(ctx context.Context, in user.RegisterInput) (*Session, error) {
	p, err := s.users.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, p.User)
}

// Login checks credentials and opens a session
func (s *SessionService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, u)
}

// Refresh exchanges a refresh token for a new pair
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := auth.ParseTyped(refreshToken, s.cfg.JWTSecret, auth.TokenTypeRefresh)
	if err != nil {
		return nil, errors.Unauthorized("Invalid refresh token")
	}

	userID, err := s.tokens.Consume(ctx, hashToken(refreshToken), s.now())
	if errors.IsNotFound(err) {
		return nil, errors.Unauthorized("Refresh token expired or revoked")
	}
	if err != nil {
		return nil, err
	}
	if userID != claims.UserID {
		return nil, errors.Unauthorized("Invalid refresh token")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, u)
}

// Logout revokes a refresh token. Unknown tokens are ignored.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokens.Revoke(ctx, hashToken(refreshToken))
}

func (s *SessionService) issue(ctx context.Context, u *user.User) (*Session, error) {
	pair, err := auth.MintTokens(auth.Subject{
		UserID: u.ID,
		Email:  u.Email,
		Role:   string(u.Role),
	}, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, errors.Internal("Failed to sign tokens", err)
	}

	expiresAt := s.now().Add(s.cfg.RefreshTokenExpiry)
	if err := s.tokens.Store(ctx, hashToken(pair.RefreshToken), u.ID, expiresAt); err != nil {
		return nil, err
	}

	return &Session{TokenPair: pair, User: u}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
