package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token kinds carried in the "typ" claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// Subject identifies the user a token pair is minted for
type Subject struct {
	UserID string
	Email  string
	Role   string
}

func MintTokens(sub Subject, secret string, accessTTL, refreshTTL time.Duration) (TokenPair, error) {
	at, err := sign(sub, TokenTypeAccess, secret, accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	rt, err := sign(sub, TokenTypeRefresh, secret, refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: at, RefreshToken: rt}, nil
}

func sign(sub Subject, typ, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: sub.UserID,
		Email:  sub.Email,
		Role:   sub.Role,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   sub.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString([]byte(secret))
}

func ParseClaims(tokenStr, secret string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

// ParseTyped parses a token and checks it is of the expected kind, so a
// refresh token can never be used as an access token and vice versa.
func ParseTyped(tokenStr, secret, typ string) (*Claims, error) {
	c, err := ParseClaims(tokenStr, secret)
	if err != nil {
		return nil, err
	}
	if c.Type != typ {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return c, nil
}
