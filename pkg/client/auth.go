package client

import (
	"context"
	"net/http"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
}

// AuthResponse carries a token pair and the signed-in user
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user,omitempty"`
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}
	return c.authenticate(ctx, "/auth/login", req)
}

// Register creates a new account and signs it in
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/register", req)
}

// RefreshToken exchanges a refresh token for a new token pair
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/refresh", map[string]string{
		"refreshToken": refreshToken,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body interface{}) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, apiPrefix+path, nil, body, &resp); err != nil {
		return nil, err
	}

	// Automatically set the token for future requests
	if resp.AccessToken != "" {
		c.SetToken(resp.AccessToken)
	}

	return &resp, nil
}

// GetCurrentUser retrieves the currently authenticated user
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doRequest(ctx, http.MethodGet, apiPrefix+"/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the refresh token and forgets the access token
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refreshToken": refreshToken}
	if err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/auth/logout", nil, body, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}
