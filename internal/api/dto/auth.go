package dto

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Role     string `json:"role" validate:"required,oneof=PRESTADOR EMPREGADOR"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=20"`
	City     string `json:"city,omitempty" validate:"omitempty,max=100"`
	State    string `json:"state,omitempty" validate:"omitempty,uf"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         *UserDTO `json:"user"`
}

// RefreshTokenRequest represents a refresh token request. Browsers may send
// the token in the refreshToken cookie instead.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}
