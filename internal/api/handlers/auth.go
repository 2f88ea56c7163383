package handlers

import (
	"net/http"
	"time"

	"github.com/trampo-app/trampo/internal/api/dto"
	"github.com/trampo-app/trampo/internal/api/middleware"
	"github.com/trampo-app/trampo/internal/config"
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/utils"
	"github.com/trampo-app/trampo/internal/pkg/validator"
	"github.com/trampo-app/trampo/internal/services"
)

const refreshTokenCookie = "refreshToken"

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	sessions    *services.SessionService
	userService user.Service
	config      config.AuthConfig
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	sessions *services.SessionService,
	userService user.Service,
	cfg config.AuthConfig,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		sessions:    sessions,
		userService: userService,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

// Register handles sign up
// @Summary Register
// @Description Create a PRESTADOR or EMPREGADOR account and sign it in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account data"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 409 {object} utils.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	session, err := h.sessions.Register(r.Context(), user.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     user.Role(req.Role),
		Phone:    req.Phone,
		City:     req.City,
		State:    req.State,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.setCookies(w, session)
	utils.WriteSuccess(w, http.StatusCreated, authResponse(session))
}

// Login handles user login
// @Summary User login
// @Description Authenticate user with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Successfully authenticated"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	session, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).Warn("Authentication failed")
		writeError(w, r, h.logger, err)
		return
	}

	h.setCookies(w, session)
	utils.WriteSuccess(w, http.StatusOK, authResponse(session))
}

// RefreshToken rotates a refresh token
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "Refresh token, or the refreshToken cookie"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} utils.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token := h.refreshTokenFrom(r)
	if token == "" {
		utils.WriteError(w, errors.Unauthorized("Missing refresh token"))
		return
	}

	session, err := h.sessions.Refresh(r.Context(), token)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.setCookies(w, session)
	utils.WriteSuccess(w, http.StatusOK, authResponse(session))
}

// Logout revokes the refresh token and clears the cookies
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context(), h.refreshTokenFrom(r)); err != nil {
		h.logger.WithError(err).Warn("Failed to revoke refresh token")
	}

	for _, name := range []string{middleware.AccessTokenCookie, refreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			HttpOnly: true,
			Secure:   h.config.SecureCookies,
			SameSite: http.SameSiteStrictMode,
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
		})
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Logged out", nil)
}

// Me returns the authenticated user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	u, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.ToUserDTO(u))
}

func (h *AuthHandler) refreshTokenFrom(r *http.Request) string {
	var req dto.RefreshTokenRequest
	if r.Body != nil && r.ContentLength != 0 {
		_ = decodeAndValidate(r, h.validator, &req)
	}
	if req.RefreshToken != "" {
		return req.RefreshToken
	}
	if c, err := r.Cookie(refreshTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

func (h *AuthHandler) setCookies(w http.ResponseWriter, s *services.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    s.AccessToken,
		HttpOnly: true,
		Secure:   h.config.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.AccessTokenExpiry.Seconds()),
	})

	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    s.RefreshToken,
		HttpOnly: true,
		Secure:   h.config.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.RefreshTokenExpiry.Seconds()),
	})
}

func authResponse(s *services.Session) dto.AuthResponse {
	return dto.AuthResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		User:         dto.ToUserDTO(s.User),
	}
}
