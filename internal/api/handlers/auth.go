package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zenflow/backend/internal/api/dto"
	"github.com/zenflow/backend/internal/api/middleware"
	"github.com/zenflow/backend/internal/auth"
)

type AuthHandler struct {
	authService auth.Authenticator
}

func NewAuthHandler(authService auth.Authenticator) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "All fields are required", Details: errs})
		return
	}

	user, err := h.authService.Register(r.Context(), auth.RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     req.Password,
		BusinessName: req.BusinessName,
		BusinessType: req.BusinessType,
		CEP:          req.CEP,
		Phone:        req.Phone,
	})

	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "This e-mail is already in use"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterResponse{
		Message: "Organization and user created successfully",
		User: dto.UserDTO{
			ID:    user.ID.String(),
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "E-mail and password are required", Details: errs})
		return
	}

	resp, err := h.authService.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})

	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid credentials"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		Token:   resp.Token,
		User: dto.LoginUserDTO{
			ID:    resp.User.ID.String(),
			Name:  resp.User.Name,
			Email: resp.User.Email,
		},
	})
}

// GoogleLogin signs a user in (or up) with a Google ID token. Verification
// failure of the assertion is a client error; anything past verification is
// infrastructure.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Credential == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Credential is required"})
		return
	}

	resp, err := h.authService.LoginWithGoogle(r.Context(), req.Credential)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidGoogleToken):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Google authentication failed"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.GoogleLoginResponse{
		Message: "Login successful",
		Token:   resp.Token,
		User: dto.GoogleUserDTO{
			ID:     resp.User.ID.String(),
			Name:   resp.User.Name,
			Email:  resp.User.Email,
			Avatar: resp.User.AvatarURL,
		},
	})
}

// Verify confirms that a cryptographically valid token still references a
// live account. The gate already checked the signature; this re-queries the
// store so a deleted user yields 404 instead of 200.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, dto.VerifyResponse{Valid: false, Error: "User not found"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.VerifyResponse{
		Valid: true,
		User: &dto.UserDTO{
			ID:    user.ID.String(),
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
