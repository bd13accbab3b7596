package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dailyaura/journal-service/internal/apperr"
	"github.com/dailyaura/journal-service/internal/middleware"
	"github.com/dailyaura/journal-service/internal/service"
)

const oauthStateCookie = "oauthstate"

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.auth.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully!"})
}

// Login handles password authentication and returns a bearer token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	token, profile, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful!",
		"token":   token,
		"user":    profile,
	})
}

// Profile returns the acting user's sanitized record
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, apperr.Unauthorized("Unauthorized. Token missing."))
		return
	}
	profile, err := h.auth.Profile(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, profile)
}

// ChangePassword replaces the acting user's password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, apperr.Unauthorized("Unauthorized. Token missing."))
		return
	}
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.auth.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully!"})
}

// ForgotPassword starts the reset flow and mails a reset link
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Reset link sent to your email."})
}

// ResetPassword consumes a reset token from the path and sets a new password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	resetToken := mux.Vars(r)["token"]
	if err := h.auth.ResetPassword(r.Context(), resetToken, req.Password); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Password has been reset successfully!"})
}

// GoogleLogin redirects the client to the Google consent screen
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		Path:     "/",
	})
	http.Redirect(w, r, h.google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback completes the provider handshake, finds or creates the
// user and hands the bearer token back to the frontend. Any failure sends
// the client back to the login page.
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || r.FormValue("state") != stateCookie.Value {
		h.log.Warn("Google callback with missing or mismatched state")
		h.redirectToLogin(w, r)
		return
	}

	profile, err := h.google.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		h.log.Errorf("Google code exchange failed: %v", err)
		h.redirectToLogin(w, r)
		return
	}

	token, err := h.auth.LoginWithGoogle(r.Context(), service.GoogleProfile{
		Email: profile.Email,
		Name:  profile.Name,
	})
	if err != nil {
		h.log.Errorf("Google login failed: %v", err)
		h.redirectToLogin(w, r)
		return
	}

	http.Redirect(w, r, h.frontendURL+"/oauth-success?token="+token, http.StatusFound)
}

func (h *Handler) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.frontendURL+"/login", http.StatusFound)
}
