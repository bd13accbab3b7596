package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dailyaura/journal-service/internal/middleware"
	"github.com/dailyaura/journal-service/internal/token"
)

// NewRouter wires all routes. Protected routes sit behind the bearer-token
// middleware on a subrouter.
func NewRouter(h *Handler, issuer *token.Issuer) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("server is running"))
	}).Methods("GET")

	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/forgot-password", h.ForgotPassword).Methods("POST")
	r.HandleFunc("/reset-password/{token}", h.ResetPassword).Methods("POST")
	r.HandleFunc("/auth/google", h.GoogleLogin).Methods("GET")
	r.HandleFunc("/auth/google/callback", h.GoogleCallback).Methods("GET")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.Auth(issuer))
	authRouter.HandleFunc("/profile", h.Profile).Methods("GET")
	authRouter.HandleFunc("/change-password", h.ChangePassword).Methods("PUT")
	authRouter.HandleFunc("/journal", h.SaveJournal).Methods("POST")
	authRouter.HandleFunc("/journal", h.ListJournal).Methods("GET")

	return r
}
