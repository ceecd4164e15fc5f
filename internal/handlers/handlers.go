package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"payweek/internal/config"
	runhandlers "payweek/internal/handlers/run"
	"payweek/pkg/utils"
)

type RunHandler interface {
	Trigger(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	RunHandler RunHandler

	triggerSecret string
}

func New(cfg *config.Config, runner runhandlers.Runner) *Handlers {
	return &Handlers{
		RunHandler:    runhandlers.New(runner),
		triggerSecret: cfg.TriggerSecret,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/api/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "ok"})
	})
	r.Route("/api/payroll", func(r chi.Router) {
		r.Use(h.triggerAuth)
		r.Post("/run", h.RunHandler.Trigger)
	})

	return r
}

// triggerAuth rejects the request before any batch work when the shared
// secret is absent or mismatched.
func (h *Handlers) triggerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret := r.Header.Get("X-Trigger-Secret")
		if subtle.ConstantTimeCompare([]byte(secret), []byte(h.triggerSecret)) != 1 {
			utils.RespondWithError(w, http.StatusUnauthorized, "invalid trigger secret")
			return
		}
		next.ServeHTTP(w, r)
	})
}
