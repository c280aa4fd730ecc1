package controllers

import (
	"context"
	"net/http"

	"github.com/wishboard/wishboard-backend/api/responses"
	"github.com/wishboard/wishboard-backend/pkg/config"
	"github.com/wishboard/wishboard-backend/pkg/logger"
)

// StorePinger reports whether the backing document store is reachable.
type StorePinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Wishboard-Env", cfg.App.Env)
		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, pinger StorePinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Wishboard-Env", cfg.App.Env)

		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
