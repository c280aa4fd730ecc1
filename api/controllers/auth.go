package controllers

import (
	"crypto/subtle"
	"net/http"

	"github.com/wishboard/wishboard-backend/api/responses"
	"github.com/wishboard/wishboard-backend/api/validators"
	"github.com/wishboard/wishboard-backend/pkg/config"
	"github.com/wishboard/wishboard-backend/pkg/logger"
)

type loginPayload struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

type loginSuccess struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type loginFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Login exchanges the admin credential pair for the static session token.
// Both fields are compared in constant time so the response does not reveal
// which one was wrong.
func Login(cfg config.AdminConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload loginPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		userOK := subtle.ConstantTimeCompare([]byte(payload.User), []byte(cfg.User)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(payload.Pass), []byte(cfg.Pass)) == 1
		if !userOK || !passOK {
			if logg != nil {
				logg.Warn(ctx, "login.rejected")
			}
			responses.WriteJSON(w, http.StatusForbidden, loginFailure{Success: false, Message: "invalid credentials"})
			return
		}

		if logg != nil {
			logg.Info(ctx, "login.success")
		}
		responses.WriteJSON(w, http.StatusOK, loginSuccess{Success: true, Token: cfg.SessionToken})
	}
}
