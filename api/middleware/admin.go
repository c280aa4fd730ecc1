package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/wishboard/wishboard-backend/api/responses"
	"github.com/wishboard/wishboard-backend/pkg/config"
	pkgerrors "github.com/wishboard/wishboard-backend/pkg/errors"
	"github.com/wishboard/wishboard-backend/pkg/logger"
)

// Admin gates privileged routes behind the static session token. The token is
// handed out by the login endpoint; a missing or mismatched credential is a
// 403, not a 401, so the client treats both identically.
func Admin(cfg config.AdminConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}

			if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(cfg.SessionToken)) != 1 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "invalid session token"))
				return
			}

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithActor(ctx, "admin")
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
