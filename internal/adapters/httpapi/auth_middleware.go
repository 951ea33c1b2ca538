package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/techup/travel-explorer-api/internal/app/apperr"
	"github.com/techup/travel-explorer-api/internal/platform/auth/tokencodec"
	"github.com/techup/travel-explorer-api/internal/platform/observability"
	clockport "github.com/techup/travel-explorer-api/internal/ports/out/clock"
)

// Authenticate resolves Authorization: Bearer <token> once per request.
//
// A request without a bearer credential passes through anonymously; public
// handlers serve it, protected ones are rejected by RequireIdentity. A bearer
// credential that is present but invalid fails the request immediately, even
// on public routes: a caller who says "this is who I am" and cannot prove it
// gets a 401, not a silent downgrade to anonymous.
func Authenticate(codec *tokencodec.Codec, clk clockport.Clock, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			scheme, raw, _ := strings.Cut(header, " ")
			if scheme != "Bearer" {
				next.ServeHTTP(w, r)
				return
			}
			raw = strings.TrimSpace(raw)
			if raw == "" {
				rejectToken(w, r, log, "missing", apperr.TokenMissing())
				return
			}

			claims, err := codec.Validate(raw, clk.Now())
			if err != nil {
				reason, ae := classifyTokenError(err)
				rejectToken(w, r, log, reason, ae)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), claims.Identity())))
		})
	}
}

// RequireIdentity guards protected subtrees. It runs after Authenticate, so
// the only way to reach a guarded handler is a validated token.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			writeAppError(w, r, apperr.TokenMissing())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func rejectToken(w http.ResponseWriter, r *http.Request, log *slog.Logger, reason string, ae *apperr.Error) {
	observability.AuthFailuresTotal.WithLabelValues(reason).Inc()
	log.WarnContext(r.Context(), "token rejected",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
	)
	writeAppError(w, r, ae)
}

func classifyTokenError(err error) (string, *apperr.Error) {
	switch {
	case errors.Is(err, tokencodec.ErrExpired):
		return "expired", apperr.TokenExpired()
	case errors.Is(err, tokencodec.ErrBadSignature):
		return "bad_signature", apperr.BadSignature()
	default:
		return "malformed", apperr.TokenMalformed()
	}
}
