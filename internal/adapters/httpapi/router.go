package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/techup/travel-explorer-api/internal/platform/auth/tokencodec"
	"github.com/techup/travel-explorer-api/internal/platform/observability"
	clockport "github.com/techup/travel-explorer-api/internal/ports/out/clock"
)

// NewRouter assembles the full HTTP surface: operational endpoints at the
// root, the API under /api behind the authentication gate, and the
// protected subtree behind RequireIdentity.
func NewRouter(s *Server, codec *tokencodec.Codec, clk clockport.Clock, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery sits inside Metrics so a recovered panic is still counted
	// as a 500 by both the request log and the counters.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLogger(log))
	r.Use(observability.Metrics)
	r.Use(Recovery(log))

	// Infra endpoints stay outside /api and outside authentication.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(Authenticate(codec, clk, log))

		api.Post("/auth/register", s.handleRegister)
		api.Post("/auth/login", s.handleLogin)
		api.Post("/auth/logout", s.handleLogout)

		api.Get("/trips", s.handleListTrips)
		api.Get("/trips/search", s.handleSearchTrips)
		api.Get("/trips/{tripID}", s.handleGetTrip)

		api.Group(func(priv chi.Router) {
			priv.Use(RequireIdentity)

			priv.Get("/auth/me", s.handleMe)

			priv.Get("/trips/mine", s.handleMyTrips)
			priv.Post("/trips", s.handleCreateTrip)
			priv.Put("/trips/{tripID}", s.handleUpdateTrip)
			priv.Delete("/trips/{tripID}", s.handleDeleteTrip)

			priv.Post("/files/upload", s.handleUploadFile)
			priv.Post("/files/upload/multiple", s.handleUploadFiles)
			priv.Delete("/files/upload", s.handleDeleteFile)
		})
	})

	return r
}
