package httpapi

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/techup/travel-explorer-api/internal/app/apperr"
	"github.com/techup/travel-explorer-api/internal/app/auth"
	"github.com/techup/travel-explorer-api/internal/app/trips"
	"github.com/techup/travel-explorer-api/internal/app/uploads"
	"github.com/techup/travel-explorer-api/internal/domain"
)

// Server is the HTTP adapter: it decodes requests, delegates to the
// application services, and renders their results. All policy (validation
// beyond shape, ownership, uniqueness) lives in the services.
type Server struct {
	auth    *auth.Service
	trips   *trips.Service
	uploads *uploads.Service
	log     *slog.Logger
}

func NewServer(authSvc *auth.Service, tripsSvc *trips.Service, uploadsSvc *uploads.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{auth: authSvc, trips: tripsSvc, uploads: uploadsSvc, log: log}
}

// --- auth ---

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, apperr.Validation(validationFields(err)))
		return
	}

	sess, err := s.auth.Register(r.Context(), auth.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSessionResponse(sess))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, apperr.Validation(validationFields(err)))
		return
	}

	sess, err := s.auth.Login(r.Context(), auth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

// handleLogout exists for client symmetry. Tokens are not tracked server
// side, so there is nothing to revoke; clients discard their copy.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeAppError(w, r, apperr.TokenMissing())
		return
	}

	// Re-load the account: the token may outlive it.
	u, err := s.auth.CurrentUser(r.Context(), id.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileResponse(u))
}

// --- trips ---

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	ts, err := s.trips.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripSummaryList(ts))
}

func (s *Server) handleSearchTrips(w http.ResponseWriter, r *http.Request) {
	ts, err := s.trips.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripSummaryList(ts))
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := tripIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	d, err := s.trips.Get(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripDetailResponse(d))
}

func (s *Server) handleMyTrips(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeAppError(w, r, apperr.TokenMissing())
		return
	}

	ds, err := s.trips.ListMine(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripDetailList(ds))
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeAppError(w, r, apperr.TokenMissing())
		return
	}

	var req tripCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, apperr.Validation(validationFields(err)))
		return
	}

	d, err := s.trips.Create(r.Context(), id, req.toInput())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTripDetailResponse(d))
}

func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeAppError(w, r, apperr.TokenMissing())
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req tripUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	d, err := s.trips.Update(r.Context(), id, tripID, req.toInput())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripDetailResponse(d))
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeAppError(w, r, apperr.TokenMissing())
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.trips.Delete(r.Context(), id, tripID); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Trip deleted successfully"})
}

// --- files ---

func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, apperr.Validation(map[string]string{"file": "must be a multipart upload"}))
		return
	}
	defer file.Close()

	up, err := s.uploads.Upload(r.Context(), uploadInput(file, header))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newUploadResponse(up))
}

func (s *Server) handleUploadFiles(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		s.writeError(w, r, apperr.Validation(map[string]string{"files": "must be a multipart upload"}))
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		s.writeError(w, r, apperr.Validation(map[string]string{"files": "cannot be empty"}))
		return
	}

	ins := make([]uploads.Input, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			s.log.WarnContext(r.Context(), "skipping unreadable upload part", "filename", h.Filename, "error", err)
			continue
		}
		defer f.Close()
		ins = append(ins, uploadInput(f, h))
	}

	ups, err := s.uploads.UploadMany(r.Context(), ins)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newUploadResponseList(ups))
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	if err := s.uploads.Delete(r.Context(), r.URL.Query().Get("url")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- helpers ---

// maxMultipartMemory bounds how much of a parsed multipart body stays in
// memory; the rest spills to temp files.
const maxMultipartMemory = 8 << 20

func uploadInput(f multipart.File, h *multipart.FileHeader) uploads.Input {
	return uploads.Input{
		Filename:    h.Filename,
		ContentType: h.Header.Get("Content-Type"),
		Size:        h.Size,
		Body:        f,
	}
}

func tripIDParam(r *http.Request) (domain.TripID, error) {
	raw := chi.URLParam(r, "tripID")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, apperr.Validation(map[string]string{"tripID": "must be a positive integer"})
	}
	return domain.TripID(n), nil
}

// writeError classifies err and renders it. Anything outside the taxonomy
// becomes a generic 500; the cause is logged here and nowhere else, so
// internal detail never reaches a client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ae := apperr.Classify(err)
	if ae.Kind == apperr.KindInternal {
		s.log.ErrorContext(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
		)
	}
	writeAppError(w, r, ae)
}
