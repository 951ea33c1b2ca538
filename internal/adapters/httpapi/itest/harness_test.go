package itest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/techup/travel-explorer-api/internal/adapters/httpapi"
	memblobstore "github.com/techup/travel-explorer-api/internal/adapters/memory/blobstore"
	memclock "github.com/techup/travel-explorer-api/internal/adapters/memory/clock"
	memtriprepo "github.com/techup/travel-explorer-api/internal/adapters/memory/triprepo"
	memuserrepo "github.com/techup/travel-explorer-api/internal/adapters/memory/userrepo"
	postgres_testutil "github.com/techup/travel-explorer-api/internal/adapters/postgres/testutil"
	pgtriprepo "github.com/techup/travel-explorer-api/internal/adapters/postgres/triprepo"
	pguserrepo "github.com/techup/travel-explorer-api/internal/adapters/postgres/userrepo"
	"github.com/techup/travel-explorer-api/internal/app/auth"
	"github.com/techup/travel-explorer-api/internal/app/trips"
	"github.com/techup/travel-explorer-api/internal/app/uploads"
	"github.com/techup/travel-explorer-api/internal/platform/auth/passwordhash"
	"github.com/techup/travel-explorer-api/internal/platform/auth/tokencodec"
	triprepoport "github.com/techup/travel-explorer-api/internal/ports/out/triprepo"
	userrepoport "github.com/techup/travel-explorer-api/internal/ports/out/userrepo"
)

type backend string

const (
	backendMemory   backend = "memory"
	backendPostgres backend = "postgres"
)

func backendsFromEnv(t *testing.T) []backend {
	t.Helper()
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ITEST_BACKEND"))) {
	case "", "memory":
		return []backend{backendMemory}
	case "postgres":
		return []backend{backendPostgres}
	case "all":
		return []backend{backendMemory, backendPostgres}
	default:
		t.Fatalf("unknown ITEST_BACKEND value (expected memory|postgres|all)")
		return nil
	}
}

type testServer struct {
	baseURL string
	client  *http.Client
	clk     *memclock.ManualClock
}

func newTestServer(t *testing.T, b backend) *testServer {
	t.Helper()

	clk := memclock.NewManualClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))

	var (
		users    userrepoport.Repository
		tripRepo triprepoport.Repository
	)
	switch b {
	case backendPostgres:
		pool := postgres_testutil.OpenMigratedPool(t)
		users = pguserrepo.NewRepo(pool)
		tripRepo = pgtriprepo.NewRepo(pool)
	case backendMemory:
		users = memuserrepo.NewRepo()
		tripRepo = memtriprepo.NewRepo()
	default:
		t.Fatalf("unknown backend: %s", b)
	}

	codec := tokencodec.New([]byte("itest-secret"), 24*time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	authSvc := auth.NewService(users, passwordhash.New(bcrypt.MinCost), codec, clk)
	tripSvc := trips.NewService(tripRepo, users, clk)
	uploadSvc := uploads.NewService(memblobstore.NewStore(""), log)

	api := httpapi.NewServer(authSvc, tripSvc, uploadSvc, log)
	handler := httpapi.NewRouter(api, codec, clk, log)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		baseURL: srv.URL,
		client:  srv.Client(),
		clk:     clk,
	}
}

func (s *testServer) url(path string) string {
	if strings.HasPrefix(path, "/") {
		return s.baseURL + path
	}
	return s.baseURL + "/" + path
}

func (s *testServer) doJSON(t *testing.T, method string, path string, token string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.url(path), r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func (s *testServer) doMultipart(t *testing.T, path string, token string, field string, filename string, content []byte) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.url(path), &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

type session struct {
	Token       string `json:"token"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	UserID      int64  `json:"userId"`
}

func (s *testServer) register(t *testing.T, email string, password string, displayName string) session {
	t.Helper()

	status, body := s.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":       email,
		"password":    password,
		"displayName": displayName,
	})
	if status != http.StatusCreated {
		t.Fatalf("register status=%d body=%s", status, string(body))
	}
	return mustUnmarshal[session](t, body)
}

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
	Status  int               `json:"status"`
	Error   string            `json:"error"`
	Path    string            `json:"path"`
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func mustUnmarshal[T any](t *testing.T, b []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v\nbody=%s", err, string(b))
	}
	return out
}

func requireError(t *testing.T, status int, body []byte, wantStatus int, wantMessage string) {
	t.Helper()
	if status != wantStatus {
		t.Fatalf("status=%d want=%d body=%s", status, wantStatus, string(body))
	}
	got := mustUnmarshal[errorBody](t, body)
	if got.Message != wantMessage {
		t.Fatalf("message=%q want=%q body=%s", got.Message, wantMessage, string(body))
	}
	if got.Status != wantStatus || got.Error != http.StatusText(wantStatus) {
		t.Fatalf("error envelope=%+v want status=%d", got, wantStatus)
	}
}
