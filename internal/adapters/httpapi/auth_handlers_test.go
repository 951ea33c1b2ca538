package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/techup/travel-explorer-api/internal/domain"
)

func TestRegister_CreatesAccountAndIssuesToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	sess := env.register(t, "Alice@Example.com", "secret123", "  Alice   Smith ")

	if sess.Token == "" {
		t.Fatal("no token in register response")
	}
	if sess.Email != "alice@example.com" {
		t.Errorf("email=%q, want normalized", sess.Email)
	}
	if sess.DisplayName != "Alice Smith" {
		t.Errorf("displayName=%q", sess.DisplayName)
	}
	if sess.UserID <= 0 {
		t.Errorf("userId=%d", sess.UserID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.register(t, "alice@example.com", "secret123", "Alice")

	rec := env.do(t, http.MethodPost, "/api/auth/register", "",
		`{"email":"ALICE@example.com","password":"different9","displayName":"Impostor"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeErrorBody(t, rec)
	if body.Message != "Email already exists" || body.Error != "Conflict" {
		t.Errorf("body=%+v", body)
	}
}

func TestRegister_ValidationFailures(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	cases := map[string]struct {
		body  string
		field string
	}{
		"missing email":    {body: `{"password":"secret123"}`, field: "email"},
		"bad email":        {body: `{"email":"not-an-email","password":"secret123"}`, field: "email"},
		"missing password": {body: `{"email":"a@b.com"}`, field: "password"},
		"short password":   {body: `{"email":"a@b.com","password":"tiny"}`, field: "password"},
		"long displayName": {body: `{"email":"a@b.com","password":"secret123","displayName":"` + strings.Repeat("x", 101) + `"}`, field: "displayName"},
		"not json":         {body: `{{{`, field: "body"},
	}
	for name, tc := range cases {
		rec := env.do(t, http.MethodPost, "/api/auth/register", "", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status=%d body=%s", name, rec.Code, rec.Body.String())
		}
		body := decodeErrorBody(t, rec)
		if body.Message != "Validation failed" {
			t.Errorf("%s: message=%q", name, body.Message)
		}
		if _, ok := body.Errors[tc.field]; !ok {
			t.Errorf("%s: field map %v missing %q", name, body.Errors, tc.field)
		}
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.register(t, "alice@example.com", "secret123", "Alice")

	rec := env.do(t, http.MethodPost, "/api/auth/login", "",
		`{"email":"ALICE@EXAMPLE.COM","password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var sess sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sess.Token == "" || sess.Email != "alice@example.com" {
		t.Errorf("session=%+v", sess)
	}

	// The fresh token authenticates.
	if rec := env.do(t, http.MethodGet, "/api/auth/me", "Bearer "+sess.Token, ""); rec.Code != http.StatusOK {
		t.Fatalf("me status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestLogin_BadCredentialsAreIndistinguishable(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.register(t, "alice@example.com", "secret123", "Alice")

	cases := map[string]string{
		"wrong password": `{"email":"alice@example.com","password":"wrong-password"}`,
		"unknown email":  `{"email":"nobody@example.com","password":"secret123"}`,
	}
	for name, body := range cases {
		rec := env.do(t, http.MethodPost, "/api/auth/login", "", body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status=%d body=%s", name, rec.Code, rec.Body.String())
		}
		resp := decodeErrorBody(t, rec)
		if resp.Message != "Invalid email or password" {
			t.Errorf("%s: message=%q", name, resp.Message)
		}
		// No token leaks on failure.
		if strings.Contains(rec.Body.String(), `"token"`) {
			t.Errorf("%s: failure body carries a token: %s", name, rec.Body.String())
		}
	}
}

func TestMe_OmitsToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	sess := env.register(t, "alice@example.com", "secret123", "Alice")

	rec := env.do(t, http.MethodGet, "/api/auth/me", "Bearer "+sess.Token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var raw map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := raw["token"]; ok {
		t.Error("profile body carries a token")
	}
	if raw["email"] != "alice@example.com" || raw["displayName"] != "Alice" {
		t.Errorf("body=%v", raw)
	}
}

func TestMe_VanishedAccount(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	// A syntactically valid token whose account never existed: the token
	// may outlive the account, so /me re-checks liveness.
	ghost, err := env.codec.Issue(domain.Identity{UserID: 9999, Email: "ghost@example.com"}, env.clk.Now())
	if err != nil {
		t.Fatalf("issue ghost token: %v", err)
	}

	rec := env.do(t, http.MethodGet, "/api/auth/me", "Bearer "+ghost, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if body := decodeErrorBody(t, rec); body.Message != "User with id 9999 not found" {
		t.Errorf("message=%q", body.Message)
	}
}

func TestLogout(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/logout", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var msg messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Message != "Logged out successfully" {
		t.Errorf("message=%q", msg.Message)
	}
}
