package httpapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

type filePart struct {
	name    string
	content string
}

func (e *testEnv) doMultipart(t *testing.T, target, token, field string, parts []filePart) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		fw, err := mw.CreateFormFile(field, p.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(p.content)); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, req)
	return rec
}

func TestUploadFile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	sess := env.register(t, "alice@example.com", "secret123", "Alice")

	rec := env.doMultipart(t, "/api/files/upload", sess.Token, "file",
		[]filePart{{name: "photo.txt", content: "hello"}})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var up uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &up); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if up.Filename != "photo.txt" || up.Size != 5 {
		t.Errorf("upload=%+v", up)
	}
	if !strings.HasPrefix(up.URL, "memory://uploads/") || !strings.HasSuffix(up.URL, ".txt") {
		t.Errorf("url=%q: want a generated name keeping the extension", up.URL)
	}
	// The stored name is generated, never the client's.
	if strings.Contains(up.URL, "photo") {
		t.Errorf("url=%q leaks the client filename", up.URL)
	}
	if env.store.Len() != 1 {
		t.Errorf("store len=%d", env.store.Len())
	}
}

func TestUploadFile_Rejections(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	sess := env.register(t, "alice@example.com", "secret123", "Alice")

	// Anonymous.
	if rec := env.doMultipart(t, "/api/files/upload", "", "file",
		[]filePart{{name: "a.txt", content: "x"}}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status=%d", rec.Code)
	}

	// Empty file.
	rec := env.doMultipart(t, "/api/files/upload", sess.Token, "file",
		[]filePart{{name: "empty.txt", content: ""}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty status=%d body=%s", rec.Code, rec.Body.String())
	}
	if body := decodeErrorBody(t, rec); body.Errors["file"] == "" {
		t.Errorf("field map=%v", body.Errors)
	}

	// Wrong field name.
	rec = env.doMultipart(t, "/api/files/upload", sess.Token, "attachment",
		[]filePart{{name: "a.txt", content: "x"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("wrong field status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestUploadFiles_SkipsFailedItems(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	sess := env.register(t, "alice@example.com", "secret123", "Alice")

	rec := env.doMultipart(t, "/api/files/upload/multiple", sess.Token, "files", []filePart{
		{name: "a.txt", content: "alpha"},
		{name: "empty.txt", content: ""},
		{name: "b.txt", content: "beta"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var ups []uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &ups); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ups) != 2 || ups[0].Filename != "a.txt" || ups[1].Filename != "b.txt" {
		t.Fatalf("uploads=%+v", ups)
	}
	if env.store.Len() != 2 {
		t.Errorf("store len=%d", env.store.Len())
	}
}

func TestUploadFiles_NoParts(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	sess := env.register(t, "alice@example.com", "secret123", "Alice")

	rec := env.doMultipart(t, "/api/files/upload/multiple", sess.Token, "files", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if body := decodeErrorBody(t, rec); body.Errors["files"] == "" {
		t.Errorf("field map=%v", body.Errors)
	}
}

func TestDeleteFile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	sess := env.register(t, "alice@example.com", "secret123", "Alice")

	rec := env.doMultipart(t, "/api/files/upload", sess.Token, "file",
		[]filePart{{name: "a.txt", content: "x"}})
	var up uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &up); err != nil {
		t.Fatalf("decode upload: %v", err)
	}

	del := env.do(t, http.MethodDelete, "/api/files/upload?url="+url.QueryEscape(up.URL), "Bearer "+sess.Token, "")
	if del.Code != http.StatusNoContent {
		t.Fatalf("delete status=%d body=%s", del.Code, del.Body.String())
	}
	if env.store.Len() != 0 {
		t.Errorf("store len=%d after delete", env.store.Len())
	}

	// Blank url is a validation failure.
	blank := env.do(t, http.MethodDelete, "/api/files/upload", "Bearer "+sess.Token, "")
	if blank.Code != http.StatusBadRequest {
		t.Fatalf("blank url status=%d body=%s", blank.Code, blank.Body.String())
	}
}
