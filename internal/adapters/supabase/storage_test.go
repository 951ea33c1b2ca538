package supabase

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/techup/travel-explorer-api/internal/ports/out/blobstore"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewStoreWithClient(Config{
		URL:    srv.URL,
		Bucket: "trip-photos",
		APIKey: "test-api-key",
	}, srv.Client())
}

func TestUpload_SendsObjectAndReturnsPublicURL(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotAuth, gotUpsert, gotContentType, gotBody string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotUpsert = r.Header.Get("x-upsert")
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	})

	url, err := store.Upload(context.Background(), blobstore.Object{
		Name:        "abc123.jpg",
		ContentType: "image/jpeg",
		Size:        9,
		Body:        strings.NewReader("imagedata"),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/storage/v1/object/trip-photos/abc123.jpg" {
		t.Fatalf("request=%s %s", gotMethod, gotPath)
	}
	if gotAuth != "Bearer test-api-key" {
		t.Fatalf("auth=%q", gotAuth)
	}
	if gotUpsert != "true" {
		t.Fatalf("x-upsert=%q", gotUpsert)
	}
	if gotContentType != "image/jpeg" {
		t.Fatalf("content-type=%q", gotContentType)
	}
	if gotBody != "imagedata" {
		t.Fatalf("body=%q", gotBody)
	}
	if !strings.HasSuffix(url, "/storage/v1/object/public/trip-photos/abc123.jpg") {
		t.Fatalf("public url=%q", url)
	}
}

func TestUpload_DefaultsContentType(t *testing.T) {
	t.Parallel()

	var gotContentType string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	})

	if _, err := store.Upload(context.Background(), blobstore.Object{
		Name: "raw.bin",
		Body: strings.NewReader("data"),
	}); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if gotContentType != "application/octet-stream" {
		t.Fatalf("content-type=%q", gotContentType)
	}
}

func TestUpload_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bucket not found"}`, http.StatusNotFound)
	})

	_, err := store.Upload(context.Background(), blobstore.Object{
		Name: "abc.jpg",
		Body: strings.NewReader("x"),
	})
	if err == nil || !strings.Contains(err.Error(), "status=404") {
		t.Fatalf("err=%v, want status=404", err)
	}
}

func TestDelete_TargetsObjectPath(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotAuth string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	})

	if err := store.Delete(context.Background(), "abc123.jpg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/storage/v1/object/trip-photos/abc123.jpg" {
		t.Fatalf("request=%s %s", gotMethod, gotPath)
	}
	if gotAuth != "Bearer test-api-key" {
		t.Fatalf("auth=%q", gotAuth)
	}
}

func TestDelete_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	err := store.Delete(context.Background(), "abc123.jpg")
	if err == nil || !strings.Contains(err.Error(), "status=403") {
		t.Fatalf("err=%v, want status=403", err)
	}
}
