// Package supabase stores uploads in a Supabase Storage bucket through its
// REST API.
package supabase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/techup/travel-explorer-api/internal/ports/out/blobstore"
)

const defaultHTTPTimeout = 30 * time.Second

type Config struct {
	// URL is the project base URL, e.g. https://xyz.supabase.co.
	URL    string
	Bucket string
	APIKey string

	HTTPTimeout time.Duration
}

// Store is a Supabase Storage implementation of blobstore.Store.
type Store struct {
	cfg    Config
	client *http.Client
}

func NewStore(cfg Config) *Store {
	return NewStoreWithClient(cfg, nil)
}

func NewStoreWithClient(cfg Config, httpClient *http.Client) *Store {
	if httpClient == nil {
		timeout := cfg.HTTPTimeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Store{cfg: cfg, client: httpClient}
}

func (s *Store) Upload(ctx context.Context, obj blobstore.Object) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.objectURL(obj.Name), obj.Body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("x-upsert", "true")
	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	if obj.Size > 0 {
		req.ContentLength = obj.Size
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("supabase upload failed: status=%d", resp.StatusCode)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.cfg.URL, s.cfg.Bucket, obj.Name), nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(name), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("supabase delete failed: status=%d", resp.StatusCode)
	}
	return nil
}

func (s *Store) objectURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", s.cfg.URL, s.cfg.Bucket, name)
}
