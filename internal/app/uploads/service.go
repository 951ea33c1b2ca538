// Package uploads stores user-submitted files in a blob store under
// collision-free generated names.
package uploads

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/techup/travel-explorer-api/internal/app/apperr"
	"github.com/techup/travel-explorer-api/internal/ports/out/blobstore"
)

// MaxUploadSize is the per-file ceiling. Larger files are rejected before
// any bytes reach the store.
const MaxUploadSize int64 = 10 << 20

type Service struct {
	store blobstore.Store
	log   *slog.Logger

	newObjectName func(filename string) string
}

func NewService(store blobstore.Store, log *slog.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
		newObjectName: func(filename string) string {
			return uuid.NewString() + path.Ext(filename)
		},
	}
}

// SetObjectNamerForTest overrides object name generation for deterministic
// tests. It should not be used in production code.
func (s *Service) SetObjectNamerForTest(fn func(filename string) string) {
	if fn != nil {
		s.newObjectName = fn
	}
}

func (s *Service) Upload(ctx context.Context, in Input) (Uploaded, error) {
	if in.Size <= 0 {
		return Uploaded{}, apperr.Validation(map[string]string{"file": "cannot be empty"})
	}
	if in.Size > MaxUploadSize {
		return Uploaded{}, apperr.Validation(map[string]string{"file": "exceeds the 10 MiB limit"})
	}

	name := s.newObjectName(in.Filename)
	url, err := s.store.Upload(ctx, blobstore.Object{
		Name:        name,
		ContentType: in.ContentType,
		Size:        in.Size,
		Body:        in.Body,
	})
	if err != nil {
		return Uploaded{}, err
	}
	return Uploaded{
		URL:         url,
		Filename:    in.Filename,
		Size:        in.Size,
		ContentType: in.ContentType,
	}, nil
}

// UploadMany stores each file independently: failures are skipped and
// logged, not propagated, so one bad file cannot sink a batch. It only
// fails wholesale when the context is done.
func (s *Service) UploadMany(ctx context.Context, ins []Input) ([]Uploaded, error) {
	out := make([]Uploaded, 0, len(ins))
	for _, in := range ins {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		up, err := s.Upload(ctx, in)
		if err != nil {
			s.log.WarnContext(ctx, "skipping failed upload", "filename", in.Filename, "error", err)
			continue
		}
		out = append(out, up)
	}
	return out, nil
}

// Delete removes the object a public URL points at. The object name is the
// URL's last path segment; everything before it is storage-backend prefix.
func (s *Service) Delete(ctx context.Context, publicURL string) error {
	name := objectNameFromURL(publicURL)
	if name == "" {
		return apperr.Validation(map[string]string{"url": "cannot be blank"})
	}
	return s.store.Delete(ctx, name)
}

func objectNameFromURL(publicURL string) string {
	u := strings.TrimSpace(publicURL)
	if i := strings.LastIndex(u, "/"); i >= 0 {
		u = u[i+1:]
	}
	return u
}
