package blobstore

import (
	"context"
	"io"
)

// Object is one file to store.
type Object struct {
	// Name is the object key, already made collision-free by the caller.
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Store is a write/delete port onto an external blob service. Reads never go
// through this port: clients fetch the public URL returned by Upload.
type Store interface {
	// Upload stores obj under its name and returns its public URL.
	Upload(ctx context.Context, obj Object) (string, error)

	// Delete removes the named object.
	Delete(ctx context.Context, name string) error
}
