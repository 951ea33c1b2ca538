package triprepo

import "errors"

// ErrNotFound indicates the requested trip does not exist.
var ErrNotFound = errors.New("trip not found")
