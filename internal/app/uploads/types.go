package uploads

import "io"

// Input describes one incoming file. Filename is the client's original
// name; it determines the stored object's extension but never its name.
type Input struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Uploaded echoes what clients need to reference the stored file.
type Uploaded struct {
	URL         string
	Filename    string
	Size        int64
	ContentType string
}
