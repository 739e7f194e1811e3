package domain

import "io"

// Representation selects how a fetched artifact is handed to the caller.
type Representation uint8

const (
	// ReprBytes returns the whole payload in memory.
	ReprBytes Representation = iota + 1
	// ReprStream returns a reader over the payload.
	ReprStream
	// ReprPath returns the path of a file holding the payload.
	ReprPath
)

// Artifact is the result of an artifact fetch in one of the three
// representations. Exactly one of the fields is populated, matching the
// representation the caller requested.
type Artifact struct {
	Bytes  []byte
	Stream io.ReadCloser
	Path   string
}
