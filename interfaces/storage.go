package interfaces

import (
	"context"
	"errors"
)

// Common errors returned by record stores.
var (
	ErrRecordNotFound     = errors.New("deployment record not found")
	ErrBackendUnavailable = errors.New("storage backend unavailable")
)

// RecordStore persists a DeploymentRecord. Save replaces any previous record.
type RecordStore interface {
	Save(ctx context.Context, record *DeploymentRecord) error

	// Available reports whether the backend can currently be reached.
	Available(ctx context.Context) bool

	// Name returns a short identifier for logs.
	Name() string

	// LocationURI returns the URI the store was created from, with credentials redacted.
	LocationURI() string
}

// RecordLoader is implemented by stores that can read back the last saved record.
type RecordLoader interface {
	Load(ctx context.Context) (*DeploymentRecord, error)
}
