// Package storage defines the persistence interface the checker relies on.
// It abstracts the result cache so different backends (e.g. PostgreSQL) can
// provide concrete implementations and tests can substitute doubles.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"context"
	"urlcheck/pkg/domain"
)

// ScanStore is the result cache boundary. Implementations must be safe for
// concurrent use by request handlers and background revalidation tasks, and
// UpsertScan must be atomic per key (last writer wins).
type ScanStore interface {
	// ScanByHash returns the record stored under the given URL hash, or
	// (nil, nil) when no record exists. A non-nil error means the store
	// itself failed; callers must be able to tell that apart from absence.
	ScanByHash(ctx context.Context, urlHash string) (*domain.ScanRecord, error)

	// UpsertScan writes the record keyed by its URLHash, replacing any prior
	// record with the same key.
	UpsertScan(ctx context.Context, record domain.ScanRecord) error

	// Close releases resources held by the store (e.g. the connection pool).
	// After Close, the instance should not be used.
	Close() error
}
