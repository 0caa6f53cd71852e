// Package threatlist defines the abstraction for external threat-list
// lookups used as one of the verification signals of a URL check.
package threatlist

import (
	"context"
	"urlcheck/pkg/domain"
)

// Client is the abstraction for threat-list providers. Implementations make
// a single attempt per call; retries are not part of this boundary.
//
//go:generate mockgen -package mockthreatlist -source=interface.go -destination=mock/mockthreatlist.go *
type Client interface {
	// Check queries the provider for the given URL. A returned error means
	// the signal is unusable (missing credential, timeout, transport or
	// decode failure); the caller degrades it to an unchecked signal.
	Check(ctx context.Context, URL string) (domain.ThreatSignal, error)
}
