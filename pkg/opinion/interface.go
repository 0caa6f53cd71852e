// Package opinion defines the abstraction for generating a short natural
// language security assessment of a URL from its verification signals.
package opinion

import (
	"context"
	"urlcheck/pkg/domain"
)

// Client is the abstraction for opinion providers. Implementations make a
// single attempt per call; retries are not part of this boundary.
//
//go:generate mockgen -package mockopinion -source=interface.go -destination=mock/mockopinion.go *
type Client interface {
	// Opine produces a concise assessment of the URL given the threat-list
	// and certificate signals. A returned error means no opinion is
	// available; the caller proceeds without one.
	Opine(ctx context.Context, URL string, threat domain.ThreatSignal, cert domain.CertSignal) (string, error)
}
