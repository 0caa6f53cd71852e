package checker

import (
	"context"
	"urlcheck/pkg/domain"
)

//go:generate mockgen -package mockchecker -source=interface.go -destination=mock/mockchecker.go *
type Checker interface {
	// Check determines the reputation of the URL, serving from the cache when
	// a fresh enough record exists and performing a full verification
	// otherwise. forceRecheck bypasses the cache entirely. It only errors on
	// invalid input; degraded signals and store failures never surface here.
	Check(ctx context.Context, URL string, forceRecheck bool) (*domain.CheckResult, error)
}
