// Package checker implements the URL check orchestration: cache freshness
// decisions, the parallel fan-out to the verification signals, status
// resolution and background revalidation of stale records.
package checker

import (
	"context"
	"strings"
	"sync"
	"time"
	"urlcheck/internal/config"
	"urlcheck/pkg/certcheck"
	"urlcheck/pkg/domain"
	"urlcheck/pkg/logger"
	"urlcheck/pkg/metrics"
	"urlcheck/pkg/opinion"
	"urlcheck/pkg/serrors"
	"urlcheck/pkg/storage"
	"urlcheck/pkg/tasks"
	"urlcheck/pkg/threatlist"

	"go.uber.org/zap"
)

// Trigger labels for the checks_completed metric.
const (
	triggerSync       = "sync"
	triggerBackground = "background"
)

// Options configure cache freshness and the clock.
// The thresholds are typically derived from application configuration.
type Options struct {
	// FreshThreshold is the record age below which a cached result is served
	// as-is with no background work.
	FreshThreshold time.Duration
	// TTLThreshold is the record age at which a cached result stops being
	// served; ages in [FreshThreshold, TTLThreshold) are served stale while a
	// background revalidation runs.
	TTLThreshold time.Duration
	// Now overrides the clock used for age computation. Used in tests.
	Now func() time.Time
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		FreshThreshold: cfg.Checker.FreshThreshold,
		TTLThreshold:   cfg.Checker.TTLThreshold,
	}
}

// checker is the concrete implementation of the Checker interface.
// It coordinates the cache store, the verification signal clients and the
// background task runner.
type checker struct {
	options  Options
	store    storage.ScanStore
	threats  threatlist.Client
	certs    certcheck.Checker
	opinions opinion.Client
	runner   *tasks.Runner
	now      func() time.Time
}

// Check implements the freshness state machine. A cached record younger than
// FreshThreshold is returned directly. A record younger than TTLThreshold is
// returned immediately while a detached revalidation refreshes the cache. A
// miss, an expired record, a store failure or forceRecheck all lead to a
// synchronous full check.
func (c *checker) Check(ctx context.Context, URL string, forceRecheck bool) (*domain.CheckResult, error) {
	if strings.TrimSpace(URL) == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "URL is required")
	}

	normalized := Normalize(URL)
	urlHash := HashURL(normalized)
	ctx = logger.WithFields(ctx, zap.String("url_hash", urlHash))

	if forceRecheck {
		metrics.CacheLookups.WithLabelValues("forced").Inc()

		return c.fullCheck(ctx, normalized, urlHash, triggerSync), nil
	}

	record, err := c.store.ScanByHash(ctx, urlHash)
	switch {
	case err != nil:
		// Store unavailability degrades to a miss; the caller still gets a
		// live result.
		metrics.CacheLookups.WithLabelValues("error").Inc()
		logger.Warn(ctx, "cache lookup failed, performing full check", zap.Error(err))
	case record == nil:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	default:
		age := c.now().Sub(record.LastCheck)
		if age < c.options.FreshThreshold {
			metrics.CacheLookups.WithLabelValues("fresh").Inc()

			return cachedResult(record, age, false), nil
		}
		if age < c.options.TTLThreshold {
			metrics.CacheLookups.WithLabelValues("stale").Inc()
			// The revalidation outlives this request; its only effect is a
			// best-effort cache upsert and its failures are only logged.
			c.runner.Go(ctx, "revalidate", func(ctx context.Context) error {
				c.fullCheck(ctx, record.OriginalURL, urlHash, triggerBackground)

				return nil
			})

			return cachedResult(record, age, true), nil
		}
		metrics.CacheLookups.WithLabelValues("expired").Inc()
	}

	return c.fullCheck(ctx, normalized, urlHash, triggerSync), nil
}

// fullCheck runs both verification signals concurrently, joins them, resolves
// the status, asks for an opinion and persists the record. It never fails:
// every signal error degrades into the result instead.
func (c *checker) fullCheck(ctx context.Context, URL, urlHash, trigger string) *domain.CheckResult {
	started := time.Now()

	var (
		threat domain.ThreatSignal
		cert   domain.CertSignal
		wg     sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		signal, err := c.threats.Check(ctx, URL)
		if err != nil {
			metrics.SignalFailures.WithLabelValues("threat_list").Inc()
			logger.Warn(ctx, "threat list check degraded", zap.Error(err))
			signal = domain.ThreatSignal{Error: err.Error()}
		}
		threat = signal
	}()
	go func() {
		defer wg.Done()
		cert = c.certs.Check(ctx, URL)
		if !cert.Checked {
			metrics.SignalFailures.WithLabelValues("certificate").Inc()
		}
	}()
	wg.Wait()

	status := ResolveStatus(threat, cert)

	// The opinion needs both signal summaries, so it runs after the join.
	var aiOpinion string
	if text, err := c.opinions.Opine(ctx, URL, threat, cert); err != nil {
		metrics.SignalFailures.WithLabelValues("opinion").Inc()
		logger.Warn(ctx, "opinion generation degraded", zap.Error(err))
	} else {
		aiOpinion = text
	}
	status = ApplyOpinion(status, aiOpinion)

	record := domain.ScanRecord{
		URLHash:     urlHash,
		OriginalURL: URL,
		Status:      status,
		AIOpinion:   aiOpinion,
		ThreatDetails: domain.ThreatDetails{
			ThreatList:  threat,
			Certificate: cert,
		},
		LastCheck: c.now().UTC(),
	}
	// Best-effort write: the caller gets the live result either way.
	if err := c.store.UpsertScan(ctx, record); err != nil {
		metrics.StoreWriteFailures.Inc()
		logger.Error(ctx, "could not persist check result", zap.Error(err))
	}

	metrics.ChecksCompleted.WithLabelValues(string(status), trigger).Inc()
	metrics.CheckDuration.Observe(time.Since(started).Seconds())
	logger.Info(ctx, "full check completed",
		zap.String("status", string(status)),
		zap.String("trigger", trigger))

	return &domain.CheckResult{
		URL:           URL,
		URLHash:       urlHash,
		Status:        status,
		AIOpinion:     aiOpinion,
		ThreatDetails: record.ThreatDetails,
		LastCheck:     record.LastCheck,
	}
}

// cachedResult maps a stored record to the caller-facing shape.
func cachedResult(record *domain.ScanRecord, age time.Duration, recheckTriggered bool) *domain.CheckResult {
	return &domain.CheckResult{
		URL:              record.OriginalURL,
		URLHash:          record.URLHash,
		Status:           record.Status,
		AIOpinion:        record.AIOpinion,
		ThreatDetails:    record.ThreatDetails,
		LastCheck:        record.LastCheck,
		FromCache:        true,
		CacheAgeSeconds:  int64(age.Seconds()),
		RecheckTriggered: recheckTriggered,
	}
}

// New creates a Checker backed by the provided store, signal clients and
// background task runner.
func New(store storage.ScanStore,
	threats threatlist.Client,
	certs certcheck.Checker,
	opinions opinion.Client,
	runner *tasks.Runner,
	options Options) Checker {
	c := &checker{
		options:  options,
		store:    store,
		threats:  threats,
		certs:    certs,
		opinions: opinions,
		runner:   runner,
		now:      options.Now,
	}
	if c.now == nil {
		c.now = time.Now
	}

	return c
}
