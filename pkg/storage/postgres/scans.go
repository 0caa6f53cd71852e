package postgres

import (
	"context"
	"fmt"
	"urlcheck/pkg/domain"

	"github.com/doug-martin/goqu/v9"
)

const (
	scansTable = "url_scans"
)

// ScanByHash fetches the record stored under the given URL hash.
// Returns (nil, nil) when no record exists.
func (p *PgSQL) ScanByHash(ctx context.Context, urlHash string) (*domain.ScanRecord, error) {
	var row PgScan
	found, err := p.Builder.From(scansTable).
		Where(goqu.I("url_hash").Eq(urlHash)).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch scan by hash from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// UpsertScan inserts the record or replaces the existing row with the same
// url_hash. The write is atomic per key at the database layer.
func (p *PgSQL) UpsertScan(ctx context.Context, record domain.ScanRecord) error {
	var row PgScan
	if err := row.FromDomain(record); err != nil {
		return err
	}

	_, err := p.Builder.Insert(scansTable).
		Rows(row).
		OnConflict(goqu.DoUpdate("url_hash", goqu.Record{
			"original_url":   row.OriginalURL,
			"status":         row.Status,
			"ai_opinion":     row.AIOpinion,
			"threat_details": row.ThreatDetails,
			"last_check":     row.LastCheck,
		})).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not upsert scan into pg: %w", err)
	}

	return nil
}
