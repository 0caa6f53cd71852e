package postgres

import (
	"encoding/json"
	"fmt"
	"time"
	"urlcheck/pkg/domain"

	"database/sql"
)

// PgScan mirrors one row of the url_scans table.
type PgScan struct {
	URLHash       string          `db:"url_hash"`
	OriginalURL   string          `db:"original_url"`
	Status        string          `db:"status"`
	AIOpinion     sql.NullString  `db:"ai_opinion"`
	ThreatDetails json.RawMessage `db:"threat_details"`
	LastCheck     time.Time       `db:"last_check"`
}

func (p *PgScan) ToDomain() (*domain.ScanRecord, error) {
	var details domain.ThreatDetails
	if len(p.ThreatDetails) > 0 {
		if err := json.Unmarshal(p.ThreatDetails, &details); err != nil {
			return nil, fmt.Errorf("could not unmarshal threat details: %w", err)
		}
	}

	return &domain.ScanRecord{
		URLHash:       p.URLHash,
		OriginalURL:   p.OriginalURL,
		Status:        domain.Status(p.Status),
		AIOpinion:     p.AIOpinion.String,
		ThreatDetails: details,
		LastCheck:     p.LastCheck,
	}, nil
}

func (p *PgScan) FromDomain(record domain.ScanRecord) error {
	details, err := json.Marshal(record.ThreatDetails)
	if err != nil {
		return fmt.Errorf("could not marshal threat details: %w", err)
	}

	*p = PgScan{
		URLHash:     record.URLHash,
		OriginalURL: record.OriginalURL,
		Status:      string(record.Status),
		AIOpinion: sql.NullString{
			String: record.AIOpinion,
			Valid:  record.AIOpinion != "",
		},
		ThreatDetails: details,
		LastCheck:     record.LastCheck,
	}

	return nil
}
