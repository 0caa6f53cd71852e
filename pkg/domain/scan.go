package domain

import "time"

// Status classifies the overall safety of a URL.
type Status string

const (
	// StatusSafe indicates no signal reported a problem.
	StatusSafe Status = "safe"
	// StatusSuspicious indicates at least one weak negative signal (expired
	// certificate, missing HTTPS, risk wording in the AI opinion).
	StatusSuspicious Status = "suspicious"
	// StatusMalicious indicates a strong negative signal (threat-list match or
	// an untrusted certificate).
	StatusMalicious Status = "malicious"
	// StatusUnknown indicates no signal could be verified.
	StatusUnknown Status = "unknown"
	// StatusAnalyzing is reserved for in-flight signaling. It is never written
	// to the store by this service.
	StatusAnalyzing Status = "analyzing"
)

// ThreatSignal is the outcome of the threat-list check for a URL.
type ThreatSignal struct {
	// Checked reports whether the threat-list service was reached and answered.
	Checked bool `json:"checked"`
	// IsThreat is true when the service listed one or more matches.
	IsThreat bool `json:"is_threat,omitempty"`
	// Threats holds the matched threat category names.
	Threats []string `json:"threats,omitempty"`
	// Error describes why the check degraded when Checked is false.
	Error string `json:"error,omitempty"`
}

// CertSignal is the outcome of the TLS certificate check for a URL.
type CertSignal struct {
	// Checked reports whether the handshake produced a usable classification.
	Checked bool `json:"checked"`
	// HasSSL is true when the URL uses HTTPS and a handshake was attempted.
	HasSSL bool `json:"has_ssl"`
	// Status is the classification derived from the handshake outcome.
	Status Status `json:"status"`
	// Reason explains non-safe classifications.
	Reason string `json:"reason,omitempty"`
	// Issuer is the certificate issuer organization (or common name).
	Issuer string `json:"issuer,omitempty"`
	// Subject is the certificate subject common name.
	Subject string `json:"subject,omitempty"`
	// Expiry is the certificate NotAfter timestamp; zero when unavailable.
	Expiry time.Time `json:"expiry,omitzero"`
	// Error describes the failure when the signal is unusable.
	Error string `json:"error,omitempty"`
}

// ThreatDetails bundles the raw signal outputs stored alongside a scan record
// for observability. It is persisted as-is and not re-validated on read.
type ThreatDetails struct {
	ThreatList  ThreatSignal `json:"threat_list"`
	Certificate CertSignal   `json:"certificate"`
}

// ScanRecord is the persisted result of the last full check of a URL.
// Records are keyed by URLHash, upserted in place and never deleted.
type ScanRecord struct {
	// URLHash is the SHA-256 hex digest of the normalized URL.
	URLHash string `json:"url_hash"`
	// OriginalURL is the normalized URL as last checked.
	OriginalURL string `json:"original_url"`
	// Status is the resolved classification of the last full check.
	Status Status `json:"status"`
	// AIOpinion is the last language-model verdict, empty when unavailable.
	AIOpinion string `json:"ai_opinion,omitempty"`
	// ThreatDetails holds the raw signal outputs of the last full check.
	ThreatDetails ThreatDetails `json:"threat_details"`
	// LastCheck is the UTC time this record was last written.
	LastCheck time.Time `json:"last_check"`
}

// CheckResult is what a check returns to the caller. It is derived from a
// ScanRecord or from a freshly computed full check and is not persisted.
type CheckResult struct {
	URL           string        `json:"url"`
	URLHash       string        `json:"url_hash"`
	Status        Status        `json:"status"`
	AIOpinion     string        `json:"ai_opinion,omitempty"`
	ThreatDetails ThreatDetails `json:"threat_details"`
	LastCheck     time.Time     `json:"last_check"`

	// FromCache is true when the result was served from the store.
	FromCache bool `json:"from_cache"`
	// CacheAgeSeconds is the record age at serve time; only set with FromCache.
	CacheAgeSeconds int64 `json:"cache_age_seconds,omitempty"`
	// RecheckTriggered is true when a background revalidation was scheduled.
	RecheckTriggered bool `json:"recheck_triggered,omitempty"`
}
