package checker

import (
	"strings"
	"urlcheck/pkg/domain"
)

// riskKeywords flag an AI opinion as warning about the URL. The list mixes
// English and Portuguese because the model is free to answer in either.
// Matching is case-insensitive substring search over the opinion text.
var riskKeywords = []string{ //nolint: gochecknoglobals
	"suspeito",
	"suspicious",
	"cuidado",
	"cautela",
	"caution",
	"evitar",
	"avoid",
	"perigoso",
	"dangerous",
	"phishing",
	"scam",
	"fraude",
	"fraud",
}

// ResolveStatus combines the two verification signals into a single status.
// Precedence, first match wins:
//  1. threat-list match → malicious
//  2. untrusted certificate → malicious
//  3. suspicious certificate → suspicious
//  4. checked-clean threat list with a safe or unchecked certificate → safe
//  5. neither signal checked → unknown
//  6. otherwise → safe
func ResolveStatus(threat domain.ThreatSignal, cert domain.CertSignal) domain.Status {
	switch {
	case threat.IsThreat:
		return domain.StatusMalicious
	case cert.Status == domain.StatusMalicious:
		return domain.StatusMalicious
	case cert.Status == domain.StatusSuspicious:
		return domain.StatusSuspicious
	case threat.Checked && (cert.Status == domain.StatusSafe || !cert.Checked):
		return domain.StatusSafe
	case !threat.Checked && !cert.Checked:
		return domain.StatusUnknown
	default:
		return domain.StatusSafe
	}
}

// ApplyOpinion upgrades a safe status to suspicious when the opinion text
// contains a risk keyword. The upgrade is one-directional: non-safe statuses
// pass through untouched.
func ApplyOpinion(status domain.Status, opinion string) domain.Status {
	if status != domain.StatusSafe || opinion == "" {
		return status
	}

	lower := strings.ToLower(opinion)
	for _, keyword := range riskKeywords {
		if strings.Contains(lower, keyword) {
			return domain.StatusSuspicious
		}
	}

	return status
}
