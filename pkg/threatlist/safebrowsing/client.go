// Package safebrowsing provides a threatlist.Client implementation backed by
// the Google Safe Browsing v4 lookup API.
package safebrowsing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"urlcheck/pkg/domain"
	"urlcheck/pkg/serrors"
	"urlcheck/pkg/threatlist"
)

const (
	defaultEndpoint = "https://safebrowsing.googleapis.com/v4/threatMatches:find"

	clientID      = "urlcheck"
	clientVersion = "1.0.0"
)

// threatTypes is the fixed category set requested on every lookup.
var threatTypes = []string{ //nolint: gochecknoglobals
	"MALWARE",
	"SOCIAL_ENGINEERING",
	"UNWANTED_SOFTWARE",
	"POTENTIALLY_HARMFUL_APPLICATION",
}

// Client talks to the Safe Browsing REST API and fulfills the
// threatlist.Client interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the API
	apiKey     string       // apiKey is the Safe Browsing API credential
	endpoint   string       // endpoint is the lookup URL, overridable in tests
}

// Check submits the URL to the threatMatches:find endpoint requesting the
// fixed category set over any platform. A single attempt is made; any
// transport, decode or configuration failure is returned as an error for the
// caller to degrade.
func (c *Client) Check(ctx context.Context, URL string) (domain.ThreatSignal, error) {
	if c.apiKey == "" {
		return domain.ThreatSignal{}, serrors.With(serrors.ErrUnavailable, "API key not configured")
	}

	// https://developers.google.com/safe-browsing/v4/lookup-api
	type threatEntry struct {
		URL string `json:"url"`
	}
	type findReq struct {
		Client struct {
			ClientID      string `json:"clientId"`
			ClientVersion string `json:"clientVersion"`
		} `json:"client"`
		ThreatInfo struct {
			ThreatTypes      []string      `json:"threatTypes"`
			PlatformTypes    []string      `json:"platformTypes"`
			ThreatEntryTypes []string      `json:"threatEntryTypes"`
			ThreatEntries    []threatEntry `json:"threatEntries"`
		} `json:"threatInfo"`
	}

	var body findReq
	body.Client.ClientID = clientID
	body.Client.ClientVersion = clientVersion
	body.ThreatInfo.ThreatTypes = threatTypes
	body.ThreatInfo.PlatformTypes = []string{"ANY_PLATFORM"}
	body.ThreatInfo.ThreatEntryTypes = []string{"URL"}
	body.ThreatInfo.ThreatEntries = []threatEntry{{URL: URL}}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return domain.ThreatSignal{}, fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost,
		c.endpoint+"?key="+c.apiKey,
		strings.NewReader(string(bodyBytes)))
	if err != nil {
		return domain.ThreatSignal{}, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ThreatSignal{}, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ThreatSignal{}, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.ThreatSignal{}, fmt.Errorf("lookup failed: %s", strings.TrimSpace(string(b)))
	}

	// successful
	var findResp struct {
		Matches []struct {
			ThreatType string `json:"threatType"`
		} `json:"matches"`
	}
	if err := json.Unmarshal(b, &findResp); err != nil {
		return domain.ThreatSignal{}, fmt.Errorf("could not decode response: %w", err)
	}

	if len(findResp.Matches) == 0 {
		return domain.ThreatSignal{Checked: true}, nil
	}

	threats := make([]string, 0, len(findResp.Matches))
	for _, m := range findResp.Matches {
		t := m.ThreatType
		if t == "" {
			t = "UNKNOWN"
		}
		threats = append(threats, t)
	}

	return domain.ThreatSignal{
		Checked:  true,
		IsThreat: true,
		Threats:  threats,
	}, nil
}

// Ensure Client conforms to the threatlist.Client interface at compile time.
var _ threatlist.Client = (*Client)(nil)

// New constructs a Client that uses the provided http.Client and API key.
// The http.Client carries the per-attempt timeout.
func New(httpClient *http.Client, apiKey string) *Client {
	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
	}
}

// NewWithEndpoint is like New but targets a custom endpoint. An empty
// endpoint selects the public API.
func NewWithEndpoint(httpClient *http.Client, apiKey, endpoint string) *Client {
	c := New(httpClient, apiKey)
	if endpoint != "" {
		c.endpoint = endpoint
	}

	return c
}
