package safebrowsing_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"urlcheck/pkg/serrors"
	"urlcheck/pkg/threatlist/safebrowsing"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(fn rtFunc) *safebrowsing.Client {
	return safebrowsing.New(&http.Client{Transport: fn}, "test-key")
}

func TestClient_Check_NoMatches(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "safebrowsing.googleapis.com", r.URL.Host)
		require.Equal(t, "/v4/threatMatches:find", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Client struct {
				ClientID string `json:"clientId"`
			} `json:"client"`
			ThreatInfo struct {
				ThreatTypes      []string `json:"threatTypes"`
				PlatformTypes    []string `json:"platformTypes"`
				ThreatEntryTypes []string `json:"threatEntryTypes"`
				ThreatEntries    []struct {
					URL string `json:"url"`
				} `json:"threatEntries"`
			} `json:"threatInfo"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "urlcheck", body.Client.ClientID)
		require.Len(t, body.ThreatInfo.ThreatTypes, 4)
		require.Contains(t, body.ThreatInfo.ThreatTypes, "MALWARE")
		require.Contains(t, body.ThreatInfo.ThreatTypes, "SOCIAL_ENGINEERING")
		require.Equal(t, []string{"ANY_PLATFORM"}, body.ThreatInfo.PlatformTypes)
		require.Equal(t, []string{"URL"}, body.ThreatInfo.ThreatEntryTypes)
		require.Len(t, body.ThreatInfo.ThreatEntries, 1)
		require.Equal(t, "https://example.com", body.ThreatInfo.ThreatEntries[0].URL)

		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{}`)),
		}, nil
	})

	signal, err := c.Check(context.Background(), "https://example.com")
	require.NoError(t, err)
	require.True(t, signal.Checked)
	require.False(t, signal.IsThreat)
	require.Empty(t, signal.Threats)
}

func TestClient_Check_Matches(t *testing.T) {
	body := `{"matches":[{"threatType":"MALWARE"},{"threatType":"SOCIAL_ENGINEERING"},{}]}`
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	})

	signal, err := c.Check(context.Background(), "https://evil.example")
	require.NoError(t, err)
	require.True(t, signal.Checked)
	require.True(t, signal.IsThreat)
	require.Equal(t, []string{"MALWARE", "SOCIAL_ENGINEERING", "UNKNOWN"}, signal.Threats)
}

func TestClient_Check_MissingKey(t *testing.T) {
	c := safebrowsing.New(&http.Client{}, "")

	_, err := c.Check(context.Background(), "https://example.com")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}

func TestClient_Check_Non2xx(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadRequest,
			Body:       io.NopCloser(strings.NewReader("invalid key")),
		}, nil
	})

	_, err := c.Check(context.Background(), "https://example.com")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid key")
}

func TestClient_Check_TransportError(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})

	_, err := c.Check(context.Background(), "https://example.com")
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_Check_BadJSON(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("{not json")),
		}, nil
	})

	_, err := c.Check(context.Background(), "https://example.com")
	require.Error(t, err)
	require.Contains(t, err.Error(), "could not decode response")
}
