// Package groq provides an opinion.Client implementation backed by the Groq
// OpenAI-compatible chat completions API.
package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"urlcheck/pkg/domain"
	"urlcheck/pkg/opinion"
	"urlcheck/pkg/serrors"
)

const (
	defaultEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	defaultModel    = "llama3-70b-8192"

	maxTokens   = 200
	temperature = 0.3

	systemPrompt = "You are a cybersecurity expert. You analyze URLs and give " +
		"concise assessments of their safety."
)

// Client talks to the Groq chat completions API and fulfills the
// opinion.Client interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the API
	apiKey     string       // apiKey is the Groq API credential
	endpoint   string       // endpoint is the completions URL, overridable in tests
	model      string       // model is the completion model identifier
}

// Opine asks the model for a short assessment of the URL, embedding the
// threat-list and certificate outcomes in the prompt. A single attempt is
// made; any transport, decode or configuration failure is returned as an
// error for the caller to degrade.
func (c *Client) Opine(
	ctx context.Context,
	URL string,
	threat domain.ThreatSignal,
	cert domain.CertSignal,
) (string, error) {
	if c.apiKey == "" {
		return "", serrors.With(serrors.ErrUnavailable, "API key not configured")
	}

	// https://console.groq.com/docs/api-reference#chat
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type completionReq struct {
		Model       string    `json:"model"`
		Messages    []message `json:"messages"`
		MaxTokens   int       `json:"max_tokens"`
		Temperature float64   `json:"temperature"`
	}

	bodyBytes, err := json.Marshal(completionReq{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(URL, threat, cert)},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost,
		c.endpoint,
		strings.NewReader(string(bodyBytes)))
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion failed: %s", strings.TrimSpace(string(b)))
	}

	// successful
	var completionResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(b, &completionResp); err != nil {
		return "", fmt.Errorf("could not decode response: %w", err)
	}
	if len(completionResp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices in response")
	}

	return strings.TrimSpace(completionResp.Choices[0].Message.Content), nil
}

// userPrompt renders the verification outcomes into the analysis request sent
// to the model.
func userPrompt(URL string, threat domain.ThreatSignal, cert domain.CertSignal) string {
	threatDesc := "Not checked"
	switch {
	case threat.IsThreat:
		threatDesc = "Threat detected: " + strings.Join(threat.Threats, ", ")
	case threat.Checked:
		threatDesc = "No threats detected"
	}

	certDesc := "Not checked"
	if cert.Checked {
		switch {
		case !cert.HasSSL:
			certDesc = "Site does not use HTTPS"
		case cert.Status == domain.StatusMalicious:
			certDesc = "Certificate invalid or untrusted"
		case cert.Status == domain.StatusSuspicious:
			certDesc = cert.Reason
			if certDesc == "" {
				certDesc = "Certificate problem"
			}
		default:
			issuer := cert.Issuer
			if issuer == "" {
				issuer = "unknown"
			}
			certDesc = "Valid (issued by " + issuer + ")"
		}
	}

	return fmt.Sprintf(`Analyze this URL and give a concise opinion on its safety.

URL: %s

Verification results:
- Threat list lookup: %s
- SSL certificate: %s

Answer concisely (2-3 sentences at most).
Based on the results above, state whether the URL is SAFE, SUSPICIOUS or DANGEROUS.
Also consider the domain, URL structure, and common phishing/scam patterns.
Use words like "safe", "suspicious", "caution" or "dangerous" in your answer.`,
		URL, threatDesc, certDesc)
}

// Ensure Client conforms to the opinion.Client interface at compile time.
var _ opinion.Client = (*Client)(nil)

// New constructs a Client that uses the provided http.Client, API key and
// model. An empty model selects the default. The http.Client carries the
// per-attempt timeout.
func New(httpClient *http.Client, apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}

	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		model:      model,
	}
}

// NewWithEndpoint is like New but targets a custom endpoint. An empty
// endpoint selects the public API.
func NewWithEndpoint(httpClient *http.Client, apiKey, model, endpoint string) *Client {
	c := New(httpClient, apiKey, model)
	if endpoint != "" {
		c.endpoint = endpoint
	}

	return c
}
