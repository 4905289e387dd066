package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/harborline/storefront-backend/pkg/config"
)

// Result is the structured {ok, error} shape the newsletter provider returns.
type Result struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Client posts newsletter signups to the configured provider endpoint.
type Client struct {
	providerURL string
	apiKey      string
	http        *http.Client
}

// New builds a provider client from config.
func New(cfg config.NewsletterConfig) (*Client, error) {
	if cfg.ProviderURL == "" {
		return nil, fmt.Errorf("newsletter provider url is required")
	}
	return &Client{
		providerURL: cfg.ProviderURL,
		apiKey:      cfg.APIKey,
		http: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}, nil
}

type subscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe submits the email to the provider and decodes its {ok, error} result.
// A transport failure is returned as an error; a provider rejection comes back
// in the Result with OK=false.
func (c *Client) Subscribe(ctx context.Context, email string) (*Result, error) {
	payload, err := json.Marshal(subscribeRequest{Email: email})
	if err != nil {
		return nil, fmt.Errorf("encoding subscribe request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.providerURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building subscribe request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting subscribe request: %w", err)
	}
	defer resp.Body.Close()

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// Non-JSON bodies from upstream proxies are treated as a plain failure.
		return &Result{OK: false}, nil
	}
	return &result, nil
}
