// Package shopify is the future remote catalog path: a thin Storefront
// GraphQL API client. The storefront runs entirely on local data until a
// store domain and access token are configured.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ErrNotConfigured is returned by Fetch when no store credentials are set.
var ErrNotConfigured = errors.New("shopify is not configured")

const apiVersion = "2024-01"

type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *log.Logger
}

// New builds a client from the store domain (your-store.myshopify.com) and a
// Storefront API access token. Either may be empty; the client then reports
// itself as not configured.
func New(domain, token string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	c := &Client{
		token:  token,
		http:   &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
	if domain != "" {
		c.endpoint = fmt.Sprintf("https://%s/api/%s/graphql.json", domain, apiVersion)
	}
	return c
}

// Enabled reports whether credentials are present.
func (c *Client) Enabled() bool {
	return c.endpoint != "" && c.token != ""
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// Fetch executes one GraphQL query and returns the raw data payload.
func (c *Client) Fetch(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storefront api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storefront api: unexpected status %d", resp.StatusCode)
	}

	var out graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Errors) > 0 {
		c.logger.Printf("shopify: api error: %s", out.Errors[0].Message)
		return nil, fmt.Errorf("storefront api: %s", out.Errors[0].Message)
	}
	return out.Data, nil
}
