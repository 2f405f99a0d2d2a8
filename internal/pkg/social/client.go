// Package social posts publish announcements to the configured social
// feed endpoint.
package social

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pressroom/newshub/internal/pkg/env"
)

const defaultTimeout = 10 * time.Second

// Client talks to the social feed API.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

type postRequest struct {
	Text string `json:"text"`
	Link string `json:"link,omitempty"`
}

type postResponse struct {
	ID     string   `json:"id"`
	Errors []string `json:"errors,omitempty"`
}

// NewClient builds a client from the environment. The endpoint and API
// key come from SOCIAL_API_ENDPOINT and SOCIAL_API_KEY.
func NewClient() *Client {
	return &Client{
		endpoint: env.GetEnv("SOCIAL_API_ENDPOINT", ""),
		apiKey:   env.GetEnv("SOCIAL_API_KEY", ""),
		http:     &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientWith builds a client with explicit settings, used by tests.
func NewClientWith(endpoint, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{endpoint: endpoint, apiKey: apiKey, http: httpClient}
}

// Configured reports whether the client has credentials to post with.
func (c *Client) Configured() bool {
	return c.endpoint != "" && c.apiKey != ""
}

// Publish posts a status update with an optional link.
func (c *Client) Publish(text, link string) error {
	if !c.Configured() {
		return fmt.Errorf("social API is not configured")
	}
	if text == "" {
		return fmt.Errorf("post text is empty")
	}

	body, err := json.Marshal(postRequest{Text: text, Link: link})
	if err != nil {
		return fmt.Errorf("failed to encode post: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to social API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("social API returned status %d", resp.StatusCode)
	}

	var response postResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode social API response: %v", err)
	}
	if len(response.Errors) > 0 {
		return fmt.Errorf("social API rejected post: %v", response.Errors)
	}

	return nil
}
