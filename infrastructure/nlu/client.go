// Package nlu talks to the remote interpretation service that owns
// intent extraction and free-text replies. The model itself never runs
// in this process.
package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"warecopilot/frontend/chat"
)

type Client struct {
	baseURL string
	httpc   *http.Client
}

var (
	_ chat.Extractor = (*Client)(nil)
	_ chat.Responder = (*Client)(nil)
)

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Extract asks the remote service for intent, slots and missing slot
// names.
func (c *Client) Extract(ctx context.Context, message string) (chat.Extraction, error) {
	var out chat.Extraction
	err := c.post(ctx, "/extract", map[string]string{"message": message}, &out)
	return out, err
}

// Respond generates a conversational reply for messages without a
// structured action.
func (c *Client) Respond(ctx context.Context, message string) (string, error) {
	var out struct {
		Reply string `json:"reply"`
	}
	if err := c.post(ctx, "/respond", map[string]string{"message": message}, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("nlu request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("nlu %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
