// Package gateway is the HTTP client the terminal copilot uses to reach
// the backend: inventory reads, the four receiving mutations, utterance
// interpretation, transcription and the chat fallback. The wrappers are
// stateless; consistency is the dispatcher's job.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"warecopilot/copilot"
)

var (
	_ copilot.Inventory   = (*Client)(nil)
	_ copilot.Mutator     = (*Client)(nil)
	_ copilot.Chatter     = (*Client)(nil)
	_ copilot.Interpreter = (*Client)(nil)
)

// Client talks to one copilotd instance.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SearchInventory fetches committed rows; an empty filter returns everything.
func (c *Client) SearchInventory(ctx context.Context, f copilot.Filter) ([]copilot.InventoryRow, error) {
	params := url.Values{}
	for key, v := range map[string]string{
		"q":            f.Q,
		"customer":     f.Customer,
		"reference_no": f.ReferenceNo,
		"date_from":    f.DateFrom,
		"date_to":      f.DateTo,
	} {
		if v != "" {
			params.Set(key, v)
		}
	}

	var out struct {
		Rows []copilot.InventoryRow `json:"rows"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/inventory?"+params.Encode(), "Inventory", nil, &out); err != nil {
		return nil, err
	}
	return out.Rows, nil
}

// PatchLine partially updates one line; nil fields stay unchanged.
func (c *Client) PatchLine(ctx context.Context, lineID int64, fields copilot.LinePatch) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/receiving/lines/%d", lineID), "Update line", fields, nil)
}

// PatchHeader partially updates one header.
func (c *Client) PatchHeader(ctx context.Context, headerID int64, fields copilot.HeaderPatch) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/receiving/headers/%d", headerID), "Update header", fields, nil)
}

// DeleteLine removes one receiving line.
func (c *Client) DeleteLine(ctx context.Context, lineID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/receiving/lines/%d", lineID), "Delete line", nil, nil)
}

// ConfirmReceiving creates one header plus its lines as one call and
// returns the new GRN id.
func (c *Client) ConfirmReceiving(ctx context.Context, draft copilot.ReceivingDraft) (int64, error) {
	var out struct {
		Status string `json:"status"`
		GRNID  int64  `json:"grn_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/receiving/confirm", "Confirm", draft, &out); err != nil {
		return 0, err
	}
	return out.GRNID, nil
}

// Interpret sends one utterance for intent and slot extraction. The
// session id lets the backend recognize follow-up utterances.
func (c *Client) Interpret(ctx context.Context, message, sessionID string) (copilot.InterpretationResult, error) {
	body := map[string]string{"message": message, "session_id": sessionID}
	var out copilot.InterpretationResult
	if err := c.do(ctx, http.MethodPost, "/chat/interpret", "Interpret", body, &out); err != nil {
		return copilot.InterpretationResult{}, err
	}
	return out, nil
}

// ChatReply fetches a free-text reply when no structured action applies.
func (c *Client) ChatReply(ctx context.Context, message string) (string, error) {
	var out struct {
		Reply string `json:"reply"`
	}
	if err := c.do(ctx, http.MethodPost, "/chat/respond", "Chat respond", map[string]string{"message": message}, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

// Transcribe uploads a recorded clip and returns the recognized text.
func (c *Client) Transcribe(ctx context.Context, clip io.Reader, filename string) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, clip); err != nil {
		return "", fmt.Errorf("read clip: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/transcribe", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &copilot.NetworkError{Op: "Transcribe", Status: resp.StatusCode}
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode transcription: %w", err)
	}
	return out.Text, nil
}

func (c *Client) do(ctx context.Context, method, path, op string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &copilot.NetworkError{Op: op, Status: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
