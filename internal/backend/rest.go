package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/williambechay/portfolio/logging"
)

const (
	messagesPath = "/rest/v1/contact_messages"
	verifyPath   = "/functions/v1/verify-admin-password"
	maxBodyBytes = 4 << 20
)

// RESTClient talks to a PostgREST-style table endpoint and an edge function
// endpoint under the same base URL.
type RESTClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// InsertMessage posts one row to contact_messages.
func (c RESTClient) InsertMessage(ctx context.Context, msg NewMessage) error {
	body, err := json.Marshal([]NewMessage{msg})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, messagesPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=minimal")
	_, err = c.do(req, "insert message")
	return err
}

// ListMessages fetches every row ordered by created_at descending.
func (c RESTClient) ListMessages(ctx context.Context) ([]StoredMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, messagesPath+"?select=*&order=created_at.desc", nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req, "list messages")
	if err != nil {
		return nil, err
	}
	var messages []StoredMessage
	if err := json.Unmarshal(body, &messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return messages, nil
}

// VerifyAdminPassword invokes the verification function. A 401 reply that
// still carries a JSON verdict is returned as a Verification, not an error.
func (c RESTClient) VerifyAdminPassword(ctx context.Context, password string) (Verification, error) {
	body, err := json.Marshal(map[string]string{"password": password})
	if err != nil {
		return Verification{}, fmt.Errorf("encode password: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, verifyPath, bytes.NewReader(body))
	if err != nil {
		return Verification{}, err
	}
	payload, err := c.do(req, "verify admin password")
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
		payload, err = []byte(statusErr.Body), nil
	}
	if err != nil {
		return Verification{}, err
	}
	var result Verification
	if err := json.Unmarshal(payload, &result); err != nil {
		return Verification{}, fmt.Errorf("decode verification: %w", err)
	}
	return result, nil
}

func (c RESTClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return nil, errors.New("backend base url is required")
	}
	req, err := http.NewRequestWithContext(ctx, method, base+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key := strings.TrimSpace(c.APIKey); key != "" {
		req.Header.Set("apikey", key)
		req.Header.Set("Authorization", "Bearer "+key)
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(logging.RequestIDHeader, id)
	}
	return req, nil
}

func (c RESTClient) do(req *http.Request, op string) ([]byte, error) {
	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", op, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
