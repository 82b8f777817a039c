// Package backend defines the remote data collaborator used by the site: a
// contact_messages table and an admin password verification function.
package backend

import (
	"context"
	"fmt"
	"time"
)

// NewMessage is the payload inserted for one contact form submission.
// Subject and Reason may be empty strings.
type NewMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// StoredMessage is a persisted contact submission.
type StoredMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Reason    string    `json:"reason"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Verification is the outcome of an admin password check.
type Verification struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Backend is the remote collaborator.
type Backend interface {
	InsertMessage(ctx context.Context, msg NewMessage) error
	// ListMessages returns every stored message, newest first.
	ListMessages(ctx context.Context) ([]StoredMessage, error)
	VerifyAdminPassword(ctx context.Context, password string) (Verification, error)
}

// StatusError reports a non-2xx reply from the remote service.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}
