package backend

import (
	"context"
	"errors"
)

// MessageStore persists contact messages.
type MessageStore interface {
	Insert(ctx context.Context, msg NewMessage) (StoredMessage, error)
	List(ctx context.Context) ([]StoredMessage, error)
}

// PasswordVerifier checks an admin password.
type PasswordVerifier interface {
	Verify(ctx context.Context, password string) (Verification, error)
}

// Local serves the Backend contract in-process, without HTTP.
type Local struct {
	Store    MessageStore
	Verifier PasswordVerifier
}

// InsertMessage stores msg.
func (l Local) InsertMessage(ctx context.Context, msg NewMessage) error {
	if l.Store == nil {
		return errors.New("local backend: no message store")
	}
	_, err := l.Store.Insert(ctx, msg)
	return err
}

// ListMessages returns stored messages newest first.
func (l Local) ListMessages(ctx context.Context) ([]StoredMessage, error) {
	if l.Store == nil {
		return nil, errors.New("local backend: no message store")
	}
	return l.Store.List(ctx)
}

// VerifyAdminPassword delegates to the configured verifier.
func (l Local) VerifyAdminPassword(ctx context.Context, password string) (Verification, error) {
	if l.Verifier == nil {
		return Verification{Success: false, Error: "admin password not configured"}, nil
	}
	return l.Verifier.Verify(ctx, password)
}
