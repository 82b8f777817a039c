// Package events announces stored contact messages to other services.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/williambechay/portfolio/internal/backend"
)

// DefaultSubject is the subject new contact messages are published on.
const DefaultSubject = "portfolio.contact.created"

// ContactCreated is the payload published for a stored message. The message
// body is not included.
type ContactCreated struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// NewContactCreated builds the event for msg.
func NewContactCreated(msg backend.StoredMessage) ContactCreated {
	return ContactCreated{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Reason:    msg.Reason,
		CreatedAt: msg.CreatedAt,
	}
}

// Publisher announces stored messages.
type Publisher interface {
	PublishCreated(ctx context.Context, msg backend.StoredMessage) error
	Close() error
}

// Noop discards every event.
type Noop struct{}

func (Noop) PublishCreated(context.Context, backend.StoredMessage) error { return nil }
func (Noop) Close() error { return nil }

// NATSPublisher publishes JSON events to a NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to url. An empty subject uses DefaultSubject.
func NewNATSPublisher(url, subject string, opts ...nats.Option) (*NATSPublisher, error) {
	defaults := []nats.Option{
		nats.Name("portfolio-inbox"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}
	nc, err := nats.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSPublisher{conn: nc, subject: subject}, nil
}

// Subject returns the subject events are published on.
func (p *NATSPublisher) Subject() string { return p.subject }

// PublishCreated publishes the ContactCreated event for msg.
func (p *NATSPublisher) PublishCreated(ctx context.Context, msg backend.StoredMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(NewContactCreated(msg))
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publishing to %s: %w", p.subject, err)
	}
	return nil
}

// Flush waits until published events reached the server.
func (p *NATSPublisher) Flush() error {
	return p.conn.Flush()
}

// Close drains pending events and closes the connection.
func (p *NATSPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}
