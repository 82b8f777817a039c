// Package admin drives the password-gated message inbox: verifying the admin
// password, fetching stored messages and projecting them for display.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/williambechay/portfolio/internal/backend"
	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/internal/ui/model"
)

// State is a step of the admin session.
type State int

const (
	StateUnauthenticated State = iota
	StateVerifying
	StateAuthenticated
	StateFetchingMessages
	// StateError is transient: it is entered on a failed login and
	// immediately left for StateUnauthenticated.
	StateError
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateVerifying:
		return "verifying"
	case StateAuthenticated:
		return "authenticated"
	case StateFetchingMessages:
		return "fetching_messages"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var (
	// ErrAuthFailed is returned when the backend rejects the password or
	// the verification call fails.
	ErrAuthFailed = errors.New("admin: authentication failed")
	// ErrVerifyInFlight is returned by Login while a verification is
	// outstanding.
	ErrVerifyInFlight = errors.New("admin: verification already in flight")
	// ErrFetch is returned when messages could not be loaded.
	ErrFetch = errors.New("admin: fetch messages failed")
	// ErrNotAuthenticated is returned by Refresh before a successful login.
	ErrNotAuthenticated = errors.New("admin: not authenticated")
	// ErrDiscarded is returned when a response arrives after Logout or
	// Close and is dropped.
	ErrDiscarded = errors.New("admin: response discarded")
)

// Notifier receives toasts raised by the controller.
type Notifier interface {
	Notify(model.Toast)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(model.Toast)

// Notify calls f.
func (f NotifierFunc) Notify(t model.Toast) { f(t) }

// Options configures a Controller.
type Options struct {
	Backend    backend.Backend
	Translator locale.Translator
	Notifier   Notifier
	Logger     *slog.Logger
	// OnTransition, when set, is called with the lock released after every
	// state change.
	OnTransition func(from, to State)
}

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	State           State
	Authenticated   bool
	PasswordAttempt string
	Messages        []backend.StoredMessage
}

// Verifying reports whether a login is outstanding.
func (s Snapshot) Verifying() bool { return s.State == StateVerifying }

// Controller is the admin session state machine. Messages are only ever
// held while authenticated; Logout clears everything in one step.
type Controller struct {
	backend      backend.Backend
	tr           locale.Translator
	notifier     Notifier
	logger       *slog.Logger
	onTransition func(from, to State)

	mu            sync.Mutex
	state         State
	authenticated bool
	password      string
	messages      []backend.StoredMessage
	epoch         uint64
	closed        bool
}

// New constructs a Controller in StateUnauthenticated.
func New(opts Options) *Controller {
	tr := opts.Translator
	if tr == nil {
		tr = locale.Dict{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		backend:      opts.Backend,
		tr:           tr,
		notifier:     opts.Notifier,
		logger:       logger,
		onTransition: opts.OnTransition,
	}
}

// SetPassword records the typed password attempt.
func (c *Controller) SetPassword(p string) {
	c.mu.Lock()
	c.password = p
	c.mu.Unlock()
}

// Login verifies the recorded password attempt.
func (c *Controller) Login(ctx context.Context) error {
	c.mu.Lock()
	p := c.password
	c.mu.Unlock()
	return c.LoginWith(ctx, p)
}

// LoginWith records p and verifies it. On success the session becomes
// authenticated, the attempt is cleared and messages are fetched once. On
// failure the attempt is kept and an auth toast is raised.
func (c *Controller) LoginWith(ctx context.Context, p string) error {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return ErrDiscarded
	case c.state == StateVerifying:
		c.mu.Unlock()
		return ErrVerifyInFlight
	case c.authenticated:
		c.mu.Unlock()
		return nil
	}
	c.password = p
	epoch := c.epoch
	from := c.setState(StateVerifying)
	c.mu.Unlock()
	c.transitioned(from, StateVerifying)

	var (
		verdict backend.Verification
		err     error
	)
	if c.backend == nil {
		err = errors.New("no backend configured")
	} else {
		verdict, err = c.backend.VerifyAdminPassword(ctx, p)
	}

	c.mu.Lock()
	if c.closed || epoch != c.epoch {
		c.mu.Unlock()
		return ErrDiscarded
	}
	if err != nil || !verdict.Success {
		detail := verdict.Error
		if err != nil {
			detail = err.Error()
		}
		c.setState(StateError)
		c.setState(StateUnauthenticated)
		c.mu.Unlock()
		c.transitioned(StateVerifying, StateError)
		c.transitioned(StateError, StateUnauthenticated)

		c.logger.WarnContext(ctx, "admin login rejected", "detail", detail)
		c.notify(c.authErrorToast())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrAuthFailed, err)
		}
		return ErrAuthFailed
	}

	c.authenticated = true
	c.password = ""
	c.setState(StateAuthenticated)
	c.setState(StateFetchingMessages)
	c.mu.Unlock()
	c.transitioned(StateVerifying, StateAuthenticated)
	c.transitioned(StateAuthenticated, StateFetchingMessages)

	c.logger.InfoContext(ctx, "admin login accepted")
	return c.fetch(ctx, epoch)
}

// Refresh refetches messages for an authenticated session.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrDiscarded
	}
	if !c.authenticated {
		c.mu.Unlock()
		return ErrNotAuthenticated
	}
	epoch := c.epoch
	from := c.setState(StateFetchingMessages)
	c.mu.Unlock()
	c.transitioned(from, StateFetchingMessages)
	return c.fetch(ctx, epoch)
}

func (c *Controller) fetch(ctx context.Context, epoch uint64) error {
	messages, err := c.backend.ListMessages(ctx)

	c.mu.Lock()
	if c.closed || epoch != c.epoch {
		c.mu.Unlock()
		return ErrDiscarded
	}
	if err != nil {
		c.messages = nil
		c.setState(StateAuthenticated)
		c.mu.Unlock()
		c.transitioned(StateFetchingMessages, StateAuthenticated)

		c.logger.ErrorContext(ctx, "fetch admin messages", "error", err)
		c.notify(c.fetchErrorToast())
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}
	c.messages = append([]backend.StoredMessage(nil), messages...)
	c.setState(StateAuthenticated)
	c.mu.Unlock()
	c.transitioned(StateFetchingMessages, StateAuthenticated)
	return nil
}

// Logout clears the session: authenticated flag, password attempt and
// messages. Responses still in flight are discarded.
func (c *Controller) Logout() {
	c.mu.Lock()
	c.authenticated = false
	c.password = ""
	c.messages = nil
	c.epoch++
	from := c.setState(StateUnauthenticated)
	c.mu.Unlock()
	if from != StateUnauthenticated {
		c.transitioned(from, StateUnauthenticated)
	}
}

// Close detaches the controller. Later responses are discarded and further
// logins are refused.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.epoch++
	c.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:           c.state,
		Authenticated:   c.authenticated,
		PasswordAttempt: c.password,
		Messages:        append([]backend.StoredMessage(nil), c.messages...),
	}
}

// setState must be called with mu held. It returns the previous state.
func (c *Controller) setState(next State) State {
	prev := c.state
	c.state = next
	return prev
}

func (c *Controller) transitioned(from, to State) {
	if c.onTransition != nil {
		c.onTransition(from, to)
	}
}

func (c *Controller) notify(t model.Toast) {
	if c.notifier != nil {
		c.notifier.Notify(t)
	}
}

func (c *Controller) authErrorToast() model.Toast {
	return model.Toast{
		Title:       c.tr.Lookup(locale.KeyAdminLoginErrorTitle, "Authentication Failed"),
		Description: c.tr.Lookup(locale.KeyAdminLoginError, "Incorrect password. Please try again."),
		Variant:     model.ToastDestructive,
	}
}

func (c *Controller) fetchErrorToast() model.Toast {
	return model.Toast{
		Title:       c.tr.Lookup(locale.KeyContactToastErrorTitle, "Error!"),
		Description: c.tr.Lookup(locale.KeyAdminFetchError, "Failed to fetch messages."),
		Variant:     model.ToastDestructive,
	}
}
