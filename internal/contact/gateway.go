package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/williambechay/portfolio/internal/backend"
	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/internal/ui/model"
)

var (
	// ErrSubmitInFlight is returned when Submit is called while an earlier
	// call on the same gateway has not finished.
	ErrSubmitInFlight = errors.New("contact: submission already in flight")
	// ErrSubmit wraps backend failures.
	ErrSubmit = errors.New("contact: submission failed")
)

// DefaultTimeout bounds a single backend insert.
const DefaultTimeout = 10 * time.Second

// Result is the outcome of Submit. A nil Err means the message was stored.
type Result struct {
	Err error
}

// OK reports whether the submission succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Options configures a Gateway.
type Options struct {
	Backend backend.Backend
	Timeout time.Duration
	Logger  *slog.Logger
}

// Gateway submits contact messages. One Gateway serves one form instance:
// at most one submission is outstanding at a time and failures are never
// retried automatically.
type Gateway struct {
	backend    backend.Backend
	timeout    time.Duration
	logger     *slog.Logger
	submitting atomic.Bool
}

// NewGateway constructs a Gateway.
func NewGateway(opts Options) *Gateway {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{backend: opts.Backend, timeout: timeout, logger: logger}
}

// Submitting reports whether a submission is outstanding.
func (g *Gateway) Submitting() bool {
	return g.submitting.Load()
}

// Submit validates s and, when valid, inserts it with a single backend call.
func (g *Gateway) Submit(ctx context.Context, s Submission) Result {
	if !g.submitting.CompareAndSwap(false, true) {
		return Result{Err: ErrSubmitInFlight}
	}
	defer g.submitting.Store(false)

	if err := Validate(s); err != nil {
		return Result{Err: err}
	}
	if g.backend == nil {
		return Result{Err: fmt.Errorf("%w: no backend configured", ErrSubmit)}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	if err := g.backend.InsertMessage(ctx, s.Payload()); err != nil {
		g.logger.ErrorContext(ctx, "contact submission failed", "error", err)
		return Result{Err: fmt.Errorf("%w: %w", ErrSubmit, err)}
	}
	g.logger.InfoContext(ctx, "contact submission stored", "reason", string(s.Reason))
	return Result{}
}

// SuccessToast is shown after a stored submission.
func SuccessToast(t locale.Translator) model.Toast {
	return model.Toast{
		Title:       t.Lookup(locale.KeyContactToastSuccessTitle, "Message Sent!"),
		Description: t.Lookup(locale.KeyContactToastSuccessDesc, "Thank you for your message. I will get back to you shortly."),
		Variant:     model.ToastDefault,
	}
}

// ErrorToast is shown after any failed submission.
func ErrorToast(t locale.Translator) model.Toast {
	return model.Toast{
		Title:       t.Lookup(locale.KeyContactToastErrorTitle, "Error!"),
		Description: t.Lookup(locale.KeyContactToastErrorDesc, "Your message could not be sent. Please try again."),
		Variant:     model.ToastDestructive,
	}
}
