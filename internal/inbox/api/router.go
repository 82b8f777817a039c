// Package api serves the inbox over HTTP: message insert and listing under
// /rest/v1 and the admin password check under /functions/v1.
package api

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/williambechay/portfolio/internal/backend"
	"github.com/williambechay/portfolio/internal/inbox"
	"github.com/williambechay/portfolio/internal/inbox/auth"
)

const (
	MessagesPath = "/rest/v1/contact_messages"
	VerifyPath   = "/functions/v1/verify-admin-password"

	maxBodyBytes = 64 << 10
)

// Options configures the inbox router.
type Options struct {
	Store    inbox.Store
	Verifier backend.PasswordVerifier
	// Limiter throttles the password check. Nil disables throttling.
	Limiter *auth.Limiter
	// APIKey, when set, must be sent as the apikey header or a bearer token.
	APIKey string
	Logger *slog.Logger
}

type handler struct {
	store    inbox.Store
	verifier backend.PasswordVerifier
	apiKey   string
	logger   *slog.Logger
}

// NewRouter constructs the inbox HTTP handler.
func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := opts.Store
	if store == nil {
		store = inbox.NewMemoryStore()
	}
	h := &handler{
		store:    store,
		verifier: opts.Verifier,
		apiKey:   strings.TrimSpace(opts.APIKey),
		logger:   logger,
	}

	var verify http.Handler = http.HandlerFunc(h.verifyPassword)
	if opts.Limiter != nil {
		verify = opts.Limiter.Middleware(verify)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+MessagesPath, h.insertMessages)
	mux.HandleFunc("GET "+MessagesPath, h.listMessages)
	mux.Handle("POST "+VerifyPath, verify)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return h.requireKey(mux)
}

func (h *handler) requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.apiKey == "" || r.URL.Path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}
		key := strings.TrimSpace(r.Header.Get("apikey"))
		if key == "" {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
				key = strings.TrimSpace(header[7:])
			}
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(h.apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "invalid api key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) insertMessages(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	messages, err := decodeMessages(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, msg := range messages {
		if missing := missingFields(msg); len(missing) > 0 {
			writeError(w, http.StatusBadRequest, "missing required fields: "+strings.Join(missing, ", "))
			return
		}
	}

	stored := make([]backend.StoredMessage, 0, len(messages))
	for _, msg := range messages {
		saved, err := h.store.Insert(r.Context(), msg)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "insert contact message", "error", err)
			writeError(w, http.StatusInternalServerError, "could not store message")
			return
		}
		stored = append(stored, saved)
	}
	h.logger.InfoContext(r.Context(), "contact messages stored", "count", len(stored))

	if strings.Contains(r.Header.Get("Prefer"), "return=minimal") {
		w.WriteHeader(http.StatusCreated)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *handler) listMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.store.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list contact messages", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list messages")
		return
	}
	if messages == nil {
		messages = []backend.StoredMessage{}
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *handler) verifyPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, backend.Verification{Success: false, Error: "invalid request body"})
		return
	}
	if h.verifier == nil {
		writeJSON(w, http.StatusUnauthorized, backend.Verification{Success: false, Error: auth.DetailNotConfigured})
		return
	}
	verdict, err := h.verifier.Verify(r.Context(), req.Password)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "verify admin password", "error", err)
		writeJSON(w, http.StatusInternalServerError, backend.Verification{Success: false, Error: "verification failed"})
		return
	}
	if !verdict.Success {
		h.logger.WarnContext(r.Context(), "admin password rejected", "remote", auth.ClientIP(r))
		writeJSON(w, http.StatusUnauthorized, verdict)
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}

// decodeMessages accepts a JSON array of messages or a single object.
func decodeMessages(body []byte) ([]backend.NewMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("request body is required")
	}
	var messages []backend.NewMessage
	if trimmed[0] == '{' {
		var one backend.NewMessage
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, errors.New("invalid JSON body")
		}
		messages = append(messages, one)
	} else if err := json.Unmarshal(trimmed, &messages); err != nil {
		return nil, errors.New("invalid JSON body")
	}
	if len(messages) == 0 {
		return nil, errors.New("no messages in request")
	}
	return messages, nil
}

func missingFields(msg backend.NewMessage) []string {
	var missing []string
	if strings.TrimSpace(msg.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(msg.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(msg.Message) == "" {
		missing = append(missing, "message")
	}
	return missing
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
