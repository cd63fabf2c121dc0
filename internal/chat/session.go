// Package chat implements the chat panel controller: an append-only transcript
// and a single outstanding assistant request at a time.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sawitpro/palmstore/internal/models"
	"github.com/sawitpro/palmstore/internal/responder"
)

var (
	ErrEmptyMessage     = errors.New("message is empty")
	ErrAwaitingResponse = errors.New("a response is already pending")
)

// Status is the controller state
type Status string

const (
	StatusIdle             Status = "idle"
	StatusAwaitingResponse Status = "awaiting-response"
)

// DefaultThinkingDelay is the simulated thinking time of the SawitPro assistant
const DefaultThinkingDelay = 1500 * time.Millisecond

// Session is one chat panel. Safe for concurrent use; submissions made while
// a reply is pending are rejected with ErrAwaitingResponse.
type Session struct {
	mu         sync.Mutex
	transcript []models.Message
	status     Status
	language   models.Language

	responder responder.Responder
	delay     Delay
	now       func() time.Time
	newID     func() string
	apology   string
	greeting  string
	log       *slog.Logger
}

// Option configures a Session
type Option func(*Session)

// WithDelay sets the wait applied before the responder is asked
func WithDelay(d Delay) Option {
	return func(s *Session) { s.delay = d }
}

// WithClock sets the timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator sets the message id source
func WithIDGenerator(next func() string) Option {
	return func(s *Session) { s.newID = next }
}

// WithApology sets the reply used when the responder fails
func WithApology(text string) Option {
	return func(s *Session) { s.apology = text }
}

// WithGreeting sets the first bot message. Empty disables it.
func WithGreeting(text string) Option {
	return func(s *Session) { s.greeting = text }
}

// WithLanguage sets the initial reply language
func WithLanguage(lang models.Language) Option {
	return func(s *Session) { s.language = lang }
}

// WithLogger sets the logger
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// NewSession creates a chat session answered by r
func NewSession(r responder.Responder, opts ...Option) *Session {
	s := &Session{
		status:    StatusIdle,
		language:  models.LanguageEnglish,
		responder: r,
		delay:     NoDelay,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
		apology:   responder.SawitProApology,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.transcript = make([]models.Message, 0, 8)
	if s.greeting != "" {
		s.transcript = append(s.transcript, s.message(s.greeting, models.SenderBot))
	}
	return s
}

func (s *Session) message(text string, sender models.Sender) models.Message {
	return models.Message{
		ID:        s.newID(),
		Text:      text,
		Sender:    sender,
		Timestamp: s.now(),
	}
}

// Submit appends text as a user message, waits for the configured delay, asks
// the responder and appends its reply. A responder failure is replaced by the
// apology text. When ctx ends first the pending reply is discarded and
// ctx.Err() is returned; the user message stays in the transcript.
func (s *Session) Submit(ctx context.Context, text string) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.status == StatusAwaitingResponse {
		s.mu.Unlock()
		return models.Message{}, ErrAwaitingResponse
	}
	s.transcript = append(s.transcript, s.message(text, models.SenderUser))
	s.status = StatusAwaitingResponse
	lang := s.language
	s.mu.Unlock()

	reply, err := s.reply(ctx, text, lang)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusIdle
	if err != nil {
		return models.Message{}, err
	}

	msg := s.message(reply, models.SenderBot)
	s.transcript = append(s.transcript, msg)
	return msg, nil
}

func (s *Session) reply(ctx context.Context, text string, lang models.Language) (string, error) {
	if err := s.delay(ctx); err != nil {
		return "", err
	}

	reply, err := s.responder.Respond(ctx, responder.Request{Message: text, Language: lang})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		s.log.Warn("assistant reply failed, sending apology", "error", err)
		return s.apology, nil
	}
	return reply, nil
}

// Transcript returns a copy of the messages in order
func (s *Session) Transcript() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Last returns the most recent message
func (s *Session) Last() (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.transcript) == 0 {
		return models.Message{}, false
	}
	return s.transcript[len(s.transcript)-1], true
}

// Status returns the controller state
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Language returns the reply language
func (s *Session) Language() models.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// SetLanguage changes the reply language for subsequent submissions
func (s *Session) SetLanguage(lang models.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
}

// ToggleLanguage switches between English and Indonesian and returns the new language
func (s *Session) ToggleLanguage() models.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = s.language.Toggle()
	return s.language
}

// Restore replaces the transcript and language, typically from a snapshot.
// It is rejected while a reply is pending.
func (s *Session) Restore(transcript []models.Message, lang models.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusAwaitingResponse {
		return ErrAwaitingResponse
	}
	s.transcript = make([]models.Message, len(transcript))
	copy(s.transcript, transcript)
	if lang != "" {
		s.language = lang
	}
	return nil
}
