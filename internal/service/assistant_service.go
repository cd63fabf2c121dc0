package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sawitpro/palmstore/internal/models"
	"github.com/sawitpro/palmstore/internal/responder"
	"github.com/sawitpro/palmstore/internal/session"
)

// AssistantService answers chat questions
type AssistantService struct {
	responder responder.Responder
	sessions  SessionPersister
	log       *slog.Logger
}

// NewAssistantService creates an assistant answered by r
func NewAssistantService(r responder.Responder, sessions SessionPersister, log *slog.Logger) *AssistantService {
	return &AssistantService{
		responder: r,
		sessions:  sessions,
		log:       log,
	}
}

// Reply answers a stateless POST /chat request
func (s *AssistantService) Reply(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	lang, err := models.ParseLanguage(req.Language)
	if err != nil {
		return nil, err
	}

	reply, err := s.responder.Respond(ctx, responder.Request{Message: req.Message, Language: lang})
	if err != nil {
		return nil, fmt.Errorf("assistant reply: %w", err)
	}
	return &models.ChatResponse{Reply: reply}, nil
}

// Submit sends text through the session's chat panel and persists the transcript
func (s *AssistantService) Submit(ctx context.Context, sess *session.Session, text string) (models.Message, error) {
	msg, err := sess.Chat.Submit(ctx, text)
	if err != nil {
		return models.Message{}, err
	}
	s.persist(ctx, sess)
	return msg, nil
}

// SetLanguage changes the session reply language
func (s *AssistantService) SetLanguage(ctx context.Context, sess *session.Session, raw string) (models.Language, error) {
	lang, err := models.ParseLanguage(raw)
	if err != nil {
		return "", err
	}
	sess.Chat.SetLanguage(lang)
	s.persist(ctx, sess)
	return lang, nil
}

// ToggleLanguage flips the session reply language between English and Indonesian
func (s *AssistantService) ToggleLanguage(ctx context.Context, sess *session.Session) models.Language {
	lang := sess.Chat.ToggleLanguage()
	s.persist(ctx, sess)
	return lang
}

// persist failures are logged only; the reply has already been appended
func (s *AssistantService) persist(ctx context.Context, sess *session.Session) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.Persist(ctx, sess); err != nil {
		s.log.Error("failed to persist session", "session_id", sess.ID, "error", err)
	}
}
