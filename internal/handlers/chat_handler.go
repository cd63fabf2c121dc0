package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sawitpro/palmstore/internal/chat"
	"github.com/sawitpro/palmstore/internal/middleware"
	"github.com/sawitpro/palmstore/internal/models"
	"github.com/sawitpro/palmstore/internal/service"
	"github.com/sawitpro/palmstore/internal/session"
)

// ChatHandler serves the assistant endpoints
type ChatHandler struct {
	assistant *service.AssistantService
	logger    *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(assistant *service.AssistantService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		logger:    logger,
	}
}

// MessageRequest is a chat input typed into the session panel
type MessageRequest struct {
	Text string `json:"text" validate:"max=2000"`
}

// MessageResponse carries the bot reply and the full transcript
type MessageResponse struct {
	Reply    models.Message   `json:"reply"`
	Messages []models.Message `json:"messages"`
}

// TranscriptResponse is the chat panel of a session
type TranscriptResponse struct {
	Language models.Language  `json:"language"`
	Status   chat.Status      `json:"status"`
	Messages []models.Message `json:"messages"`
}

// Chat handles POST /chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeRequest(r, &req); err != nil {
		h.logger.Warn("failed to decode chat request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	resp, err := h.assistant.Reply(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrUnsupportedLanguage) {
			WriteError(w, http.StatusBadRequest, "Unsupported language", h.logger)
			return
		}
		h.logger.Error("failed to answer chat", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, resp, h.logger)
}

// Messages handles GET /api/session/messages
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	WriteJSON(w, http.StatusOK, TranscriptResponse{
		Language: sess.Chat.Language(),
		Status:   sess.Chat.Status(),
		Messages: sess.Chat.Transcript(),
	}, h.logger)
}

// PostMessage handles POST /api/session/messages
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := decodeRequest(r, &req); err != nil {
		h.logger.Warn("failed to decode message request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	h.submit(w, r, req.Text)
}

// QuickAction handles POST /api/session/messages/quick/{action}
func (h *ChatHandler) QuickAction(w http.ResponseWriter, r *http.Request) {
	prompt, err := chat.QuickActionPrompt(chi.URLParam(r, "action"))
	if err != nil {
		WriteError(w, http.StatusNotFound, "Unknown quick action", h.logger)
		return
	}

	h.submit(w, r, prompt)
}

func (h *ChatHandler) submit(w http.ResponseWriter, r *http.Request, text string) {
	sess := middleware.SessionFromContext(r.Context())

	reply, err := h.assistant.Submit(r.Context(), sess, text)
	if err != nil {
		h.writeSubmitError(w, sess, err)
		return
	}

	WriteJSON(w, http.StatusOK, MessageResponse{
		Reply:    reply,
		Messages: sess.Chat.Transcript(),
	}, h.logger)
}

func (h *ChatHandler) writeSubmitError(w http.ResponseWriter, sess *session.Session, err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		WriteError(w, http.StatusBadRequest, "Message must not be empty", h.logger)
	case errors.Is(err, chat.ErrAwaitingResponse):
		WriteError(w, http.StatusConflict, "Still waiting for the previous reply", h.logger)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("chat reply abandoned", "session_id", sess.ID, "error", err)
		WriteError(w, http.StatusServiceUnavailable, "Request cancelled", h.logger)
	default:
		h.logger.Error("failed to submit message", "session_id", sess.ID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}
