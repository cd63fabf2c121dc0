package responder

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sawitpro/palmstore/internal/models"
)

var (
	ErrUpstream       = errors.New("chat endpoint request failed")
	ErrMalformedReply = errors.New("chat endpoint returned a malformed reply")
)

// maxReplyBytes bounds the response body read from the chat endpoint
const maxReplyBytes = 1 << 20

// RemoteResponder delegates replies to a POST /chat endpoint
type RemoteResponder struct {
	endpoint string
	client   *http.Client
}

// NewRemoteResponder creates a responder for endpoint. A nil client is replaced
// by a traced client with the given timeout; zero timeout means none.
func NewRemoteResponder(endpoint string, client *http.Client, timeout time.Duration) *RemoteResponder {
	if client == nil {
		client = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		}
	}
	return &RemoteResponder{
		endpoint: endpoint,
		client:   client,
	}
}

// Endpoint returns the chat endpoint URL
func (r *RemoteResponder) Endpoint() string {
	return r.endpoint
}

// Respond posts the message and returns the reply field of the response.
// Any transport failure, non-200 status or undecodable payload is an error.
func (r *RemoteResponder) Respond(ctx context.Context, req Request) (string, error) {
	lang := req.Language
	if lang == "" {
		lang = models.LanguageEnglish
	}

	body, err := json.Marshal(models.ChatRequest{
		Message:  req.Message,
		Language: string(lang),
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrUpstream, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxReplyBytes))
		return "", fmt.Errorf("%w: unexpected status code: %d", ErrUpstream, resp.StatusCode)
	}

	var payload models.ChatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReplyBytes)).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if strings.TrimSpace(payload.Reply) == "" {
		return "", fmt.Errorf("%w: empty reply", ErrMalformedReply)
	}

	return payload.Reply, nil
}
