// Package responder turns free-text chat input into assistant replies.
//
// Two implementations exist: a keyword rule table evaluated in priority order,
// and a remote responder that delegates to a POST /chat endpoint.
package responder

import (
	"context"

	"github.com/sawitpro/palmstore/internal/models"
)

// Request is a single question addressed to the assistant
type Request struct {
	Message  string
	Language models.Language
}

// Responder produces a reply for a request
type Responder interface {
	Respond(ctx context.Context, req Request) (string, error)
}

// Func adapts a plain function to the Responder interface
type Func func(ctx context.Context, req Request) (string, error)

// Respond calls f
func (f Func) Respond(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
