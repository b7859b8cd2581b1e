package skills

import (
	"context"
	"errors"
	"fmt"

	"jarvis/internal/command"
)

const (
	GenericApology = "Sorry, something went wrong while handling that."
	Fallback       = "I'm not sure how to help with that. Could you please rephrase?"
)

type Request struct {
	Utterance string
	Argument  string
}

type Handler interface {
	Handle(ctx context.Context, req Request) (string, error)
}

type HandlerFunc func(ctx context.Context, req Request) (string, error)

func (f HandlerFunc) Handle(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

type Kind uint

const (
	// KindUpstream: the collaborator was reached but failed.
	KindUpstream Kind = iota
	// KindNotConfigured: an API key or path is missing.
	KindNotConfigured
	// KindUnavailable: the OS resource or sensor is not there.
	KindUnavailable
	// KindBadInput: the request lacks what the skill needs.
	KindBadInput
)

func (k Kind) String() string {
	switch k {
	case KindNotConfigured:
		return "not_configured"
	case KindUnavailable:
		return "unavailable"
	case KindBadInput:
		return "bad_input"
	default:
		return "upstream"
	}
}

// Error is what a handler returns on failure. Reply is the sentence the user
// hears instead of the answer.
type Error struct {
	Kind  Kind
	Reply string
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reply)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(kind Kind, reply string, err error) *Error {
	return &Error{Kind: kind, Reply: reply, Err: err}
}

// Reply turns any handler error into something that can be said out loud.
func Reply(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Reply != "" {
		return e.Reply
	}
	return GenericApology
}

// Registry binds categories to handlers.
type Registry struct {
	handlers map[command.Category]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[command.Category]Handler)}
}

func (r *Registry) Register(c command.Category, h Handler) {
	r.handlers[c] = h
}

func (r *Registry) Lookup(c command.Category) (Handler, bool) {
	h, ok := r.handlers[c]
	return h, ok
}

// Missing lists the categories of order that have no handler.
func (r *Registry) Missing(order command.Order) []command.Category {
	var out []command.Category
	for _, c := range order {
		if _, ok := r.handlers[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}
