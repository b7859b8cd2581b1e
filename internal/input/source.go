package input

import (
	"context"
	"errors"
)

var (
	// ErrNoInput means the bounded wait passed without anything to hear.
	ErrNoInput = errors.New("no input")
	// ErrNotUnderstood means a clip was captured but yielded no text.
	ErrNotUnderstood = errors.New("input not understood")
	// ErrClosed means the source will never produce input again.
	ErrClosed = errors.New("input closed")
)

// Clip is one captured piece of input. Voice sources fill PCM, text
// sources fill Text.
type Clip struct {
	PCM    []float32
	Text   string
	Origin string
}

// Source is the input side of a session cycle.
type Source interface {
	// Capture blocks for at most the source's bounded wait.
	Capture(ctx context.Context) (Clip, error)
	Recognize(ctx context.Context, clip Clip) (string, error)
}

// TextOf is the Recognize of every text source.
func TextOf(_ context.Context, clip Clip) (string, error) {
	if clip.PCM != nil && clip.Text == "" {
		return "", ErrNotUnderstood
	}
	return clip.Text, nil
}
