package tts

import (
	"context"
	"fmt"
	"io"
	log "log/slog"
	"sync"
	"time"
)

// Speaker says text out loud and returns once playback is over.
type Speaker interface {
	Speak(ctx context.Context, text, lang string) error
}

type SpeakerFunc func(ctx context.Context, text, lang string) error

func (f SpeakerFunc) Speak(ctx context.Context, text, lang string) error {
	return f(ctx, text, lang)
}

// Console prints replies instead of synthesizing them.
type Console struct {
	mu   sync.Mutex
	w    io.Writer
	name string
}

func NewConsole(w io.Writer, name string) *Console {
	return &Console{w: w, name: name}
}

func (c *Console) Speak(_ context.Context, text, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintf(c.w, "%s: %s\n", c.name, text)
	return err
}

// Ducker lowers other audio while the assistant talks.
type Ducker interface {
	Duck(ctx context.Context, factor float64, duration time.Duration) error
	Restore(ctx context.Context, duration time.Duration) error
}

// Ducked wraps a Speaker so that other streams fade out around each phrase.
// Ducking failures are logged and never stop the phrase.
type Ducked struct {
	Speaker Speaker
	Ducker  Ducker
	Factor  float64
	Fade    time.Duration
}

func (d *Ducked) Speak(ctx context.Context, text, lang string) error {
	if text == "" {
		return nil
	}

	factor := d.Factor
	if factor <= 0 || factor >= 1 {
		factor = 0.3
	}

	if err := d.Ducker.Duck(ctx, factor, d.Fade); err != nil {
		log.Warn("Failed to duck audio", "err", err)
	}
	defer func() {
		// restore even when ctx is done, otherwise the desktop stays quiet
		if err := d.Ducker.Restore(context.WithoutCancel(ctx), d.Fade); err != nil {
			log.Warn("Failed to restore audio", "err", err)
		}
	}()

	return d.Speaker.Speak(ctx, text, lang)
}

// Tee speaks through every speaker in order and returns the first error.
type Tee []Speaker

func (t Tee) Speak(ctx context.Context, text, lang string) error {
	var first error
	for _, s := range t {
		if err := s.Speak(ctx, text, lang); err != nil && first == nil {
			first = err
		}
	}
	return first
}
