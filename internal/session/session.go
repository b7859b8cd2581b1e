package session

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"jarvis/internal/command"
	"jarvis/internal/input"
	"jarvis/internal/skills"
	"jarvis/internal/tts"
)

var ErrMissingHandler = errors.New("no handler for category")

// Exchange is one finished request/response pair.
type Exchange struct {
	ID       string
	Origin   string
	Heard    string
	Category command.Category
	Reply    string
}

type Config struct {
	Router   *command.Router
	Skills   *skills.Registry
	Source   input.Source
	Speaker  tts.Speaker
	Persona  skills.Persona
	Language string
	// Board receives every state change. Optional.
	Board *StatusBoard
	// Cue runs when listening starts, e.g. a chime. Optional.
	Cue func(ctx context.Context)
	// OnExchange sees every reply after it was spoken. Optional.
	OnExchange func(Exchange)
	// RetryDelay is the pause after a failing capture.
	RetryDelay time.Duration
}

// Session runs listen, recognize, dispatch and respond cycles, one at a time.
type Session struct {
	cfg Config

	mu    sync.Mutex
	state atomic.Uint32
}

func New(cfg Config) (*Session, error) {
	if cfg.Router == nil || cfg.Skills == nil || cfg.Source == nil || cfg.Speaker == nil {
		return nil, errors.New("session: router, skills, source and speaker are required")
	}
	if missing := cfg.Skills.Missing(cfg.Router.Order()); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingHandler, missing)
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Board == nil {
		cfg.Board = NewStatusBoard()
	}

	return &Session{cfg: cfg}, nil
}

func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) Board() *StatusBoard {
	return s.cfg.Board
}

// Welcome greets the user before the first cycle.
func (s *Session) Welcome(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := s.cfg.Persona.Welcome()
	s.publish(Status{State: Responding, Reply: text})
	s.speak(ctx, log.Default(), text)
	s.publish(Status{State: Idle, Reply: text})
}

// Run cycles until a farewell is handled, the source closes or ctx is done.
// The first two return nil.
func (s *Session) Run(ctx context.Context) error {
	log.Info("Session started", "order", len(s.cfg.Router.Order()), "mode", s.cfg.Router.Mode())

	for {
		if err := ctx.Err(); err != nil {
			s.publish(Status{State: Idle, Detail: "stopped"})
			return err
		}

		done, err := s.cycle(ctx)
		switch {
		case done:
			log.Info("Session terminated")
			return nil
		case errors.Is(err, input.ErrClosed):
			log.Info("Input closed, session ends")
			s.publish(Status{State: Idle, Detail: "input closed"})
			return nil
		case err != nil:
			return err
		}
	}
}

func (s *Session) cycle(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	lg := log.With("cycle", id)

	s.publish(Status{State: Listening, Detail: "Listening..."})
	if s.cfg.Cue != nil {
		s.cfg.Cue(ctx)
	}

	clip, err := s.cfg.Source.Capture(ctx)
	switch {
	case err == nil:
	case errors.Is(err, input.ErrNoInput):
		s.publish(Status{State: Idle})
		return false, nil
	case errors.Is(err, input.ErrClosed), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false, err
	default:
		lg.Warn("Failed to capture input", "err", err)
		s.publish(Status{State: Idle, Detail: "input error"})
		sleep(ctx, s.cfg.RetryDelay)
		return false, nil
	}

	s.publish(Status{State: Recognizing, Detail: "Processing..."})
	text, err := s.cfg.Source.Recognize(ctx, clip)
	if err != nil {
		if errors.Is(err, input.ErrNotUnderstood) {
			lg.Info("Could not understand input")
		} else {
			lg.Warn("Failed to recognize input", "err", err)
		}
		s.publish(Status{State: Idle, Detail: "not understood"})
		return false, nil
	}

	ex := s.exchange(ctx, lg, id, clip.Origin, text)
	return ex.Category == command.Farewell, nil
}

// Handle runs dispatch and response for text that skipped capture. It
// waits for any cycle in flight.
func (s *Session) Handle(ctx context.Context, text, origin string) Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	return s.exchange(ctx, log.With("cycle", id), id, origin, text)
}

func (s *Session) exchange(ctx context.Context, lg *log.Logger, id, origin, text string) Exchange {
	utterance := command.Normalize(text)
	lg.Info("Heard", "text", utterance, "origin", origin)

	s.publish(Status{State: Dispatching, Heard: utterance})
	m, reply := s.dispatch(ctx, lg, utterance)

	s.publish(Status{State: Responding, Heard: utterance, Reply: reply})
	s.speak(ctx, lg, reply)

	ex := Exchange{ID: id, Origin: origin, Heard: utterance, Category: m.Category, Reply: reply}
	if s.cfg.OnExchange != nil {
		s.cfg.OnExchange(ex)
	}

	if m.Category == command.Farewell {
		s.publish(Status{State: Terminated, Heard: utterance, Reply: reply})
	} else {
		s.publish(Status{State: Idle, Heard: utterance, Reply: reply})
	}
	return ex
}

func (s *Session) dispatch(ctx context.Context, lg *log.Logger, utterance string) (command.Match, string) {
	m := s.cfg.Router.Route(utterance)
	if m.Category == command.None {
		lg.Debug("No command matched")
		return m, skills.Fallback
	}

	h, ok := s.cfg.Skills.Lookup(m.Category)
	if !ok {
		lg.Error("No handler registered", "category", m.Category)
		return m, skills.GenericApology
	}

	lg.Debug("Dispatching", "category", m.Category, "arg", m.Argument)
	reply, err := invoke(ctx, h, skills.Request{Utterance: utterance, Argument: m.Argument})
	if err != nil {
		lg.Warn("Handler failed", "category", m.Category, "err", err)
		return m, skills.Reply(err)
	}
	return m, reply
}

func invoke(ctx context.Context, h skills.Handler, req skills.Request) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Handler panicked", "panic", r, "stack", string(debug.Stack()))
			reply, err = "", fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h.Handle(ctx, req)
}

func (s *Session) speak(ctx context.Context, lg *log.Logger, text string) {
	lg.Info("Reply", "text", text)
	if err := s.cfg.Speaker.Speak(ctx, text, s.cfg.Language); err != nil {
		lg.Error("Failed to voice out", "err", err)
	}
}

func (s *Session) publish(st Status) {
	s.state.Store(uint32(st.State))
	s.cfg.Board.Publish(st)
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
