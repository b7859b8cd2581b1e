package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"jarvis/internal/command"
	"jarvis/internal/input"
	"jarvis/internal/skills"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// script is a Source replaying fixed capture results, then ErrClosed.
type script struct {
	steps []step
	seen  []string
}

type step struct {
	clip       input.Clip
	captureErr error
	recogErr   error
}

func (s *script) Capture(context.Context) (input.Clip, error) {
	if len(s.steps) == 0 {
		return input.Clip{}, input.ErrClosed
	}
	st := s.steps[0]
	if st.captureErr != nil {
		s.steps = s.steps[1:]
	}
	return st.clip, st.captureErr
}

func (s *script) Recognize(_ context.Context, clip input.Clip) (string, error) {
	st := s.steps[0]
	s.steps = s.steps[1:]
	s.seen = append(s.seen, clip.Text)
	if st.recogErr != nil {
		return "", st.recogErr
	}
	return clip.Text, nil
}

func say(text string) step { return step{clip: input.Clip{Text: text, Origin: "test"}} }

type recorder struct {
	mu     sync.Mutex
	spoken []string
	lang   string
}

func (r *recorder) Speak(_ context.Context, text, lang string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spoken = append(r.spoken, text)
	r.lang = lang
	return nil
}

func (r *recorder) said() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.spoken...)
}

type fixture struct {
	src      *script
	speaker  *recorder
	registry *skills.Registry
	routed   []command.Category
}

func newSession(t *testing.T, steps ...step) (*Session, *fixture) {
	t.Helper()

	router, err := command.NewRouter(command.DefaultTable(), command.DefaultOrder(), command.MatchWord)
	require.NoError(t, err)

	f := &fixture{src: &script{steps: steps}, speaker: &recorder{}}

	persona := skills.Persona{Name: "Jarvis", User: "Tony"}
	f.registry = skills.NewRegistry()
	for _, c := range command.DefaultOrder() {
		c := c
		f.registry.Register(c, skills.HandlerFunc(func(context.Context, skills.Request) (string, error) {
			return "handled " + c.String(), nil
		}))
	}
	f.registry.Register(command.Farewell, skills.HandlerFunc(persona.Farewell))
	f.registry.Register(command.Time, skills.HandlerFunc(skills.Clock{}.Time))

	s, err := New(Config{
		Router:     router,
		Skills:     f.registry,
		Source:     f.src,
		Speaker:    f.speaker,
		Persona:    persona,
		Language:   "en",
		OnExchange: func(ex Exchange) { f.routed = append(f.routed, ex.Category) },
		RetryDelay: time.Millisecond,
	})
	require.NoError(t, err)
	return s, f
}

func TestRun_TimeThenGoodbye(t *testing.T) {
	s, f := newSession(t, say("What time is it"), say("goodbye"), say("never heard"))

	require.NoError(t, s.Run(context.Background()))

	spoken := f.speaker.said()
	require.Len(t, spoken, 2)
	assert.Regexp(t, `^The current time is .+`, spoken[0])
	assert.Equal(t, "Goodbye Tony, have a great day!", spoken[1])
	assert.Equal(t, "en", f.speaker.lang)

	assert.Equal(t, []command.Category{command.Time, command.Farewell}, f.routed)
	assert.Equal(t, Terminated, s.State())
	assert.Equal(t, Terminated, s.Board().Latest().State)
	assert.Len(t, f.src.steps, 1, "nothing captured after farewell")
}

func TestRun_EmptyInputFallsBackAndContinues(t *testing.T) {
	s, f := newSession(t, say(""), say("hello there"))

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, []string{skills.Fallback, "handled greeting"}, f.speaker.said())
	assert.Equal(t, []command.Category{command.None, command.Greeting}, f.routed)
	assert.Equal(t, Idle, s.State())
}

func TestRun_InputErrorsAreSilent(t *testing.T) {
	s, f := newSession(t,
		step{captureErr: input.ErrNoInput},
		step{captureErr: errors.New("device unplugged")},
		step{clip: input.Clip{PCM: []float32{0}}, recogErr: input.ErrNotUnderstood},
		step{clip: input.Clip{Text: "open notepad"}, recogErr: errors.New("stt timeout")},
		say("tell me a joke"),
	)

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, []string{"handled joke"}, f.speaker.said())
	assert.Equal(t, []command.Category{command.Joke}, f.routed)
}

func TestRun_HandlerFailuresBecomeReplies(t *testing.T) {
	s, f := newSession(t, say("weather in tokyo"), say("show me the news"), say("search for go"))

	f.registry.Register(command.Weather, skills.HandlerFunc(func(_ context.Context, req skills.Request) (string, error) {
		assert.Equal(t, "tokyo", req.Argument)
		return "", &skills.Error{Kind: skills.KindNotConfigured, Reply: "Weather API not configured. Please update config.json"}
	}))
	f.registry.Register(command.News, skills.HandlerFunc(func(context.Context, skills.Request) (string, error) {
		return "", errors.New("connection reset")
	}))
	f.registry.Register(command.Search, skills.HandlerFunc(func(context.Context, skills.Request) (string, error) {
		panic("nil map")
	}))

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, []string{
		"Weather API not configured. Please update config.json",
		skills.GenericApology,
		skills.GenericApology,
	}, f.speaker.said())
	assert.Equal(t, Idle, s.State())
}

func TestRun_ContextCancel(t *testing.T) {
	router, err := command.NewRouter(command.DefaultTable(), command.DefaultOrder(), command.MatchWord)
	require.NoError(t, err)

	q := input.NewQueue(1, 0)
	reg := skills.NewRegistry()
	for _, c := range command.DefaultOrder() {
		reg.Register(c, skills.HandlerFunc(func(context.Context, skills.Request) (string, error) { return "ok", nil }))
	}

	s, err := New(Config{Router: router, Skills: reg, Source: q, Speaker: &recorder{}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestHandle_AndWelcome(t *testing.T) {
	s, f := newSession(t)

	s.Welcome(context.Background())
	ex := s.Handle(context.Background(), "  Who Are You ", "ipc")

	assert.Equal(t, "who are you", ex.Heard)
	assert.Equal(t, command.Identity, ex.Category)
	assert.Equal(t, "ipc", ex.Origin)
	assert.NotEmpty(t, ex.ID)
	assert.Equal(t, []string{
		"Hello Tony, I am Jarvis, your personal assistant. How may I help you?",
		"handled identity",
	}, f.speaker.said())

	ex = s.Handle(context.Background(), "bye jarvis", "ipc")
	assert.Equal(t, command.Farewell, ex.Category)
	assert.Equal(t, Terminated, s.State())

	var replies []string
	for _, r := range s.Board().RepliesSince(0) {
		replies = append(replies, r.Reply)
	}
	assert.Equal(t, []string{
		"Hello Tony, I am Jarvis, your personal assistant. How may I help you?",
		"handled identity",
		"Goodbye Tony, have a great day!",
	}, replies)
}

func TestNew_RejectsMissingHandlers(t *testing.T) {
	router, err := command.NewRouter(command.DefaultTable(), command.DefaultOrder(), command.MatchWord)
	require.NoError(t, err)

	_, err = New(Config{Router: router, Skills: skills.NewRegistry(), Source: &script{}, Speaker: &recorder{}})
	assert.ErrorIs(t, err, ErrMissingHandler)

	_, err = New(Config{})
	assert.Error(t, err)
}
