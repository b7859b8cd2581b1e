package skills

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/apps"
	"jarvis/internal/command"
	"jarvis/internal/config"
)

func TestClock(t *testing.T) {
	at := time.Date(2026, time.March, 5, 15, 4, 0, 0, time.UTC)
	c := Clock{Now: func() time.Time { return at }}

	got, err := c.Time(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "The current time is 03:04 PM", got)
	assert.Regexp(t, regexp.MustCompile(`^The current time is .+`), got)

	got, err = c.Date(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "Today is Thursday, March 05, 2026", got)
}

func TestPersona(t *testing.T) {
	p := Persona{Name: "Jarvis", User: "Tony"}
	ctx := context.Background()

	got, _ := p.Greeting(ctx, Request{})
	assert.Equal(t, "Hello Tony, how can I help you?", got)

	got, _ = p.Farewell(ctx, Request{})
	assert.Equal(t, "Goodbye Tony, have a great day!", got)

	got, _ = p.Identity(ctx, Request{})
	assert.Contains(t, got, "I am Jarvis")

	got, _ = p.UserIdentity(ctx, Request{})
	assert.Contains(t, got, "You are Tony")

	assert.Equal(t, "Hello Tony, I am Jarvis, your personal assistant. How may I help you?", p.Welcome())
}

func TestJoke(t *testing.T) {
	got, err := Joke{Pick: func(int) int { return 0 }}.Handle(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, jokes[0], got)

	got, err = Joke{}.Handle(context.Background(), Request{})
	require.NoError(t, err)
	assert.Contains(t, jokes, got)
}

func TestReply(t *testing.T) {
	assert.Equal(t, GenericApology, Reply(errors.New("boom")))
	assert.Equal(t, "nope", Reply(fail(KindUpstream, "nope", nil)))

	wrapped := fmt.Errorf("weather: %w", fail(KindNotConfigured, "configure me", errors.New("no key")))
	assert.Equal(t, "configure me", Reply(wrapped))

	var e *Error
	require.ErrorAs(t, wrapped, &e)
	assert.Equal(t, KindNotConfigured, e.Kind)
	assert.Contains(t, e.Error(), "not_configured")
}

func TestDefaults_CoverDispatchOrder(t *testing.T) {
	r := Defaults(config.Default(), Persona{Name: "Jarvis", User: "Sir"}, Deps{
		Apps: apps.DefaultTable("linux"),
	})
	assert.Empty(t, r.Missing(command.DefaultOrder()))

	_, ok := r.Lookup(command.None)
	assert.False(t, ok)
}
