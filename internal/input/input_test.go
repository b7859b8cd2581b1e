package input

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLines_ReadsUntilClosed(t *testing.T) {
	l := NewLines(strings.NewReader("what time is it\n\ngoodbye\n"), time.Second)
	ctx := context.Background()

	var got []string
	for {
		clip, err := l.Capture(ctx)
		if err == ErrClosed {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, OriginConsole, clip.Origin)

		text, err := l.Recognize(ctx, clip)
		require.NoError(t, err)
		got = append(got, text)
	}

	assert.Equal(t, []string{"what time is it", "", "goodbye"}, got)
}

func TestLines_CloseReleasesReader(t *testing.T) {
	l := NewLines(strings.NewReader("one\ntwo\nthree\n"), time.Second)

	clip, err := l.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "one", clip.Text)

	// nobody reads "two"; Close must still let the reader goroutine exit,
	// which goleak checks at the end of the package run
	l.Close()
	l.Close()

	_, err = l.Capture(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestQueue_BoundedWait(t *testing.T) {
	q := NewQueue(1, 10*time.Millisecond)

	_, err := q.Capture(context.Background())
	assert.ErrorIs(t, err, ErrNoInput)

	require.NoError(t, q.Push("hello", "ipc"))
	assert.ErrorIs(t, q.Push("again", "ipc"), ErrQueueFull)
	assert.Equal(t, 1, q.Len())

	clip, err := q.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Clip{Text: "hello", Origin: "ipc"}, clip)
}

func TestQueue_CloseDrains(t *testing.T) {
	q := NewQueue(4, 0)
	require.NoError(t, q.Push("one", "bus"))
	q.Close()
	q.Close()

	assert.ErrorIs(t, q.Push("two", "bus"), ErrClosed)

	clip, err := q.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "one", clip.Text)

	_, err = q.Capture(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestQueue_CaptureHonoursContext(t *testing.T) {
	q := NewQueue(1, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := q.Capture(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTextOf(t *testing.T) {
	_, err := TextOf(context.Background(), Clip{PCM: []float32{0}})
	assert.ErrorIs(t, err, ErrNotUnderstood)

	text, err := TextOf(context.Background(), Clip{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", text)
}

func TestWithQueue_QueueFirst(t *testing.T) {
	q := NewQueue(2, 0)
	lines := NewLines(strings.NewReader("from console\n"), time.Second)
	src := WithQueue(lines, q)
	ctx := context.Background()

	require.NoError(t, q.Push("from socket", "ipc"))

	clip, err := src.Capture(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ipc", clip.Origin)

	clip, err = src.Capture(ctx)
	require.NoError(t, err)
	text, err := src.Recognize(ctx, clip)
	require.NoError(t, err)
	assert.Equal(t, "from console", text)

	_, err = src.Capture(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}
