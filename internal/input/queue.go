package input

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrQueueFull = errors.New("input queue full")

// Queue holds utterances pushed by other goroutines: the control socket,
// the bus, the terminal UI.
type Queue struct {
	wait time.Duration

	mu     sync.Mutex
	closed bool
	items  chan Clip
}

func NewQueue(size int, wait time.Duration) *Queue {
	if size <= 0 {
		size = 16
	}
	return &Queue{wait: wait, items: make(chan Clip, size)}
}

// Push never blocks.
func (q *Queue) Push(text, origin string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}

	select {
	case q.items <- Clip{Text: text, Origin: origin}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close lets queued items drain, after which Capture reports ErrClosed.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.items)
	}
}

func (q *Queue) Capture(ctx context.Context) (Clip, error) {
	var timeout <-chan time.Time
	if q.wait > 0 {
		t := time.NewTimer(q.wait)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case c, ok := <-q.items:
		if !ok {
			return Clip{}, ErrClosed
		}
		return c, nil
	case <-timeout:
		return Clip{}, ErrNoInput
	case <-ctx.Done():
		return Clip{}, ctx.Err()
	}
}

func (q *Queue) Recognize(ctx context.Context, clip Clip) (string, error) {
	return TextOf(ctx, clip)
}

func (q *Queue) Len() int {
	return len(q.items)
}

// WithQueue serves queued utterances first and falls back to primary when
// the queue is empty.
func WithQueue(primary Source, q *Queue) Source {
	return &queued{primary: primary, queue: q}
}

type queued struct {
	primary Source
	queue   *Queue
}

func (s *queued) Capture(ctx context.Context) (Clip, error) {
	select {
	case c, ok := <-s.queue.items:
		if ok {
			return c, nil
		}
	default:
	}
	return s.primary.Capture(ctx)
}

func (s *queued) Recognize(ctx context.Context, clip Clip) (string, error) {
	if clip.PCM == nil {
		return TextOf(ctx, clip)
	}
	return s.primary.Recognize(ctx, clip)
}
