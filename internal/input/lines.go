package input

import (
	"bufio"
	"context"
	"io"
	log "log/slog"
	"sync"
	"time"
)

const OriginConsole = "console"

// Lines reads one utterance per line. The reader is drained by a single
// goroutine started on first Capture; it exits at EOF or, once its current
// read returns, after Close.
type Lines struct {
	r    io.Reader
	wait time.Duration

	once      sync.Once
	closeOnce sync.Once
	lines     chan string
	done      chan struct{}
}

func NewLines(r io.Reader, wait time.Duration) *Lines {
	return &Lines{r: r, wait: wait, lines: make(chan string), done: make(chan struct{})}
}

// Close stops delivering lines. Later Captures report ErrClosed.
func (l *Lines) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

func (l *Lines) Capture(ctx context.Context) (Clip, error) {
	l.once.Do(func() { go l.pump() })

	var timeout <-chan time.Time
	if l.wait > 0 {
		t := time.NewTimer(l.wait)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case <-l.done:
		return Clip{}, ErrClosed
	default:
	}

	select {
	case <-l.done:
		return Clip{}, ErrClosed
	case line, ok := <-l.lines:
		if !ok {
			return Clip{}, ErrClosed
		}
		return Clip{Text: line, Origin: OriginConsole}, nil
	case <-timeout:
		return Clip{}, ErrNoInput
	case <-ctx.Done():
		return Clip{}, ctx.Err()
	}
}

func (l *Lines) Recognize(ctx context.Context, clip Clip) (string, error) {
	return TextOf(ctx, clip)
}

func (l *Lines) pump() {
	defer close(l.lines)

	sc := bufio.NewScanner(l.r)
	for sc.Scan() {
		select {
		case l.lines <- sc.Text():
		case <-l.done:
			return
		}
	}
	if err := sc.Err(); err != nil {
		log.Warn("Stopped reading input", "err", err)
	}
}
