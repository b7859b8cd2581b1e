package session

import (
	"sync"
	"sync/atomic"
)

// replyLog bounds how many finished exchanges the board keeps for a reader
// that fell behind.
const replyLog = 16

type State uint32

const (
	Idle State = iota
	Listening
	Recognizing
	Dispatching
	Responding
	Terminated
)

var stateNames = [...]string{
	Idle:        "idle",
	Listening:   "listening",
	Recognizing: "recognizing",
	Dispatching: "dispatching",
	Responding:  "responding",
	Terminated:  "terminated",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Status is one published snapshot. Seq is assigned by the board and grows
// by one with every Publish.
type Status struct {
	Seq    uint64
	State  State
	Detail string
	Heard  string
	Reply  string
}

// Finished reports whether s closes an exchange with something to show.
func (s Status) Finished() bool {
	return s.Reply != "" && (s.State == Idle || s.State == Terminated)
}

// StatusBoard hands the session's latest status to a single reader. Publish
// never blocks; bursts collapse into one notification and the reader then
// sees the newest value. Finished statuses are also kept in a short log so a
// burst never hides a reply.
type StatusBoard struct {
	seq    atomic.Uint64
	latest atomic.Pointer[Status]
	notify chan struct{}

	mu      sync.Mutex
	replies []Status
}

func NewStatusBoard() *StatusBoard {
	b := &StatusBoard{notify: make(chan struct{}, 1)}
	b.latest.Store(&Status{})
	return b
}

func (b *StatusBoard) Publish(s Status) uint64 {
	s.Seq = b.seq.Add(1)
	if s.Finished() {
		b.mu.Lock()
		if len(b.replies) == replyLog {
			copy(b.replies, b.replies[1:])
			b.replies = b.replies[:replyLog-1]
		}
		b.replies = append(b.replies, s)
		b.mu.Unlock()
	}
	b.latest.Store(&s)

	select {
	case b.notify <- struct{}{}:
	default:
		// a notification is already pending and will show this value
	}
	return s.Seq
}

// Updates fires at least once after any Publish that the reader has not
// yet observed through Latest.
func (b *StatusBoard) Updates() <-chan struct{} {
	return b.notify
}

func (b *StatusBoard) Latest() Status {
	return *b.latest.Load()
}

// RepliesSince returns the finished statuses published after seq, oldest
// first. At most the last 16 are kept.
func (b *StatusBoard) RepliesSince(seq uint64) []Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []Status
	for _, r := range b.replies {
		if r.Seq > seq {
			out = append(out, r)
		}
	}
	return out
}
