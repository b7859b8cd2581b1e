// Package ipc is the local control socket: jarvis-ctl talks to a running
// assistant through it with one JSON request and one JSON reply per
// connection.
package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"os"
	"sync"
	"time"

	"jarvis/internal/session"
)

const (
	DefaultSocket = "/tmp/jarvis.sock"
	Origin        = "ipc"

	CmdSay    = "say"
	CmdHear   = "hear"
	CmdStatus = "status"
)

var (
	ErrInUse     = errors.New("control socket in use by another instance")
	ErrNotSocket = errors.New("not a socket")
)

type ControlMessage struct {
	Cmd  string `json:"cmd"`
	Text string `json:"text,omitempty"`
	Path string `json:"path,omitempty"`
}

type Reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	// Text is the transcript for hear.
	Text   string `json:"text,omitempty"`
	State  string `json:"state,omitempty"`
	Heard  string `json:"heard,omitempty"`
	Answer string `json:"answer,omitempty"`
}

// Pusher accepts utterances for the session; input.Queue is one.
type Pusher interface {
	Push(text, origin string) error
}

// HearFunc transcribes an audio file.
type HearFunc func(ctx context.Context, path string) (string, error)

type Server struct {
	path   string
	queue  Pusher
	hear   HearFunc
	status func() session.Status

	wg sync.WaitGroup
}

// NewServer wires the commands. hear and status may be nil, the commands
// then answer with an error.
func NewServer(path string, queue Pusher, hear HearFunc, status func() session.Status) *Server {
	if path == "" {
		path = DefaultSocket
	}
	return &Server{path: path, queue: queue, hear: hear, status: status}
}

// Serve listens until ctx is done and waits for open connections.
func (s *Server) Serve(ctx context.Context) error {
	if err := claim(s.path); err != nil {
		return err
	}

	ln, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.path, err)
	}
	log.Info("Control socket ready", "path", s.path)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	defer func() {
		s.wg.Wait()
		os.Remove(s.path)
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Warn("Failed to accept", "err", err)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

// claim clears a stale socket left by a crashed instance. A socket that
// still accepts connections, or a path that is not a socket, is left alone.
func claim(path string) error {
	fi, err := os.Lstat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.Mode()&os.ModeSocket == 0 {
		return fmt.Errorf("%s: %w", path, ErrNotSocket)
	}

	conn, err := net.DialTimeout("unix", path, time.Second)
	if err == nil {
		conn.Close()
		return fmt.Errorf("%s: %w", path, ErrInUse)
	}

	log.Debug("Removing stale control socket", "path", path, "err", err)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale socket: %w", err)
	}
	return nil
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(2 * time.Minute))

	var msg ControlMessage
	if err := json.NewDecoder(conn).Decode(&msg); err != nil {
		log.Warn("Bad control message", "err", err)
		_ = json.NewEncoder(conn).Encode(Reply{Error: "bad request"})
		return
	}

	log.Debug("Control message", "cmd", msg.Cmd)
	reply := s.handle(ctx, msg)
	if err := json.NewEncoder(conn).Encode(reply); err != nil {
		log.Warn("Failed to answer control message", "err", err)
	}
}

func (s *Server) handle(ctx context.Context, msg ControlMessage) Reply {
	switch msg.Cmd {
	case CmdSay:
		if err := s.queue.Push(msg.Text, Origin); err != nil {
			return Reply{Error: err.Error()}
		}
		return Reply{OK: true}

	case CmdHear:
		if s.hear == nil {
			return Reply{Error: "hearing files is not available"}
		}
		if msg.Path == "" {
			return Reply{Error: "missing path"}
		}
		text, err := s.hear(ctx, msg.Path)
		if err != nil {
			log.Error("Failed to transcribe file", "path", msg.Path, "err", err)
			return Reply{Error: err.Error()}
		}
		if err := s.queue.Push(text, Origin); err != nil {
			return Reply{Error: err.Error(), Text: text}
		}
		return Reply{OK: true, Text: text}

	case CmdStatus:
		if s.status == nil {
			return Reply{Error: "status is not available"}
		}
		st := s.status()
		return Reply{OK: true, State: st.State.String(), Heard: st.Heard, Answer: st.Reply}

	default:
		log.Warn("Unknown command", "cmd", msg.Cmd)
		return Reply{Error: fmt.Sprintf("unknown command %q", msg.Cmd)}
	}
}

// Send delivers one message to the socket at path and waits for the reply.
func Send(ctx context.Context, path string, msg ControlMessage) (Reply, error) {
	if path == "" {
		path = DefaultSocket
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return Reply{}, fmt.Errorf("dial %s: %w", path, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return Reply{}, fmt.Errorf("send: %w", err)
	}

	var reply Reply
	if err := json.NewDecoder(conn).Decode(&reply); err != nil {
		return Reply{}, fmt.Errorf("read reply: %w", err)
	}
	if !reply.OK {
		return reply, errors.New(reply.Error)
	}
	return reply, nil
}
