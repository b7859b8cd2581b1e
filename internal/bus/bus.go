// Package bus connects the assistant to a websocket message hub. Other
// shards send "say" messages, the assistant answers with "reply".
package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"

	"jarvis/internal/session"
)

const (
	KindSay   = "say"
	KindReply = "reply"

	originPrefix = "bus:"
)

var errDecode = errors.New("decode bus message")

type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

// Pusher accepts utterances for the session.
type Pusher interface {
	Push(text, origin string) error
}

type Client struct {
	url    string
	name   string
	reconn time.Duration

	mu   sync.Mutex
	conn *ws.Conn
}

// Dial connects once; later drops are handled by Run.
func Dial(ctx context.Context, url, name string, reconn time.Duration) (*Client, error) {
	log.Debug("init websocket bus", "url", url)

	c := &Client{url: url, name: name, reconn: reconn}
	if c.reconn <= 0 {
		c.reconn = 3 * time.Second
	}

	conn, _, err := ws.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial bus %s: %w", url, err)
	}
	c.conn = conn

	log.Info("Connected to bus", "url", url, "name", name)
	return c, nil
}

// Run reads messages until ctx is done, reconnecting whenever the hub goes
// away.
func (c *Client) Run(ctx context.Context, q Pusher) error {
	stop := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.conn.Close()
	})
	defer stop()

	for {
		m, err := c.read()
		if ctx.Err() != nil {
			return nil
		}

		switch {
		case err == nil:
			c.deliver(m, q)
		case errors.Is(err, errDecode):
			log.Warn("Failed to parse", "err", err)
		default:
			// gorilla read errors are permanent for the connection
			if !isClosed(err) {
				log.Error("Failed to read", "err", err)
			}
			log.Warn("Trying to reconnect on", "url", c.url)
			if err := c.redial(ctx); err != nil {
				return nil
			}
			log.Info("Successfully reconnected")
		}
	}
}

func (c *Client) deliver(m Message, q Pusher) {
	if m.Kind != KindSay || m.From == c.name {
		return
	}
	if m.To != "" && m.To != c.name && m.To != "ALL" {
		return
	}

	if err := q.Push(m.Content, originPrefix+m.From); err != nil {
		log.Warn("Dropped bus message", "from", m.From, "err", err)
	}
}

// Reply sends the answer to the shard that asked. Exchanges that did not
// come from the bus are ignored.
func (c *Client) Reply(ex session.Exchange) {
	to, ok := strings.CutPrefix(ex.Origin, originPrefix)
	if !ok {
		return
	}

	err := c.Write(Message{From: c.name, To: to, Kind: KindReply, Content: ex.Reply})
	if err != nil {
		log.Error("Failed to send reply", "to", to, "err", err)
	}
}

func (c *Client) Write(m Message) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	log.Debug("Write ws", "msg", string(data))

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(ws.TextMessage, data)
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.WriteControl(ws.CloseMessage,
		ws.FormatCloseMessage(ws.CloseNormalClosure, ""), time.Now().Add(time.Second))
	return c.conn.Close()
}

func (c *Client) read() (Message, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	_, raw, err := conn.ReadMessage()
	if err != nil {
		return Message{}, err
	}
	log.Debug("Read ws", "msg", string(raw))

	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return Message{}, fmt.Errorf("%w: %v", errDecode, err)
	}
	return m, nil
}

func (c *Client) redial(ctx context.Context) error {
	for {
		conn, _, err := ws.DefaultDialer.DialContext(ctx, c.url, nil)
		if err == nil {
			c.mu.Lock()
			c.conn.Close()
			c.conn = conn
			c.mu.Unlock()

			if ctx.Err() != nil {
				conn.Close()
				return ctx.Err()
			}
			return nil
		}

		t := time.NewTimer(c.reconn)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

func isClosed(err error) bool {
	return ws.IsCloseError(err,
		ws.CloseNormalClosure,
		ws.CloseGoingAway,
		ws.CloseAbnormalClosure)
}
