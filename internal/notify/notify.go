package notify

import (
	"context"
	"errors"
	"io/fs"
	log "log/slog"
	"os"
	"os/exec"
	"time"
)

// Chimer plays a short sound and returns when it is over.
type Chimer interface {
	PlayWait(ctx context.Context, path string) error
}

// Notifier tells the user the assistant is listening: a chime and a desktop
// notification. Both are best effort.
type Notifier struct {
	chimer Chimer
	chime  string
	run    func(ctx context.Context, name string, args ...string) error
}

func New(chimer Chimer, chime string) *Notifier {
	return &Notifier{
		chimer: chimer,
		chime:  chime,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}
}

func (n *Notifier) Listening(ctx context.Context) {
	if err := n.Beep(ctx); err != nil {
		log.Debug("Chime skipped", "err", err)
	}
	if err := n.Desktop(ctx, "Jarvis", "Listening..."); err != nil {
		log.Debug("Desktop notification skipped", "err", err)
	}
}

func (n *Notifier) Beep(ctx context.Context) error {
	if n.chimer == nil || n.chime == "" {
		return nil
	}
	if _, err := os.Stat(n.chime); errors.Is(err, fs.ErrNotExist) {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return n.chimer.PlayWait(ctx, n.chime)
}

// Desktop shows a notification through notify-send (mako, dunst, GNOME...).
func (n *Notifier) Desktop(ctx context.Context, summary, body string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return n.run(ctx, "notify-send", "--app-name=jarvis", "--expire-time=1500", summary, body)
}
