package apps

import (
	"errors"
	"fmt"
	log "log/slog"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
)

var ErrBadProgram = errors.New("not a program name")

var programName = regexp.MustCompile(`^[a-z0-9][a-z0-9._+-]*$`)

// Launcher starts launch tokens as detached OS processes. It never waits for
// the launched application.
type Launcher struct {
	goos  string
	start func(*exec.Cmd) error
}

func NewLauncher() *Launcher {
	return &Launcher{
		goos:  runtime.GOOS,
		start: startDetached,
	}
}

func (l *Launcher) Launch(token string) error {
	cmd, err := l.Command(token)
	if err != nil {
		return err
	}

	log.Debug("Launching", "token", token, "args", cmd.Args)

	if err := l.start(cmd); err != nil {
		return fmt.Errorf("launch %q: %w", token, err)
	}
	return nil
}

// OpenURL hands url to the platform's default handler.
func (l *Launcher) OpenURL(url string) error {
	var cmd *exec.Cmd
	switch l.goos {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := l.start(cmd); err != nil {
		return fmt.Errorf("open url: %w", err)
	}
	return nil
}

// Program starts a bare program name that is not in the alias table.
func (l *Launcher) Program(name string) error {
	cmd, err := l.ProgramCommand(name)
	if err != nil {
		return err
	}

	log.Debug("Launching program", "name", name, "args", cmd.Args)

	if err := l.start(cmd); err != nil {
		return fmt.Errorf("launch %q: %w", name, err)
	}
	return nil
}

// ProgramCommand builds the process for an untrusted program name. The name
// is passed as argv and never reaches a shell.
func (l *Launcher) ProgramCommand(name string) (*exec.Cmd, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !programName.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrBadProgram, name)
	}

	if l.goos == "windows" {
		return exec.Command("cmd", "/C", "start", "", name), nil
	}
	return exec.Command(name), nil
}

// Command builds the process for an alias table token without starting it.
// Tokens may use shell syntax such as ~ and quotes, so only table tokens
// belong here.
func (l *Launcher) Command(token string) (*exec.Cmd, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("empty launch token")
	}

	if l.goos == "windows" {
		fields := strings.Fields(token)
		// "start chrome" style tokens already carry the verb
		if strings.EqualFold(fields[0], "start") && len(fields) > 1 {
			fields = fields[1:]
		}
		args := append([]string{"/C", "start", ""}, fields...)
		return exec.Command("cmd", args...), nil
	}

	return exec.Command("sh", "-c", token), nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			log.Debug("Launched process exited", "args", cmd.Args, "err", err)
		}
	}()

	return nil
}
