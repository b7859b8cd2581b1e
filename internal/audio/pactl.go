package audio

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

var percentRe = regexp.MustCompile(`(\d+)\s*%`)

type SinkInput struct {
	ID      int
	Volume  int
	AppName string
}

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Pactl drives PulseAudio / PipeWire through the pactl binary.
type Pactl struct {
	run runFunc
}

func NewPactl() *Pactl {
	return &Pactl{run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return exec.CommandContext(ctx, name, args...).Output()
	}}
}

func (p *Pactl) SinkInputs(ctx context.Context) ([]SinkInput, error) {
	out, err := p.run(ctx, "pactl", "list", "sink-inputs")
	if err != nil {
		return nil, fmt.Errorf("pactl list sink-inputs: %w", err)
	}
	return parseSinkInputs(string(out)), nil
}

func (p *Pactl) SetSinkInputVolume(ctx context.Context, id int, percent int) error {
	percent = clampPercent(percent)
	_, err := p.run(ctx, "pactl", "set-sink-input-volume", strconv.Itoa(id), fmt.Sprintf("%d%%", percent))
	return err
}

// ChangeVolume moves the default sink by delta percent.
func (p *Pactl) ChangeVolume(ctx context.Context, delta int) error {
	arg := fmt.Sprintf("%+d%%", delta)
	if _, err := p.run(ctx, "pactl", "set-sink-volume", "@DEFAULT_SINK@", arg); err != nil {
		return fmt.Errorf("pactl set-sink-volume %s: %w", arg, err)
	}
	return nil
}

func (p *Pactl) SetMute(ctx context.Context, mute bool) error {
	arg := "0"
	if mute {
		arg = "1"
	}
	if _, err := p.run(ctx, "pactl", "set-sink-mute", "@DEFAULT_SINK@", arg); err != nil {
		return fmt.Errorf("pactl set-sink-mute: %w", err)
	}
	return nil
}

func parseSinkInputs(text string) []SinkInput {
	parts := strings.Split(text, "Sink Input #")
	if len(parts) <= 1 {
		return nil
	}

	var res []SinkInput

	for _, block := range parts[1:] {
		newline := strings.IndexByte(block, '\n')
		if newline <= 0 {
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(block[:newline]))
		if err != nil {
			continue
		}

		s := SinkInput{ID: id}

		for _, line := range strings.Split(block[newline+1:], "\n") {
			line = strings.TrimSpace(line)

			if strings.HasPrefix(line, "Volume:") && s.Volume == 0 {
				if m := percentRe.FindStringSubmatch(line); len(m) >= 2 {
					if v, err := strconv.Atoi(m[1]); err == nil {
						s.Volume = v
					}
				}
			}

			// application.name = "Firefox"
			if strings.HasPrefix(line, "application.name =") && s.AppName == "" {
				if _, rest, ok := strings.Cut(line, `"`); ok {
					if name, _, ok := strings.Cut(rest, `"`); ok {
						s.AppName = name
					}
				}
			}
		}

		if s.Volume == 0 && s.AppName == "" {
			continue
		}

		res = append(res, s)
	}

	return res
}

func clampPercent(v int) int {
	return min(max(v, 0), 150)
}
