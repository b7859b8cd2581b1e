package skills

import (
	"context"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Mixer changes the default output.
type Mixer interface {
	ChangeVolume(ctx context.Context, delta int) error
	SetMute(ctx context.Context, mute bool) error
}

type Volume struct {
	Mixer Mixer
	Step  int
}

func (v *Volume) Handle(ctx context.Context, req Request) (string, error) {
	step := v.Step
	if step <= 0 {
		step = 10
	}

	var (
		reply string
		err   error
	)
	u := req.Utterance
	switch {
	case strings.Contains(u, "unmute"):
		reply, err = "Sound is back on", v.Mixer.SetMute(ctx, false)
	case strings.Contains(u, "mute"):
		reply, err = "Muted", v.Mixer.SetMute(ctx, true)
	case strings.Contains(u, "down"), strings.Contains(u, "lower"):
		reply, err = "Turning the volume down", v.Mixer.ChangeVolume(ctx, -step)
	default:
		reply, err = "Turning the volume up", v.Mixer.ChangeVolume(ctx, step)
	}

	if err != nil {
		return "", fail(KindUnavailable, "Sorry, I couldn't change the volume", err)
	}
	return reply, nil
}

// MusicPlayer plays one background track at a time.
type MusicPlayer interface {
	Play(path string) error
	Stop()
}

type Music struct {
	Player     MusicPlayer
	Dir        string
	Extensions []string
	// Pick returns an index in [0, n). Nil means random.
	Pick func(n int) int
}

func (m *Music) Handle(_ context.Context, req Request) (string, error) {
	if strings.Contains(req.Utterance, "stop") || strings.Contains(req.Utterance, "pause") {
		m.Player.Stop()
		return "Music stopped", nil
	}

	if m.Dir == "" {
		return "", fail(KindNotConfigured, "Music folder not configured. Please update config.json", nil)
	}

	tracks, err := m.tracks()
	if err != nil {
		return "", fail(KindUnavailable, "Sorry, I couldn't read your music folder", err)
	}
	if len(tracks) == 0 {
		return "", fail(KindUnavailable, "I couldn't find any music to play", fmt.Errorf("no tracks in %s", m.Dir))
	}

	pick := m.Pick
	if pick == nil {
		pick = rand.IntN
	}
	track := tracks[pick(len(tracks))]

	if err := m.Player.Play(track); err != nil {
		return "", fail(KindUpstream, "Sorry, I couldn't play that", err)
	}

	name := strings.TrimSuffix(filepath.Base(track), filepath.Ext(track))
	return "Playing " + name, nil
}

func (m *Music) tracks() ([]string, error) {
	var out []string
	err := filepath.WalkDir(m.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if slices.Contains(m.Extensions, strings.ToLower(filepath.Ext(path))) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	slices.Sort(out)
	return out, nil
}
