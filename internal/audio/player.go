package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

const playbackRate = beep.SampleRate(44100)

// Extensions the player can decode.
var Extensions = []string{".mp3", ".wav", ".ogg", ".flac"}

// Player plays files on the default output. One background track at a time;
// PlayWait mixes on top of it.
type Player struct {
	initOnce sync.Once
	initErr  error

	mu    sync.Mutex
	track beep.StreamSeekCloser
}

func NewPlayer() *Player {
	return &Player{}
}

func (p *Player) init() error {
	p.initOnce.Do(func() {
		p.initErr = speaker.Init(playbackRate, playbackRate.N(time.Second/10))
	})
	return p.initErr
}

// Play starts path in the background, replacing whatever track was playing.
func (p *Player) Play(path string) error {
	if err := p.init(); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	s, format, err := Decode(path)
	if err != nil {
		return err
	}

	p.Stop()

	p.mu.Lock()
	p.track = s
	p.mu.Unlock()

	speaker.Play(resample(s, format))
	return nil
}

// PlayWait plays path and returns once it has finished or ctx is done.
func (p *Player) PlayWait(ctx context.Context, path string) error {
	if err := p.init(); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	s, format, err := Decode(path)
	if err != nil {
		return err
	}
	defer s.Close()

	done := make(chan struct{})
	speaker.Play(beep.Seq(resample(s, format), beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop ends the background track.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.track == nil {
		return
	}

	speaker.Clear()
	p.track.Close()
	p.track = nil
}

func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		s, format, err = mp3.Decode(f)
	case ".wav":
		s, format, err = wav.Decode(f)
	case ".ogg", ".oga":
		s, format, err = vorbis.Decode(f)
	case ".flac":
		s, format, err = flac.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported audio file %s", filepath.Base(path))
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	return s, format, nil
}

func resample(s beep.Streamer, format beep.Format) beep.Streamer {
	if format.SampleRate == playbackRate {
		return s
	}
	return beep.Resample(4, format.SampleRate, playbackRate, s)
}
