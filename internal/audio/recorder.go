package audio

import (
	"errors"
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

// ErrNoSpeech is returned when nothing louder than the silence threshold
// arrives before the wait runs out.
var ErrNoSpeech = errors.New("no speech detected")

const (
	SampleRate = 16000
	frameSize  = 320 // 20ms
	frameDur   = 20 * time.Millisecond
)

type Recorder struct {
	// SilenceRMS is the level below which a frame counts as silence.
	SilenceRMS float64
	// Trailing is how much silence ends a phrase.
	Trailing time.Duration
}

func NewRecorder() *Recorder {
	return &Recorder{
		SilenceRMS: 0.015,
		Trailing:   600 * time.Millisecond,
	}
}

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// RecordAuto waits up to wait for speech to start, then records until a
// trailing silence or until maxPhrase of speech has been captured. Samples
// are mono 16 kHz float32.
func (r *Recorder) RecordAuto(wait, maxPhrase time.Duration) ([]float32, error) {
	buf := make([]float32, frameSize)
	out := make([]float32, 0, SampleRate*3)

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	det := newDetector(r.SilenceRMS, wait, maxPhrase, r.Trailing)

	for {
		if err := stream.Read(); err != nil {
			return nil, err
		}

		keep, done := det.feed(frameRMS(buf))
		if keep {
			out = append(out, buf...)
		}
		if done {
			break
		}
	}

	if !det.speaking {
		return nil, ErrNoSpeech
	}
	return out, nil
}

// detector is the frame-by-frame state of RecordAuto, kept apart from the
// device so it can be driven by tests.
type detector struct {
	thresh float64

	waitFrames     int
	maxFrames      int
	trailingFrames int

	idle          int
	spoken        int
	silenceFrames int
	speaking      bool
}

func newDetector(thresh float64, wait, maxPhrase, trailing time.Duration) *detector {
	return &detector{
		thresh:         thresh,
		waitFrames:     max(1, int(wait/frameDur)),
		maxFrames:      max(1, int(maxPhrase/frameDur)),
		trailingFrames: max(1, int(trailing/frameDur)),
	}
}

func (d *detector) feed(rms float64) (keep, done bool) {
	if !d.speaking {
		if rms <= d.thresh {
			d.idle++
			return false, d.idle >= d.waitFrames
		}
		d.speaking = true
	}

	d.spoken++
	if rms > d.thresh {
		d.silenceFrames = 0
	} else {
		d.silenceFrames++
		if d.silenceFrames >= d.trailingFrames {
			return false, true
		}
	}
	return true, d.spoken >= d.maxFrames
}

func frameRMS(f []float32) float64 {
	var s float64
	for _, x := range f {
		s += float64(x * x)
	}
	return math.Sqrt(s / float64(len(f)))
}
