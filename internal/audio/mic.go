package audio

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"jarvis/internal/input"
)

const OriginMic = "mic"

type capturer interface {
	RecordAuto(wait, maxPhrase time.Duration) ([]float32, error)
}

// Transcriber turns 16 kHz mono PCM into text.
type Transcriber interface {
	Transcribe(ctx context.Context, pcm []float32) (string, error)
}

// Mic is the voice input.Source: a bounded recording followed by
// transcription.
type Mic struct {
	rec       capturer
	stt       Transcriber
	wait      time.Duration
	maxPhrase time.Duration
}

func NewMic(rec *Recorder, stt Transcriber, wait, maxPhrase time.Duration) *Mic {
	return &Mic{rec: rec, stt: stt, wait: wait, maxPhrase: maxPhrase}
}

func (m *Mic) Capture(ctx context.Context) (input.Clip, error) {
	if err := ctx.Err(); err != nil {
		return input.Clip{}, err
	}

	pcm, err := m.rec.RecordAuto(m.wait, m.maxPhrase)
	if errors.Is(err, ErrNoSpeech) {
		return input.Clip{}, input.ErrNoInput
	}
	if err != nil {
		return input.Clip{}, fmt.Errorf("record: %w", err)
	}

	log.Debug("Recorded", "samples", len(pcm))
	return input.Clip{PCM: pcm, Origin: OriginMic}, nil
}

func (m *Mic) Recognize(ctx context.Context, clip input.Clip) (string, error) {
	if clip.PCM == nil {
		return input.TextOf(ctx, clip)
	}

	text, err := m.stt.Transcribe(ctx, clip.PCM)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	text = cleanTranscript(text)
	if text == "" {
		return "", input.ErrNotUnderstood
	}
	return text, nil
}

// whisper marks silence and noise with bracketed tags
var noiseTags = []string{"[BLANK_AUDIO]", "[MUSIC]", "[NOISE]", "(silence)", "[SILENCE]", "[inaudible]"}

func cleanTranscript(s string) string {
	for _, tag := range noiseTags {
		s = strings.ReplaceAll(s, tag, "")
	}
	return strings.Join(strings.Fields(s), " ")
}
