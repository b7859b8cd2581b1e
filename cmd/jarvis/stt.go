package main

import (
	"context"
	"fmt"
	log "log/slog"
	"sync"
	"time"

	"jarvis/internal/config"
	"jarvis/pkg/audioconv"
	"jarvis/pkg/stt"
)

// lazyTranscriber loads the whisper model on first use, so text and ipc
// modes start without it.
type lazyTranscriber struct {
	path string
	opt  stt.Options

	once sync.Once
	t    *stt.Transcriber
	err  error
}

func newLazyTranscriber(cfg config.Config) *lazyTranscriber {
	return &lazyTranscriber{
		path: cfg.Paths.WhisperModel,
		opt:  stt.Options{Language: cfg.Language(), Prompt: name + "."},
	}
}

func (l *lazyTranscriber) load() (*stt.Transcriber, error) {
	l.once.Do(func() {
		start := time.Now()
		l.t, l.err = stt.NewTranscriber(l.path, l.opt)
		if l.err == nil {
			log.Debug("Loaded whisper", "model", l.path, "took", time.Since(start))
		}
	})
	return l.t, l.err
}

func (l *lazyTranscriber) Transcribe(ctx context.Context, pcm []float32) (string, error) {
	t, err := l.load()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()
	return t.Transcribe(ctx, pcm)
}

// hear transcribes an audio file sent over the control socket.
func (l *lazyTranscriber) hear(ctx context.Context, path string) (string, error) {
	pcm, err := audioconv.ConvertFileToPCM16k(ctx, path, audioconv.Options{MaxDuration: 2 * time.Minute})
	if err != nil {
		return "", err
	}
	if len(pcm) == 0 {
		return "", fmt.Errorf("%s: no audio", path)
	}
	return l.Transcribe(ctx, pcm)
}

func (l *lazyTranscriber) Close() {
	if l.t != nil {
		l.t.Close()
	}
}
