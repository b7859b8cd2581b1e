// Package espeak speaks through libespeak-ng with synchronous playback.
package espeak

/*
#cgo LDFLAGS: -lespeak-ng
#include <stdlib.h>
#include <espeak-ng/speak_lib.h>

int
espeak_say(const char *text, const char *voice, int rate)
{
	if (!text || !voice)
	{ return -1; }

	if (espeak_Initialize(AUDIO_OUTPUT_SYNCH_PLAYBACK, 500, NULL, 0) < 0)
	{ return -2; }

	espeak_VOICE specs = { .languages = voice };
	if (espeak_SetVoiceByProperties(&specs) != EE_OK)
	{ espeak_Terminate(); return -3; }

	espeak_SetParameter(espeakRATE, rate, 0);

	espeak_Synth(text, 500, 0, 0, 0, espeakCHARS_AUTO, NULL, NULL);
	espeak_Synchronize();
	espeak_Terminate();

	return 0;
}
*/
import "C"

import (
	"context"
	"fmt"
	"sync"
	"unsafe"
)

// default espeak-ng rate in words per minute
const baseRate = 175

// Speaker plays one phrase at a time; espeak keeps global state.
type Speaker struct {
	mu   sync.Mutex
	rate int
}

// New scales the espeak rate by speed, 1.0 being the library default.
func New(speed float64) *Speaker {
	if speed <= 0 {
		speed = 1
	}
	return &Speaker{rate: int(baseRate * speed)}
}

// Speak blocks until playback ends. The context is only checked before
// synthesis starts.
func (s *Speaker) Speak(ctx context.Context, text, lang string) error {
	if text == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if lang == "" {
		lang = "en"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))
	cvoice := C.CString(lang)
	defer C.free(unsafe.Pointer(cvoice))

	rc := C.espeak_say(ctext, cvoice, C.int(s.rate))
	if rc != 0 {
		return fmt.Errorf("espeak_say failed: %d", int(rc))
	}

	return nil
}
