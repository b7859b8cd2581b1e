package audio

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
)

type fadeTarget struct {
	id   int
	from int
	to   int
}

// Ducker fades every other sink-input down while the assistant talks and
// restores them afterwards. Streams whose application.name is in selfNames
// are left alone.
type Ducker struct {
	pactl *Pactl

	mu          sync.Mutex
	active      bool
	selfNames   []string
	originalVol map[int]int
	minVolume   int
	sleep       func(time.Duration)
}

func NewDucker(pactl *Pactl, selfNames []string, minVolume int) *Ducker {
	return &Ducker{
		pactl:       pactl,
		selfNames:   append([]string(nil), selfNames...),
		originalVol: make(map[int]int),
		minVolume:   clampPercent(minVolume),
		sleep:       time.Sleep,
	}
}

// Duck fades foreign streams to current*factor, never below minVolume.
func (d *Ducker) Duck(ctx context.Context, factor float64, duration time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active {
		return nil
	}

	streams, err := d.pactl.SinkInputs(ctx)
	if err != nil {
		return err
	}

	d.originalVol = make(map[int]int)

	var targets []fadeTarget
	for _, s := range streams {
		if d.isSelf(s) {
			continue
		}

		to := int(math.Round(math.Min(math.Max(float64(s.Volume)*factor, float64(d.minVolume)), 150)))
		d.originalVol[s.ID] = s.Volume
		targets = append(targets, fadeTarget{id: s.ID, from: s.Volume, to: to})
	}

	if err := d.fade(ctx, targets, duration); err != nil {
		return err
	}

	d.active = true
	return nil
}

// Restore fades the streams touched by Duck back to where they were. Streams
// that appeared after Duck are ignored.
func (d *Ducker) Restore(ctx context.Context, duration time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active {
		return nil
	}

	streams, err := d.pactl.SinkInputs(ctx)
	if err != nil {
		return err
	}

	var targets []fadeTarget
	for _, s := range streams {
		if d.isSelf(s) {
			continue
		}
		orig, ok := d.originalVol[s.ID]
		if !ok {
			continue
		}
		targets = append(targets, fadeTarget{id: s.ID, from: s.Volume, to: orig})
	}

	if err := d.fade(ctx, targets, duration); err != nil {
		return err
	}

	d.originalVol = make(map[int]int)
	d.active = false
	return nil
}

func (d *Ducker) isSelf(s SinkInput) bool {
	for _, name := range d.selfNames {
		if s.AppName == name {
			return true
		}
	}
	return false
}

func (d *Ducker) fade(ctx context.Context, targets []fadeTarget, duration time.Duration) error {
	if len(targets) == 0 {
		return nil
	}

	const minStep = 10 * time.Millisecond

	steps := max(int(duration/minStep), 1)
	if duration <= 0 {
		steps = 0
	}
	stepDur := duration / time.Duration(max(steps, 1))

	for i := 0; i <= steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		frac := 1.0
		if steps > 0 {
			frac = float64(i) / float64(steps)
		}

		for _, t := range targets {
			v := int(math.Round(float64(t.from) + float64(t.to-t.from)*frac))
			if err := d.pactl.SetSinkInputVolume(ctx, t.id, v); err != nil {
				return fmt.Errorf("set volume id=%d: %w", t.id, err)
			}
		}

		if i < steps {
			d.sleep(stepDur)
		}
	}

	return nil
}
