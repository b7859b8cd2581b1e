package skills

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/distatus/battery"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

var ErrNoBattery = errors.New("no battery")

type BatteryState struct {
	Percent  float64
	Charging bool
}

// Probe reads host statistics.
type Probe interface {
	CPUPercent(ctx context.Context) (float64, error)
	MemoryPercent(ctx context.Context) (float64, error)
	// Battery returns ErrNoBattery on machines without one.
	Battery(ctx context.Context) (BatteryState, error)
}

type System struct {
	Probe Probe
}

func (s *System) Handle(ctx context.Context, _ Request) (string, error) {
	const apology = "Sorry, I couldn't get the system information"

	cpuPct, err := s.Probe.CPUPercent(ctx)
	if err != nil {
		return "", fail(KindUnavailable, apology, fmt.Errorf("cpu: %w", err))
	}
	memPct, err := s.Probe.MemoryPercent(ctx)
	if err != nil {
		return "", fail(KindUnavailable, apology, fmt.Errorf("memory: %w", err))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CPU usage is %.1f%%. ", cpuPct)
	fmt.Fprintf(&b, "Memory usage is %.1f%%. ", memPct)

	bat, err := s.Probe.Battery(ctx)
	if err != nil {
		b.WriteString("Battery information not available")
		return b.String(), nil
	}

	fmt.Fprintf(&b, "Battery is at %.0f%%", bat.Percent)
	if bat.Charging {
		b.WriteString(" and charging")
	}
	return b.String(), nil
}

// HostProbe reads the local machine through gopsutil and the battery package.
type HostProbe struct {
	Interval time.Duration
}

func (p HostProbe) CPUPercent(ctx context.Context) (float64, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}

	pct, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, err
	}
	if len(pct) == 0 {
		return 0, errors.New("no cpu samples")
	}
	return pct[0], nil
}

func (p HostProbe) MemoryPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

func (p HostProbe) Battery(context.Context) (BatteryState, error) {
	all, err := battery.GetAll()
	if len(all) == 0 {
		if err == nil {
			err = ErrNoBattery
		}
		return BatteryState{}, errors.Join(ErrNoBattery, err)
	}

	var current, full float64
	charging := false
	for _, b := range all {
		if b == nil || b.Full <= 0 {
			continue
		}
		current += b.Current
		full += b.Full
		if b.State == battery.Charging {
			charging = true
		}
	}
	if full == 0 {
		return BatteryState{}, ErrNoBattery
	}

	return BatteryState{
		Percent:  current / full * 100,
		Charging: charging,
	}, nil
}
