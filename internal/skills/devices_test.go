package skills

import (
	"context"
	"errors"
	"image"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/apps"
)

type fakeLauncher struct {
	launched []string
	programs []string
	opened   []string
	err      error
}

func (f *fakeLauncher) Launch(token string) error {
	f.launched = append(f.launched, token)
	return f.err
}

// Program validates like the real launcher and records what would run.
func (f *fakeLauncher) Program(name string) error {
	cmd, err := apps.NewLauncher().ProgramCommand(name)
	if err != nil {
		return err
	}
	f.programs = append(f.programs, cmd.Args...)
	return f.err
}

func (f *fakeLauncher) OpenURL(u string) error {
	f.opened = append(f.opened, u)
	return f.err
}

func TestOpenApp(t *testing.T) {
	l := &fakeLauncher{}
	o := &OpenApp{Apps: apps.DefaultTable("linux"), Launcher: l}

	got, err := o.Handle(context.Background(), Request{Utterance: "open visual studio code", Argument: "code"})
	require.NoError(t, err)
	assert.Equal(t, "Opening visual studio code", got)

	got, err = o.Handle(context.Background(), Request{Utterance: "open notepad", Argument: "notepad"})
	require.NoError(t, err)
	assert.Equal(t, "Opening notepad", got)

	got, err = o.Handle(context.Background(), Request{Utterance: "open blender", Argument: "blender"})
	require.NoError(t, err)
	assert.Equal(t, "Attempting to open blender", got)

	got, err = o.Handle(context.Background(), Request{Utterance: "open", Argument: ""})
	require.NoError(t, err)
	assert.Equal(t, "Attempting to open xdg-open .", got)

	assert.Equal(t, []string{"code", "gedit", "xdg-open ."}, l.launched)
	assert.Equal(t, []string{"blender"}, l.programs)
}

func TestOpenApp_UnknownNameIsNotInterpreted(t *testing.T) {
	l := &fakeLauncher{}
	o := &OpenApp{Apps: apps.DefaultTable("linux"), Launcher: l}

	for _, arg := range []string{"x;id>/tmp/owned", "$(reboot)", "a|b", "`id`", "../bin/sh"} {
		_, err := o.Handle(context.Background(), Request{Utterance: "open " + arg, Argument: arg})
		assert.Equal(t, KindBadInput, kindOf(t, err), arg)
		assert.ErrorIs(t, err, apps.ErrBadProgram)
	}
	assert.Empty(t, l.launched)
	assert.Empty(t, l.programs)
}

func TestOpenApp_LaunchFailure(t *testing.T) {
	l := &fakeLauncher{err: errors.New("exec: not found")}
	o := &OpenApp{Apps: apps.DefaultTable("linux"), Launcher: l}

	_, err := o.Handle(context.Background(), Request{Utterance: "open blender", Argument: "blender"})
	assert.Equal(t, KindUnavailable, kindOf(t, err))
	assert.True(t, strings.HasPrefix(Reply(err), "Sorry, I couldn't open blender."))
}

func TestSearch(t *testing.T) {
	l := &fakeLauncher{}
	s := &Search{Launcher: l}

	got, err := s.Handle(context.Background(), Request{Argument: "for golang generics"})
	require.NoError(t, err)
	assert.Equal(t, "Searching for golang generics", got)
	require.Len(t, l.opened, 1)

	u, err := url.Parse(l.opened[0])
	require.NoError(t, err)
	assert.Equal(t, "golang generics", u.Query().Get("q"))

	got, err = s.Handle(context.Background(), Request{Argument: ""})
	require.NoError(t, err)
	assert.Equal(t, "What should I search for?", got)
	assert.Len(t, l.opened, 1)
}

type fakeProbe struct {
	cpu, mem float64
	bat      BatteryState
	batErr   error
	cpuErr   error
}

func (f fakeProbe) CPUPercent(context.Context) (float64, error)    { return f.cpu, f.cpuErr }
func (f fakeProbe) MemoryPercent(context.Context) (float64, error) { return f.mem, nil }
func (f fakeProbe) Battery(context.Context) (BatteryState, error)  { return f.bat, f.batErr }

func TestSystem(t *testing.T) {
	s := &System{Probe: fakeProbe{cpu: 12.34, mem: 56.78, bat: BatteryState{Percent: 80.4, Charging: true}}}
	got, err := s.Handle(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "CPU usage is 12.3%. Memory usage is 56.8%. Battery is at 80% and charging", got)

	s = &System{Probe: fakeProbe{cpu: 1, mem: 2, batErr: ErrNoBattery}}
	got, err = s.Handle(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "CPU usage is 1.0%. Memory usage is 2.0%. Battery information not available", got)

	s = &System{Probe: fakeProbe{cpuErr: errors.New("permission denied")}}
	_, err = s.Handle(context.Background(), Request{})
	assert.Equal(t, KindUnavailable, kindOf(t, err))
}

type fakeCapturer struct {
	err error
}

func (f fakeCapturer) Capture() (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func TestScreenshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	at := time.Unix(1700000000, 0)
	s := &Screenshot{Capturer: fakeCapturer{}, Dir: dir, Now: func() time.Time { return at }}

	got, err := s.Handle(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "Screenshot saved as screenshot_1700000000.png", got)

	info, err := os.Stat(filepath.Join(dir, "screenshot_1700000000.png"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	s.Capturer = fakeCapturer{err: errors.New("no display")}
	_, err = s.Handle(context.Background(), Request{})
	assert.Equal(t, "Sorry, I couldn't take a screenshot", Reply(err))
}

type fakeMeter struct {
	down, up float64
	err      error
}

func (f fakeMeter) Measure(context.Context) (float64, float64, error) { return f.down, f.up, f.err }

func TestSpeedTest(t *testing.T) {
	got, err := (&SpeedTest{Meter: fakeMeter{down: 94.123, up: 11.5}}).Handle(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "Download speed is 94.12 Mbps and upload speed is 11.50 Mbps", got)

	_, err = (&SpeedTest{Meter: fakeMeter{err: errors.New("offline")}}).Handle(context.Background(), Request{})
	assert.Equal(t, "Sorry, I couldn't check the internet speed", Reply(err))
}

type fakeMixer struct {
	deltas []int
	mutes  []bool
}

func (f *fakeMixer) ChangeVolume(_ context.Context, d int) error {
	f.deltas = append(f.deltas, d)
	return nil
}

func (f *fakeMixer) SetMute(_ context.Context, m bool) error {
	f.mutes = append(f.mutes, m)
	return nil
}

func TestVolume(t *testing.T) {
	m := &fakeMixer{}
	v := &Volume{Mixer: m}
	ctx := context.Background()

	for _, tc := range []struct {
		utterance string
		want      string
	}{
		{"volume up", "Turning the volume up"},
		{"turn the volume down", "Turning the volume down"},
		{"mute", "Muted"},
		{"unmute", "Sound is back on"},
	} {
		got, err := v.Handle(ctx, Request{Utterance: tc.utterance})
		require.NoError(t, err, tc.utterance)
		assert.Equal(t, tc.want, got, tc.utterance)
	}

	assert.Equal(t, []int{10, -10}, m.deltas)
	assert.Equal(t, []bool{true, false}, m.mutes)
}

type fakePlayer struct {
	playing string
	stopped int
}

func (f *fakePlayer) Play(path string) error {
	f.playing = path
	return nil
}

func (f *fakePlayer) Stop() { f.stopped++ }

func TestMusic(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "a.flac", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	p := &fakePlayer{}
	m := &Music{Player: p, Dir: dir, Extensions: []string{".mp3", ".flac"}, Pick: func(int) int { return 0 }}

	got, err := m.Handle(context.Background(), Request{Utterance: "play music"})
	require.NoError(t, err)
	assert.Equal(t, "Playing a", got)
	assert.Equal(t, filepath.Join(dir, "a.flac"), p.playing)

	got, err = m.Handle(context.Background(), Request{Utterance: "stop music"})
	require.NoError(t, err)
	assert.Equal(t, "Music stopped", got)
	assert.Equal(t, 1, p.stopped)

	m.Dir = ""
	_, err = m.Handle(context.Background(), Request{Utterance: "play music"})
	assert.Equal(t, KindNotConfigured, kindOf(t, err))

	m.Dir = t.TempDir()
	_, err = m.Handle(context.Background(), Request{Utterance: "play music"})
	assert.Equal(t, "I couldn't find any music to play", Reply(err))
}
