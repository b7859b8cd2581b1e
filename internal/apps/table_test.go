package apps

import (
	"errors"
	"os/exec"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownAndUnknown(t *testing.T) {
	table := DefaultTable("windows")

	assert.Equal(t, "calc", table.Resolve("calculator"))
	assert.Equal(t, "calc", table.Resolve("  Calculator "))
	assert.Equal(t, "blender", table.Resolve("blender"))
	assert.Equal(t, "blender", table.Resolve("BLENDER"))
}

func TestResolve_LastDefinitionWins(t *testing.T) {
	table := DefaultTable("windows")

	// "music" is declared twice; the library folder comes last
	assert.Equal(t, "explorer shell:MusicLibrary", table.Resolve("music"))
	assert.Equal(t, "explorer shell:MyComputerFolder", table.Resolve("my computer"))

	custom := NewTable([]Alias{{"editor", "vim"}, {"Editor", "nano"}}, "")
	assert.Equal(t, "nano", custom.Resolve("editor"))
	assert.Equal(t, 1, custom.Len())
}

func TestResolve_NeverEmpty(t *testing.T) {
	for _, goos := range []string{"windows", "linux", "darwin"} {
		table := DefaultTable(goos)

		for _, in := range []string{"", " ", "\t\n", "x", "unknown app"} {
			assert.NotEmpty(t, table.Resolve(in), "%s: %q", goos, in)
		}

		prop := func(s string) bool { return table.Resolve(s) != "" }
		require.NoError(t, quick.Check(prop, nil))
	}
}

func TestResolve_EmptyUsesFallback(t *testing.T) {
	assert.Equal(t, "explorer", DefaultTable("windows").Resolve(""))
	assert.Equal(t, "xdg-open .", DefaultTable("linux").Resolve(""))
	assert.Equal(t, "open .", DefaultTable("darwin").Resolve("  "))
	assert.Equal(t, "thunar", NewTable(nil, "thunar").Resolve(""))
}

func TestFind_PrefersLongestAlias(t *testing.T) {
	table := DefaultTable("windows")

	name, ok := table.Find("open file explorer")
	require.True(t, ok)
	assert.Equal(t, "file explorer", name)

	name, ok = table.Find("please launch windows media player.")
	require.True(t, ok)
	assert.Equal(t, "windows media player", name)

	name, ok = table.Find("open notepad")
	require.True(t, ok)
	assert.Equal(t, "notepad", name)

	_, ok = table.Find("open blender")
	assert.False(t, ok)

	_, ok = table.Find("")
	assert.False(t, ok)
}

func TestLauncher_Command(t *testing.T) {
	win := &Launcher{goos: "windows"}

	cmd, err := win.Command("start chrome")
	require.NoError(t, err)
	assert.Equal(t, []string{"cmd", "/C", "start", "", "chrome"}, cmd.Args)

	cmd, err = win.Command("explorer shell:Downloads")
	require.NoError(t, err)
	assert.Equal(t, []string{"cmd", "/C", "start", "", "explorer", "shell:Downloads"}, cmd.Args)

	linux := &Launcher{goos: "linux"}
	cmd, err = linux.Command("xdg-open ~/Music")
	require.NoError(t, err)
	assert.Equal(t, []string{"sh", "-c", "xdg-open ~/Music"}, cmd.Args)

	_, err = linux.Command("   ")
	assert.Error(t, err)
}

func TestLauncher_LaunchDoesNotWait(t *testing.T) {
	var started []string
	l := &Launcher{
		goos: "linux",
		start: func(cmd *exec.Cmd) error {
			started = append(started, cmd.Args...)
			return nil
		},
	}

	require.NoError(t, l.Launch("gedit"))
	assert.Equal(t, []string{"sh", "-c", "gedit"}, started)

	l.start = func(*exec.Cmd) error { return errors.New("no such file") }
	err := l.Launch("gedit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gedit")

	err = l.OpenURL("https://example.com")
	assert.Error(t, err)
}

func TestLauncher_ProgramSkipsShell(t *testing.T) {
	var started [][]string
	l := &Launcher{
		goos: "linux",
		start: func(cmd *exec.Cmd) error {
			started = append(started, cmd.Args)
			return nil
		},
	}

	require.NoError(t, l.Program("Blender"))
	require.NoError(t, l.Program("libreoffice7.6"))
	assert.Equal(t, [][]string{{"blender"}, {"libreoffice7.6"}}, started)

	for _, name := range []string{"x;id>/tmp/owned", "a && b", "$(id)", "`id`", "-rf", "", "/bin/sh", "a\nb"} {
		err := l.Program(name)
		assert.ErrorIs(t, err, ErrBadProgram, name)
	}
	assert.Len(t, started, 2)

	win := &Launcher{goos: "windows"}
	cmd, err := win.ProgramCommand("blender")
	require.NoError(t, err)
	assert.Equal(t, []string{"cmd", "/C", "start", "", "blender"}, cmd.Args)

	_, err = win.ProgramCommand("calc&del")
	assert.ErrorIs(t, err, ErrBadProgram)
}
