package apps

import (
	"runtime"
	"strings"
)

// Alias binds a spoken application name to the launch token handed to the OS.
type Alias struct {
	Name  string
	Token string
}

// Table resolves application names to launch tokens. Later aliases override
// earlier ones with the same name.
type Table struct {
	tokens   map[string]string
	maxWords int
	fallback string
}

func NewTable(aliases []Alias, fallback string) *Table {
	t := &Table{
		tokens:   make(map[string]string, len(aliases)),
		fallback: strings.TrimSpace(fallback),
	}
	if t.fallback == "" {
		t.fallback = fallbackToken(runtime.GOOS)
	}

	for _, a := range aliases {
		name := normalize(a.Name)
		token := strings.TrimSpace(a.Token)
		if name == "" || token == "" {
			continue
		}
		t.tokens[name] = token
		if n := len(strings.Fields(name)); n > t.maxWords {
			t.maxWords = n
		}
	}

	return t
}

// DefaultTable returns the built-in aliases for goos.
func DefaultTable(goos string) *Table {
	switch goos {
	case "windows":
		return NewTable(windowsAliases, fallbackToken(goos))
	case "darwin":
		return NewTable(darwinAliases, fallbackToken(goos))
	default:
		return NewTable(linuxAliases, fallbackToken(goos))
	}
}

// Resolve never fails: unknown names are returned as their own token and an
// empty name resolves to the table's fallback.
func (t *Table) Resolve(name string) string {
	key := normalize(name)
	if key == "" {
		return t.fallback
	}
	if token, ok := t.tokens[key]; ok {
		return token
	}
	return key
}

// Find returns the longest known alias that ends the utterance, so
// "open file explorer" yields "file explorer" instead of "explorer".
func (t *Table) Find(utterance string) (string, bool) {
	words := strings.Fields(normalize(utterance))
	for i := range words {
		words[i] = strings.Trim(words[i], "?!.,;:")
	}

	for n := min(t.maxWords, len(words)); n > 0; n-- {
		candidate := strings.Join(words[len(words)-n:], " ")
		if _, ok := t.tokens[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

func (t *Table) Len() int {
	return len(t.tokens)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func fallbackToken(goos string) string {
	switch goos {
	case "windows":
		return "explorer"
	case "darwin":
		return "open ."
	default:
		return "xdg-open ."
	}
}
