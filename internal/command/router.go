package command

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrMissingCategory = errors.New("category missing from command table")

type MatchMode uint

const (
	// MatchWord only accepts phrases that sit on word boundaries.
	MatchWord MatchMode = iota
	// MatchSubstring accepts any raw substring hit ("hi" inside "this").
	MatchSubstring
)

func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "word":
		return MatchWord, nil
	case "substring":
		return MatchSubstring, nil
	default:
		return MatchWord, fmt.Errorf("unknown match mode %q", s)
	}
}

func (m MatchMode) String() string {
	if m == MatchSubstring {
		return "substring"
	}
	return "word"
}

type Match struct {
	Category Category
	Argument string
}

type Router struct {
	table Table
	order Order
	mode  MatchMode
}

func NewRouter(table Table, order Order, mode MatchMode) (*Router, error) {
	for _, c := range order {
		if _, ok := table[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingCategory, c)
		}
	}

	t := table.clone()
	for c, phrases := range t {
		norm := make([]string, 0, len(phrases))
		for _, p := range phrases {
			if p = Normalize(p); p != "" {
				norm = append(norm, p)
			}
		}
		t[c] = norm
	}

	return &Router{
		table: t,
		order: append(Order(nil), order...),
		mode:  mode,
	}, nil
}

// Route expects an already lowercased utterance.
func (r *Router) Route(utterance string) Match {
	c := r.classify(utterance)
	if c == None {
		return Match{}
	}
	return Match{
		Category: c,
		Argument: Extract(c, utterance, r.mode),
	}
}

func (r *Router) Order() Order {
	return append(Order(nil), r.order...)
}

func (r *Router) Mode() MatchMode {
	return r.mode
}

func (r *Router) classify(utterance string) Category {
	if strings.TrimSpace(utterance) == "" {
		return None
	}

	hay := utterance
	if r.mode == MatchWord {
		hay = wordHaystack(utterance)
	}

	for _, c := range r.order {
		for _, phrase := range r.table[c] {
			if r.contains(hay, phrase) {
				return c
			}
		}
	}
	return None
}

func (r *Router) contains(hay, phrase string) bool {
	if r.mode == MatchSubstring {
		return strings.Contains(hay, phrase)
	}
	return strings.Contains(hay, wordHaystack(phrase))
}

// Normalize lowercases s and collapses runs of whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// wordHaystack splits s into words and pads them with single spaces so that
// a padded phrase can only hit on word boundaries.
func wordHaystack(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	if len(words) == 0 {
		return " "
	}
	return " " + strings.Join(words, " ") + " "
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
}
