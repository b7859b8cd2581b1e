package command

import (
	"regexp"
	"strings"
)

var (
	weatherPhrases   = []string{"weather in", "weather for", "weather", "temperature in", "temperature", "forecast for", "forecast in", "forecast"}
	wikipediaPhrases = []string{"wikipedia", "wiki"}
	searchPhrases    = []string{"search", "look up"}
)

var wordStrippers = map[Category]*regexp.Regexp{
	Weather:   boundaryRe(weatherPhrases),
	Wikipedia: boundaryRe(wikipediaPhrases),
	Search:    boundaryRe(searchPhrases),
}

const edgePunct = " \t?!.,;:"

// Extract pulls the category specific argument out of an utterance. It is
// idempotent for every category: feeding its output back returns the same
// string.
func Extract(c Category, utterance string, mode MatchMode) string {
	switch c {
	case Weather:
		return strip(utterance, weatherPhrases, wordStrippers[Weather], mode)
	case Wikipedia:
		return strip(utterance, wikipediaPhrases, wordStrippers[Wikipedia], mode)
	case Search:
		return strip(utterance, searchPhrases, wordStrippers[Search], mode)
	case OpenApp:
		return lastWord(utterance)
	case Calculator:
		return strings.Trim(Normalize(utterance), edgePunct)
	default:
		return ""
	}
}

func strip(s string, phrases []string, re *regexp.Regexp, mode MatchMode) string {
	s = strings.Join(strings.Fields(s), " ")
	for {
		var next string
		if mode == MatchSubstring {
			next = s
			for _, p := range phrases {
				next = strings.ReplaceAll(next, p, " ")
			}
		} else {
			next = re.ReplaceAllString(s, " ")
		}
		next = strings.Join(strings.Fields(next), " ")
		if next == s {
			break
		}
		s = next
	}
	return strings.Trim(s, edgePunct)
}

func lastWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[len(fields)-1], edgePunct)
}

func boundaryRe(phrases []string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}
