package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_Weather(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"weather in tokyo", "tokyo"},
		{"weather tokyo", "tokyo"},
		{"what's the weather in new york?", "what's the new york"},
		{"temperature in  paris", "paris"},
		{"forecast for berlin", "berlin"},
		{"weather", ""},
		{"weather in", ""},
		{"  tokyo  ", "tokyo"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Extract(Weather, tt.in, MatchWord), tt.in)
	}
}

func TestExtract_WeatherKeepsCityNamesInWordMode(t *testing.T) {
	assert.Equal(t, "weatherford", Extract(Weather, "weather in weatherford", MatchWord))
	assert.Equal(t, "ford", Extract(Weather, "weather in weatherford", MatchSubstring))
}

func TestExtract_Idempotent(t *testing.T) {
	inputs := []string{
		"weather in tokyo",
		"tokyo",
		"weather in weatherford",
		"weatweatherher",
		"weather,  in x",
		"look  up look up cats",
		"search wikipedia wiki x",
		"? weather ?",
		"",
	}

	for _, mode := range []MatchMode{MatchWord, MatchSubstring} {
		for _, c := range []Category{Weather, Wikipedia, Search, OpenApp, Calculator} {
			for _, in := range inputs {
				once := Extract(c, in, mode)
				assert.Equal(t, once, Extract(c, once, mode), "%s/%s: %q", mode, c, in)
			}
		}
	}
}

func TestExtract_Wikipedia(t *testing.T) {
	assert.Equal(t, "alan turing", Extract(Wikipedia, "wikipedia alan turing", MatchWord))
	assert.Equal(t, "go language", Extract(Wikipedia, "wiki go language", MatchWord))
	assert.Equal(t, "who is ada lovelace", Extract(Wikipedia, "who is ada lovelace", MatchWord))
}

func TestExtract_Search(t *testing.T) {
	assert.Equal(t, "for cats", Extract(Search, "search for cats", MatchWord))
	assert.Equal(t, "the news", Extract(Search, "look up the news", MatchSubstring))
}

func TestExtract_OpenApp(t *testing.T) {
	assert.Equal(t, "notepad", Extract(OpenApp, "open notepad", MatchWord))
	assert.Equal(t, "chrome", Extract(OpenApp, "could you launch chrome.", MatchWord))
	// only the last word survives
	assert.Equal(t, "explorer", Extract(OpenApp, "open file explorer", MatchWord))
	assert.Equal(t, "", Extract(OpenApp, "", MatchWord))
}

func TestExtract_NoArgumentCategories(t *testing.T) {
	for _, c := range []Category{Time, Date, Greeting, Farewell, System, News} {
		assert.Empty(t, Extract(c, "what time is it", MatchWord))
	}
}
