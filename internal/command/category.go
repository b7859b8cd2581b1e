package command

import "fmt"

// Category identifies one command family.
type Category uint

const (
	None Category = iota
	Farewell
	Identity
	UserIdentity
	Greeting
	Time
	Date
	Weather
	System
	News
	Calculator
	Screenshot
	SpeedTest
	Volume
	Music
	Joke
	Wikipedia
	Search
	OpenApp
)

var categoryNames = map[Category]string{
	None:         "none",
	Farewell:     "farewell",
	Identity:     "identity",
	UserIdentity: "user_identity",
	Greeting:     "greeting",
	Time:         "time",
	Date:         "date",
	Weather:      "weather",
	System:       "system",
	News:         "news",
	Calculator:   "calculator",
	Screenshot:   "screenshot",
	SpeedTest:    "speedtest",
	Volume:       "volume",
	Music:        "music",
	Joke:         "joke",
	Wikipedia:    "wikipedia",
	Search:       "search",
	OpenApp:      "open",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", uint(c))
}

func ParseCategory(name string) (Category, error) {
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return None, fmt.Errorf("unknown category %q", name)
}
