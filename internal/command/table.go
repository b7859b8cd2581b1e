package command

// Table maps a category to its trigger phrases.
type Table map[Category][]string

// Order is the priority in which categories are checked. First hit wins.
type Order []Category

func DefaultTable() Table {
	return Table{
		Greeting:     {"hello", "hi", "hey", "greetings"},
		Farewell:     {"bye", "goodbye", "see you", "exit", "quit"},
		Time:         {"time", "what time", "current time"},
		Date:         {"date", "what date", "current date", "day"},
		Weather:      {"weather", "temperature", "forecast"},
		Search:       {"search", "look up", "find", "google"},
		Wikipedia:    {"wikipedia", "wiki", "who is", "what is"},
		System:       {"cpu", "memory", "battery", "system"},
		Music:        {"play music", "play song", "music"},
		Volume:       {"volume up", "volume down", "mute", "unmute"},
		Screenshot:   {"screenshot", "capture screen"},
		Joke:         {"tell joke", "tell me a joke", "joke", "make me laugh"},
		News:         {"news", "headlines", "latest news"},
		Calculator:   {"calculate", "math", "solve"},
		SpeedTest:    {"speed test", "internet speed", "connection speed"},
		OpenApp:      {"open", "launch", "start", "run"},
		Identity:     {"who are you", "what is your name", "tell me about yourself", "what can you do"},
		UserIdentity: {"what is my name", "who am i", "what do you call me"},
	}
}

// DefaultOrder puts Farewell first so a farewell phrase always ends the
// session, and the identity questions ahead of the generic greeting and
// lookup phrases they overlap with.
func DefaultOrder() Order {
	return Order{
		Farewell,
		Identity,
		UserIdentity,
		Greeting,
		Time,
		Date,
		Weather,
		System,
		News,
		Calculator,
		Screenshot,
		SpeedTest,
		Volume,
		Music,
		Joke,
		Wikipedia,
		Search,
		OpenApp,
	}
}

func (t Table) clone() Table {
	out := make(Table, len(t))
	for c, phrases := range t {
		out[c] = append([]string(nil), phrases...)
	}
	return out
}
