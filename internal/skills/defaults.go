package skills

import (
	"net/http"
	"time"

	"jarvis/internal/apps"
	"jarvis/internal/command"
	"jarvis/internal/config"
)

// Deps are the collaborators the built-in skills talk to.
type Deps struct {
	HTTP     *http.Client
	Apps     *apps.Table
	Launcher Launcher
	LLM      Completer
	Probe    Probe
	Capturer Capturer
	Meter    Meter
	Mixer    Mixer
	Player   MusicPlayer
	// AudioExtensions lists what Player can decode.
	AudioExtensions []string
	Now             func() time.Time
}

// Defaults registers a handler for every category of command.DefaultOrder.
func Defaults(cfg config.Config, p Persona, d Deps) *Registry {
	r := NewRegistry()
	clock := Clock{Now: d.Now}

	r.Register(command.Farewell, HandlerFunc(p.Farewell))
	r.Register(command.Identity, HandlerFunc(p.Identity))
	r.Register(command.UserIdentity, HandlerFunc(p.UserIdentity))
	r.Register(command.Greeting, HandlerFunc(p.Greeting))
	r.Register(command.Time, HandlerFunc(clock.Time))
	r.Register(command.Date, HandlerFunc(clock.Date))
	r.Register(command.Weather, &Weather{
		HTTP:   d.HTTP,
		APIKey: cfg.APIs.OpenWeatherMap,
		Unit:   cfg.Preferences.TemperatureUnit,
	})
	r.Register(command.System, &System{Probe: d.Probe})
	r.Register(command.News, &News{HTTP: d.HTTP, APIKey: cfg.APIs.NewsAPI})
	r.Register(command.Calculator, &Calculator{
		HTTP:     d.HTTP,
		AppID:    cfg.APIs.WolframAlpha,
		Fallback: d.LLM,
	})
	r.Register(command.Screenshot, &Screenshot{
		Capturer: d.Capturer,
		Dir:      cfg.Paths.Screenshots,
		Now:      d.Now,
	})
	r.Register(command.SpeedTest, &SpeedTest{Meter: d.Meter})
	r.Register(command.Volume, &Volume{Mixer: d.Mixer})
	r.Register(command.Music, &Music{
		Player:     d.Player,
		Dir:        cfg.Paths.Music,
		Extensions: d.AudioExtensions,
	})
	r.Register(command.Joke, Joke{})
	r.Register(command.Wikipedia, &Wikipedia{HTTP: d.HTTP, Language: cfg.Language()})
	r.Register(command.Search, &Search{Launcher: d.Launcher})
	r.Register(command.OpenApp, &OpenApp{Apps: d.Apps, Launcher: d.Launcher})

	return r
}
