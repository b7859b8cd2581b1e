package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"jarvis/internal/command"
)

const DefaultPath = "config.json"

type Config struct {
	User        User        `mapstructure:"user"`
	Paths       Paths       `mapstructure:"paths"`
	APIs        APIs        `mapstructure:"apis"`
	Preferences Preferences `mapstructure:"preferences"`
}

type User struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
}

type Paths struct {
	Music        string `mapstructure:"music"`
	Documents    string `mapstructure:"documents"`
	Downloads    string `mapstructure:"downloads"`
	Screenshots  string `mapstructure:"screenshots"`
	WhisperModel string `mapstructure:"whisper_model"`
	Chime        string `mapstructure:"chime"`
}

type APIs struct {
	WolframAlpha   string `mapstructure:"wolframalpha"`
	OpenWeatherMap string `mapstructure:"openweathermap"`
	NewsAPI        string `mapstructure:"newsapi"`
	OpenAI         string `mapstructure:"openai"`
}

type Preferences struct {
	VoiceSpeed      float64 `mapstructure:"voice_speed"`
	Language        string  `mapstructure:"language"`
	TemperatureUnit string  `mapstructure:"temperature_unit"`
	MatchMode       string  `mapstructure:"match_mode"`
	Input           string  `mapstructure:"input"`
	ListenTimeout   float64 `mapstructure:"listen_timeout"` // seconds
	PhraseLimit     float64 `mapstructure:"phrase_limit"`   // seconds
	Proxy           string  `mapstructure:"proxy"`
}

var Inputs = []string{"voice", "text", "ipc", "bus"}

var defaults = map[string]any{
	"user.name":  "Sir",
	"user.email": "",

	"paths.music":         "",
	"paths.documents":     "",
	"paths.downloads":     "",
	"paths.screenshots":   "",
	"paths.whisper_model": "third_party/whisper.cpp/models/ggml-base.en.bin",
	"paths.chime":         "beep.mp3",

	"apis.wolframalpha":   "",
	"apis.openweathermap": "",
	"apis.newsapi":        "",
	"apis.openai":         "",

	"preferences.voice_speed":      1.0,
	"preferences.language":         "en",
	"preferences.temperature_unit": "celsius",
	"preferences.match_mode":       "word",
	"preferences.input":            "voice",
	"preferences.listen_timeout":   5,
	"preferences.phrase_limit":     5,
	"preferences.proxy":            "",
}

// Load reads the configuration document at path. A missing document is not
// an error: the defaults are written to path and used. The returned bool
// reports whether that happened.
func Load(path string) (Config, bool, error) {
	if path == "" {
		path = DefaultPath
	}

	created := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := writeDefault(path); err != nil {
			return Config{}, false, err
		}
		created = true
	} else if err != nil {
		return Config{}, false, fmt.Errorf("stat config: %w", err)
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetEnvPrefix("JARVIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("apis.openai", "JARVIS_APIS_OPENAI", "OPENAI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, created, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, created, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, created, err
	}

	return cfg, created, nil
}

// Default returns the configuration written for a fresh install.
func Default() Config {
	var cfg Config
	// defaults are static; decoding them cannot fail
	_ = newViper().Unmarshal(&cfg)
	return cfg
}

func (c Config) Validate() error {
	if _, err := command.ParseMatchMode(c.Preferences.MatchMode); err != nil {
		return fmt.Errorf("preferences.match_mode: %w", err)
	}

	valid := false
	for _, in := range Inputs {
		if c.Preferences.Input == in {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("preferences.input: unknown input %q (want one of %s)",
			c.Preferences.Input, strings.Join(Inputs, ", "))
	}

	if c.Preferences.ListenTimeout < 0 || c.Preferences.PhraseLimit < 0 {
		return errors.New("preferences: listen_timeout and phrase_limit must not be negative")
	}

	return nil
}

func (c Config) MatchMode() command.MatchMode {
	m, _ := command.ParseMatchMode(c.Preferences.MatchMode)
	return m
}

func (c Config) ListenTimeout() time.Duration {
	return seconds(c.Preferences.ListenTimeout, 5*time.Second)
}

func (c Config) PhraseLimit() time.Duration {
	return seconds(c.Preferences.PhraseLimit, 5*time.Second)
}

func (c Config) Language() string {
	if c.Preferences.Language == "" {
		return "en"
	}
	return c.Preferences.Language
}

func seconds(v float64, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return time.Duration(v * float64(time.Second))
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

func writeDefault(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	if err := newViper().SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}
