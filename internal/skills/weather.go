package skills

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const openWeatherMapURL = "https://api.openweathermap.org"

// Report is what the weather service tells us about one city.
type Report struct {
	City        string
	Temperature float64
	Description string
	Humidity    float64
	WindSpeed   float64
}

type Weather struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
	// Unit is celsius, fahrenheit or kelvin.
	Unit string
}

func (w *Weather) Handle(ctx context.Context, req Request) (string, error) {
	city := req.Argument
	if city == "" {
		return "Please specify a city", nil
	}

	rep, err := w.Lookup(ctx, city)
	if err != nil {
		return "", err
	}

	tempUnit, windUnit := w.symbols()
	return fmt.Sprintf("The temperature in %s is %.1f%s with %s. Humidity is %.0f%% and wind speed is %.1f %s",
		rep.City, rep.Temperature, tempUnit, rep.Description, rep.Humidity, rep.WindSpeed, windUnit), nil
}

func (w *Weather) Lookup(ctx context.Context, city string) (Report, error) {
	const apology = "Sorry, I couldn't get the weather information."

	if w.APIKey == "" {
		return Report{}, fail(KindNotConfigured, "Weather API not configured. Please update config.json", nil)
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", w.APIKey)
	q.Set("units", w.units())

	var body struct {
		Name string `json:"name"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Message string `json:"message"`
	}

	status, err := getJSON(ctx, w.HTTP, baseURL(w.BaseURL, openWeatherMapURL)+"/data/2.5/weather?"+q.Encode(), &body)
	if err != nil {
		return Report{}, fail(KindUpstream, apology, err)
	}

	switch status {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return Report{}, fail(KindNotConfigured, "The weather service rejected the API key. Please check config.json",
			fmt.Errorf("openweathermap: %s", body.Message))
	case http.StatusNotFound:
		return Report{}, fail(KindBadInput, fmt.Sprintf("Sorry, I couldn't find the weather for %s.", city),
			fmt.Errorf("openweathermap: %s", body.Message))
	default:
		return Report{}, fail(KindUpstream, apology, fmt.Errorf("openweathermap: status %d: %s", status, body.Message))
	}

	rep := Report{
		City:        cases.Title(language.English).String(city),
		Temperature: body.Main.Temp,
		Humidity:    body.Main.Humidity,
		WindSpeed:   body.Wind.Speed,
	}
	if len(body.Weather) > 0 {
		rep.Description = body.Weather[0].Description
	}

	return rep, nil
}

func (w *Weather) units() string {
	switch w.Unit {
	case "fahrenheit":
		return "imperial"
	case "kelvin":
		return "standard"
	default:
		return "metric"
	}
}

func (w *Weather) symbols() (temp, wind string) {
	switch w.Unit {
	case "fahrenheit":
		return "°F", "mph"
	case "kelvin":
		return "K", "m/s"
	default:
		return "°C", "m/s"
	}
}
