package skills

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const newsAPIURL = "https://newsapi.org"

type News struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
	Country string
	Count   int
}

func (n *News) Handle(ctx context.Context, _ Request) (string, error) {
	headlines, err := n.Headlines(ctx)
	if err != nil {
		return "", err
	}
	if len(headlines) == 0 {
		return "There are no headlines right now.", nil
	}
	return "Here are the top headlines: " + strings.Join(headlines, ". "), nil
}

// Headlines returns at most Count titles, in the order the service ranks them.
func (n *News) Headlines(ctx context.Context) ([]string, error) {
	const apology = "Sorry, I couldn't get the news"

	if n.APIKey == "" {
		return nil, fail(KindNotConfigured, "News API not configured. Please update config.json", nil)
	}

	country := n.Country
	if country == "" {
		country = "us"
	}
	count := n.Count
	if count <= 0 {
		count = 5
	}

	q := url.Values{}
	q.Set("country", country)
	q.Set("apiKey", n.APIKey)

	var body struct {
		Status   string `json:"status"`
		Message  string `json:"message"`
		Articles []struct {
			Title string `json:"title"`
		} `json:"articles"`
	}

	status, err := getJSON(ctx, n.HTTP, baseURL(n.BaseURL, newsAPIURL)+"/v2/top-headlines?"+q.Encode(), &body)
	if err != nil {
		return nil, fail(KindUpstream, apology, err)
	}
	if status == http.StatusUnauthorized {
		return nil, fail(KindNotConfigured, "The news service rejected the API key. Please check config.json",
			fmt.Errorf("newsapi: %s", body.Message))
	}
	if status != http.StatusOK || body.Status != "ok" {
		return nil, fail(KindUpstream, apology, fmt.Errorf("newsapi: status %d: %s", status, body.Message))
	}

	out := make([]string, 0, count)
	for _, a := range body.Articles {
		if len(out) == count {
			break
		}
		if t := strings.TrimSpace(a.Title); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}
