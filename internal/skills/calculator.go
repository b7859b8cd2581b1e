package skills

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const wolframURL = "https://api.wolframalpha.com"

const calcPrompt = `
You are the calculator of a voice assistant.
Answer the user's math or unit question with the result only.
One short sentence, no markdown, no working.
If the question is not something you can compute, answer exactly: UNKNOWN
`

// Completer answers a prompt with plain text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Calculator asks Wolfram|Alpha when it has a key and falls back to the
// language model otherwise.
type Calculator struct {
	HTTP     *http.Client
	AppID    string
	BaseURL  string
	Fallback Completer
}

func (c *Calculator) Handle(ctx context.Context, req Request) (string, error) {
	const apology = "Sorry, I couldn't perform that calculation"

	query := req.Argument
	if query == "" {
		query = req.Utterance
	}
	if query == "" {
		return "", fail(KindBadInput, "What should I calculate?", nil)
	}

	switch {
	case c.AppID != "":
		return c.wolfram(ctx, query)
	case c.Fallback != nil:
		out, err := c.Fallback.Complete(ctx, calcPrompt, query)
		if err != nil {
			return "", fail(KindUpstream, apology, err)
		}
		if out == "" || out == "UNKNOWN" {
			return "", fail(KindBadInput, apology, errors.New("model could not answer"))
		}
		return out, nil
	default:
		return "", fail(KindNotConfigured, "Calculator API not configured", nil)
	}
}

func (c *Calculator) wolfram(ctx context.Context, query string) (string, error) {
	const apology = "Sorry, I couldn't perform that calculation"

	q := url.Values{}
	q.Set("appid", c.AppID)
	q.Set("i", query)

	status, text, err := getText(ctx, c.HTTP, baseURL(c.BaseURL, wolframURL)+"/v1/result?"+q.Encode())
	if err != nil {
		return "", fail(KindUpstream, apology, err)
	}

	switch status {
	case http.StatusOK:
		return text, nil
	case http.StatusNotImplemented:
		// the short answers API uses 501 for "no short answer"
		return "", fail(KindBadInput, apology, fmt.Errorf("wolfram: %s", text))
	case http.StatusForbidden, http.StatusUnauthorized:
		return "", fail(KindNotConfigured, "The calculator rejected the API key. Please check config.json",
			fmt.Errorf("wolfram: %s", text))
	default:
		return "", fail(KindUpstream, apology, fmt.Errorf("wolfram: status %d: %s", status, text))
	}
}
