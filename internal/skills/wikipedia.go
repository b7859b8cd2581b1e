package skills

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Wikipedia struct {
	HTTP *http.Client
	// BaseURL overrides https://<Language>.wikipedia.org.
	BaseURL   string
	Language  string
	Sentences int
}

var questionPrefixes = []string{"who is", "who was", "what is", "what are", "tell me about", "search for", "for"}

func (w *Wikipedia) Handle(ctx context.Context, req Request) (string, error) {
	topic := trimQuestion(req.Argument)
	if topic == "" {
		return "", fail(KindBadInput, "What should I look up on Wikipedia?", nil)
	}

	summary, err := w.Summary(ctx, topic)
	if err != nil {
		return "", err
	}
	return "According to Wikipedia, " + summary, nil
}

func (w *Wikipedia) Summary(ctx context.Context, topic string) (string, error) {
	const notFound = "Sorry, I couldn't find that information"

	lang := w.Language
	if lang == "" {
		lang = "en"
	}
	base := baseURL(w.BaseURL, "https://"+lang+".wikipedia.org")
	title := url.PathEscape(strings.ReplaceAll(cases.Title(language.Und).String(topic), " ", "_"))

	var body struct {
		Type    string `json:"type"`
		Extract string `json:"extract"`
		Detail  string `json:"detail"`
	}

	status, err := getJSON(ctx, w.HTTP, base+"/api/rest_v1/page/summary/"+title+"?redirect=true", &body)
	if err != nil {
		return "", fail(KindUpstream, notFound, err)
	}
	if status != http.StatusOK {
		return "", fail(KindBadInput, notFound, fmt.Errorf("wikipedia: status %d: %s", status, body.Detail))
	}
	if body.Type == "disambiguation" {
		return "", fail(KindBadInput, fmt.Sprintf("%s could mean several things. Could you be more specific?", topic), nil)
	}
	if body.Extract == "" {
		return "", fail(KindBadInput, notFound, fmt.Errorf("wikipedia: empty extract for %q", topic))
	}

	n := w.Sentences
	if n <= 0 {
		n = 2
	}
	return firstSentences(body.Extract, n), nil
}

func trimQuestion(s string) string {
	s = strings.TrimSpace(s)
	for _, p := range questionPrefixes {
		if rest, ok := strings.CutPrefix(s, p+" "); ok {
			s = strings.TrimSpace(rest)
		}
	}
	return strings.Trim(s, " ?!.")
}

func firstSentences(text string, n int) string {
	text = strings.TrimSpace(text)
	end := 0
	for i := 0; i < n; i++ {
		idx := strings.Index(text[end:], ". ")
		if idx < 0 {
			return text
		}
		end += idx + 1
	}
	return text[:end]
}
