package skills

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"jarvis/internal/apps"
)

// Launcher is the OS side of opening things. It must not wait for the
// launched process. Launch takes alias table tokens only; Program takes a
// name the user said and must not interpret it.
type Launcher interface {
	Launch(token string) error
	Program(name string) error
	OpenURL(url string) error
}

type OpenApp struct {
	Apps     *apps.Table
	Launcher Launcher
}

func (o *OpenApp) Handle(_ context.Context, req Request) (string, error) {
	name, known := o.Apps.Find(req.Utterance)
	if !known {
		name = req.Argument
	}

	var err error
	switch {
	case known:
		err = o.Launcher.Launch(o.Apps.Resolve(name))
	case strings.TrimSpace(name) == "":
		name = o.Apps.Resolve("")
		err = o.Launcher.Launch(name)
	default:
		err = o.Launcher.Program(name)
	}

	if errors.Is(err, apps.ErrBadProgram) {
		return "", fail(KindBadInput, "Sorry, that doesn't look like an application name.", err)
	}
	if err != nil {
		return "", fail(KindUnavailable,
			fmt.Sprintf("Sorry, I couldn't open %s. The application might not be installed or the command is not recognized.", name),
			err)
	}

	if known {
		return "Opening " + name, nil
	}
	return "Attempting to open " + name, nil
}

const searchURL = "https://www.google.com/search?q="

type Search struct {
	Launcher Launcher
}

func (s *Search) Handle(_ context.Context, req Request) (string, error) {
	query := strings.TrimSpace(strings.TrimPrefix(req.Argument, "for "))
	if query == "" {
		return "What should I search for?", nil
	}

	if err := s.Launcher.OpenURL(searchURL + url.QueryEscape(query)); err != nil {
		return "", fail(KindUnavailable, "Sorry, I couldn't open the browser", err)
	}
	return "Searching for " + query, nil
}
