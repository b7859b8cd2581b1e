package skills

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// Persona holds the names used in conversational replies.
type Persona struct {
	Name string
	User string
}

func (p Persona) Welcome() string {
	return fmt.Sprintf("Hello %s, I am %s, your personal assistant. How may I help you?", p.User, p.Name)
}

func (p Persona) Greeting(context.Context, Request) (string, error) {
	return fmt.Sprintf("Hello %s, how can I help you?", p.User), nil
}

func (p Persona) Farewell(context.Context, Request) (string, error) {
	return fmt.Sprintf("Goodbye %s, have a great day!", p.User), nil
}

func (p Persona) Identity(context.Context, Request) (string, error) {
	return fmt.Sprintf("I am %s, your personal AI assistant. I can help you with various tasks like checking the weather, "+
		"opening applications, searching the web, getting system information, and much more. "+
		"I'm here to make your life easier and more efficient.", p.Name), nil
}

func (p Persona) UserIdentity(context.Context, Request) (string, error) {
	return fmt.Sprintf("You are %s, my user and friend. I'm here to assist you with your daily tasks.", p.User), nil
}

type Clock struct {
	Now func() time.Time
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c Clock) Time(context.Context, Request) (string, error) {
	return "The current time is " + c.now().Format("03:04 PM"), nil
}

func (c Clock) Date(context.Context, Request) (string, error) {
	return "Today is " + c.now().Format("Monday, January 02, 2006"), nil
}

var jokes = []string{
	"Why do programmers prefer dark mode? Because light attracts bugs.",
	"I told my computer I needed a break, and it said no problem, it would go to sleep.",
	"There are 10 kinds of people in the world: those who understand binary and those who don't.",
	"Why did the developer go broke? Because he used up all his cache.",
	"A SQL query walks into a bar, walks up to two tables and asks, can I join you?",
	"Why was the computer cold? It left its Windows open.",
}

type Joke struct {
	// Pick returns an index in [0, n). Nil means random.
	Pick func(n int) int
}

func (j Joke) Handle(context.Context, Request) (string, error) {
	pick := j.Pick
	if pick == nil {
		pick = rand.IntN
	}
	return jokes[pick(len(jokes))], nil
}
