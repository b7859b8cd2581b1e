package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/lmittmann/tint"
	log "log/slog"

	"jarvis/internal/apps"
	"jarvis/internal/audio"
	"jarvis/internal/bus"
	"jarvis/internal/command"
	"jarvis/internal/config"
	"jarvis/internal/input"
	"jarvis/internal/ipc"
	"jarvis/internal/notify"
	"jarvis/internal/proxy"
	"jarvis/internal/session"
	"jarvis/internal/skills"
	"jarvis/internal/tts"
	"jarvis/internal/tts/espeak"
	"jarvis/internal/ui"
)

const name = "Jarvis"

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	configPath := cli.StringP("config", "c", config.DefaultPath, "Config file path")
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	logFile := cli.String("log-file", "jarvis.log", "Log file used while the terminal UI is shown")
	inputMode := cli.StringP("input", "i", "", "Input: voice, text, ipc or bus (overrides preferences.input)")
	noUI := cli.Bool("no-ui", false, "Log to stdout instead of showing the status view")
	mute := cli.Bool("mute", false, "Print replies instead of speaking them")
	say := cli.String("say", "", "Handle one phrase and exit")
	socket := cli.String("socket", ipc.DefaultSocket, "Control socket path")
	busURL := cli.String("bus", "ws://localhost:8092/ws", "Websocket hub for --input bus")
	cli.Parse()

	showUI := !*noUI && *say == ""

	logOut := io.Writer(os.Stdout)
	if showUI {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	log.SetDefault(log.New(tint.NewHandler(logOut, &tint.Options{
		Level:   logLevelMap[*logLevel],
		NoColor: showUI,
	})))

	defer func() {
		if r := recover(); r != nil {
			log.Error("Fatal", "panic", r)
			os.Exit(1)
		}
	}()

	log.Info("Booting up")

	if err := godotenv.Load(*envFile); err != nil {
		log.Debug("No env file", "path", *envFile)
	}

	cfg, created, err := config.Load(*configPath)
	if err != nil {
		log.Error("Failed to load config", "path", *configPath, "err", err)
		os.Exit(1)
	}
	if created {
		log.Info("Wrote default config", "path", *configPath)
	}
	if *inputMode != "" {
		cfg.Preferences.Input = *inputMode
		if err := cfg.Validate(); err != nil {
			log.Error("Bad input mode", "input", *inputMode, "err", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, options{
		showUI: showUI,
		mute:   *mute,
		say:    *say,
		socket: *socket,
		busURL: *busURL,
	}); err != nil {
		log.Error("Stopped", "err", err)
		os.Exit(1)
	}
	log.Info("Bye")
}

type options struct {
	showUI bool
	mute   bool
	say    string
	socket string
	busURL string
}

func run(ctx context.Context, cfg config.Config, opt options) error {
	httpClient, err := proxy.NewHTTPClient(cfg.Preferences.Proxy, 0)
	if err != nil {
		return fmt.Errorf("proxy: %w", err)
	}

	router, err := command.NewRouter(command.DefaultTable(), command.DefaultOrder(), cfg.MatchMode())
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}

	player := audio.NewPlayer()
	defer player.Stop()
	pactl := audio.NewPactl()

	deps := skills.Deps{
		HTTP:            httpClient,
		Apps:            apps.DefaultTable(runtime.GOOS),
		Launcher:        apps.NewLauncher(),
		Probe:           skills.HostProbe{},
		Capturer:        skills.Display{},
		Meter:           skills.Speedtest{},
		Mixer:           pactl,
		Player:          player,
		AudioExtensions: audio.Extensions,
	}
	if cfg.APIs.OpenAI != "" {
		deps.LLM = skills.NewOpenAI(cfg.APIs.OpenAI, httpClient)
		log.Debug("Loaded OpenAI fallback")
	}

	persona := skills.Persona{Name: name, User: cfg.User.Name}
	registry := skills.Defaults(cfg, persona, deps)

	speaker := newSpeaker(cfg, pactl, opt)
	stt := newLazyTranscriber(cfg)
	defer stt.Close()

	queue := input.NewQueue(16, cfg.ListenTimeout())
	source, cue, closeSource, err := newSource(cfg, opt, queue, stt, player)
	if err != nil {
		return err
	}
	defer closeSource()

	board := session.NewStatusBoard()
	scfg := session.Config{
		Router:   router,
		Skills:   registry,
		Source:   source,
		Speaker:  speaker,
		Persona:  persona,
		Language: cfg.Language(),
		Board:    board,
		Cue:      cue,
	}

	var hub *bus.Client
	if cfg.Preferences.Input == "bus" {
		hub, err = bus.Dial(ctx, opt.busURL, "jarvis", 3*time.Second)
		if err != nil {
			return err
		}
		defer hub.Close()
		scfg.OnExchange = hub.Reply
	}

	sess, err := session.New(scfg)
	if err != nil {
		return err
	}

	if opt.say != "" {
		ex := sess.Handle(ctx, opt.say, "cli")
		log.Info("Handled", "category", ex.Category, "reply", ex.Reply)
		return nil
	}

	log.Info("Boot up - successful", "input", cfg.Preferences.Input, "match", router.Mode())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	var prog *tea.Program
	if opt.showUI {
		var submit ui.Submit
		if cfg.Preferences.Input == "text" {
			submit = func(text string) error { return queue.Push(text, input.OriginConsole) }
		}
		prog = tea.NewProgram(ui.New(board, name, submit), tea.WithContext(ctx))
	}

	g.Go(guard("session", func() error {
		defer cancel()
		sess.Welcome(ctx)
		err := sess.Run(ctx)
		if prog != nil {
			prog.Quit()
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}))

	g.Go(guard("ipc", func() error {
		if err := ipc.NewServer(opt.socket, queue, stt.hear, board.Latest).Serve(ctx); err != nil {
			log.Warn("Control socket disabled", "err", err)
		}
		return nil
	}))

	if hub != nil {
		g.Go(guard("bus", func() error {
			return hub.Run(ctx, queue)
		}))
	}

	if prog != nil {
		g.Go(guard("ui", func() error {
			defer cancel()
			_, err := prog.Run()
			if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}))
	}

	return g.Wait()
}

func newSpeaker(cfg config.Config, pactl *audio.Pactl, opt options) tts.Speaker {
	var out tts.Tee
	if !opt.showUI {
		out = append(out, tts.NewConsole(os.Stdout, "JARVIS"))
	}
	if !opt.mute {
		out = append(out, &tts.Ducked{
			Speaker: espeak.New(cfg.Preferences.VoiceSpeed),
			Ducker:  audio.NewDucker(pactl, []string{"jarvis", "espeak", "speech-dispatcher"}, 10),
			Factor:  0.3,
			Fade:    300 * time.Millisecond,
		})
	}
	return out
}

// newSource picks the input for cfg.Preferences.Input. Queued phrases from
// the control socket are served in every mode.
func newSource(cfg config.Config, opt options, queue *input.Queue, stt *lazyTranscriber, player *audio.Player) (input.Source, func(context.Context), func(), error) {
	nop := func() {}

	switch cfg.Preferences.Input {
	case "voice":
		rec := audio.NewRecorder()
		if err := rec.Init(); err != nil {
			return nil, nil, nil, fmt.Errorf("init audio: %w", err)
		}
		log.Debug("Loaded recorder")

		n := notify.New(player, cfg.Paths.Chime)
		mic := audio.NewMic(rec, stt, cfg.ListenTimeout(), cfg.PhraseLimit())
		return input.WithQueue(mic, queue), n.Listening, rec.Close, nil

	case "text":
		if opt.showUI {
			return queue, nil, nop, nil
		}
		lines := input.NewLines(os.Stdin, cfg.ListenTimeout())
		return input.WithQueue(lines, queue), nil, lines.Close, nil

	default:
		return queue, nil, nop, nil
	}
}

// guard turns a panic in a group member into an error so main exits 1.
func guard(what string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Panic", "in", what, "panic", r)
				err = fmt.Errorf("%s: panic: %v", what, r)
			}
		}()
		return fn()
	}
}
