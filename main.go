package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"go-tetris/internal/audio"
	"go-tetris/internal/board"
	"go-tetris/internal/config"
	"go-tetris/internal/game"
	"go-tetris/internal/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type LocalState struct {
	Game *game.Game

	input    *inputBuffer
	help     help.Model
	tickRate int
	width    int
	height   int
	log      zerolog.Logger
}

type TickMsg time.Time

func (s *LocalState) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(s.tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func initialModel(cfg config.Config, log zerolog.Logger, music game.MusicPlayer) (*LocalState, error) {
	opts := game.Options{
		StartLevel: cfg.StartLevel,
		Logger:     log,
	}
	if cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed>>1|1))
	}

	g, err := game.NewGame(opts, music)
	if err != nil {
		return nil, err
	}

	return &LocalState{
		Game:     g,
		input:    newInputBuffer(cfg.TickRate),
		help:     help.New(),
		tickRate: cfg.TickRate,
		log:      log,
	}, nil
}

func (s *LocalState) Init() tea.Cmd {
	return s.tickCmd()
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if err := s.Game.HandleTick(s.input.drain()...); err != nil {
			s.log.Error().Err(err).Msg("tick failed")
		}
		if s.Game.IsQuit() {
			return s, tea.Quit
		}
		return s, s.tickCmd()
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.help.Width = msg.Width
	case tea.KeyMsg:
		s.handleKey(msg)
	}

	return s, nil
}

func (s *LocalState) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Quit):
		s.input.press(game.Quit)
	case key.Matches(msg, keys.Restart):
		if !s.Game.IsGameOver() {
			return
		}
		if err := s.Game.Acknowledge(); err != nil {
			s.log.Error().Err(err).Msg("restart failed")
			return
		}
		s.input.reset()
	case key.Matches(msg, keys.Left):
		s.input.press(game.MoveLeft)
	case key.Matches(msg, keys.Right):
		s.input.press(game.MoveRight)
	case key.Matches(msg, keys.Rotate):
		s.input.press(game.RotateCW)
	case key.Matches(msg, keys.SoftDrop):
		s.input.press(game.SoftDropOn)
	case key.Matches(msg, keys.Pause):
		s.input.press(game.TogglePause)
	case key.Matches(msg, keys.Music):
		s.input.press(game.ToggleMusic)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	var noMusic bool

	flag.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "Simulation ticks per second")
	flag.IntVar(&cfg.TickRate, "tr", cfg.TickRate, "Simulation ticks per second (shorthand)")

	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for the piece sequence (0 picks one)")
	flag.Uint64Var(&cfg.Seed, "s", cfg.Seed, "Seed for the piece sequence (shorthand)")

	flag.IntVar(&cfg.StartLevel, "level", cfg.StartLevel, "Starting level (1-10)")
	flag.IntVar(&cfg.StartLevel, "l", cfg.StartLevel, "Starting level (shorthand)")

	flag.BoolVar(&noMusic, "nomusic", !cfg.Music, "Start without background music")
	flag.BoolVar(&noMusic, "nm", !cfg.Music, "Start without background music (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fmt.Fprintf(os.Stderr, "  -tr, --tick-rate=N    Simulation ticks per second (default %d)\n", cfg.TickRate)
		fmt.Fprintf(os.Stderr, "   -s, --seed=N         Seed for the piece sequence (0 picks one)\n")
		fmt.Fprintf(os.Stderr, "   -l, --level=N        Starting level (1-10)\n")
		fmt.Fprintf(os.Stderr, "  -nm, --nomusic        Start without background music\n")
		fmt.Fprintf(os.Stderr, "   -h, --help           Show this help message\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment (also read from .env):\n")
		fmt.Fprintf(os.Stderr, "  %s %s %s\n  %s %s %s\n",
			config.EnvTickRate, config.EnvSeed, config.EnvStartLevel,
			config.EnvMusic, config.EnvLogLevel, config.EnvLogFile)
	}

	flag.Parse()
	cfg.Music = !noMusic

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid options: %v\n", err)
		os.Exit(1)
	}
	if err := board.Validate(gridCols, gridRows); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	var music game.MusicPlayer
	if cfg.Music {
		m := audio.NewMusic()
		if err := m.Start(); err != nil {
			log.Warn().Err(err).Msg("audio unavailable, continuing without music")
		} else {
			defer m.Close()
			music = m
		}
	}

	model, err := initialModel(cfg, log, music)
	if err != nil {
		fmt.Printf("Error initializing model: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error starting the program: %v\n", err)
	}

	if h := model.Game.History; h.Attempts() > 0 {
		fmt.Printf("Games played: %d | Best score: %d\n", h.Attempts(), h.GetHighScoreEntry().Score)
	}
}
