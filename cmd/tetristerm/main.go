package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/term"

	"github.com/qnkhuat/tetristerm/pkg/audio"
	"github.com/qnkhuat/tetristerm/pkg/config"
	"github.com/qnkhuat/tetristerm/pkg/game"
)

var (
	done = make(chan bool, 2)

	envFile      string
	logPath      string
	debugAddress string
	logDebug     bool
	logVerbose   bool

	players       int
	names         string
	width         int
	height        int
	fallTime      time.Duration
	seed          int64
	randomizer    string
	tracks        string
	volume        float64
	musicVolume   float64
	effectsVolume float64
	mute          bool

	// Set when -players was given, which skips the title menu.
	playersFlag bool
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

func main() {
	flag.StringVar(&envFile, "env", ".env", "path to .env configuration file")
	flag.StringVar(&logPath, "log", "", "path to log file")
	flag.StringVar(&debugAddress, "debug-address", "", "address to serve metrics on")
	flag.BoolVar(&logDebug, "debug", false, "enable debug logging")
	flag.BoolVar(&logVerbose, "verbose", false, "enable verbose logging")
	flag.IntVar(&players, "players", 1, "number of players (1 or 2), starts a match right away")
	flag.StringVar(&names, "names", "", "comma separated player names")
	flag.IntVar(&width, "width", 0, "board width")
	flag.IntVar(&height, "height", 0, "board height")
	flag.DurationVar(&fallTime, "fall-time", 0, "interval between automatic drops")
	flag.Int64Var(&seed, "seed", 0, "piece randomizer seed")
	flag.StringVar(&randomizer, "randomizer", "", "piece randomizer (uniform or bag)")
	flag.StringVar(&tracks, "tracks", "", "comma separated list of WAV music tracks")
	flag.Float64Var(&volume, "volume", 1, "master volume between 0 and 1")
	flag.Float64Var(&musicVolume, "music-volume", 1, "music volume between 0 and 1")
	flag.Float64Var(&effectsVolume, "effects-volume", 1, "sound effect volume between 0 and 1")
	flag.BoolVar(&mute, "mute", false, "start muted")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("failed to start tetristerm: non-interactive terminals are not supported")
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %s", err)
	}

	if cfg.LogFile != "" {
		InitLog(cfg.LogFile, "TETRISTERM: ")
	} else {
		log.SetOutput(io.Discard)
	}

	logLevel := game.LogStandard
	if logVerbose {
		logLevel = game.LogVerbose
	} else if logDebug {
		logLevel = game.LogDebug
	}

	if cfg.DebugAddress != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			log.Fatal(http.ListenAndServe(cfg.DebugAddress, nil))
		}()
	}

	sound := audio.NewService(cfg.Tracks, cfg.Volume, nil)
	sound.SetMusicVolume(cfg.MusicVolume)
	sound.SetEffectsVolume(cfg.EffectsVolume)
	sound.SetMute(cfg.Mute)
	if len(cfg.Tracks) > 0 {
		// Failure is logged and leaves the game silent.
		_ = sound.Start()
	}

	cl := NewClient(cfg, sound, logLevel)
	if playersFlag {
		cl.Play()
	}

	go func() {
		if err := cl.App.Run(); err != nil {
			log.Fatalf("failed to run application: %s", err)
		}

		done <- true
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	go func() {
		<-sigc

		done <- true
	}()

	<-done

	scores := cl.Close()
	sound.Stop()

	printSummary(os.Stdout, scores)
}

// loadConfig reads the environment configuration and applies the flags that
// were given explicitly on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log":
			cfg.LogFile = logPath
		case "debug-address":
			cfg.DebugAddress = debugAddress
		case "players":
			cfg.Players = players
			playersFlag = true
		case "names":
			cfg.Names = strings.Split(names, ",")
		case "width":
			cfg.Width = width
		case "height":
			cfg.Height = height
		case "fall-time":
			cfg.FallTime = fallTime
		case "seed":
			cfg.Seed = seed
		case "randomizer":
			cfg.Randomizer = randomizer
		case "tracks":
			cfg.Tracks = strings.Split(tracks, ",")
		case "volume":
			cfg.Volume = volume
		case "music-volume":
			cfg.MusicVolume = musicVolume
		case "effects-volume":
			cfg.EffectsVolume = effectsVolume
		case "mute":
			cfg.Mute = mute
		}
	})

	if len(cfg.Names) > cfg.Players {
		cfg.Players = len(cfg.Names)
	}

	return cfg, cfg.Validate()
}

func printSummary(w io.Writer, scores []game.Snapshot) {
	if len(scores) == 0 {
		return
	}

	leader := 0
	for i, s := range scores {
		if s.Score > scores[leader].Score {
			leader = i
		}
	}

	title := color.New(color.FgCyan, color.Bold)
	win := color.New(color.FgGreen, color.Bold)

	title.Fprintln(w, "Final scores")
	for i, s := range scores {
		line := fmt.Sprintf("%-10s %6d points %4d lines", s.Name, s.Score, s.Lines)
		if len(scores) > 1 && i == leader {
			win.Fprintln(w, line)
			continue
		}

		fmt.Fprintln(w, line)
	}
}
