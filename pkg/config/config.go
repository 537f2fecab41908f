package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

const EnvPrefix = "TETRISTERM_"

const (
	MinWidth  = 4
	MinHeight = 4
	MaxWidth  = 40
	MaxHeight = 40
)

type Config struct {
	Width      int
	Height     int
	FallTime   time.Duration
	LineBonus  int
	Seed       int64
	Randomizer string

	Players int
	Names   []string

	Tracks        []string
	Volume        float64
	MusicVolume   float64
	EffectsVolume float64
	Mute          bool

	LogFile      string
	DebugAddress string
}

func Default() *Config {
	return &Config{
		Width:         mino.DefaultWidth,
		Height:        mino.DefaultHeight,
		FallTime:      game.DefaultFallTime,
		LineBonus:     game.DefaultLineBonus,
		Randomizer:    mino.RandomizerUniform,
		Players:       1,
		Volume:        1,
		MusicVolume:   1,
		EffectsVolume: 1,
	}
}

// Load starts from Default, applies the given .env files (".env" when none
// is given) and then the TETRISTERM_* environment. Missing files are
// skipped; variables already set in the environment win over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	c := Default()
	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	return c, c.Validate()
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return "", false
	}

	v = strings.TrimSpace(v)
	return v, v != ""
}

func (c *Config) applyEnv() error {
	ints := []struct {
		key string
		v   *int
	}{
		{"WIDTH", &c.Width},
		{"HEIGHT", &c.Height},
		{"LINE_BONUS", &c.LineBonus},
		{"PLAYERS", &c.Players},
	}
	for _, i := range ints {
		v, ok := lookup(i.key)
		if !ok {
			continue
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, i.key, v, err)
		}
		*i.v = n
	}

	if v, ok := lookup("FALL_TIME"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sFALL_TIME %q: %w", EnvPrefix, v, err)
		}
		c.FallTime = d
	}

	if v, ok := lookup("SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sSEED %q: %w", EnvPrefix, v, err)
		}
		c.Seed = n
	}

	floats := []struct {
		key string
		v   *float64
	}{
		{"VOLUME", &c.Volume},
		{"MUSIC_VOLUME", &c.MusicVolume},
		{"EFFECTS_VOLUME", &c.EffectsVolume},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok {
			continue
		}

		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, f.key, v, err)
		}
		*f.v = n
	}

	if v, ok := lookup("MUTE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sMUTE %q: %w", EnvPrefix, v, err)
		}
		c.Mute = b
	}

	if v, ok := lookup("RANDOMIZER"); ok {
		c.Randomizer = strings.ToLower(v)
	}
	if v, ok := lookup("NAMES"); ok {
		c.Names = splitList(v)
	}
	if v, ok := lookup("TRACKS"); ok {
		c.Tracks = splitList(v)
	}
	if v, ok := lookup("LOG"); ok {
		c.LogFile = v
	}
	if v, ok := lookup("DEBUG_ADDRESS"); ok {
		c.DebugAddress = v
	}

	return nil
}

func splitList(v string) []string {
	var list []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			list = append(list, s)
		}
	}

	return list
}

func (c *Config) Validate() error {
	if c.Width < MinWidth || c.Width > MaxWidth {
		return fmt.Errorf("width must be between %d and %d, got %d", MinWidth, MaxWidth, c.Width)
	}
	if c.Height < MinHeight || c.Height > MaxHeight {
		return fmt.Errorf("height must be between %d and %d, got %d", MinHeight, MaxHeight, c.Height)
	}
	if c.FallTime <= 0 {
		return fmt.Errorf("fall time must be positive, got %s", c.FallTime)
	}
	if c.LineBonus <= 0 {
		return fmt.Errorf("line bonus must be positive, got %d", c.LineBonus)
	}
	if c.Players < 1 || c.Players > game.MaxPlayers {
		return fmt.Errorf("players must be between 1 and %d, got %d", game.MaxPlayers, c.Players)
	}
	if len(c.Names) > c.Players {
		return fmt.Errorf("%d names given for %d players", len(c.Names), c.Players)
	}
	for _, v := range []struct {
		name string
		v    float64
	}{
		{"volume", c.Volume},
		{"music volume", c.MusicVolume},
		{"effects volume", c.EffectsVolume},
	} {
		if v.v < 0 || v.v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %g", v.name, v.v)
		}
	}

	switch c.Randomizer {
	case mino.RandomizerUniform, mino.RandomizerBag:
	default:
		return fmt.Errorf("unknown randomizer %q", c.Randomizer)
	}

	return nil
}

// PlayerNames returns one name per player, empty where none was configured.
func (c *Config) PlayerNames() []string {
	names := make([]string, c.Players)
	copy(names, c.Names)

	return names
}

// GameOptions converts the configuration into options for game.NewMatch.
func (c *Config) GameOptions() game.Options {
	return game.Options{
		Width:      c.Width,
		Height:     c.Height,
		FallTime:   c.FallTime,
		LineBonus:  c.LineBonus,
		Seed:       c.Seed,
		Randomizer: c.Randomizer,
	}
}
