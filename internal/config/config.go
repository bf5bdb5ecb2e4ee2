package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kiliankoe/otiyot/internal/game"
	"github.com/kiliankoe/otiyot/internal/letters"
	"github.com/kiliankoe/otiyot/internal/screen"
)

type Config struct {
	Port       string
	LogLevel   string
	LogFormat  string
	CORSOrigin string

	Alphabet  []string
	Questions int
	Slots     int
	Pairs     int
	Input     screen.InputMode
	Delays    screen.Delays
}

// FromEnv reads the configuration from the environment. Malformed values are
// reported; missing ones fall back to defaults.
func FromEnv() (Config, error) {
	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.LogLevel = getenv("LOG_LEVEL", "info")
	c.LogFormat = getenv("LOG_FORMAT", "auto")
	c.CORSOrigin = getenv("CORS_ORIGIN", "*")

	var err error
	c.Alphabet = letters.Default
	if v := os.Getenv("ALPHABET"); v != "" {
		if c.Alphabet, err = letters.Parse(v); err != nil {
			return c, fmt.Errorf("ALPHABET: %w", err)
		}
	}
	n := min(5, len(c.Alphabet))
	if c.Questions, err = getint("QUESTION_COUNT", n); err != nil {
		return c, err
	}
	if c.Slots, err = getint("SLOT_COUNT", n); err != nil {
		return c, err
	}
	if c.Pairs, err = getint("PAIR_COUNT", n); err != nil {
		return c, err
	}
	if c.Input, err = screen.ParseInputMode(os.Getenv("INPUT_MODE")); err != nil {
		return c, fmt.Errorf("INPUT_MODE: %w", err)
	}

	d := screen.DefaultDelays
	for _, f := range []struct {
		key string
		dst *time.Duration
	}{
		{"DELAY_ADVANCE", &d.Advance},
		{"DELAY_RETRY", &d.Retry},
		{"DELAY_SHAKE", &d.Shake},
		{"DELAY_MATCH", &d.Match},
		{"DELAY_MISMATCH", &d.Mismatch},
		{"DELAY_COMPLETE", &d.Complete},
	} {
		if *f.dst, err = getduration(f.key, *f.dst); err != nil {
			return c, err
		}
	}
	c.Delays = d
	return c, c.Validate()
}

// Validate checks that every game can be built from the configured alphabet.
func (c Config) Validate() error {
	if len(c.Alphabet) == 0 {
		return fmt.Errorf("%w: empty alphabet", game.ErrConfiguration)
	}
	for _, n := range []struct {
		key string
		v   int
	}{
		{"QUESTION_COUNT", c.Questions},
		{"SLOT_COUNT", c.Slots},
		{"PAIR_COUNT", c.Pairs},
	} {
		if n.v <= 0 || n.v > len(c.Alphabet) {
			return fmt.Errorf("%w: %s must be between 1 and %d, got %d", game.ErrConfiguration, n.key, len(c.Alphabet), n.v)
		}
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("%w: PORT %q is not a number", game.ErrConfiguration, c.Port)
	}
	return nil
}

// ScreenOptions are the defaults every new screen starts from.
func (c Config) ScreenOptions() screen.Options {
	return screen.Options{
		Alphabet:  c.Alphabet,
		Questions: c.Questions,
		Slots:     c.Slots,
		Pairs:     c.Pairs,
		Input:     c.Input,
		Delays:    c.Delays,
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", game.ErrConfiguration, k, v)
	}
	return n, nil
}

func getduration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %s=%q is not a duration", game.ErrConfiguration, k, v)
	}
	return d, nil
}
