package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiliankoe/otiyot/internal/game"
	"github.com/kiliankoe/otiyot/internal/letters"
	"github.com/kiliankoe/otiyot/internal/screen"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "LOG_FORMAT", "ALPHABET", "QUESTION_COUNT", "SLOT_COUNT", "PAIR_COUNT", "INPUT_MODE", "DELAY_ADVANCE", "DELAY_RETRY"} {
		t.Setenv(k, "")
	}
	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "auto", c.LogFormat)
	assert.Equal(t, letters.Default, c.Alphabet)
	assert.Equal(t, 5, c.Questions)
	assert.Equal(t, screen.InputDrag, c.Input)
	assert.Equal(t, screen.DefaultDelays, c.Delays)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("ALPHABET", "ש, ת")
	t.Setenv("QUESTION_COUNT", "2")
	t.Setenv("SLOT_COUNT", "")
	t.Setenv("PAIR_COUNT", "1")
	t.Setenv("INPUT_MODE", "tap")
	t.Setenv("DELAY_RETRY", "100ms")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "3000", c.Port)
	assert.Equal(t, []string{"ש", "ת"}, c.Alphabet)
	assert.Equal(t, 2, c.Questions)
	assert.Equal(t, 2, c.Slots, "defaults shrink to the alphabet")
	assert.Equal(t, 1, c.Pairs)
	assert.Equal(t, screen.InputTap, c.Input)
	assert.Equal(t, 100*time.Millisecond, c.Delays.Retry)
	assert.Equal(t, screen.DefaultDelays.Advance, c.Delays.Advance)

	opts := c.ScreenOptions()
	assert.Equal(t, c.Alphabet, opts.Alphabet)
	assert.Equal(t, c.Delays, opts.Delays)
}

func TestFromEnvRejects(t *testing.T) {
	cases := map[string]map[string]string{
		"count above alphabet": {"ALPHABET": "א,ב", "QUESTION_COUNT": "3"},
		"zero pairs":           {"PAIR_COUNT": "0"},
		"not a number":         {"SLOT_COUNT": "many"},
		"bad duration":         {"DELAY_SHAKE": "soon"},
		"negative duration":    {"DELAY_MATCH": "-1s"},
		"duplicate letter":     {"ALPHABET": "א,א"},
		"unknown input":        {"INPUT_MODE": "voice"},
		"bad port":             {"PORT": "http"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.ErrorIs(t, err, game.ErrConfiguration)
		})
	}
}
