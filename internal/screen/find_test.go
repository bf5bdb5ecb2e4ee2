package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiliankoe/otiyot/internal/game"
)

func TestFindWholeGame(t *testing.T) {
	h := newHarness()
	s, err := NewFind(h.options())
	require.NoError(t, err)

	v := s.View()
	assert.Equal(t, KindFind, v.Kind)
	assert.Equal(t, FeedbackPrompt, v.Feedback)
	assert.Equal(t, "א", v.Find.Target)
	assert.Equal(t, 1, v.Find.Question)
	assert.Equal(t, 5, v.Find.Total)
	assert.Len(t, v.Find.Choices, 5)

	for i, l := range []string{"א", "ב", "ג", "ד", "ה"} {
		v, err := s.Tap(l)
		require.NoError(t, err)
		assert.Equal(t, FeedbackCorrect, v.Feedback)
		assert.True(t, v.Find.Processing)
		assert.Equal(t, i+1, v.Find.Answered)

		h.sched.Advance(DefaultDelays.Advance)
	}

	v = h.last(t)
	assert.Equal(t, FeedbackSolved, v.Feedback)
	assert.True(t, v.Completed)
	assert.Equal(t, 5, v.Stars)
	assert.Equal(t, 5, v.Find.Question)

	v, err = s.Tap("א")
	require.NoError(t, err)
	assert.Equal(t, FeedbackSolved, v.Feedback, "taps after the end are ignored")
}

func TestFindWrongThenRetry(t *testing.T) {
	h := newHarness()
	s, err := NewFind(h.options())
	require.NoError(t, err)

	v, err := s.Tap("ב")
	require.NoError(t, err)
	assert.Equal(t, FeedbackWrong, v.Feedback)
	assert.Equal(t, 1, v.Mistakes)
	assert.Equal(t, 4, v.Stars)
	assert.Equal(t, "א", v.Find.Target)

	h.sched.Advance(DefaultDelays.Retry)
	assert.Equal(t, FeedbackRetry, h.last(t).Feedback)
}

func TestFindCorrectTapSupersedesRetry(t *testing.T) {
	h := newHarness()
	s, err := NewFind(h.options())
	require.NoError(t, err)

	_, err = s.Tap("ג")
	require.NoError(t, err)
	_, err = s.Tap("א")
	require.NoError(t, err)

	h.sched.Advance(DefaultDelays.Advance)
	v := h.last(t)
	assert.Equal(t, FeedbackPrompt, v.Feedback)
	assert.Equal(t, "ב", v.Find.Target)

	h.sched.Advance(DefaultDelays.Retry)
	assert.Len(t, h.views, 1, "stale retry must not fire")
	assert.Equal(t, FeedbackPrompt, s.View().Feedback)
}

func TestFindIgnoresTapsWhileAdvancing(t *testing.T) {
	h := newHarness()
	s, err := NewFind(h.options())
	require.NoError(t, err)

	_, err = s.Tap("א")
	require.NoError(t, err)
	v, err := s.Tap("ה")
	require.NoError(t, err)
	assert.Zero(t, v.Mistakes)
	assert.Equal(t, 1, v.Find.Answered)
	assert.Equal(t, FeedbackCorrect, v.Feedback)
}

func TestFindRejectsUnknownLetter(t *testing.T) {
	h := newHarness()
	s, err := NewFind(h.options())
	require.NoError(t, err)

	_, err = s.Tap("x")
	assert.ErrorIs(t, err, game.ErrOutOfRange)
	assert.Zero(t, s.View().Mistakes)
}

func TestFindRestartDropsPendingAdvance(t *testing.T) {
	h := newHarness()
	s, err := NewFind(h.options())
	require.NoError(t, err)

	_, err = s.Tap("ב")
	require.NoError(t, err)
	_, err = s.Tap("א")
	require.NoError(t, err)
	s.Restart()
	assert.Zero(t, h.sched.Pending())

	h.sched.Advance(DefaultDelays.Retry)
	assert.Empty(t, h.views)
	v := s.View()
	assert.Equal(t, FeedbackPrompt, v.Feedback)
	assert.Zero(t, v.Mistakes)
	assert.Zero(t, v.Find.Answered)
	assert.Equal(t, "א", v.Find.Target)
}

func TestFindCloseSilencesTimers(t *testing.T) {
	h := newHarness()
	s, err := NewFind(h.options())
	require.NoError(t, err)

	_, err = s.Tap("א")
	require.NoError(t, err)
	s.Close()
	s.Close()
	h.sched.Advance(DefaultDelays.Advance)
	assert.Empty(t, h.views)

	v, err := s.Tap("ב")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Find.Answered)
}

func TestFindConfiguration(t *testing.T) {
	h := newHarness()
	opts := h.options()
	opts.Questions = 9
	_, err := NewFind(opts)
	assert.ErrorIs(t, err, game.ErrConfiguration)

	opts = h.options()
	opts.Alphabet = []string{"א", "א"}
	_, err = NewFind(opts)
	assert.ErrorIs(t, err, game.ErrConfiguration)
}
