package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiliankoe/otiyot/internal/game"
)

func newSort(t *testing.T, h *harness, mode InputMode) *SortScreen {
	t.Helper()
	opts := h.options()
	opts.Slots = 3
	opts.Input = mode
	s, err := NewSort(opts)
	require.NoError(t, err)
	return s
}

func place(t *testing.T, s *SortScreen, letter string, slot int) View {
	t.Helper()
	_, err := s.Grab(Source{Area: AreaPool, Letter: letter})
	require.NoError(t, err)
	v, err := s.Release(Target{Area: AreaSlot, Index: slot})
	require.NoError(t, err)
	return v
}

func assertAllLettersPresent(t *testing.T, v View) {
	t.Helper()
	n := len(v.Sort.Pool)
	for _, l := range v.Sort.Slots {
		if l != "" {
			n++
		}
	}
	assert.Equal(t, len(v.Sort.Expected), n)
}

func TestSortCheckIncomplete(t *testing.T) {
	h := newHarness()
	s := newSort(t, h, InputDrag)

	v := s.View()
	assert.Equal(t, []string{"א", "ב", "ג"}, v.Sort.Expected)
	assert.Equal(t, []string{"", "", ""}, v.Sort.Slots)
	assert.Equal(t, InputDrag, v.Sort.Mode)

	place(t, s, "א", 0)
	v = s.Check()
	assert.Equal(t, FeedbackIncomplete, v.Feedback)
	assert.Zero(t, v.Mistakes)
	assert.Zero(t, h.sched.Pending())
}

func TestSortWrongThenSolved(t *testing.T) {
	h := newHarness()
	s := newSort(t, h, InputDrag)

	place(t, s, "ב", 0)
	place(t, s, "א", 1)
	v := place(t, s, "ג", 2)
	assert.Empty(t, v.Sort.Pool)
	assertAllLettersPresent(t, v)

	v = s.Check()
	assert.Equal(t, FeedbackWrong, v.Feedback)
	assert.Equal(t, 1, v.Mistakes)
	assert.Equal(t, []int{0, 1}, v.Sort.Shake)
	assert.Equal(t, 2, v.Sort.WrongCount)

	h.sched.Advance(DefaultDelays.Shake)
	assert.Empty(t, h.last(t).Sort.Shake)

	_, err := s.Grab(Source{Area: AreaSlot, Index: 0})
	require.NoError(t, err)
	v, err = s.Release(Target{Area: AreaSlot, Index: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"א", "ב", "ג"}, v.Sort.Slots)

	v = s.Check()
	assert.Equal(t, FeedbackSolved, v.Feedback)
	assert.True(t, v.Completed)
	assert.Equal(t, 4, v.Stars)
	assert.Zero(t, v.Sort.WrongCount)

	v, err = s.Grab(Source{Area: AreaSlot, Index: 0})
	require.NoError(t, err)
	assert.Nil(t, v.Sort.Held, "board is frozen once solved")
}

func TestSortMoveClearsShake(t *testing.T) {
	h := newHarness()
	s := newSort(t, h, InputDrag)
	place(t, s, "ג", 0)
	place(t, s, "ב", 1)
	place(t, s, "א", 2)
	v := s.Check()
	assert.Equal(t, []int{0, 2}, v.Sort.Shake)

	_, err := s.Grab(Source{Area: AreaSlot, Index: 0})
	require.NoError(t, err)
	v, err = s.Release(Target{Area: AreaPool})
	require.NoError(t, err)
	assert.Empty(t, v.Sort.Shake)
	assert.Equal(t, []string{"", "ב", "א"}, v.Sort.Slots)
	assert.Equal(t, []string{"ג"}, v.Sort.Pool)
	assertAllLettersPresent(t, v)

	h.sched.Advance(DefaultDelays.Shake)
	assert.Empty(t, h.views)
}

func TestSortDropOnOccupiedSlotEvicts(t *testing.T) {
	h := newHarness()
	s := newSort(t, h, InputDrag)
	place(t, s, "א", 0)
	v := place(t, s, "ב", 0)
	assert.Equal(t, "ב", v.Sort.Slots[0])
	assert.ElementsMatch(t, []string{"א", "ג"}, v.Sort.Pool)
	assertAllLettersPresent(t, v)
}

func TestSortTapInput(t *testing.T) {
	h := newHarness()
	s := newSort(t, h, InputTap)

	alef := Source{Area: AreaPool, Letter: "א"}
	v, err := s.Grab(alef)
	require.NoError(t, err)
	require.NotNil(t, v.Sort.Held)
	assert.Equal(t, "א", v.Sort.Held.Letter)

	v, err = s.Grab(alef)
	require.NoError(t, err)
	assert.Nil(t, v.Sort.Held)

	v = place(t, s, "א", 2)
	assert.Equal(t, "א", v.Sort.Slots[2])
	assert.Equal(t, InputTap, v.Sort.Mode)
}

func TestSortIgnoresEmptyGrabs(t *testing.T) {
	h := newHarness()
	s := newSort(t, h, InputDrag)

	v, err := s.Grab(Source{Area: AreaSlot, Index: 1})
	require.NoError(t, err)
	assert.Nil(t, v.Sort.Held)

	place(t, s, "א", 0)
	v, err = s.Grab(Source{Area: AreaPool, Letter: "א"})
	require.NoError(t, err)
	assert.Nil(t, v.Sort.Held, "letter is no longer in the pool")

	v, err = s.Release(Target{Area: AreaSlot, Index: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"א", "", ""}, v.Sort.Slots)

	_, err = s.Grab(Source{Area: AreaPool, Letter: "ב"})
	require.NoError(t, err)
	v = s.Cancel()
	assert.Nil(t, v.Sort.Held)
}

func TestSortOutOfRange(t *testing.T) {
	h := newHarness()
	s := newSort(t, h, InputDrag)

	_, err := s.Grab(Source{Area: AreaSlot, Index: 7})
	assert.ErrorIs(t, err, game.ErrOutOfRange)

	_, err = s.Grab(Source{Area: "shelf"})
	assert.ErrorIs(t, err, game.ErrOutOfRange)

	_, err = s.Grab(Source{Area: AreaPool, Letter: "ב"})
	require.NoError(t, err)
	v, err := s.Release(Target{Area: AreaSlot, Index: -1})
	assert.ErrorIs(t, err, game.ErrOutOfRange)
	assert.Nil(t, v.Sort.Held)
	assertAllLettersPresent(t, v)
}

func TestSortRestart(t *testing.T) {
	h := newHarness()
	s := newSort(t, h, InputDrag)
	place(t, s, "ג", 0)
	place(t, s, "ב", 1)
	place(t, s, "א", 2)
	s.Check()
	s.Restart()

	v := s.View()
	assert.Equal(t, FeedbackPrompt, v.Feedback)
	assert.Zero(t, v.Mistakes)
	assert.Empty(t, v.Sort.Shake)
	assert.Equal(t, []string{"", "", ""}, v.Sort.Slots)
	assert.Len(t, v.Sort.Pool, 3)

	h.sched.Advance(DefaultDelays.Shake)
	assert.Empty(t, h.views)
}
