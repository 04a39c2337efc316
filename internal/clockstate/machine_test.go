package clockstate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2025, 6, 11, h, m, 0, 0, time.Local)
}

// filled returns a record with the first k options recorded on 2025-06-11.
func filled(t *testing.T, k int) Record {
	t.Helper()
	r := NewRecord()
	hours := []int{8, 12, 13, 17}
	for i := 0; i < k; i++ {
		var err error
		r, err = RecordClock(r, Options[i], at(hours[i], 0))
		require.NoError(t, err)
	}
	return r
}

func TestCurrentOptionFollowsFilledCount(t *testing.T) {
	for k := 0; k <= 4; k++ {
		r := filled(t, k)
		if k < 4 {
			assert.Equal(t, Options[k], CurrentOption(r), "k=%d", k)
		} else {
			assert.Equal(t, AfternoonOut, CurrentOption(r))
		}
		assert.Equal(t, k == 4, IsEndOfDay(r), "k=%d", k)
	}
}

func TestIsClockedIn(t *testing.T) {
	assert.False(t, IsClockedIn(filled(t, 0)))
	assert.True(t, IsClockedIn(filled(t, 1)))
	assert.False(t, IsClockedIn(filled(t, 2)))
	assert.True(t, IsClockedIn(filled(t, 3)))
	assert.False(t, IsClockedIn(filled(t, 4)))
}

func TestRecordClockFormatsSlot(t *testing.T) {
	now := time.Date(2025, 6, 11, 8, 1, 2, 345_000_000, time.Local)

	r, err := RecordClock(NewRecord(), MorningIn, now)

	require.NoError(t, err)
	assert.Equal(t, "08:01:02.345", r.Get(MorningIn))
	assert.Equal(t, "2025-06-11", r.Date)
	assert.Equal(t, "", r.Get(MorningOut))
}

func TestRecordClockDoesNotMutateInput(t *testing.T) {
	orig := NewRecord()
	_, err := RecordClock(orig, MorningIn, at(8, 0))
	require.NoError(t, err)
	assert.Equal(t, "", orig.Get(MorningIn))
}

func TestRecordClockRejectsRepeat(t *testing.T) {
	r, err := RecordClock(NewRecord(), MorningIn, at(8, 0))
	require.NoError(t, err)

	_, err = RecordClock(r, MorningIn, at(8, 1))
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestRecordClockRejectsOutOfOrder(t *testing.T) {
	_, err := RecordClock(NewRecord(), AfternoonIn, at(13, 0))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRecordClockRejectsCompleteDay(t *testing.T) {
	_, err := RecordClock(filled(t, 4), AfternoonOut, at(18, 0))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestIsNewDay(t *testing.T) {
	today := at(9, 0)

	assert.True(t, IsNewDay(NewRecord(), today), "empty record")
	assert.False(t, IsNewDay(filled(t, 1), today), "same day")
	assert.True(t, IsNewDay(filled(t, 1), today.AddDate(0, 0, 1)), "next day")

	corrupt := filled(t, 1)
	corrupt.Date = "yesterday-ish"
	assert.True(t, IsNewDay(corrupt, today), "unparsable date")

	badSlot := filled(t, 1)
	badSlot.Slots[0] = "8 o'clock"
	assert.True(t, IsNewDay(badSlot, today), "unparsable slot")
}

func TestForceClock(t *testing.T) {
	r := filled(t, 3)

	got, changed := ForceClock(r, AfternoonOut, at(17, 30))
	assert.True(t, changed)
	assert.Equal(t, "17:30:00.000", got.Get(AfternoonOut))
	assert.True(t, IsEndOfDay(got))

	_, changed = ForceClock(got, AfternoonOut, at(17, 31))
	assert.False(t, changed, "already recorded")

	_, changed = ForceClock(filled(t, 2), AfternoonIn, at(13, 0))
	assert.False(t, changed, "in options are never forced")

	_, changed = ForceClock(filled(t, 2), AfternoonOut, at(17, 30))
	assert.False(t, changed, "not current")
}

func TestRecordTime(t *testing.T) {
	r := filled(t, 3)
	day := time.Date(2025, 6, 11, 0, 0, 0, 0, time.Local)

	got, ok := r.Time(AfternoonIn, day)
	require.True(t, ok)
	assert.Equal(t, at(13, 0), got)

	_, ok = r.Time(AfternoonOut, day)
	assert.False(t, ok)
}

func TestRecordWorked(t *testing.T) {
	assert.Equal(t, time.Duration(0), filled(t, 1).Worked())
	assert.Equal(t, 4*time.Hour, filled(t, 2).Worked())
	assert.Equal(t, 4*time.Hour, filled(t, 3).Worked(), "open afternoon shift")
	assert.Equal(t, 8*time.Hour, filled(t, 4).Worked())
}
