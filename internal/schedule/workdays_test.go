package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-06-11 is a Wednesday.
var (
	wednesday = time.Date(2025, 6, 11, 13, 0, 0, 0, time.UTC)
	saturday  = time.Date(2025, 6, 14, 13, 0, 0, 0, time.UTC)
)

func TestParseWorkdaysEveryDay(t *testing.T) {
	for _, in := range []string{"", "every day", "Daily"} {
		r, err := ParseWorkdays(in)
		require.NoError(t, err, in)
		assert.Nil(t, r, in)
		assert.True(t, IsWorkday(r, saturday))
	}
}

func TestParseWorkdaysWeekdays(t *testing.T) {
	r, err := ParseWorkdays("weekdays")
	require.NoError(t, err)
	assert.True(t, IsWorkday(r, wednesday))
	assert.False(t, IsWorkday(r, saturday))
	assert.Equal(t, "weekdays", FormatWorkdays(r))
}

func TestParseWorkdaysWeekends(t *testing.T) {
	r, err := ParseWorkdays("every weekend")
	require.NoError(t, err)
	assert.False(t, IsWorkday(r, wednesday))
	assert.True(t, IsWorkday(r, saturday))
	assert.Equal(t, "weekends", FormatWorkdays(r))
}

func TestParseWorkdaysSingleDay(t *testing.T) {
	r, err := ParseWorkdays("every wednesday")
	require.NoError(t, err)
	assert.True(t, IsWorkday(r, wednesday))
	assert.False(t, IsWorkday(r, wednesday.AddDate(0, 0, 1)))
	assert.Equal(t, "every wednesday", FormatWorkdays(r))
}

func TestParseWorkdaysRawRRule(t *testing.T) {
	r, err := ParseWorkdays("FREQ=WEEKLY;BYDAY=MO,WE")
	require.NoError(t, err)
	assert.True(t, IsWorkday(r, wednesday))
	assert.False(t, IsWorkday(r, saturday))
	assert.Equal(t, "every monday, wednesday", FormatWorkdays(r))
}

func TestParseWorkdaysInvalid(t *testing.T) {
	_, err := ParseWorkdays("whenever")
	assert.Error(t, err)

	_, err = ParseWorkdays("FREQ=SOMETIMES")
	assert.Error(t, err)
}

func TestFormatWorkdaysNil(t *testing.T) {
	assert.Equal(t, "every day", FormatWorkdays(nil))
}
