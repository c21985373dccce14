package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1990-11-05")
	require.NoError(t, err)
	assert.Equal(t, 1990, d.Year())
	assert.Equal(t, time.November, d.Month())
	assert.Equal(t, 5, d.Day())

	_, err = ParseDate("05/11/1990")
	assert.Error(t, err)
	_, err = ParseDate("1990-13-05")
	assert.Error(t, err)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, time.August, 29, 0, 1, 0, 0, time.UTC)
	b := time.Date(2026, time.August, 29, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	clock := FixedClock{T: at}
	assert.True(t, clock.Now().Equal(at))
}
