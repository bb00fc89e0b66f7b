package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidTimeOfDay(t *testing.T) {
	valid := []string{"22:00", "9:30", "04:15:30", "23:59:59"}
	for _, s := range valid {
		assert.True(t, ValidTimeOfDay(s), s)
	}

	invalid := []string{"", "late", "22", "22:0", "22:00:0", "22-00", "10:00pm"}
	for _, s := range invalid {
		assert.False(t, ValidTimeOfDay(s), s)
	}
}

func TestNormalizeTimeOfDay(t *testing.T) {
	got, err := NormalizeTimeOfDay("22:00")
	require.NoError(t, err)
	assert.Equal(t, "22:00:00", got)

	got, err = NormalizeTimeOfDay("04:15:30")
	require.NoError(t, err)
	assert.Equal(t, "04:15:30", got)

	_, err = NormalizeTimeOfDay("late")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-12-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2026-12-31T22:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 22, got.Hour())

	_, err = ParseDate("31/12/2026")
	assert.Error(t, err)
}
