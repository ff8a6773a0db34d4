package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Asha Rao", CleanString("  Asha Rao\t"))
	assert.Equal(t, "asha rao", CleanString("  Asha Rao ", true))
	assert.Equal(t, "", CleanString("   "))
}

func TestDateOf(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	late := time.Date(2025, 6, 3, 1, 30, 0, 0, ist) // 2025-06-02T20:00Z

	got := DateOf(late)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestIsWeekend(t *testing.T) {
	saturday := time.Date(2025, 6, 7, 10, 0, 0, 0, time.UTC)
	assert.True(t, IsWeekend(saturday))
	assert.True(t, IsWeekend(saturday.AddDate(0, 0, 1)))
	assert.False(t, IsWeekend(saturday.AddDate(0, 0, 2)))
}
