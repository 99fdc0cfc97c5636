package timegrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"9":       "09:00",
		"09:00":   "09:00",
		"9:5":     "09:05",
		" 14:30 ": "14:30",
		"23":      "23:00",
		"24":      "",
		"25:00":   "",
		"10:60":   "",
		"":        "",
		"lunch":   "",
		"9.30":    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestUniqSorted(t *testing.T) {
	got := UniqSorted([]string{"11:00", "9", "bad", "09:00", "8:30", "11:00"})
	assert.Equal(t, []string{"08:30", "09:00", "11:00"}, got)

	assert.Empty(t, UniqSorted(nil))
	assert.Empty(t, UniqSorted([]string{"nope", ""}))
}

func TestStepMin(t *testing.T) {
	assert.Equal(t, 60, StepMin([]string{"09:00", "10:00", "11:00"}))
	assert.Equal(t, 30, StepMin([]string{"09:00", "09:30", "11:00"}))
	assert.Equal(t, FallbackStepMin, StepMin([]string{"09:00"}))
	assert.Equal(t, FallbackStepMin, StepMin(nil))
}

func TestGroupID(t *testing.T) {
	assert.Equal(t, "2025-06-01_15-00", GroupID("2025-06-01", "15:00"))
}

func TestIsPast(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 30, 0, time.UTC)
	grace := time.Minute

	assert.False(t, IsPast("2025-06-01", "10:00", now, grace, time.UTC), "inside the grace window")
	assert.True(t, IsPast("2025-06-01", "09:00", now, grace, time.UTC))
	assert.False(t, IsPast("2025-06-01", "11:00", now, grace, time.UTC))
	assert.False(t, IsPast("not-a-date", "10:00", now, grace, time.UTC))
}

func TestGridIndex(t *testing.T) {
	g := Grid{Hours: []string{"09:00", "10:00"}, Step: 60}
	assert.Equal(t, 1, g.Index("10:00"))
	assert.Equal(t, -1, g.Index("12:00"))
}
