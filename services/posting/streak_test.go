package posting

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"

	"scriptureCircle/models"
)

func TestComputeStreak(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	tests := []struct {
		name        string
		last        *time.Time
		tz          string
		current     int
		wantStreak  int
		wantUpdated bool
	}{
		{"first post", nil, "UTC", 0, 1, true},
		{"yesterday", at(-24 * time.Hour), "UTC", 5, 6, true},
		{"same day", at(-2 * time.Hour), "UTC", 5, 5, false},
		{"same day with zero streak", at(-2 * time.Hour), "UTC", 0, 1, true},
		{"ten days ago", at(-10 * 24 * time.Hour), "UTC", 5, 1, true},
		{"two days ago", at(-48 * time.Hour), "UTC", 9, 1, true},
		{"unknown zone falls back to utc", at(-24 * time.Hour), "Mars/Olympus", 2, 3, true},
		{"empty zone", at(-24 * time.Hour), "", 2, 3, true},
		// 15:00 UTC is 00:00 next day in Tokyo; 14:00 UTC the day before is 23:00.
		{"local midnight crossing", at(-1 * time.Hour), "Asia/Tokyo", 4, 5, true},
		// Same UTC calendar day but different day in Los Angeles.
		{"utc same day is not local same day", at(-14 * time.Hour), "America/Los_Angeles", 4, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := (&models.User{TimeZone: tt.tz}).Location()
			streak, updated := ComputeStreak(tt.last, loc, now, tt.current)
			assert.Equal(t, tt.wantStreak, streak)
			assert.Equal(t, tt.wantUpdated, updated)

			again, againUpdated := ComputeStreak(tt.last, loc, now, tt.current)
			assert.Equal(t, streak, again)
			assert.Equal(t, updated, againUpdated)
		})
	}
}

func TestComputeStreakAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	// DST starts 2024-03-10 in New York; the local day is 23 hours long.
	last := time.Date(2024, 3, 9, 23, 30, 0, 0, ny)
	now := time.Date(2024, 3, 10, 23, 30, 0, 0, ny)
	streak, updated := ComputeStreak(&last, ny, now, 3)
	assert.Equal(t, 4, streak)
	assert.True(t, updated)
}

func TestComputeStreakNilLocation(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	last := now.Add(-24 * time.Hour)
	streak, updated := ComputeStreak(&last, nil, now, 2)
	assert.Equal(t, 3, streak)
	assert.True(t, updated)
}
