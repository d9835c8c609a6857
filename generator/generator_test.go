package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreakAnnouncementMentionsNameAndCount(t *testing.T) {
	a := NewSeededAnnouncer(42)
	for i := 0; i < 50; i++ {
		text := a.StreakAnnouncement("Ruth", 12)
		assert.Contains(t, text, "Ruth")
		assert.Contains(t, text, "12")
	}
}

func TestStreakAnnouncementIsReproducibleForASeed(t *testing.T) {
	a := NewSeededAnnouncer(7)
	b := NewSeededAnnouncer(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.StreakAnnouncement("Eli", i+1), b.StreakAnnouncement("Eli", i+1))
	}
}

func TestBlankNamesFallBack(t *testing.T) {
	assert.Equal(t, "A member joined the group", UserJoined("  "))
	assert.True(t, strings.Contains(NewSeededAnnouncer(1).StreakAnnouncement("", 3), "A member"))
}

func TestIsMilestone(t *testing.T) {
	tests := []struct {
		streak int
		want   bool
	}{
		{1, false},
		{7, true},
		{30, true},
		{50, true},
		{51, false},
		{365, true},
		{0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsMilestone(tt.streak), "streak %d", tt.streak)
	}
}

func TestMembersRemoved(t *testing.T) {
	assert.Equal(t, "1 inactive member was removed from the group", MembersRemoved(1))
	assert.Equal(t, "3 inactive members were removed from the group", MembersRemoved(3))
}
