package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Announcer builds the text of system messages. Streak announcements pick a
// random phrasing so a busy group does not see the same line over and over.
type Announcer struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewAnnouncer returns an Announcer seeded from the clock.
func NewAnnouncer() *Announcer {
	return NewSeededAnnouncer(time.Now().UnixNano())
}

// NewSeededAnnouncer returns an Announcer with a fixed seed, for reproducible output.
func NewSeededAnnouncer(seed int64) *Announcer {
	return &Announcer{r: rand.New(rand.NewSource(seed))}
}

var (
	streakOpeners = []string{
		"🔥", "🎉", "📖", "🙌", "✨",
	}
	streakBodies = []string{
		"%s is on a %d-day study streak!",
		"%s has studied %d days in a row!",
		"%d days straight for %s. Keep it going!",
		"%s just hit a %d-day streak!",
	}
	milestoneBodies = []string{
		"Milestone! %s reached a %d-day streak!",
		"%s hit %d consecutive days of study. What dedication!",
	}
)

func (a *Announcer) pick(list []string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return list[a.r.Intn(len(list))]
}

// IsMilestone reports whether streak is one of the celebrated round numbers.
func IsMilestone(streak int) bool {
	switch {
	case streak == 7, streak == 30, streak == 100, streak == 365:
		return true
	case streak > 0 && streak%50 == 0:
		return true
	}
	return false
}

// StreakAnnouncement returns the celebratory line posted when a user's streak grows.
func (a *Announcer) StreakAnnouncement(name string, streak int) string {
	name = displayName(name)
	body := a.pick(streakBodies)
	if IsMilestone(streak) {
		body = a.pick(milestoneBodies)
	}
	var text string
	if strings.HasPrefix(body, "%d") {
		text = fmt.Sprintf(body, streak, name)
	} else {
		text = fmt.Sprintf(body, name, streak)
	}
	return a.pick(streakOpeners) + " " + text
}

func UserJoined(name string) string {
	return fmt.Sprintf("%s joined the group", displayName(name))
}

func UserLeft(name string) string {
	return fmt.Sprintf("%s left the group", displayName(name))
}

func OwnershipTransferred(newOwnerName string) string {
	return fmt.Sprintf("The group owner has been inactive. %s is now the group owner.", displayName(newOwnerName))
}

func OwnershipChanged(newOwnerName string) string {
	return fmt.Sprintf("%s is now the group owner.", displayName(newOwnerName))
}

func MembersRemoved(count int) string {
	if count == 1 {
		return "1 inactive member was removed from the group"
	}
	return fmt.Sprintf("%d inactive members were removed from the group", count)
}

func displayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "A member"
	}
	return name
}
