// Package store defines the document store contract the services are written
// against. Implementations live in clients/gcp (Firestore) and clients/memory.
package store

import (
	"context"
	"time"

	"scriptureCircle/models"
)

const (
	// MaxBatchSize is the provider ceiling for operations in a single batch.
	MaxBatchSize = 500
	// DefaultBatchSize is the flush threshold used by the maintenance jobs.
	DefaultBatchSize = 300
)

// Store is the non-transactional surface plus the transaction entry point.
type Store interface {
	// RunTransaction runs fn inside a serializable transaction. fn may be invoked
	// more than once when the store detects a conflicting write; it must not have
	// side effects outside the Tx. Returns errs.ErrConflict once retries are exhausted.
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	// GetUser returns errs.ErrNotFound when the user document is absent.
	GetUser(ctx context.Context, userID string) (*models.User, error)
	// GetGroup returns errs.ErrNotFound when the group document is absent.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	// RecentMessages returns at most limit messages created at or after since, newest first.
	RecentMessages(ctx context.Context, groupID string, since time.Time, limit int) ([]models.Message, error)
	// ListNotes returns the user's latest notes, newest first.
	ListNotes(ctx context.Context, userID string, limit int) ([]models.Note, error)

	// NewBatch returns a non-transactional writer that flushes every limit operations.
	NewBatch(ctx context.Context, limit int) Batch
	// DeleteGroupTree deletes every subcollection under the group and then the group itself.
	DeleteGroupTree(ctx context.Context, groupID string) error

	AddToken(ctx context.Context, userID, token string) error
	RemoveTokens(ctx context.Context, userID string, tokens []string) error
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) error
}

// Tx is a transaction handle. All reads must happen before the first write.
type Tx interface {
	GetUser(userID string) (*models.User, error)
	GetGroup(groupID string) (*models.Group, error)
	// GetGroups reads several groups at once; missing groups are absent from the result.
	GetGroups(groupIDs []string) (map[string]*models.Group, error)

	NewNoteID(userID string) string
	NewMessageID(groupID string) string

	Writer
}

// Writer holds the mutations shared by transactions and batches.
type Writer interface {
	// AddMember unions userID into members, increments membersCount and stamps memberLastActive.
	AddMember(groupID, userID string, at time.Time) error
	// RemoveMembers removes userIDs from members, decrements membersCount by len(userIDs)
	// and deletes their memberLastActive and memberTrackedAt entries.
	RemoveMembers(groupID string, userIDs []string) error
	// TrackMembers initializes memberLastActive and memberTrackedAt for untracked members.
	TrackMembers(groupID string, userIDs []string, at time.Time) error
	SetOwner(groupID, userID string) error
	RecordActivity(groupID string, activity GroupActivity) error
	SetRecapGenerated(groupID string, at time.Time) error
	DeleteGroup(groupID string) error

	// AddUserGroup unions groupID into groupIds and makes it the primary group.
	AddUserGroup(userID, groupID string) error
	// RemoveUserGroup removes groupID from groupIds. A non-nil primary replaces groupId.
	RemoveUserGroup(userID, groupID string, primary *string) error
	UpdateUserStats(userID string, stats UserStats) error

	CreateMessage(groupID string, msg *models.Message) error
	CreateNote(userID string, note *models.Note) error
	// UpsertGroupState merges lastReadAt and increments readMessageCount.
	UpsertGroupState(userID, groupID string, at time.Time) error
	DeleteGroupState(userID, groupID string) error
}

// Batch is a best-effort, non-atomic Writer.
type Batch interface {
	Writer
	// Flush commits pending operations. Batches also flush on their own once the
	// pending count reaches their limit.
	Flush() error
}

// GroupActivity is the aggregate update written when a member posts.
type GroupActivity struct {
	At        time.Time
	ActorID   string
	ActorName string
	Preview   string
	Messages  int
	Notes     int
	// TouchRead also stamps memberLastReadAt for the actor.
	TouchRead bool
	// DailyDate is the UTC date of the post. ResetDaily replaces dailyActivity
	// with {DailyDate, [ActorID]} instead of adding the actor to the stored set.
	DailyDate  string
	ResetDaily bool
}

// UserStats is the streak/counter update written when a user posts a note.
type UserStats struct {
	StreakCount    int
	LastPostDate   time.Time
	DaysStudiedInc int
}

// ProfileUpdate carries optional profile fields; nil fields are left untouched.
type ProfileUpdate struct {
	Nickname *string
	TimeZone *string
}
