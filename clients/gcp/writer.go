package gcp

import (
	"time"

	"cloud.google.com/go/firestore"
	"github.com/fatih/structs"

	"scriptureCircle/clients/store"
	"scriptureCircle/models"
)

// sink is the subset of write calls shared by *firestore.Transaction and the
// BulkWriter-backed batch.
type sink interface {
	update(ref *firestore.DocumentRef, ups []firestore.Update) error
	set(ref *firestore.DocumentRef, data any, opts ...firestore.SetOption) error
	create(ref *firestore.DocumentRef, data any) error
	delete(ref *firestore.DocumentRef) error
}

// writer turns store.Writer calls into Firestore field transforms.
type writer struct {
	f    *Firestore
	sink sink
}

var _ store.Writer = writer{}

func anySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func mapEntry(field, key string, value any) firestore.Update {
	return firestore.Update{FieldPath: firestore.FieldPath{field, key}, Value: value}
}

func addMemberUpdates(userID string, at time.Time) []firestore.Update {
	return []firestore.Update{
		{Path: "members", Value: firestore.ArrayUnion(userID)},
		{Path: "membersCount", Value: firestore.Increment(1)},
		mapEntry("memberLastActive", userID, at),
	}
}

func removeMembersUpdates(userIDs []string) []firestore.Update {
	ups := []firestore.Update{
		{Path: "members", Value: firestore.ArrayRemove(anySlice(userIDs)...)},
		{Path: "membersCount", Value: firestore.Increment(-len(userIDs))},
	}
	for _, id := range userIDs {
		ups = append(ups,
			mapEntry("memberLastActive", id, firestore.Delete),
			mapEntry("memberTrackedAt", id, firestore.Delete),
		)
	}
	return ups
}

func trackMembersUpdates(userIDs []string, at time.Time) []firestore.Update {
	ups := make([]firestore.Update, 0, 2*len(userIDs))
	for _, id := range userIDs {
		ups = append(ups,
			mapEntry("memberLastActive", id, at),
			mapEntry("memberTrackedAt", id, at),
		)
	}
	return ups
}

func activityUpdates(a store.GroupActivity) []firestore.Update {
	ups := []firestore.Update{
		{Path: "lastMessageAt", Value: a.At},
		{Path: "lastActivityBy", Value: a.ActorID},
		{Path: "lastActivityByName", Value: a.ActorName},
		{Path: "lastMessagePreview", Value: a.Preview},
		mapEntry("memberLastActive", a.ActorID, a.At),
		mapEntry("memberTrackedAt", a.ActorID, firestore.Delete),
	}
	if a.Messages != 0 {
		ups = append(ups, firestore.Update{Path: "messageCount", Value: firestore.Increment(a.Messages)})
	}
	if a.Notes != 0 {
		ups = append(ups,
			firestore.Update{Path: "noteCount", Value: firestore.Increment(a.Notes)},
			firestore.Update{Path: "lastNoteAt", Value: a.At},
		)
	}
	if a.TouchRead {
		ups = append(ups, mapEntry("memberLastReadAt", a.ActorID, a.At))
	}
	switch {
	case a.DailyDate == "":
	case a.ResetDaily:
		ups = append(ups, firestore.Update{Path: "dailyActivity", Value: models.DailyActivity{
			Date:          a.DailyDate,
			ActiveMembers: []string{a.ActorID},
		}})
	default:
		ups = append(ups, firestore.Update{Path: "dailyActivity.activeMembers", Value: firestore.ArrayUnion(a.ActorID)})
	}
	return ups
}

func userStatsUpdates(stats store.UserStats) []firestore.Update {
	ups := []firestore.Update{
		{Path: "streakCount", Value: stats.StreakCount},
		{Path: "lastPostDate", Value: stats.LastPostDate},
		{Path: "totalNotes", Value: firestore.Increment(1)},
	}
	if stats.DaysStudiedInc != 0 {
		ups = append(ups, firestore.Update{Path: "daysStudiedCount", Value: firestore.Increment(stats.DaysStudiedInc)})
	}
	return ups
}

func profileUpdates(update store.ProfileUpdate) []firestore.Update {
	var ups []firestore.Update
	if update.Nickname != nil {
		ups = append(ups, firestore.Update{Path: "nickname", Value: *update.Nickname})
	}
	if update.TimeZone != nil {
		ups = append(ups, firestore.Update{Path: "timeZone", Value: *update.TimeZone})
	}
	return ups
}

// groupStateMerge is the MergeAll payload of a read-state upsert.
func groupStateMerge(groupID string, at time.Time) map[string]any {
	data := structs.Map(models.GroupState{GroupID: groupID, LastReadAt: at})
	data["readMessageCount"] = firestore.Increment(1)
	return data
}

func (w writer) AddMember(groupID, userID string, at time.Time) error {
	return w.sink.update(w.f.groupRef(groupID), addMemberUpdates(userID, at))
}

func (w writer) RemoveMembers(groupID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	return w.sink.update(w.f.groupRef(groupID), removeMembersUpdates(userIDs))
}

func (w writer) TrackMembers(groupID string, userIDs []string, at time.Time) error {
	if len(userIDs) == 0 {
		return nil
	}
	return w.sink.update(w.f.groupRef(groupID), trackMembersUpdates(userIDs, at))
}

func (w writer) SetOwner(groupID, userID string) error {
	return w.sink.update(w.f.groupRef(groupID), []firestore.Update{{Path: "ownerUserId", Value: userID}})
}

func (w writer) RecordActivity(groupID string, a store.GroupActivity) error {
	return w.sink.update(w.f.groupRef(groupID), activityUpdates(a))
}

func (w writer) SetRecapGenerated(groupID string, at time.Time) error {
	return w.sink.update(w.f.groupRef(groupID), []firestore.Update{{Path: "lastRecapGeneratedAt", Value: at}})
}

func (w writer) DeleteGroup(groupID string) error {
	return w.sink.delete(w.f.groupRef(groupID))
}

func (w writer) AddUserGroup(userID, groupID string) error {
	return w.sink.update(w.f.userRef(userID), []firestore.Update{
		{Path: "groupIds", Value: firestore.ArrayUnion(groupID)},
		{Path: "groupId", Value: groupID},
	})
}

func (w writer) RemoveUserGroup(userID, groupID string, primary *string) error {
	ups := []firestore.Update{{Path: "groupIds", Value: firestore.ArrayRemove(groupID)}}
	if primary != nil {
		ups = append(ups, firestore.Update{Path: "groupId", Value: *primary})
	}
	return w.sink.update(w.f.userRef(userID), ups)
}

func (w writer) UpdateUserStats(userID string, stats store.UserStats) error {
	return w.sink.update(w.f.userRef(userID), userStatsUpdates(stats))
}

func (w writer) CreateMessage(groupID string, msg *models.Message) error {
	col := w.f.messages(groupID)
	ref := col.NewDoc()
	if msg.ID != "" {
		ref = col.Doc(msg.ID)
	}
	msg.ID = ref.ID
	return w.sink.create(ref, msg)
}

func (w writer) CreateNote(userID string, note *models.Note) error {
	col := w.f.notes(userID)
	ref := col.NewDoc()
	if note.ID != "" {
		ref = col.Doc(note.ID)
	}
	note.ID = ref.ID
	return w.sink.create(ref, note)
}

func (w writer) UpsertGroupState(userID, groupID string, at time.Time) error {
	return w.sink.set(w.f.stateRef(userID, groupID), groupStateMerge(groupID, at), firestore.MergeAll)
}

func (w writer) DeleteGroupState(userID, groupID string) error {
	return w.sink.delete(w.f.stateRef(userID, groupID))
}

// txSink writes through a transaction.
type txSink struct {
	t *firestore.Transaction
}

func (s txSink) update(ref *firestore.DocumentRef, ups []firestore.Update) error {
	return s.t.Update(ref, ups)
}

func (s txSink) set(ref *firestore.DocumentRef, data any, opts ...firestore.SetOption) error {
	return s.t.Set(ref, data, opts...)
}

func (s txSink) create(ref *firestore.DocumentRef, data any) error {
	return s.t.Create(ref, data)
}

func (s txSink) delete(ref *firestore.DocumentRef) error {
	return s.t.Delete(ref)
}
