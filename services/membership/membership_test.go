package membership

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptureCircle/clients/memory"
	"scriptureCircle/errs"
	"scriptureCircle/models"
	"scriptureCircle/services/notify"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type recordingDispatcher struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingDispatcher) Dispatch(groupID, senderID string, _ notify.Payload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, groupID+"/"+senderID)
}

func newTestService(db *memory.Store, cfg Config) (*service, *recordingDispatcher) {
	d := &recordingDispatcher{}
	return newService(db, d, cfg, func() time.Time { return now }), d
}

func getUser(t *testing.T, db *memory.Store, id string) *models.User {
	t.Helper()
	u, err := db.GetUser(context.Background(), id)
	require.NoError(t, err)
	return u
}

func getGroup(t *testing.T, db *memory.Store, id string) *models.Group {
	t.Helper()
	g, err := db.GetGroup(context.Background(), id)
	require.NoError(t, err)
	return g
}

func TestJoin(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "owner", Nickname: "Olive", GroupID: "g1", GroupIDs: []string{"g1"}})
	db.PutUser(models.User{ID: "bob", Nickname: "Bob"})
	db.PutGroup(models.Group{ID: "g1", Name: "Romans", OwnerUserID: "owner", Members: []string{"owner"}, MembersCount: 1, MaxMembers: 10})
	svc, d := newTestService(db, Config{})

	require.NoError(t, svc.Join(context.Background(), "bob", "g1"))

	g := getGroup(t, db, "g1")
	assert.Equal(t, []string{"owner", "bob"}, g.Members)
	assert.Equal(t, 2, g.MembersCount)
	assert.Equal(t, now, g.MemberLastActive["bob"])

	u := getUser(t, db, "bob")
	assert.Equal(t, []string{"g1"}, u.GroupIDs)
	assert.Equal(t, "g1", u.GroupID)

	msgs := db.Messages("g1")
	require.Len(t, msgs, 1)
	assert.Equal(t, models.MessageTypeUserJoined, msgs[0].MessageType)
	assert.True(t, msgs[0].IsSystemMessage)
	assert.Equal(t, models.SystemSenderID, msgs[0].SenderID)
	assert.Equal(t, "Bob joined the group", msgs[0].Text)

	assert.Equal(t, []string{"g1/bob"}, d.calls)
}

func TestJoinTwiceIsAlreadyMember(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "bob"})
	db.PutGroup(models.Group{ID: "g1", OwnerUserID: "owner", Members: []string{"owner"}, MembersCount: 1, MaxMembers: 10})
	svc, _ := newTestService(db, Config{})

	require.NoError(t, svc.Join(context.Background(), "bob", "g1"))
	err := svc.Join(context.Background(), "bob", "g1")
	assert.ErrorIs(t, err, errs.ErrAlreadyMember)
	assert.Equal(t, 2, getGroup(t, db, "g1").MembersCount)
	assert.Len(t, db.Messages("g1"), 1)
}

func TestJoinFullGroup(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "bob"})
	db.PutGroup(models.Group{ID: "g1", OwnerUserID: "a", Members: []string{"a", "b"}, MembersCount: 2, MaxMembers: 2})
	svc, d := newTestService(db, Config{})

	err := svc.Join(context.Background(), "bob", "g1")
	assert.ErrorIs(t, err, errs.ErrGroupFull)
	assert.Equal(t, 2, getGroup(t, db, "g1").MembersCount)
	assert.Empty(t, getUser(t, db, "bob").GroupIDs)
	assert.Empty(t, db.Messages("g1"))
	assert.Empty(t, d.calls)
}

func TestJoinMissingGroup(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "bob"})
	svc, _ := newTestService(db, Config{})

	err := svc.Join(context.Background(), "bob", "nope")
	assert.ErrorIs(t, err, errs.ErrGroupNotFound)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestJoinRepairsUserSide(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "bob"})
	db.PutGroup(models.Group{ID: "g1", OwnerUserID: "a", Members: []string{"a", "bob"}, MembersCount: 2, MaxMembers: 10})
	svc, d := newTestService(db, Config{})

	require.NoError(t, svc.Join(context.Background(), "bob", "g1"))
	assert.Equal(t, 2, getGroup(t, db, "g1").MembersCount)
	assert.Equal(t, []string{"g1"}, getUser(t, db, "bob").GroupIDs)
	assert.Empty(t, db.Messages("g1"))
	assert.Empty(t, d.calls)
}

func TestJoinTooManyGroups(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "bob", GroupIDs: []string{"a", "b"}})
	db.PutGroup(models.Group{ID: "a", Members: []string{"bob"}, MembersCount: 1})
	db.PutGroup(models.Group{ID: "b", Members: []string{"bob"}, MembersCount: 1})
	db.PutGroup(models.Group{ID: "g1", MaxMembers: 10})
	svc, _ := newTestService(db, Config{MaxJoinedGroups: 2})

	err := svc.Join(context.Background(), "bob", "g1")
	assert.ErrorIs(t, err, errs.ErrTooManyGroups)
	assert.Contains(t, err.Error(), "2 groups")
	assert.Zero(t, getGroup(t, db, "g1").MembersCount)
}

func TestJoinIgnoresStaleGroupIDs(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "bob", GroupIDs: []string{"deleted1", "deleted2"}})
	db.PutGroup(models.Group{ID: "g1", MaxMembers: 10})
	svc, _ := newTestService(db, Config{MaxJoinedGroups: 2})

	require.NoError(t, svc.Join(context.Background(), "bob", "g1"))
	assert.Equal(t, 1, getGroup(t, db, "g1").MembersCount)
}

func TestJoinDefaultsCapacity(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "bob"})
	db.PutGroup(models.Group{ID: "g1", MembersCount: DefaultMaxMembers})
	svc, _ := newTestService(db, Config{})

	assert.ErrorIs(t, svc.Join(context.Background(), "bob", "g1"), errs.ErrGroupFull)
}

func TestJoinRetriesOnConcurrentChange(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "bob"})
	db.PutGroup(models.Group{ID: "g1", MaxMembers: 2, Members: []string{"a"}, MembersCount: 1})
	db.BeforeCommit = func(attempt int) error {
		if attempt == 1 {
			db.PutGroup(models.Group{ID: "g1", MaxMembers: 2, Members: []string{"a", "c"}, MembersCount: 2})
		}
		return nil
	}
	svc, _ := newTestService(db, Config{})

	err := svc.Join(context.Background(), "bob", "g1")
	assert.ErrorIs(t, err, errs.ErrGroupFull)
	assert.Empty(t, getUser(t, db, "bob").GroupIDs)
}

func TestJoinValidation(t *testing.T) {
	svc, _ := newTestService(memory.New(), Config{})
	assert.ErrorIs(t, svc.Join(context.Background(), "", "g1"), errs.ErrValidation)
}

func TestLeaveAfterJoinRestoresCount(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "owner", GroupID: "g1", GroupIDs: []string{"g1"}})
	db.PutUser(models.User{ID: "bob", Nickname: "Bob", GroupID: "g0", GroupIDs: []string{"g0"}})
	db.PutGroup(models.Group{ID: "g0", OwnerUserID: "bob", Members: []string{"bob"}, MembersCount: 1})
	db.PutGroup(models.Group{ID: "g1", OwnerUserID: "owner", Members: []string{"owner"}, MembersCount: 1, MaxMembers: 5})
	svc, _ := newTestService(db, Config{})

	require.NoError(t, svc.Join(context.Background(), "bob", "g1"))
	left, err := svc.Leave(context.Background(), "bob", "g1")
	require.NoError(t, err)
	assert.Equal(t, "g1", left)

	g := getGroup(t, db, "g1")
	assert.Equal(t, 1, g.MembersCount)
	assert.Equal(t, []string{"owner"}, g.Members)
	_, tracked := g.MemberLastActive["bob"]
	assert.False(t, tracked)

	u := getUser(t, db, "bob")
	assert.Equal(t, []string{"g0"}, u.GroupIDs)
	assert.Equal(t, "g0", u.GroupID)

	msgs := db.Messages("g1")
	require.Len(t, msgs, 2)
	assert.Equal(t, models.MessageTypeUserLeft, msgs[1].MessageType)
	assert.Equal(t, "Bob left the group", msgs[1].Text)
}

func TestLeaveDefaultsToPrimaryGroup(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "bob", GroupID: "g2", GroupIDs: []string{"g1", "g2"}})
	db.PutGroup(models.Group{ID: "g1", OwnerUserID: "a", Members: []string{"a", "bob"}, MembersCount: 2})
	db.PutGroup(models.Group{ID: "g2", OwnerUserID: "a", Members: []string{"a", "bob"}, MembersCount: 2})
	svc, _ := newTestService(db, Config{})

	left, err := svc.Leave(context.Background(), "bob", "")
	require.NoError(t, err)
	assert.Equal(t, "g2", left)

	u := getUser(t, db, "bob")
	assert.Equal(t, []string{"g1"}, u.GroupIDs)
	assert.Equal(t, "g1", u.GroupID)
	assert.Equal(t, 2, getGroup(t, db, "g1").MembersCount)
}

func TestLeaveLastGroupClearsPrimary(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "bob", GroupID: "g1", GroupIDs: []string{"g1"}})
	db.PutGroup(models.Group{ID: "g1", OwnerUserID: "a", Members: []string{"a", "bob"}, MembersCount: 2})
	svc, _ := newTestService(db, Config{})

	_, err := svc.Leave(context.Background(), "bob", "g1")
	require.NoError(t, err)
	u := getUser(t, db, "bob")
	assert.Empty(t, u.GroupIDs)
	assert.Empty(t, u.GroupID)
}

func TestLeaveWithoutGroup(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "bob"})
	svc, _ := newTestService(db, Config{})

	_, err := svc.Leave(context.Background(), "bob", "")
	assert.ErrorIs(t, err, errs.ErrNoGroupSpecified)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestLeaveMissingGroupPrunesUserOnly(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "bob", GroupID: "gone", GroupIDs: []string{"gone", "g1"}})
	svc, _ := newTestService(db, Config{})

	left, err := svc.Leave(context.Background(), "bob", "")
	require.NoError(t, err)
	assert.Equal(t, "gone", left)
	u := getUser(t, db, "bob")
	assert.Equal(t, []string{"g1"}, u.GroupIDs)
	assert.Equal(t, "g1", u.GroupID)
	assert.Empty(t, db.Messages("gone"))
}

func TestLeaveTwiceIsNoOpOnGroup(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "bob", GroupIDs: []string{"g1"}, GroupID: "g1"})
	db.PutGroup(models.Group{ID: "g1", OwnerUserID: "a", Members: []string{"a", "bob"}, MembersCount: 2})
	svc, _ := newTestService(db, Config{})

	_, err := svc.Leave(context.Background(), "bob", "g1")
	require.NoError(t, err)
	_, err = svc.Leave(context.Background(), "bob", "g1")
	require.NoError(t, err)

	assert.Equal(t, 1, getGroup(t, db, "g1").MembersCount)
	assert.Len(t, db.Messages("g1"), 1)
}

func TestOwnerLeaveTransfersOwnership(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "owner", GroupID: "g1", GroupIDs: []string{"g1"}})
	db.PutUser(models.User{ID: "bob", Nickname: "Bob", GroupID: "g1", GroupIDs: []string{"g1"}})
	db.PutGroup(models.Group{ID: "g1", OwnerUserID: "owner", Members: []string{"owner", "bob", "carol"}, MembersCount: 3})
	svc, _ := newTestService(db, Config{})

	_, err := svc.Leave(context.Background(), "owner", "g1")
	require.NoError(t, err)

	g := getGroup(t, db, "g1")
	assert.Equal(t, "bob", g.OwnerUserID)
	assert.Equal(t, []string{"bob", "carol"}, g.Members)

	msgs := db.Messages("g1")
	require.Len(t, msgs, 2)
	assert.Equal(t, models.MessageTypeOwnershipChanged, msgs[1].MessageType)
	assert.Equal(t, "Bob is now the group owner.", msgs[1].Text)
	assert.True(t, msgs[1].CreatedAt.After(msgs[0].CreatedAt))
}

func TestLastMemberLeaveDeletesGroup(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "owner", GroupID: "g1", GroupIDs: []string{"g1"}})
	db.PutGroup(models.Group{ID: "g1", OwnerUserID: "owner", Members: []string{"owner"}, MembersCount: 1})
	db.PutMessage("g1", models.Message{Text: "hello"})
	svc, _ := newTestService(db, Config{})

	_, err := svc.Leave(context.Background(), "owner", "g1")
	require.NoError(t, err)

	_, err = db.GetGroup(context.Background(), "g1")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Empty(t, db.Messages("g1"))
	assert.Empty(t, getUser(t, db, "owner").GroupIDs)
}

func TestDeleteGroupByNonOwner(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "owner", GroupID: "g1", GroupIDs: []string{"g1"}})
	db.PutUser(models.User{ID: "bob", GroupID: "g1", GroupIDs: []string{"g1"}})
	db.PutGroup(models.Group{ID: "g1", OwnerUserID: "owner", Members: []string{"owner", "bob"}, MembersCount: 2})
	db.PutMessage("g1", models.Message{Text: "hello"})
	svc, _ := newTestService(db, Config{})

	err := svc.DeleteGroup(context.Background(), "bob", "g1")
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)

	g := getGroup(t, db, "g1")
	assert.Equal(t, 2, g.MembersCount)
	assert.Equal(t, []string{"g1"}, getUser(t, db, "bob").GroupIDs)
	assert.Equal(t, []string{"g1"}, getUser(t, db, "owner").GroupIDs)
	assert.Len(t, db.Messages("g1"), 1)
}

func TestDeleteGroupMissing(t *testing.T) {
	svc, _ := newTestService(memory.New(), Config{})
	assert.ErrorIs(t, svc.DeleteGroup(context.Background(), "owner", "g1"), errs.ErrGroupNotFound)
}

func TestDeleteGroupCascades(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "owner", GroupID: "g1", GroupIDs: []string{"g1", "g2"}})
	db.PutUser(models.User{ID: "bob", GroupID: "g1", GroupIDs: []string{"g1"}})
	db.PutUser(models.User{ID: "carol", GroupID: "g3", GroupIDs: []string{"g3", "g1"}})
	db.PutGroup(models.Group{ID: "g1", OwnerUserID: "owner", Members: []string{"owner", "bob", "carol", "vanished"}, MembersCount: 4})
	db.PutMessage("g1", models.Message{Text: "hello"})
	svc, _ := newTestService(db, Config{BatchSize: 1})

	require.NoError(t, svc.DeleteGroup(context.Background(), "owner", "g1"))

	_, err := db.GetGroup(context.Background(), "g1")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Empty(t, db.Messages("g1"))

	owner := getUser(t, db, "owner")
	assert.Equal(t, []string{"g2"}, owner.GroupIDs)
	assert.Equal(t, "g2", owner.GroupID)

	bob := getUser(t, db, "bob")
	assert.Empty(t, bob.GroupIDs)
	assert.Empty(t, bob.GroupID)

	carol := getUser(t, db, "carol")
	assert.Equal(t, []string{"g3"}, carol.GroupIDs)
	assert.Equal(t, "g3", carol.GroupID)

	assert.GreaterOrEqual(t, db.BatchFlushes(), 2)
}

func TestForcedFailureLeavesNoWrites(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "bob"})
	db.PutGroup(models.Group{ID: "g1", MaxMembers: 10})
	boom := errors.New("boom")
	db.BeforeCommit = func(int) error { return boom }
	svc, _ := newTestService(db, Config{})

	assert.ErrorIs(t, svc.Join(context.Background(), "bob", "g1"), boom)
	assert.Zero(t, getGroup(t, db, "g1").MembersCount)
	assert.Empty(t, getUser(t, db, "bob").GroupIDs)
	assert.Empty(t, db.Messages("g1"))
}

func TestNextPrimary(t *testing.T) {
	u := &models.User{GroupID: "a", GroupIDs: []string{"a", "b", "c"}}
	assert.Nil(t, NextPrimary(u, "b"))
	next := NextPrimary(u, "a")
	require.NotNil(t, next)
	assert.Equal(t, "b", *next)

	single := &models.User{GroupID: "a", GroupIDs: []string{"a"}}
	next = NextPrimary(single, "a")
	require.NotNil(t, next)
	assert.Empty(t, *next)
}
