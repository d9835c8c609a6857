package memory

import (
	"time"

	"github.com/google/uuid"

	"scriptureCircle/clients/store"
	"scriptureCircle/errs"
	"scriptureCircle/models"
)

type op struct {
	keys  []string
	apply func(d *data) error
}

// opWriter translates store.Writer calls into deferred ops handed to push.
type opWriter struct {
	push func(op) error
}

var _ store.Writer = opWriter{}

func (w opWriter) group(groupID string, fn func(g *models.Group)) error {
	return w.push(op{
		keys: []string{groupKey(groupID)},
		apply: func(d *data) error {
			g, ok := d.groups[groupID]
			if !ok {
				return errs.ErrGroupNotFound
			}
			fn(g)
			return nil
		},
	})
}

func (w opWriter) user(userID string, fn func(u *models.User)) error {
	return w.push(op{
		keys: []string{userKey(userID)},
		apply: func(d *data) error {
			u, ok := d.users[userID]
			if !ok {
				return errs.ErrUserNotFound
			}
			fn(u)
			return nil
		},
	})
}

func (w opWriter) AddMember(groupID, userID string, at time.Time) error {
	return w.group(groupID, func(g *models.Group) {
		g.Members = union(g.Members, userID)
		g.MembersCount++
		if g.MemberLastActive == nil {
			g.MemberLastActive = map[string]time.Time{}
		}
		g.MemberLastActive[userID] = at
	})
}

func (w opWriter) RemoveMembers(groupID string, userIDs []string) error {
	return w.group(groupID, func(g *models.Group) {
		g.Members = remove(g.Members, userIDs...)
		g.MembersCount -= len(userIDs)
		for _, id := range userIDs {
			delete(g.MemberLastActive, id)
			delete(g.MemberTrackedAt, id)
		}
	})
}

func (w opWriter) TrackMembers(groupID string, userIDs []string, at time.Time) error {
	return w.group(groupID, func(g *models.Group) {
		if g.MemberLastActive == nil {
			g.MemberLastActive = map[string]time.Time{}
		}
		if g.MemberTrackedAt == nil {
			g.MemberTrackedAt = map[string]time.Time{}
		}
		for _, id := range userIDs {
			g.MemberLastActive[id] = at
			g.MemberTrackedAt[id] = at
		}
	})
}

func (w opWriter) SetOwner(groupID, userID string) error {
	return w.group(groupID, func(g *models.Group) {
		g.OwnerUserID = userID
	})
}

func (w opWriter) RecordActivity(groupID string, a store.GroupActivity) error {
	return w.group(groupID, func(g *models.Group) {
		at := a.At
		g.MessageCount += a.Messages
		g.NoteCount += a.Notes
		g.LastMessageAt = &at
		if a.Notes > 0 {
			g.LastNoteAt = &at
		}
		g.LastActivityBy = a.ActorID
		g.LastActivityByName = a.ActorName
		g.LastMessagePreview = a.Preview
		if g.MemberLastActive == nil {
			g.MemberLastActive = map[string]time.Time{}
		}
		g.MemberLastActive[a.ActorID] = at
		delete(g.MemberTrackedAt, a.ActorID)
		if a.TouchRead {
			if g.MemberLastReadAt == nil {
				g.MemberLastReadAt = map[string]time.Time{}
			}
			g.MemberLastReadAt[a.ActorID] = at
		}
		if a.DailyDate == "" {
			return
		}
		if a.ResetDaily || g.DailyActivity == nil {
			g.DailyActivity = &models.DailyActivity{Date: a.DailyDate, ActiveMembers: []string{a.ActorID}}
			return
		}
		g.DailyActivity.ActiveMembers = union(g.DailyActivity.ActiveMembers, a.ActorID)
	})
}

func (w opWriter) SetRecapGenerated(groupID string, at time.Time) error {
	return w.group(groupID, func(g *models.Group) {
		g.LastRecapGeneratedAt = &at
	})
}

func (w opWriter) DeleteGroup(groupID string) error {
	return w.push(op{
		keys: []string{groupKey(groupID)},
		apply: func(d *data) error {
			delete(d.groups, groupID)
			return nil
		},
	})
}

func (w opWriter) AddUserGroup(userID, groupID string) error {
	return w.user(userID, func(u *models.User) {
		u.GroupIDs = union(u.GroupIDs, groupID)
		u.GroupID = groupID
	})
}

func (w opWriter) RemoveUserGroup(userID, groupID string, primary *string) error {
	return w.user(userID, func(u *models.User) {
		u.GroupIDs = remove(u.GroupIDs, groupID)
		if primary != nil {
			u.GroupID = *primary
		}
	})
}

func (w opWriter) UpdateUserStats(userID string, stats store.UserStats) error {
	return w.user(userID, func(u *models.User) {
		last := stats.LastPostDate
		u.StreakCount = stats.StreakCount
		u.LastPostDate = &last
		u.TotalNotes++
		u.DaysStudiedCount += stats.DaysStudiedInc
	})
}

func (w opWriter) CreateMessage(groupID string, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	cp := *msg
	if msg.ReplyTo != nil {
		r := *msg.ReplyTo
		cp.ReplyTo = &r
	}
	return w.push(op{
		apply: func(d *data) error {
			d.messages[groupID] = append(d.messages[groupID], &cp)
			return nil
		},
	})
}

func (w opWriter) CreateNote(userID string, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	cp := *note
	return w.push(op{
		apply: func(d *data) error {
			d.notes[userID] = append(d.notes[userID], &cp)
			return nil
		},
	})
}

func (w opWriter) UpsertGroupState(userID, groupID string, at time.Time) error {
	return w.push(op{
		apply: func(d *data) error {
			states, ok := d.states[userID]
			if !ok {
				states = map[string]*models.GroupState{}
				d.states[userID] = states
			}
			st, ok := states[groupID]
			if !ok {
				st = &models.GroupState{GroupID: groupID}
				states[groupID] = st
			}
			st.LastReadAt = at
			st.ReadMessageCount++
			return nil
		},
	})
}

func (w opWriter) DeleteGroupState(userID, groupID string) error {
	return w.push(op{
		apply: func(d *data) error {
			delete(d.states[userID], groupID)
			return nil
		},
	})
}
