package memory

import (
	"maps"
	"slices"

	"scriptureCircle/models"
)

type data struct {
	users    map[string]*models.User
	groups   map[string]*models.Group
	messages map[string][]*models.Message
	notes    map[string][]*models.Note
	states   map[string]map[string]*models.GroupState
}

func newData() *data {
	return &data{
		users:    map[string]*models.User{},
		groups:   map[string]*models.Group{},
		messages: map[string][]*models.Message{},
		notes:    map[string][]*models.Note{},
		states:   map[string]map[string]*models.GroupState{},
	}
}

// clone copies every mutable document. Messages and notes are never mutated
// after creation so only their slices are copied.
func (d *data) clone() *data {
	out := newData()
	for id, u := range d.users {
		out.users[id] = cloneUser(u)
	}
	for id, g := range d.groups {
		out.groups[id] = cloneGroup(g)
	}
	for id, msgs := range d.messages {
		out.messages[id] = slices.Clone(msgs)
	}
	for id, notes := range d.notes {
		out.notes[id] = slices.Clone(notes)
	}
	for uid, states := range d.states {
		m := make(map[string]*models.GroupState, len(states))
		for gid, st := range states {
			cp := *st
			m[gid] = &cp
		}
		out.states[uid] = m
	}
	return out
}

func cloneUser(u *models.User) *models.User {
	cp := *u
	cp.GroupIDs = slices.Clone(u.GroupIDs)
	cp.FCMTokens = slices.Clone(u.FCMTokens)
	if u.LastPostDate != nil {
		t := *u.LastPostDate
		cp.LastPostDate = &t
	}
	return &cp
}

func cloneGroup(g *models.Group) *models.Group {
	cp := *g
	cp.Members = slices.Clone(g.Members)
	cp.MemberLastActive = maps.Clone(g.MemberLastActive)
	cp.MemberLastReadAt = maps.Clone(g.MemberLastReadAt)
	cp.MemberTrackedAt = maps.Clone(g.MemberTrackedAt)
	if g.DailyActivity != nil {
		da := *g.DailyActivity
		da.ActiveMembers = slices.Clone(g.DailyActivity.ActiveMembers)
		cp.DailyActivity = &da
	}
	if g.LastMessageAt != nil {
		t := *g.LastMessageAt
		cp.LastMessageAt = &t
	}
	if g.LastNoteAt != nil {
		t := *g.LastNoteAt
		cp.LastNoteAt = &t
	}
	if g.LastRecapGeneratedAt != nil {
		t := *g.LastRecapGeneratedAt
		cp.LastRecapGeneratedAt = &t
	}
	return &cp
}

// union mirrors an atomic array union: existing order kept, new values appended once.
func union(list []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(list, v) {
			list = append(list, v)
		}
	}
	return list
}

// remove mirrors an atomic array remove: every occurrence of each value is dropped.
func remove(list []string, values ...string) []string {
	return slices.DeleteFunc(slices.Clone(list), func(v string) bool {
		return slices.Contains(values, v)
	})
}
