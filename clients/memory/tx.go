package memory

import (
	"errors"

	"github.com/google/uuid"

	"scriptureCircle/clients/store"
	"scriptureCircle/errs"
	"scriptureCircle/models"
)

type tx struct {
	opWriter
	s     *Store
	reads map[string]int64
	ops   []op
}

var _ store.Tx = (*tx)(nil)

func (t *tx) init() {
	t.opWriter = opWriter{push: func(o op) error {
		t.ops = append(t.ops, o)
		return nil
	}}
}

func (t *tx) checkRead() error {
	if len(t.ops) > 0 {
		return ErrReadAfterWrite
	}
	return nil
}

func (t *tx) GetUser(userID string) (*models.User, error) {
	if err := t.checkRead(); err != nil {
		return nil, err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.reads[userKey(userID)] = t.s.versions[userKey(userID)]
	u, ok := t.s.data.users[userID]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (t *tx) GetGroup(groupID string) (*models.Group, error) {
	groups, err := t.GetGroups([]string{groupID})
	if err != nil {
		return nil, err
	}
	g, ok := groups[groupID]
	if !ok {
		return nil, errs.ErrGroupNotFound
	}
	return g, nil
}

func (t *tx) GetGroups(groupIDs []string) (map[string]*models.Group, error) {
	if err := t.checkRead(); err != nil {
		return nil, err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	out := make(map[string]*models.Group, len(groupIDs))
	for _, id := range groupIDs {
		if id == "" {
			return nil, errors.New("memory: empty group id")
		}
		t.reads[groupKey(id)] = t.s.versions[groupKey(id)]
		if g, ok := t.s.data.groups[id]; ok {
			out[id] = cloneGroup(g)
		}
	}
	return out, nil
}

func (t *tx) NewNoteID(string) string    { return uuid.NewString() }
func (t *tx) NewMessageID(string) string { return uuid.NewString() }
