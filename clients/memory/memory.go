// Package memory is an in-process implementation of store.Store. Transactions
// use optimistic concurrency: every document read records a version and the
// commit is retried when any of them changed in the meantime.
package memory

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"scriptureCircle/clients/store"
	"scriptureCircle/errs"
	"scriptureCircle/models"
)

const defaultMaxAttempts = 5

var ErrReadAfterWrite = errors.New("memory: transaction read after write")

type Store struct {
	mu       sync.Mutex
	data     *data
	versions map[string]int64

	maxAttempts  int
	batchFlushes int

	// BeforeCommit runs before every commit attempt, outside the store lock, with
	// the 1-based attempt number. A non-nil error aborts the transaction.
	BeforeCommit func(attempt int) error
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		data:        newData(),
		versions:    map[string]int64{},
		maxAttempts: defaultMaxAttempts,
	}
}

// SetMaxAttempts changes the transaction retry budget.
func (s *Store) SetMaxAttempts(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > 0 {
		s.maxAttempts = n
	}
}

func userKey(id string) string  { return "users/" + id }
func groupKey(id string) string { return "groups/" + id }

func (s *Store) bump(keys ...string) {
	for _, k := range keys {
		s.versions[k]++
	}
}

// PutUser stores a copy of u, replacing any existing document.
func (s *Store) PutUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[u.ID] = cloneUser(&u)
	s.bump(userKey(u.ID))
}

// PutGroup stores a copy of g, replacing any existing document.
func (s *Store) PutGroup(g models.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.groups[g.ID] = cloneGroup(&g)
	s.bump(groupKey(g.ID))
}

// PutMessage appends a message to the group's messages collection.
func (s *Store) PutMessage(groupID string, m models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	s.data.messages[groupID] = append(s.data.messages[groupID], &m)
}

// DeleteUser removes the user document, leaving subcollections in place.
func (s *Store) DeleteUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data.users, userID)
	s.bump(userKey(userID))
}

// Messages returns the group's messages in creation order.
func (s *Store) Messages(groupID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, 0, len(s.data.messages[groupID]))
	for _, m := range s.data.messages[groupID] {
		out = append(out, *m)
	}
	return out
}

// Notes returns the user's notes in creation order.
func (s *Store) Notes(userID string) []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Note, 0, len(s.data.notes[userID]))
	for _, n := range s.data.notes[userID] {
		out = append(out, *n)
	}
	return out
}

// GroupState returns the user's read state for a group.
func (s *Store) GroupState(userID, groupID string) (models.GroupState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.data.states[userID][groupID]
	if !ok {
		return models.GroupState{}, false
	}
	return *st, true
}

// BatchFlushes reports how many batch flushes carried at least one operation.
func (s *Store) BatchFlushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batchFlushes
}

func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	s.mu.Lock()
	attempts := s.maxAttempts
	s.mu.Unlock()

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		t := &tx{s: s, reads: map[string]int64{}}
		t.init()
		if err := fn(ctx, t); err != nil {
			return err
		}
		if s.BeforeCommit != nil {
			if err := s.BeforeCommit(attempt); err != nil {
				return err
			}
		}
		committed, err := s.commit(t)
		if err != nil {
			return err
		}
		if committed {
			return nil
		}
	}
	return fmt.Errorf("memory: transaction retries exhausted: %w", errs.ErrConflict)
}

func (s *Store) commit(t *tx) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, ver := range t.reads {
		if s.versions[key] != ver {
			return false, nil
		}
	}
	staged := s.data.clone()
	for _, op := range t.ops {
		if err := op.apply(staged); err != nil {
			return false, err
		}
	}
	s.data = staged
	for _, op := range t.ops {
		s.bump(op.keys...)
	}
	return true, nil
}

func (s *Store) GetUser(_ context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.data.users[userID]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) GetGroup(_ context.Context, groupID string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.data.groups[groupID]
	if !ok {
		return nil, errs.ErrGroupNotFound
	}
	return cloneGroup(g), nil
}

func (s *Store) ListGroups(_ context.Context) ([]models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := slices.Sorted(maps.Keys(s.data.groups))
	out := make([]models.Group, 0, len(ids))
	for _, id := range ids {
		out = append(out, *cloneGroup(s.data.groups[id]))
	}
	return out, nil
}

func (s *Store) RecentMessages(_ context.Context, groupID string, since time.Time, limit int) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.data.messages[groupID]
	out := make([]models.Message, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].CreatedAt.Before(since) {
			continue
		}
		out = append(out, *all[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListNotes(_ context.Context, userID string, limit int) ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.data.notes[userID]
	out := make([]models.Note, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, *all[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) DeleteGroupTree(_ context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data.messages, groupID)
	delete(s.data.groups, groupID)
	s.bump(groupKey(groupID))
	return nil
}

func (s *Store) AddToken(_ context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.data.users[userID]
	if !ok {
		return errs.ErrUserNotFound
	}
	u.FCMTokens = union(u.FCMTokens, token)
	s.bump(userKey(userID))
	return nil
}

func (s *Store) RemoveTokens(_ context.Context, userID string, tokens []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.data.users[userID]
	if !ok {
		return errs.ErrUserNotFound
	}
	u.FCMTokens = remove(u.FCMTokens, tokens...)
	s.bump(userKey(userID))
	return nil
}

func (s *Store) UpdateProfile(_ context.Context, userID string, update store.ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.data.users[userID]
	if !ok {
		return errs.ErrUserNotFound
	}
	if update.Nickname != nil {
		u.Nickname = *update.Nickname
	}
	if update.TimeZone != nil {
		u.TimeZone = *update.TimeZone
	}
	s.bump(userKey(userID))
	return nil
}

func (s *Store) NewBatch(_ context.Context, limit int) store.Batch {
	if limit <= 0 || limit > store.MaxBatchSize {
		limit = store.DefaultBatchSize
	}
	return (&batch{s: s, limit: limit}).init()
}
