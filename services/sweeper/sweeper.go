// Package sweeper reconciles group membership against observed activity:
// inactive members are evicted, inactive owners replaced and ghost members
// purged. Every pass is idempotent and tolerates concurrent posts and joins.
package sweeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"scriptureCircle/clients/store"
	"scriptureCircle/errs"
	"scriptureCircle/generator"
	"scriptureCircle/metrics"
	"scriptureCircle/models"
	"scriptureCircle/services/membership"
)

const (
	DefaultInactivityWindow = 72 * time.Hour
	DefaultGhostWindow      = 2 * time.Hour
	// ghostMessageScan bounds how much recent history is checked for authorship.
	ghostMessageScan = 200
)

type Config struct {
	InactivityWindow time.Duration
	GhostWindow      time.Duration
	BatchSize        int
}

// Report summarizes one pass over all groups.
type Report struct {
	GroupsScanned      int `json:"groupsScanned"`
	MembersTracked     int `json:"membersTracked"`
	MembersRemoved     int `json:"membersRemoved"`
	OwnershipTransfers int `json:"ownershipTransfers"`
	GroupsDeleted      int `json:"groupsDeleted"`
	Failures           int `json:"failures"`
}

type Service interface {
	RunInactivitySweep(ctx context.Context) (*Report, error)
	PurgeGhosts(ctx context.Context) (*Report, error)
}

type service struct {
	db  store.Store
	cfg Config
	now func() time.Time
}

var _ Service = (*service)(nil)

func NewService(db store.Store, cfg Config) Service {
	return newService(db, cfg, time.Now)
}

func newService(db store.Store, cfg Config, now func() time.Time) *service {
	if cfg.InactivityWindow <= 0 {
		cfg.InactivityWindow = DefaultInactivityWindow
	}
	if cfg.GhostWindow <= 0 {
		cfg.GhostWindow = DefaultGhostWindow
	}
	if cfg.BatchSize <= 0 || cfg.BatchSize > store.MaxBatchSize {
		cfg.BatchSize = store.DefaultBatchSize
	}
	return &service{db: db, cfg: cfg, now: now}
}

// outcome is what a committed group transaction decided.
type outcome struct {
	tracked     int
	removed     []string
	transferred bool
	deleted     bool
	members     []string
}

func (s *service) RunInactivitySweep(ctx context.Context) (*Report, error) {
	return s.run(ctx, "inactivity", s.sweepGroup)
}

func (s *service) PurgeGhosts(ctx context.Context) (*Report, error) {
	return s.run(ctx, "ghost", s.purgeGroup)
}

func (s *service) run(ctx context.Context, reason string, handle func(ctx context.Context, g *models.Group, now time.Time) (*outcome, error)) (*Report, error) {
	groups, err := s.db.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	now := s.now()
	report := &Report{}
	for i := range groups {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		g := &groups[i]
		report.GroupsScanned++

		out, err := handle(ctx, g, now)
		if err != nil {
			report.Failures++
			metrics.SweepFailures.Inc()
			slog.With("error", err.Error()).Error("failed to sweep group", "groupId", g.ID, "job", reason)
			continue
		}
		if out == nil {
			continue
		}
		s.apply(ctx, g.ID, reason, out, report)
	}
	slog.Info("sweep finished", "job", reason,
		"groups", report.GroupsScanned,
		"tracked", report.MembersTracked,
		"removed", report.MembersRemoved,
		"transfers", report.OwnershipTransfers,
		"deleted", report.GroupsDeleted,
		"failures", report.Failures)
	return report, nil
}

// apply performs the non-transactional user-side follow-up of a committed outcome.
func (s *service) apply(ctx context.Context, groupID, reason string, out *outcome, report *Report) {
	report.MembersTracked += out.tracked
	if out.transferred {
		report.OwnershipTransfers++
		metrics.SweepGroupActions.WithLabelValues("transfer").Inc()
	}
	if out.deleted {
		report.GroupsDeleted++
		metrics.SweepGroupActions.WithLabelValues("delete").Inc()
		membership.Cascade(ctx, s.db, s.cfg.BatchSize, groupID, out.members)
		slog.Info("deleted group with no active members", "groupId", groupID)
		return
	}
	if len(out.removed) == 0 {
		return
	}
	report.MembersRemoved += len(out.removed)
	metrics.SweepRemovals.WithLabelValues(reason).Add(float64(len(out.removed)))

	batch := s.db.NewBatch(ctx, s.cfg.BatchSize)
	membership.Detach(ctx, s.db, batch, groupID, out.removed)
	if err := batch.Flush(); err != nil {
		report.Failures++
		metrics.SweepFailures.Inc()
		slog.With("error", err.Error()).Warn("failed to prune removed members", "groupId", groupID)
	}
	slog.Info("removed members", "groupId", groupID, "job", reason, "count", len(out.removed))
}

// sweepGroup re-reads the group inside a transaction so that a post committed
// after the listing wins over eviction.
func (s *service) sweepGroup(ctx context.Context, listed *models.Group, now time.Time) (*outcome, error) {
	var out *outcome
	err := s.db.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		out = nil
		g, err := tx.GetGroup(listed.ID)
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		c := s.classify(g, now)
		owner := g.OwnerUserID
		ownerInactive := g.HasMember(owner) && c.inactive.contains(owner)

		var heir string
		var heirName string
		if ownerInactive && len(c.active) > 0 {
			heir = c.active[0]
			u, err := tx.GetUser(heir)
			if err != nil && !errors.Is(err, errs.ErrNotFound) {
				return err
			}
			if u != nil {
				heirName = u.Nickname
			}
		}

		if ownerInactive && heir == "" && len(c.untracked) == 0 {
			out = &outcome{deleted: true, members: g.Members}
			return tx.DeleteGroup(g.ID)
		}

		o := &outcome{}
		if len(c.untracked) > 0 {
			if err := tx.TrackMembers(g.ID, c.untracked, now); err != nil {
				return err
			}
			o.tracked = len(c.untracked)
		}
		if heir != "" {
			if err := tx.SetOwner(g.ID, heir); err != nil {
				return err
			}
			msg := models.NewSystemMessage(tx.NewMessageID(g.ID), models.MessageTypeOwnershipChanged, generator.OwnershipTransferred(heirName), now)
			if err := tx.CreateMessage(g.ID, msg); err != nil {
				return err
			}
			o.transferred = true
		}
		for _, id := range c.inactive {
			// The owner, including one just replaced, is never evicted in this pass.
			if id != owner && id != heir {
				o.removed = append(o.removed, id)
			}
		}
		if len(o.removed) > 0 {
			if err := s.remove(tx, g.ID, o.removed, now); err != nil {
				return err
			}
		}
		if o.tracked > 0 || o.transferred || len(o.removed) > 0 {
			out = o
		}
		return nil
	})
	return out, err
}

// purgeGroup removes members that the tracking initializer stamped recently
// and that never authored a message in the group's recent history.
func (s *service) purgeGroup(ctx context.Context, listed *models.Group, now time.Time) (*outcome, error) {
	candidates := s.ghostCandidates(listed, now)
	if len(candidates) == 0 {
		return nil, nil
	}
	recent, err := s.db.RecentMessages(ctx, listed.ID, time.Time{}, ghostMessageScan)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent messages: %w", err)
	}
	authors := map[string]bool{}
	for _, m := range recent {
		authors[m.SenderID] = true
	}

	var out *outcome
	err = s.db.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		out = nil
		g, err := tx.GetGroup(listed.ID)
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		var ghosts []string
		for _, id := range s.ghostCandidates(g, now) {
			if !authors[id] {
				ghosts = append(ghosts, id)
			}
		}
		if len(ghosts) == 0 {
			return nil
		}
		if err := s.remove(tx, g.ID, ghosts, now); err != nil {
			return err
		}
		out = &outcome{removed: ghosts}
		return nil
	})
	return out, err
}

func (s *service) ghostCandidates(g *models.Group, now time.Time) []string {
	var ids []string
	for _, id := range g.Members {
		if id == g.OwnerUserID {
			continue
		}
		tracked, ok := g.MemberTrackedAt[id]
		if !ok || now.Sub(tracked) > s.cfg.GhostWindow {
			continue
		}
		if last, ok := g.MemberLastActive[id]; ok && last.After(tracked) {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (s *service) remove(tx store.Tx, groupID string, ids []string, now time.Time) error {
	if err := tx.RemoveMembers(groupID, ids); err != nil {
		return err
	}
	msg := models.NewSystemMessage(tx.NewMessageID(groupID), models.MessageTypeMembersRemoved, generator.MembersRemoved(len(ids)), now)
	return tx.CreateMessage(groupID, msg)
}

type memberList []string

func (l memberList) contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

type classification struct {
	untracked memberList
	inactive  memberList
	active    memberList
}

// classify buckets every member in membership order. Members without a
// memberLastActive entry are untracked and get a grace period.
func (s *service) classify(g *models.Group, now time.Time) classification {
	var c classification
	for _, id := range g.Members {
		last, ok := g.MemberLastActive[id]
		switch {
		case !ok:
			c.untracked = append(c.untracked, id)
		case now.Sub(last) > s.cfg.InactivityWindow:
			c.inactive = append(c.inactive, id)
		case id != g.OwnerUserID:
			c.active = append(c.active, id)
		}
	}
	return c
}
