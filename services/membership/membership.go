package membership

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
	"scriptureCircle/services/notify"
)

const (
	DefaultMaxJoinedGroups = 7
	// DefaultMaxMembers applies to groups stored without a maxMembers value.
	DefaultMaxMembers = 50
)

// Service owns the membership state transitions. Every operation keeps the
// user's groupIds and the group's members in step inside one transaction.
type Service interface {
	// Join adds the user to the group and posts a userJoined system message.
	// Fails with ErrGroupNotFound, ErrAlreadyMember, ErrTooManyGroups or ErrGroupFull.
	Join(ctx context.Context, userID, groupID string) error

	// Leave removes the user from groupID, or from their primary group when groupID
	// is empty, and returns the id of the group that was left.
	Leave(ctx context.Context, userID, groupID string) (string, error)

	// DeleteGroup deletes an owned group, then detaches the remaining members and
	// deletes the group's messages on a best-effort basis.
	DeleteGroup(ctx context.Context, userID, groupID string) error
}

type Config struct {
	MaxJoinedGroups int
	BatchSize       int
}

type service struct {
	db              store.Store
	notifier        notify.Dispatcher
	maxJoinedGroups int
	batchSize       int
	now             func() time.Time
}

var _ Service = (*service)(nil)

func NewService(db store.Store, notifier notify.Dispatcher, cfg Config) Service {
	return newService(db, notifier, cfg, time.Now)
}

func newService(db store.Store, notifier notify.Dispatcher, cfg Config, now func() time.Time) *service {
	if cfg.MaxJoinedGroups <= 0 {
		cfg.MaxJoinedGroups = DefaultMaxJoinedGroups
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = store.DefaultBatchSize
	}
	return &service{
		db:              db,
		notifier:        notifier,
		maxJoinedGroups: cfg.MaxJoinedGroups,
		batchSize:       cfg.BatchSize,
		now:             now,
	}
}

func capacity(g *models.Group) int {
	if g.MaxMembers <= 0 {
		return DefaultMaxMembers
	}
	return g.MaxMembers
}

func (s *service) Join(ctx context.Context, userID, groupID string) error {
	if userID == "" || groupID == "" {
		return errs.Validation("user and group are required")
	}
	now := s.now()

	var (
		joined   bool
		nickname string
		name     string
	)
	err := s.db.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		joined = false
		group, err := tx.GetGroup(groupID)
		if err != nil {
			return err
		}
		user, err := tx.GetUser(userID)
		if err != nil {
			return err
		}
		inUser, inGroup := user.InGroup(groupID), group.HasMember(userID)
		if inUser && inGroup {
			return errs.ErrAlreadyMember
		}

		others := make([]string, 0, len(user.GroupIDs))
		for _, id := range user.GroupIDs {
			if id != groupID && id != "" {
				others = append(others, id)
			}
		}
		// Stale ids pointing at deleted groups do not count against the limit.
		existing, err := tx.GetGroups(others)
		if err != nil {
			return err
		}

		if inGroup {
			slog.Info("repairing user groupIds from group members", "userId", userID, "groupId", groupID)
			return tx.AddUserGroup(userID, groupID)
		}
		if len(existing) >= s.maxJoinedGroups {
			return fmt.Errorf("%w: the limit is %d groups", errs.ErrTooManyGroups, s.maxJoinedGroups)
		}
		if group.MembersCount >= capacity(group) {
			return errs.ErrGroupFull
		}

		if err := tx.AddMember(groupID, userID, now); err != nil {
			return err
		}
		if err := tx.AddUserGroup(userID, groupID); err != nil {
			return err
		}
		msg := models.NewSystemMessage(tx.NewMessageID(groupID), models.MessageTypeUserJoined, generator.UserJoined(user.Nickname), now)
		if err := tx.CreateMessage(groupID, msg); err != nil {
			return err
		}
		joined, nickname, name = true, user.Nickname, group.Name
		return nil
	})
	if err != nil {
		return err
	}
	if !joined {
		return nil
	}

	metrics.MembershipChanges.WithLabelValues("join").Inc()
	slog.Info("user joined group", "userId", userID, "groupId", groupID)
	s.notifier.Dispatch(groupID, userID, notify.Payload{
		Title: name,
		Body:  generator.UserJoined(nickname),
		Data:  map[string]string{"type": string(models.MessageTypeUserJoined)},
	})
	return nil
}

func (s *service) Leave(ctx context.Context, userID, groupID string) (string, error) {
	if userID == "" {
		return "", errs.Validation("user is required")
	}
	now := s.now()

	var (
		target     string
		deleteTree bool
	)
	err := s.db.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		deleteTree = false
		user, err := tx.GetUser(userID)
		if err != nil {
			return err
		}
		target = groupID
		if target == "" {
			target = user.GroupID
		}
		if target == "" {
			return errs.ErrNoGroupSpecified
		}

		group, err := tx.GetGroup(target)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		groupExists := err == nil
		wasMember := groupExists && group.HasMember(userID)

		var remaining []string
		if wasMember {
			for _, id := range group.Members {
				if id != userID {
					remaining = append(remaining, id)
				}
			}
		}
		transfer := wasMember && group.OwnerUserID == userID && len(remaining) > 0
		var heirName string
		if transfer {
			heir, err := tx.GetUser(remaining[0])
			if err != nil && !errors.Is(err, errs.ErrNotFound) {
				return err
			}
			if heir != nil {
				heirName = heir.Nickname
			}
		}

		if err := tx.RemoveUserGroup(userID, target, NextPrimary(user, target)); err != nil {
			return err
		}
		if err := tx.DeleteGroupState(userID, target); err != nil {
			return err
		}
		if !wasMember {
			return nil
		}

		if len(remaining) == 0 {
			// The last member out deletes the group.
			deleteTree = true
			return tx.DeleteGroup(target)
		}
		if err := tx.RemoveMembers(target, []string{userID}); err != nil {
			return err
		}
		if err := tx.CreateMessage(target, models.NewSystemMessage(tx.NewMessageID(target), models.MessageTypeUserLeft, generator.UserLeft(user.Nickname), now)); err != nil {
			return err
		}
		if transfer {
			if err := tx.SetOwner(target, remaining[0]); err != nil {
				return err
			}
			msg := models.NewSystemMessage(tx.NewMessageID(target), models.MessageTypeOwnershipChanged, generator.OwnershipChanged(heirName), now.Add(time.Second))
			if err := tx.CreateMessage(target, msg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	metrics.MembershipChanges.WithLabelValues("leave").Inc()
	slog.Info("user left group", "userId", userID, "groupId", target)
	if deleteTree {
		if err := s.db.DeleteGroupTree(ctx, target); err != nil {
			slog.With("error", err.Error()).Warn("failed to delete abandoned group subcollections", "groupId", target)
		}
	}
	return target, nil
}

func (s *service) DeleteGroup(ctx context.Context, userID, groupID string) error {
	if userID == "" || groupID == "" {
		return errs.Validation("user and group are required")
	}

	var members []string
	err := s.db.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		group, err := tx.GetGroup(groupID)
		if err != nil {
			return err
		}
		if group.OwnerUserID != userID {
			return errs.ErrPermissionDenied
		}
		owner, err := tx.GetUser(userID)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		members = group.Members

		if err := tx.DeleteGroup(groupID); err != nil {
			return err
		}
		if owner == nil {
			return nil
		}
		if err := tx.RemoveUserGroup(userID, groupID, NextPrimary(owner, groupID)); err != nil {
			return err
		}
		return tx.DeleteGroupState(userID, groupID)
	})
	if err != nil {
		return err
	}
	metrics.MembershipChanges.WithLabelValues("delete").Inc()
	slog.Info("group deleted", "groupId", groupID, "ownerId", userID, "members", len(members))

	others := make([]string, 0, len(members))
	for _, id := range members {
		if id != userID {
			others = append(others, id)
		}
	}
	Cascade(ctx, s.db, s.batchSize, groupID, others)
	return nil
}
