package membership

import (
	"context"
	"errors"
	"log/slog"

	"scriptureCircle/clients/store"
	"scriptureCircle/errs"
	"scriptureCircle/models"
)

// NextPrimary returns the groupId value the user should end up with once removed
// is taken out of groupIds, or nil when the primary group is unaffected.
func NextPrimary(u *models.User, removed string) *string {
	if u.GroupID != removed {
		return nil
	}
	next := ""
	for _, id := range u.GroupIDs {
		if id != removed && id != "" {
			next = id
			break
		}
	}
	return &next
}

// Cascade detaches userIDs from a group that no longer exists and deletes the
// group's subcollections. Failures are logged and skipped. It returns the
// number of users that were detached.
func Cascade(ctx context.Context, db store.Store, batchSize int, groupID string, userIDs []string) int {
	batch := db.NewBatch(ctx, batchSize)
	detached := Detach(ctx, db, batch, groupID, userIDs)
	if err := batch.Flush(); err != nil {
		slog.With("error", err.Error()).Warn("cascade batch partially failed", "groupId", groupID)
	}
	if err := db.DeleteGroupTree(ctx, groupID); err != nil {
		slog.With("error", err.Error()).Warn("failed to delete group subcollections", "groupId", groupID)
	}
	return detached
}

// Detach queues the user-side removal of groupID for every user in userIDs:
// groupIds is pruned, the primary group reassigned and the read state deleted.
// Users whose document is missing are skipped. The caller flushes batch.
func Detach(ctx context.Context, db store.Store, batch store.Batch, groupID string, userIDs []string) int {
	detached := 0
	for _, id := range userIDs {
		u, err := db.GetUser(ctx, id)
		if errors.Is(err, errs.ErrNotFound) {
			slog.Info("skipping missing user while detaching group", "userId", id, "groupId", groupID)
			continue
		}
		if err != nil {
			slog.With("error", err.Error()).Warn("failed to load user while detaching group", "userId", id, "groupId", groupID)
			continue
		}
		if err := batch.RemoveUserGroup(id, groupID, NextPrimary(u, groupID)); err != nil {
			slog.With("error", err.Error()).Warn("failed to detach user from group", "userId", id, "groupId", groupID)
			continue
		}
		if err := batch.DeleteGroupState(id, groupID); err != nil {
			slog.With("error", err.Error()).Warn("failed to delete read state", "userId", id, "groupId", groupID)
		}
		detached++
	}
	return detached
}
