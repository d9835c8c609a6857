package posting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"scriptureCircle/clients/store"
	"scriptureCircle/errs"
	"scriptureCircle/generator"
	"scriptureCircle/metrics"
	"scriptureCircle/models"
	"scriptureCircle/services/notify"
	"scriptureCircle/set"
)

const (
	previewLength = 100
	// announcementDelay keeps streak announcements sorted after the note messages.
	announcementDelay = 2 * time.Second
)

type NoteInput struct {
	Scripture           string
	Chapter             string
	Comment             string
	ShareOption         models.ShareOption
	SelectedShareGroups []string
	CurrentGroupID      string
	Language            string
}

type NoteResult struct {
	NoteID           string
	Streak           int
	StreakUpdated    bool
	SharedWithGroups []string
}

type MessageInput struct {
	Text    string
	ReplyTo *models.ReplyTo
}

type Service interface {
	// PostNote creates the note, fans it out to the resolved groups and updates
	// the streak in one transaction. Groups that are missing or that the user
	// does not belong to are skipped.
	PostNote(ctx context.Context, userID string, in NoteInput) (*NoteResult, error)
	// PostMessage appends a chat message to a group the user belongs to.
	PostMessage(ctx context.Context, userID, groupID string, in MessageInput) (*models.Message, error)
}

type service struct {
	db        store.Store
	notifier  notify.Dispatcher
	announcer *generator.Announcer
	now       func() time.Time
}

var _ Service = (*service)(nil)

func NewService(db store.Store, notifier notify.Dispatcher, announcer *generator.Announcer) Service {
	return newService(db, notifier, announcer, time.Now)
}

func newService(db store.Store, notifier notify.Dispatcher, announcer *generator.Announcer, now func() time.Time) *service {
	if announcer == nil {
		announcer = generator.NewAnnouncer()
	}
	return &service{
		db:        db,
		notifier:  notifier,
		announcer: announcer,
		now:       now,
	}
}

func (in NoteInput) validate() error {
	if !in.ShareOption.Valid() {
		return errs.Validation("unknown share option %q", in.ShareOption)
	}
	if strings.TrimSpace(in.Scripture) == "" {
		return errs.Validation("scripture is required")
	}
	if strings.TrimSpace(in.Comment) == "" {
		return errs.Validation("comment is required")
	}
	if in.ShareOption == models.ShareSpecific && len(in.SelectedShareGroups) == 0 {
		return errs.Validation("selectedShareGroups is required for specific sharing")
	}
	return nil
}

// ResolveTargets returns the deduplicated group ids a note is shared to.
func ResolveTargets(u *models.User, in NoteInput) []string {
	var candidates []string
	switch in.ShareOption {
	case models.ShareAll:
		candidates = u.GroupIDs
	case models.ShareSpecific:
		candidates = in.SelectedShareGroups
	case models.ShareCurrent:
		current := in.CurrentGroupID
		if current == "" {
			current = u.GroupID
		}
		candidates = []string{current}
	}
	targets := set.New[string]()
	for _, id := range candidates {
		if id = strings.TrimSpace(id); id != "" {
			targets.Add(id)
		}
	}
	return targets.Values()
}

func (s *service) PostNote(ctx context.Context, userID string, in NoteInput) (*NoteResult, error) {
	if userID == "" {
		return nil, errs.Validation("user is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := s.now()
	today := now.UTC().Format(dateLayout)

	var (
		result   *NoteResult
		nickname string
	)
	err := s.db.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		user, err := tx.GetUser(userID)
		if err != nil {
			return err
		}
		streak, updated := ComputeStreak(user.LastPostDate, user.Location(), now, user.StreakCount)
		targets := ResolveTargets(user, in)
		announce := updated && streak > 0

		toRead := set.FromSlice(targets)
		if announce {
			for _, id := range user.GroupIDs {
				if id != "" {
					toRead.Add(id)
				}
			}
		}
		var groups map[string]*models.Group
		if toRead.Size() > 0 {
			if groups, err = tx.GetGroups(toRead.Values()); err != nil {
				return err
			}
		}
		usable := func(id string) bool {
			g, ok := groups[id]
			return ok && g.HasMember(userID)
		}

		// Writes start here.
		stats := store.UserStats{StreakCount: streak, LastPostDate: now}
		if updated {
			stats.DaysStudiedInc = 1
		}
		if err := tx.UpdateUserStats(userID, stats); err != nil {
			return err
		}

		noteID := tx.NewNoteID(userID)
		note := &models.Note{
			ID:               noteID,
			Text:             in.Comment,
			Scripture:        in.Scripture,
			Chapter:          in.Chapter,
			Comment:          in.Comment,
			Language:         in.Language,
			ShareOption:      in.ShareOption,
			SharedWithGroups: []string{},
			SharedMessageIDs: map[string]string{},
			CreatedAt:        now,
		}
		for _, gid := range targets {
			if !usable(gid) {
				slog.Debug("skipping note share target", "groupId", gid, "userId", userID)
				continue
			}
			msg := &models.Message{
				ID:          tx.NewMessageID(gid),
				Text:        in.Comment,
				SenderID:    userID,
				SenderName:  user.Nickname,
				CreatedAt:   now,
				MessageType: models.MessageTypeNoteShare,
				IsNote:      true,
				NoteID:      noteID,
				Scripture:   in.Scripture,
				Chapter:     in.Chapter,
			}
			if err := tx.CreateMessage(gid, msg); err != nil {
				return err
			}
			daily := groups[gid].DailyActivity
			err := tx.RecordActivity(gid, store.GroupActivity{
				At:         now,
				ActorID:    userID,
				ActorName:  user.Nickname,
				Preview:    preview(in.Comment),
				Messages:   1,
				Notes:      1,
				TouchRead:  true,
				DailyDate:  today,
				ResetDaily: daily == nil || daily.Date != today,
			})
			if err != nil {
				return err
			}
			if err := tx.UpsertGroupState(userID, gid, now); err != nil {
				return err
			}
			note.SharedWithGroups = append(note.SharedWithGroups, gid)
			note.SharedMessageIDs[gid] = msg.ID
		}
		if err := tx.CreateNote(userID, note); err != nil {
			return err
		}

		if announce {
			text := s.announcer.StreakAnnouncement(user.Nickname, streak)
			for _, gid := range user.GroupIDs {
				if !usable(gid) {
					continue
				}
				msg := models.NewSystemMessage(tx.NewMessageID(gid), models.MessageTypeStreakAnnouncement, text, now.Add(announcementDelay))
				if err := tx.CreateMessage(gid, msg); err != nil {
					return err
				}
			}
		}

		nickname = user.Nickname
		result = &NoteResult{
			NoteID:           noteID,
			Streak:           streak,
			StreakUpdated:    updated,
			SharedWithGroups: note.SharedWithGroups,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.NotesPosted.Inc()
	slog.Info("note posted", "userId", userID, "noteId", result.NoteID, "groups", len(result.SharedWithGroups), "streak", result.Streak)
	for _, gid := range result.SharedWithGroups {
		s.notifier.Dispatch(gid, userID, notify.Payload{
			Title: fmt.Sprintf("%s shared a note", displayName(nickname)),
			Body:  strings.TrimSpace(in.Scripture + " " + in.Chapter),
			Data: map[string]string{
				"type":   string(models.MessageTypeNoteShare),
				"noteId": result.NoteID,
			},
		})
	}
	return result, nil
}

func (s *service) PostMessage(ctx context.Context, userID, groupID string, in MessageInput) (*models.Message, error) {
	if userID == "" || groupID == "" {
		return nil, errs.Validation("user and group are required")
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, errs.Validation("text is required")
	}
	now := s.now()

	var msg *models.Message
	err := s.db.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		user, err := tx.GetUser(userID)
		if err != nil {
			return err
		}
		group, err := tx.GetGroup(groupID)
		if err != nil {
			return err
		}
		if !group.HasMember(userID) {
			return fmt.Errorf("%w: not a member of the group", errs.ErrPermissionDenied)
		}

		msg = &models.Message{
			ID:          tx.NewMessageID(groupID),
			Text:        in.Text,
			SenderID:    userID,
			SenderName:  user.Nickname,
			CreatedAt:   now,
			MessageType: models.MessageTypeChat,
		}
		if in.ReplyTo != nil && in.ReplyTo.MessageID != "" {
			r := *in.ReplyTo
			msg.ReplyTo = &r
		}
		if err := tx.CreateMessage(groupID, msg); err != nil {
			return err
		}
		err = tx.RecordActivity(groupID, store.GroupActivity{
			At:        now,
			ActorID:   userID,
			ActorName: user.Nickname,
			Preview:   preview(in.Text),
			Messages:  1,
			TouchRead: true,
		})
		if err != nil {
			return err
		}
		return tx.UpsertGroupState(userID, groupID, now)
	})
	if err != nil {
		return nil, err
	}

	metrics.MessagesPosted.Inc()
	slog.Debug("message posted", "userId", userID, "groupId", groupID, "messageId", msg.ID)
	s.notifier.Dispatch(groupID, userID, notify.Payload{
		Title: displayName(msg.SenderName),
		Body:  preview(msg.Text),
		Data: map[string]string{
			"type":      string(models.MessageTypeChat),
			"messageId": msg.ID,
		},
	})
	return msg, nil
}

func preview(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= previewLength {
		return text
	}
	r := []rune(text)
	return string(r[:previewLength]) + "…"
}

func displayName(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return "Someone"
	}
	return name
}
