// Package prompts renders AI prompts for passage explanations, note summaries
// and weekly group recaps, and posts the recaps as system messages.
package prompts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"scriptureCircle/clients/gemini"
	"scriptureCircle/clients/store"
	"scriptureCircle/errs"
	"scriptureCircle/metrics"
	"scriptureCircle/models"
)

const (
	summaryNoteLimit = 20
	recapInterval    = 7 * 24 * time.Hour
	recapMessageScan = 200
)

type ExplainInput struct {
	Scripture string
	Chapter   string
	Language  string
}

// RecapReport summarizes one GenerateRecaps run.
type RecapReport struct {
	GroupsScanned int `json:"groupsScanned"`
	RecapsPosted  int `json:"recapsPosted"`
	Skipped       int `json:"skipped"`
	Failures      int `json:"failures"`
}

type Service interface {
	Explain(ctx context.Context, in ExplainInput) (string, error)
	// SummarizeNotes summarizes the user's latest notes. A user without notes
	// gets an empty summary and no provider call.
	SummarizeNotes(ctx context.Context, userID, language string) (string, error)
	// GenerateRecaps posts a weekly recap to every group that had messages in
	// the last week and has not had a recap in that time.
	GenerateRecaps(ctx context.Context) (*RecapReport, error)
}

type service struct {
	db        store.Store
	ai        gemini.Generator
	templates map[string]*template.Template
	now       func() time.Time
}

var _ Service = (*service)(nil)

// NewService loads the prompt templates once; src may be nil.
func NewService(ctx context.Context, db store.Store, ai gemini.Generator, src Source) (Service, error) {
	return newService(ctx, db, ai, src, time.Now)
}

func newService(ctx context.Context, db store.Store, ai gemini.Generator, src Source, now func() time.Time) (*service, error) {
	templates, err := loadTemplates(ctx, src)
	if err != nil {
		return nil, err
	}
	return &service{db: db, ai: ai, templates: templates, now: now}, nil
}

func (s *service) generate(ctx context.Context, name string, data any) (string, error) {
	prompt, err := render(s.templates[name], data)
	if err != nil {
		return "", err
	}
	text, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("ai").Inc()
		if !errors.Is(err, errs.ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %s", errs.ErrUpstreamUnavailable, err.Error())
		}
		return "", err
	}
	return text, nil
}

func (s *service) Explain(ctx context.Context, in ExplainInput) (string, error) {
	if strings.TrimSpace(in.Scripture) == "" {
		return "", errs.Validation("scripture is required")
	}
	return s.generate(ctx, explainTemplate, in)
}

func (s *service) SummarizeNotes(ctx context.Context, userID, language string) (string, error) {
	u, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if language == "" {
		language = u.Language
	}
	notes, err := s.db.ListNotes(ctx, userID, summaryNoteLimit)
	if err != nil {
		return "", fmt.Errorf("failed to list notes: %w", err)
	}
	if len(notes) == 0 {
		return "", nil
	}
	return s.generate(ctx, summaryTemplate, struct {
		Language string
		Notes    []models.Note
	}{language, notes})
}

func (s *service) due(g *models.Group, now time.Time) bool {
	return g.LastRecapGeneratedAt == nil || now.Sub(*g.LastRecapGeneratedAt) >= recapInterval
}

func (s *service) GenerateRecaps(ctx context.Context) (*RecapReport, error) {
	groups, err := s.db.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	now := s.now()
	report := &RecapReport{}
	for i := range groups {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		g := &groups[i]
		report.GroupsScanned++
		posted, err := s.recapGroup(ctx, g, now)
		switch {
		case err != nil:
			report.Failures++
			slog.With("error", err.Error()).Warn("failed to generate recap", "groupId", g.ID)
		case posted:
			report.RecapsPosted++
		default:
			report.Skipped++
		}
	}
	slog.Info("weekly recaps finished", "groups", report.GroupsScanned, "posted", report.RecapsPosted, "failures", report.Failures)
	return report, nil
}

func (s *service) recapGroup(ctx context.Context, g *models.Group, now time.Time) (bool, error) {
	if !s.due(g, now) {
		return false, nil
	}
	recent, err := s.db.RecentMessages(ctx, g.ID, now.Add(-recapInterval), recapMessageScan)
	if err != nil {
		return false, fmt.Errorf("failed to load messages: %w", err)
	}
	// Oldest first reads better in the prompt.
	messages := make([]models.Message, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		if !recent[i].IsSystemMessage {
			messages = append(messages, recent[i])
		}
	}
	if len(messages) == 0 {
		return false, nil
	}

	text, err := s.generate(ctx, recapTemplate, struct {
		GroupName string
		Messages  []models.Message
	}{g.Name, messages})
	if err != nil {
		return false, err
	}

	posted := false
	err = s.db.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		posted = false
		current, err := tx.GetGroup(g.ID)
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if !s.due(current, now) {
			return nil
		}
		msg := models.NewSystemMessage(tx.NewMessageID(g.ID), models.MessageTypeWeeklyRecap, text, now)
		if err := tx.CreateMessage(g.ID, msg); err != nil {
			return err
		}
		posted = true
		return tx.SetRecapGenerated(g.ID, now)
	})
	return posted, err
}
