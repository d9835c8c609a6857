package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"scriptureCircle/clients/store"
	"scriptureCircle/errs"
	"scriptureCircle/metrics"
)

const (
	defaultTimeout = 30 * time.Second
	lookupLimit    = 8
)

type Payload struct {
	Title string
	Body  string
	Data  map[string]string
}

// Result reports per-token outcomes of a send.
type Result struct {
	SuccessCount  int
	FailureCount  int
	InvalidTokens []string
}

// Sink delivers one payload to a list of device tokens.
type Sink interface {
	Send(ctx context.Context, tokens []string, payload Payload) (*Result, error)
}

// Dispatcher starts a group notification and returns immediately. The outcome
// is never reported back to the caller.
type Dispatcher interface {
	Dispatch(groupID, senderID string, payload Payload)
}

type Service interface {
	Dispatcher
	// NotifyGroup resolves the device tokens of every member except senderID,
	// sends the payload and prunes tokens the sink reported as invalid.
	NotifyGroup(ctx context.Context, groupID, senderID string, payload Payload) (*Result, error)
	// Wait blocks until every dispatched notification has finished.
	Wait()
}

type service struct {
	db      store.Store
	sink    Sink
	timeout time.Duration
	wg      sync.WaitGroup
}

var _ Service = (*service)(nil)

func NewService(db store.Store, sink Sink) Service {
	return &service{
		db:      db,
		sink:    sink,
		timeout: defaultTimeout,
	}
}

func (s *service) Dispatch(groupID, senderID string, payload Payload) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if _, err := s.NotifyGroup(ctx, groupID, senderID, payload); err != nil {
			metrics.Notifications.WithLabelValues("error").Inc()
			slog.With("error", err.Error()).Warn("group notification failed", "groupId", groupID)
		}
	}()
}

func (s *service) Wait() {
	s.wg.Wait()
}

func (s *service) NotifyGroup(ctx context.Context, groupID, senderID string, payload Payload) (*Result, error) {
	group, err := s.db.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}

	var (
		mu     sync.Mutex
		owners = map[string]string{}
		tokens []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupLimit)
	for _, memberID := range group.Members {
		if memberID == senderID {
			continue
		}
		g.Go(func() error {
			u, err := s.db.GetUser(gctx, memberID)
			if errors.Is(err, errs.ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to load member %s: %w", memberID, err)
			}
			mu.Lock()
			defer mu.Unlock()
			for _, t := range u.FCMTokens {
				if _, seen := owners[t]; seen || t == "" {
					continue
				}
				owners[t] = memberID
				tokens = append(tokens, t)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return &Result{}, nil
	}

	if payload.Data == nil {
		payload.Data = map[string]string{}
	}
	payload.Data["groupId"] = groupID

	result, err := s.sink.Send(ctx, tokens, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to send notification: %w", err)
	}
	metrics.Notifications.WithLabelValues("success").Add(float64(result.SuccessCount))
	metrics.Notifications.WithLabelValues("failure").Add(float64(result.FailureCount))

	s.prune(ctx, owners, result.InvalidTokens)
	return result, nil
}

func (s *service) prune(ctx context.Context, owners map[string]string, invalid []string) {
	byUser := map[string][]string{}
	for _, t := range invalid {
		if owner, ok := owners[t]; ok {
			byUser[owner] = append(byUser[owner], t)
		}
	}
	for userID, list := range byUser {
		if err := s.db.RemoveTokens(ctx, userID, list); err != nil {
			slog.With("error", err.Error()).Warn("failed to prune device tokens", "userId", userID)
			continue
		}
		slog.Debug("pruned device tokens", "userId", userID, "count", len(list))
	}
}

// LogSink records notifications in the log instead of delivering them.
type LogSink struct{}

func (LogSink) Send(_ context.Context, tokens []string, payload Payload) (*Result, error) {
	slog.Debug("notification", "title", payload.Title, "body", payload.Body, "tokens", len(tokens))
	return &Result{SuccessCount: len(tokens)}, nil
}
