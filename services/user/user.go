package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"scriptureCircle/clients/store"
	"scriptureCircle/errs"
	"scriptureCircle/models"
)

type Service interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	// RegisterToken adds a device token to the user's fcmTokens. Registering the
	// same token twice is a no-op.
	RegisterToken(ctx context.Context, userID, token string) error
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*models.User, error)
}

type userService struct {
	db store.Store
}

var _ Service = (*userService)(nil)

func NewUserService(db store.Store) Service {
	return &userService{db: db}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) RegisterToken(ctx context.Context, userID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errs.Validation("token is required")
	}
	if len(token) > maxTokenLength {
		return errs.Validation("token is longer than %d bytes", maxTokenLength)
	}
	if err := s.db.AddToken(ctx, userID, token); err != nil {
		return fmt.Errorf("failed to register device token: %w", err)
	}
	slog.Debug("registered device token", "userId", userID)
	return nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*models.User, error) {
	update := store.ProfileUpdate{}
	if in.Nickname != nil {
		nickname := strings.TrimSpace(*in.Nickname)
		if nickname == "" || utf8.RuneCountInString(nickname) > maxNicknameLength {
			return nil, errs.Validation("nickname must be 1 to %d characters", maxNicknameLength)
		}
		update.Nickname = &nickname
	}
	if in.TimeZone != nil {
		if _, err := time.LoadLocation(*in.TimeZone); err != nil || *in.TimeZone == "" {
			return nil, errs.Validation("unknown time zone %q", *in.TimeZone)
		}
		update.TimeZone = in.TimeZone
	}
	if update.Nickname == nil && update.TimeZone == nil {
		return s.GetProfile(ctx, userID)
	}
	if err := s.db.UpdateProfile(ctx, userID, update); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetProfile(ctx, userID)
}
