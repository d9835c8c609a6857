package user

import (
	"context"
	"strings"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptureCircle/clients/memory"
	"scriptureCircle/errs"
	"scriptureCircle/models"
	"scriptureCircle/utils"
)

func TestGetProfile(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "u1", Nickname: "Ruth"})
	svc := NewUserService(db)

	u, err := svc.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ruth", u.Nickname)

	_, err = svc.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestRegisterToken(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "u1"})
	svc := NewUserService(db)

	require.NoError(t, svc.RegisterToken(context.Background(), "u1", "tok"))
	require.NoError(t, svc.RegisterToken(context.Background(), "u1", " tok "))
	u, _ := db.GetUser(context.Background(), "u1")
	assert.Equal(t, []string{"tok"}, u.FCMTokens)

	assert.ErrorIs(t, svc.RegisterToken(context.Background(), "u1", " "), errs.ErrValidation)
	assert.ErrorIs(t, svc.RegisterToken(context.Background(), "u1", strings.Repeat("x", 5000)), errs.ErrValidation)
	assert.ErrorIs(t, svc.RegisterToken(context.Background(), "missing", "tok"), errs.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	db := memory.New()
	db.PutUser(models.User{ID: "u1", Nickname: "Ruth", TimeZone: "UTC"})
	svc := NewUserService(db)

	u, err := svc.UpdateProfile(context.Background(), "u1", ProfileInput{TimeZone: utils.ToPointer("Europe/Oslo")})
	require.NoError(t, err)
	assert.Equal(t, "Europe/Oslo", u.TimeZone)
	assert.Equal(t, "Ruth", u.Nickname)

	u, err = svc.UpdateProfile(context.Background(), "u1", ProfileInput{Nickname: utils.ToPointer("  Naomi ")})
	require.NoError(t, err)
	assert.Equal(t, "Naomi", u.Nickname)

	_, err = svc.UpdateProfile(context.Background(), "u1", ProfileInput{TimeZone: utils.ToPointer("Nowhere/Land")})
	assert.ErrorIs(t, err, errs.ErrValidation)
	_, err = svc.UpdateProfile(context.Background(), "u1", ProfileInput{Nickname: utils.ToPointer(" ")})
	assert.ErrorIs(t, err, errs.ErrValidation)

	u, err = svc.UpdateProfile(context.Background(), "u1", ProfileInput{})
	require.NoError(t, err)
	assert.Equal(t, "Naomi", u.Nickname)
}
