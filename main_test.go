package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptureCircle/api"
	"scriptureCircle/clients/memory"
	"scriptureCircle/clients/scraper"
	"scriptureCircle/errs"
	"scriptureCircle/generator"
	"scriptureCircle/models"
	"scriptureCircle/services/membership"
	"scriptureCircle/services/notify"
	"scriptureCircle/services/posting"
	"scriptureCircle/services/prompts"
	"scriptureCircle/services/sweeper"
	"scriptureCircle/services/user"
	"scriptureCircle/validator"
)

const operatorSecret = "op-secret"

type tokens map[string]string

func (t tokens) Verify(_ context.Context, token string) (string, error) {
	if uid, ok := t[token]; ok {
		return uid, nil
	}
	return "", errs.ErrUnauthorized
}

type cannedAI struct{}

func (cannedAI) Generate(context.Context, string) (string, error) {
	return "generated", nil
}

type cannedPreview struct{}

func (cannedPreview) Preview(_ context.Context, rawURL string) scraper.Preview {
	if rawURL == "https://example.com" {
		return scraper.Preview{Title: "Example"}
	}
	return scraper.Preview{}
}

type harness struct {
	t        *testing.T
	db       *memory.Store
	router   *gin.Engine
	notifier notify.Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := memory.New()
	db.PutUser(models.User{ID: "ruth", Nickname: "Ruth", TimeZone: "UTC"})
	db.PutUser(models.User{ID: "boaz", Nickname: "Boaz"})
	db.PutGroup(models.Group{ID: "g1", Name: "Psalms", OwnerUserID: "boaz", Members: []string{"boaz"}, MembersCount: 1,
		MemberLastActive: map[string]time.Time{"boaz": time.Now()}})

	notifier := notify.NewService(db, notify.LogSink{})
	promptService, err := prompts.NewService(context.Background(), db, cannedAI{}, nil)
	require.NoError(t, err)
	server := NewServer(
		membership.NewService(db, notifier, membership.Config{}),
		posting.NewService(db, notifier, generator.NewSeededAnnouncer(1)),
		sweeper.NewService(db, sweeper.Config{}),
		user.NewUserService(db),
		promptService,
		cannedPreview{},
	)
	swagger, err := api.GetSwagger()
	require.NoError(t, err)
	swagger.Servers = nil

	h := &harness{t: t, db: db, notifier: notifier}
	h.router = setupRouter(server, swagger, validator.NewAuthenticator(tokens{"ruth-token": "ruth", "boaz-token": "boaz"}, operatorSecret))
	t.Cleanup(notifier.Wait)
	return h
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch {
	case strings.HasPrefix(path, "/jobs/"):
		req.Header.Set(validator.OperatorHeader, token)
	case token != "":
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestPingIsPublic(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", decode[api.Pong](t, w).Ping)
}

func TestAuthenticationRequired(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/me", "forged", nil).Code)

	w := h.do(http.MethodGet, "/me", "ruth-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ruth", decode[models.User](t, w).Nickname)
}

func TestJoinPostAndLeave(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/groups/g1/join", "ruth-token", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	joined := decode[api.MembershipResponse](t, w)
	assert.Equal(t, "g1", joined.PrimaryGroupId)
	assert.Equal(t, []string{"g1"}, joined.GroupIds)

	assert.Equal(t, http.StatusConflict, h.do(http.MethodPost, "/groups/g1/join", "ruth-token", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/groups/nope/join", "ruth-token", nil).Code)

	w = h.do(http.MethodPost, "/notes", "ruth-token", map[string]any{
		"scripture":   "Psalms",
		"chapter":     "23",
		"comment":     "The Lord is my shepherd",
		"shareOption": "all",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	note := decode[api.NoteResponse](t, w)
	assert.Equal(t, 1, note.Streak)
	assert.Equal(t, []string{"g1"}, note.SharedWithGroups)

	w = h.do(http.MethodPost, "/groups/g1/messages", "ruth-token", map[string]any{"text": "amen"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "amen", decode[models.Message](t, w).Text)

	w = h.do(http.MethodPost, "/groups/leave", "ruth-token", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	left := decode[api.MembershipResponse](t, w)
	assert.Equal(t, "g1", left.GroupId)
	assert.Empty(t, left.GroupIds)

	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPost, "/groups/g1/messages", "ruth-token", map[string]any{"text": "hi"}).Code)
}

func TestRequestValidation(t *testing.T) {
	h := newHarness(t)
	cases := map[string]map[string]any{
		"unknown share option": {"scripture": "John", "comment": "x", "shareOption": "everyone"},
		"missing comment":      {"scripture": "John", "shareOption": "none"},
		"blank comment":        {"scripture": "John", "comment": "   ", "shareOption": "none"},
		"specific without ids": {"scripture": "John", "comment": "x", "shareOption": "specific"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := h.do(http.MethodPost, "/notes", "ruth-token", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
	assert.Empty(t, h.db.Notes("ruth"))
}

func TestDeleteGroupRequiresOwner(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodDelete, "/groups/g1", "ruth-token", nil).Code)
	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/groups/g1", "boaz-token", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodDelete, "/groups/g1", "boaz-token", nil).Code)
}

func TestProfileAndTokens(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodPatch, "/me", "ruth-token", map[string]any{"nickname": "Ruthie", "timeZone": "America/Chicago"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	u := decode[models.User](t, w)
	assert.Equal(t, "Ruthie", u.Nickname)
	assert.Equal(t, "America/Chicago", u.TimeZone)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPatch, "/me", "ruth-token", map[string]any{"timeZone": "Mars/Olympus"}).Code)

	assert.Equal(t, http.StatusNoContent, h.do(http.MethodPost, "/me/tokens", "ruth-token", map[string]any{"token": "device-1"}).Code)
	stored, err := h.db.GetUser(context.Background(), "ruth")
	require.NoError(t, err)
	assert.Equal(t, []string{"device-1"}, stored.FCMTokens)
}

func TestAIAndPreview(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodPost, "/ai/explain", "ruth-token", map[string]any{"scripture": "John", "chapter": "1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "generated", decode[api.TextResponse](t, w).Text)

	w = h.do(http.MethodPost, "/ai/summary", "ruth-token", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, decode[api.TextResponse](t, w).Text)

	w = h.do(http.MethodGet, "/preview?url=https://example.com", "ruth-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Example", decode[scraper.Preview](t, w).Title)

	w = h.do(http.MethodGet, "/preview?url=nothing-here", "ruth-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, scraper.Preview{}, decode[scraper.Preview](t, w))
}

func TestJobsRequireOperatorSecret(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodPost, "/jobs/inactivity-sweep", "wrong", nil).Code)
	// A user token is not an operator credential.
	req := httptest.NewRequest(http.MethodPost, "/jobs/purge-ghosts", nil)
	req.Header.Set("Authorization", "Bearer ruth-token")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	for _, path := range []string{"/jobs/inactivity-sweep", "/jobs/purge-ghosts"} {
		w := h.do(http.MethodPost, path, operatorSecret, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, 1, decode[sweeper.Report](t, w).GroupsScanned)
	}
	w = h.do(http.MethodPost, "/jobs/weekly-recaps", operatorSecret, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decode[prompts.RecapReport](t, w).GroupsScanned)
}

func TestUnknownRoute(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/nowhere", "ruth-token", nil).Code)
}

func TestErrorsCarryDomainCodes(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/groups/nope/join", "ruth-token", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode[api.Error](t, w).Code)

	w = h.do(http.MethodDelete, "/groups/g1", "ruth-token", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "permission_denied", decode[api.Error](t, w).Code)

	w = h.do(http.MethodPost, "/notes", "ruth-token", map[string]any{"scripture": "John", "comment": " ", "shareOption": "none"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_argument", decode[api.Error](t, w).Code)

	w = h.do(http.MethodGet, "/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthenticated", decode[api.Error](t, w).Code)
}
