package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptureCircle/errs"
	"scriptureCircle/models"
	"scriptureCircle/utils"
)

func TestGetSwagger(t *testing.T) {
	swagger, err := GetSwagger()
	require.NoError(t, err)
	assert.NotNil(t, swagger.Paths.Find("/notes"))
	assert.NotNil(t, swagger.Paths.Find("/jobs/inactivity-sweep"))
	assert.NotNil(t, swagger.Paths.Find("/ping"))
	assert.Contains(t, swagger.Components.SecuritySchemes, "bearerAuth")
	assert.Contains(t, swagger.Components.SecuritySchemes, "operatorSecret")
}

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.Validation("bad"), http.StatusBadRequest},
		{errs.ErrNoGroupSpecified, http.StatusBadRequest},
		{errs.ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", errs.ErrPermissionDenied), http.StatusForbidden},
		{errs.ErrGroupNotFound, http.StatusNotFound},
		{errs.ErrAlreadyMember, http.StatusConflict},
		{errs.ErrGroupFull, http.StatusConflict},
		{errs.ErrTooManyGroups, http.StatusConflict},
		{errs.ErrConflict, http.StatusConflict},
		{errs.ErrUpstreamUnavailable, http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		got, _ := StatusCode(tc.err)
		assert.Equal(t, tc.want, got, tc.err.Error())
	}
}

func TestNoteRequestValidate(t *testing.T) {
	valid := NoteRequest{Scripture: "John", Comment: "light", ShareOption: models.ShareNone}
	require.NoError(t, valid.Validate())

	tooMany := make([]string, maxSelectedGroups+1)
	for i := range tooMany {
		tooMany[i] = fmt.Sprint("g", i)
	}
	cases := map[string]NoteRequest{
		"blank scripture":   {Scripture: " ", Comment: "x", ShareOption: models.ShareNone},
		"long scripture":    {Scripture: strings.Repeat("a", maxScripture+1), Comment: "x", ShareOption: models.ShareNone},
		"long chapter":      {Scripture: "John", Chapter: utils.ToPointer(strings.Repeat("1", maxChapter+1)), Comment: "x", ShareOption: models.ShareNone},
		"blank comment":     {Scripture: "John", Comment: "\n", ShareOption: models.ShareNone},
		"unknown option":    {Scripture: "John", Comment: "x", ShareOption: "friends"},
		"specific, no ids":  {Scripture: "John", Comment: "x", ShareOption: models.ShareSpecific},
		"too many groups":   {Scripture: "John", Comment: "x", ShareOption: models.ShareSpecific, SelectedShareGroups: &tooMany},
		"long language tag": {Scripture: "John", Comment: "x", ShareOption: models.ShareNone, Language: utils.ToPointer("english-us-x")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, req.Validate(), errs.ErrValidation)
		})
	}
}

func TestMessageRequestValidate(t *testing.T) {
	assert.NoError(t, MessageRequest{Text: "amen"}.Validate())
	assert.ErrorIs(t, MessageRequest{Text: "  "}.Validate(), errs.ErrValidation)
	assert.ErrorIs(t, MessageRequest{Text: strings.Repeat("é", maxMessage+1)}.Validate(), errs.ErrValidation)
	assert.ErrorIs(t, MessageRequest{Text: "x", ReplyTo: &ReplyTo{}}.Validate(), errs.ErrValidation)
}

func TestNoteRequestToInput(t *testing.T) {
	groups := []string{"g1", "g2"}
	in := NoteRequest{
		Scripture:           "Ruth",
		Chapter:             utils.ToPointer("1"),
		Comment:             "loyalty",
		ShareOption:         models.ShareSpecific,
		SelectedShareGroups: &groups,
	}.ToInput()
	assert.Equal(t, "1", in.Chapter)
	assert.Equal(t, groups, in.SelectedShareGroups)
	assert.Empty(t, in.CurrentGroupID)
}

func TestResponseErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"not found", errs.ErrGroupNotFound, http.StatusNotFound, "not_found", errs.ErrGroupNotFound.Error()},
		{"precondition", errs.ErrGroupFull, http.StatusConflict, "failed_precondition", errs.ErrGroupFull.Error()},
		{"internal", errors.New("projects/demo/databases/(default) exploded"), http.StatusInternalServerError, "internal", "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/groups/g1/join", nil)

			h := ResponseErrorHandler(func(*gin.Context, interface{}) (interface{}, error) {
				return nil, tc.err
			}, "JoinGroup")
			resp, err := h(c, JoinGroupRequestObject{GroupId: "g1"})
			require.NoError(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, tc.status, w.Code)

			var body Error
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.msg, body.Error)
		})
	}
}

func TestResponseErrorHandlerPassesResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	want := GetPing200JSONResponse{Ping: "pong"}
	h := ResponseErrorHandler(func(*gin.Context, interface{}) (interface{}, error) {
		return want, nil
	}, "GetPing")
	resp, err := h(c, GetPingRequestObject{})
	require.NoError(t, err)
	assert.Equal(t, want, resp)
	assert.False(t, c.Writer.Written())
}

func TestRequestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RequestErrorHandler(c, errors.New("Invalid format for parameter groupId"), http.StatusBadRequest)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid format for parameter groupId","code":"invalid_argument"}`, w.Body.String())
}
