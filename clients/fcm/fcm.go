// Package fcm sends push notifications through the FCM HTTP v1 API.
package fcm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"

	"scriptureCircle/services/notify"
)

const (
	DefaultBaseURL = "https://fcm.googleapis.com"
	messagingScope = "https://www.googleapis.com/auth/firebase.messaging"
	sendLimit      = 8
	fcmErrorType   = "type.googleapis.com/google.firebase.fcm.v1.FcmError"
	badRequestType = "type.googleapis.com/google.rpc.BadRequest"
	tokenField     = "message.token"
)

type Client struct {
	http      *resty.Client
	projectID string
}

var _ notify.Sink = (*Client)(nil)

// NewHTTPClient returns a resty client authorized with application default
// credentials for the messaging scope.
func NewHTTPClient(ctx context.Context) (*resty.Client, error) {
	hc, _, err := htransport.NewClient(ctx, option.WithScopes(messagingScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create fcm transport: %w", err)
	}
	return resty.NewWithClient(hc).SetBaseURL(DefaultBaseURL), nil
}

func NewClient(http *resty.Client, projectID string) *Client {
	return &Client{http: http, projectID: projectID}
}

type notification struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

type message struct {
	Token        string            `json:"token"`
	Notification notification      `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type sendRequest struct {
	Message message `json:"message"`
}

type sendResponse struct {
	Name string `json:"name"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Type            string `json:"@type"`
			ErrorCode       string `json:"errorCode"`
			FieldViolations []struct {
				Field       string `json:"field"`
				Description string `json:"description"`
			} `json:"fieldViolations"`
		} `json:"details"`
	} `json:"error"`
}

// invalidToken reports whether the token should be dropped from its owner.
// INVALID_ARGUMENT also covers payload problems, so it only counts when the
// error points at the token itself.
func (e *errorResponse) invalidToken() bool {
	for _, d := range e.Error.Details {
		switch d.Type {
		case fcmErrorType:
			if d.ErrorCode == "UNREGISTERED" {
				return true
			}
		case badRequestType:
			for _, v := range d.FieldViolations {
				if v.Field == tokenField {
					return true
				}
			}
		}
	}
	return e.Error.Status == "INVALID_ARGUMENT" &&
		strings.Contains(strings.ToLower(e.Error.Message), "registration token")
}

func (c *Client) Send(ctx context.Context, tokens []string, payload notify.Payload) (*notify.Result, error) {
	result := &notify.Result{}
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(sendLimit)
	for _, token := range tokens {
		g.Go(func() error {
			ok, invalid := c.send(ctx, token, payload)
			mu.Lock()
			defer mu.Unlock()
			if ok {
				result.SuccessCount++
				return nil
			}
			result.FailureCount++
			if invalid {
				result.InvalidTokens = append(result.InvalidTokens, token)
			}
			return nil
		})
	}
	_ = g.Wait()
	if result.SuccessCount == 0 && result.FailureCount > 0 && len(result.InvalidTokens) == 0 {
		return result, fmt.Errorf("fcm delivered none of %d messages", result.FailureCount)
	}
	return result, nil
}

func (c *Client) send(ctx context.Context, token string, payload notify.Payload) (ok bool, invalid bool) {
	response := &sendResponse{}
	responseError := &errorResponse{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("project", c.projectID).
		SetBody(sendRequest{Message: message{
			Token:        token,
			Notification: notification{Title: payload.Title, Body: payload.Body},
			Data:         payload.Data,
		}}).
		SetResult(response).
		SetError(responseError).
		Post("/v1/projects/{project}/messages:send")
	if err != nil {
		slog.With("error", err.Error()).Warn("fcm request failed")
		return false, false
	}
	if resp.IsError() {
		slog.Debug("fcm rejected message", "status", resp.StatusCode(), "reason", responseError.Error.Status)
		return false, responseError.invalidToken()
	}
	return true, false
}
