package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"scriptureCircle/errs"
)

// StatusCode maps a domain error onto its HTTP status.
func StatusCode(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden, "permission_denied"
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrAlreadyMember),
		errors.Is(err, errs.ErrTooManyGroups),
		errors.Is(err, errs.ErrGroupFull):
		return http.StatusConflict, "failed_precondition"
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, "aborted"
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	}
	return http.StatusInternalServerError, "internal"
}

// WriteError aborts the request with the mapped status. Internal errors are
// logged and their message withheld.
func WriteError(c *gin.Context, err error) {
	status, code := StatusCode(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.With("error", msg).Error("request failed", "path", c.FullPath())
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, Error{Error: msg, Code: code})
}

// ResponseErrorHandler is a strict middleware that renders an error returned
// by a handler through WriteError.
func ResponseErrorHandler(f StrictHandlerFunc, operationID string) StrictHandlerFunc {
	return func(c *gin.Context, request interface{}) (interface{}, error) {
		response, err := f(c, request)
		if err != nil {
			slog.With("error", err.Error()).Debug("handler returned error", "operation", operationID)
			WriteError(c, err)
			return nil, nil
		}
		return response, nil
	}
}

// RequestErrorHandler renders parameter binding failures.
func RequestErrorHandler(c *gin.Context, err error, status int) {
	c.AbortWithStatusJSON(status, Error{Error: err.Error(), Code: "invalid_argument"})
}
