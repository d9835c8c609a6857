package validator

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/gin-gonic/gin"
	middleware "github.com/oapi-codegen/gin-middleware"
)

type key string

const (
	accessInfo key = "access_info"
	authFailed key = "auth_failed"

	BearerScheme   = "bearerAuth"
	OperatorScheme = "operatorSecret"
	OperatorHeader = "X-Operator-Secret"
)

type Access struct {
	UserID      string
	AccessToken string
	Operator    bool
}

func FromContext(ctx context.Context) (*Access, bool) {
	t, ok := ctx.Value(string(accessInfo)).(*Access)
	return t, ok
}

// UserIDFromContext returns the verified caller of a bearer-authenticated route.
func UserIDFromContext(ctx context.Context) (string, bool) {
	a, ok := FromContext(ctx)
	if !ok || a.UserID == "" {
		return "", false
	}
	return a.UserID, true
}

// AuthFailed reports whether request validation failed on credentials rather
// than on the request shape.
func AuthFailed(c *gin.Context) bool {
	return c.GetBool(string(authFailed))
}

var (
	ErrNoAuthHeader      = errors.New("Authorization header is missing")
	ErrInvalidAuthHeader = errors.New("Authorization header is malformed")
	ErrInvalidSecret     = errors.New("operator secret is missing or wrong")
)

// GetJWSFromRequest extracts a JWS string from an Authorization: Bearer <jws> header
func GetJWSFromRequest(req *http.Request) (string, error) {
	authHdr := req.Header.Get("Authorization")
	// Check for the Authorization header.
	if authHdr == "" {
		return "", ErrNoAuthHeader
	}
	// We expect a header value of the form "Bearer <token>", with 1 space after
	// Bearer, per spec.
	prefix := "Bearer "
	if !strings.HasPrefix(authHdr, prefix) {
		return "", ErrInvalidAuthHeader
	}
	jws := strings.TrimSpace(strings.TrimPrefix(authHdr, prefix))
	if jws == "" {
		return "", ErrInvalidAuthHeader
	}
	return jws, nil
}

// NewAuthenticator returns the openapi3filter hook for both security schemes.
// Bearer tokens are verified with v; operator requests must carry secret.
func NewAuthenticator(v Verifier, secret string) openapi3filter.AuthenticationFunc {
	return func(ctx context.Context, input *openapi3filter.AuthenticationInput) error {
		gCtx := middleware.GetGinContext(ctx)
		access, err := authenticate(ctx, v, secret, input)
		if err != nil {
			if gCtx != nil {
				gCtx.Set(string(authFailed), true)
			}
			slog.With("error", err.Error()).Debug("request authentication failed", "scheme", input.SecuritySchemeName)
			return err
		}
		// Set the property on the gin context so the handler is able to
		// access the caller we resolved in here.
		if gCtx != nil {
			gCtx.Set(string(accessInfo), access)
		}
		return nil
	}
}

func authenticate(ctx context.Context, v Verifier, secret string, input *openapi3filter.AuthenticationInput) (*Access, error) {
	req := input.RequestValidationInput.Request
	switch input.SecuritySchemeName {
	case BearerScheme:
		jws, err := GetJWSFromRequest(req)
		if err != nil {
			return nil, fmt.Errorf("getting jws: %w", err)
		}
		uid, err := v.Verify(ctx, jws)
		if err != nil {
			return nil, err
		}
		return &Access{UserID: uid, AccessToken: jws}, nil
	case OperatorScheme:
		got := req.Header.Get(OperatorHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			return nil, ErrInvalidSecret
		}
		return &Access{Operator: true}, nil
	}
	return nil, fmt.Errorf("security scheme %s is not supported", input.SecuritySchemeName)
}
