package validator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/jwk"
	"github.com/lestrrat-go/jwx/jwt"

	"scriptureCircle/errs"
)

const (
	// FirebaseKeysURL serves the JWKs that sign Firebase ID tokens.
	FirebaseKeysURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"
	firebaseIssuer  = "https://securetoken.google.com/"

	keyRefreshInterval = 15 * time.Minute
	clockSkew          = 30 * time.Second
)

// Verifier checks a bearer token and returns the authenticated user id.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// KeySource supplies the current signing keys.
type KeySource func(ctx context.Context) (jwk.Set, error)

type FirebaseVerifier struct {
	projectID string
	keys      KeySource
}

var _ Verifier = (*FirebaseVerifier)(nil)

// RemoteKeys fetches url and keeps it cached and refreshed in the background
// for as long as ctx lives.
func RemoteKeys(ctx context.Context, url string) KeySource {
	ar := jwk.NewAutoRefresh(ctx)
	ar.Configure(url, jwk.WithMinRefreshInterval(keyRefreshInterval))
	return func(ctx context.Context) (jwk.Set, error) {
		return ar.Fetch(ctx, url)
	}
}

// StaticKeys always returns set.
func StaticKeys(set jwk.Set) KeySource {
	return func(context.Context) (jwk.Set, error) { return set, nil }
}

func NewFirebaseVerifier(projectID string, keys KeySource) *FirebaseVerifier {
	return &FirebaseVerifier{projectID: projectID, keys: keys}
}

func (f *FirebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	set, err := f.keys(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load signing keys: %w", err)
	}
	tok, err := jwt.Parse([]byte(token), jwt.WithKeySet(set))
	if err != nil {
		return "", fmt.Errorf("%w: %s", errs.ErrUnauthorized, err.Error())
	}
	err = jwt.Validate(tok,
		jwt.WithIssuer(firebaseIssuer+f.projectID),
		jwt.WithAudience(f.projectID),
		jwt.WithAcceptableSkew(clockSkew),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errs.ErrUnauthorized, err.Error())
	}
	if tok.Subject() == "" {
		return "", errors.Join(errs.ErrUnauthorized, errors.New("token has no subject"))
	}
	return tok.Subject(), nil
}
