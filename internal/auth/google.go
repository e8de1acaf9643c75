package auth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

var ErrInvalidGoogleToken = errors.New("invalid google token")

// GoogleIdentity is the trusted claim set extracted from a verified
// Google ID token.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// IdentityVerifier validates a federated identity assertion and returns the
// identity it attests to.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleIdentity, error)
}

// GoogleVerifier verifies Google ID tokens against a configured OAuth
// client ID. Signature, issuer, audience, and expiry checks are delegated to
// the idtoken validator.
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, credential string) (*GoogleIdentity, error) {
	// An empty audience would make idtoken skip the audience check, so an
	// unconfigured client ID fails closed instead.
	if v.clientID == "" {
		return nil, fmt.Errorf("%w: google client id not configured", ErrInvalidGoogleToken)
	}

	payload, err := idtoken.Validate(ctx, credential, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoogleToken, err)
	}

	identity := &GoogleIdentity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		identity.Picture = picture
	}

	if identity.Email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrInvalidGoogleToken)
	}

	return identity, nil
}

var _ IdentityVerifier = (*GoogleVerifier)(nil)
