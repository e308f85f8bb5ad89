package googleauth

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

var (
	ErrInvalidIDToken   = errors.New("google id token is invalid")
	ErrEmailNotVerified = errors.New("google account email is not verified")
)

// Profile holds the identity fields extracted from a verified Google ID token.
type Profile struct {
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
}

// Verifier verifies a third-party ID token and returns the holder's profile.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Profile, error)
}

// googleVerifier verifies Google ID tokens against a fixed OAuth client ID.
type googleVerifier struct {
	clientID string
}

// NewVerifier creates a verifier bound to the given OAuth client ID.
func NewVerifier(clientID string) Verifier {
	return &googleVerifier{clientID: clientID}
}

// Verify validates the token signature and audience via Google's public keys.
// It fails closed when the audience does not match the configured client ID
// or when the account email is unverified.
func (v *googleVerifier) Verify(ctx context.Context, token string) (*Profile, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, ErrInvalidIDToken
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidIDToken
	}

	verified, _ := payload.Claims["email_verified"].(bool)
	if !verified {
		return nil, ErrEmailNotVerified
	}

	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	return &Profile{
		Email:         email,
		Name:          name,
		Picture:       picture,
		EmailVerified: verified,
	}, nil
}
