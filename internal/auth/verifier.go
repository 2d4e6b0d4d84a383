package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
)

const googleIssuerURL = "https://accounts.google.com"

// ErrInvalidAssertion is returned when a third-party identity assertion fails
// signature, audience or expiry checks, or the authority cannot be reached.
var ErrInvalidAssertion = errors.New("invalid identity assertion")

// FederatedClaim is the normalized identity extracted from a verified
// third-party assertion. It is transient and never persisted as-is.
type FederatedClaim struct {
	FederatedID    string
	Email          string
	FirstName      string
	LastName       string
	ProfilePicture string
}

// IdentityVerifier validates an opaque assertion token against its issuing
// authority and extracts the normalized claim.
type IdentityVerifier interface {
	Verify(ctx context.Context, assertion string) (*FederatedClaim, error)
}

type googleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewGoogleVerifier loads the Google OIDC discovery document and signing keys.
// Failure here is a startup failure, not a per-request one. clientID is the
// audience every verified assertion must have been issued for.
func NewGoogleVerifier(ctx context.Context, clientID string) (IdentityVerifier, error) {
	if clientID == "" {
		return nil, errors.New("google client id is required")
	}
	provider, err := oidc.NewProvider(ctx, googleIssuerURL)
	if err != nil {
		return nil, fmt.Errorf("init google oidc provider: %w", err)
	}
	return &googleVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// Verify re-validates the assertion on every call; results are never cached.
func (g *googleVerifier) Verify(ctx context.Context, assertion string) (*FederatedClaim, error) {
	idToken, err := g.verifier.Verify(ctx, assertion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssertion, err)
	}

	var claims struct {
		Subject    string `json:"sub"`
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Name       string `json:"name"`
		Picture    string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: parse claims: %v", ErrInvalidAssertion, err)
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: missing required claims", ErrInvalidAssertion)
	}

	first, last := claimName(claims.GivenName, claims.FamilyName, claims.Name, claims.Email)
	return &FederatedClaim{
		FederatedID:    claims.Subject,
		Email:          claims.Email,
		FirstName:      first,
		LastName:       last,
		ProfilePicture: claims.Picture,
	}, nil
}

// claimName derives a display name from whatever the authority provided.
// Accounts need both parts, so the fallback chain ends at the email local part.
func claimName(given, family, full, email string) (string, string) {
	first, last := given, family
	if first == "" && full != "" {
		parts := strings.Fields(full)
		first = parts[0]
		if last == "" && len(parts) > 1 {
			last = strings.Join(parts[1:], " ")
		}
	}
	if first == "" {
		first = email
		if at := strings.Index(email, "@"); at > 0 {
			first = email[:at]
		}
	}
	if last == "" {
		last = first
	}
	return first, last
}
