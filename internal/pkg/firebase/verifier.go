// Package firebase verifies Firebase Authentication ID tokens against the
// Google secure token JWKS.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

const (
	issuerPrefix  = "https://securetoken.google.com/"
	defaultLeeway = 30 * time.Second
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the identity fields the API relies on.
type Claims struct {
	UID           string
	Email         string
	Name          string
	EmailVerified bool
	ExpiresAt     time.Time
}

type tokenClaims struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	EmailVerified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

// Verifier validates ID tokens issued for a single Firebase project.
type Verifier struct {
	projectID string
	issuer    string
	keyfunc   jwt.Keyfunc
	parser    *jwt.Parser
}

// NewVerifier builds a verifier that resolves signing keys from jwksURL.
func NewVerifier(projectID, jwksURL string) (*Verifier, error) {
	if strings.TrimSpace(jwksURL) == "" {
		return nil, errors.New("jwks url must be set")
	}
	keyProvider, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to init JWKS keyfunc: %w", err)
	}
	return NewVerifierWithKeyfunc(projectID, keyProvider.Keyfunc)
}

// NewVerifierWithKeyfunc builds a verifier around an existing key lookup.
func NewVerifierWithKeyfunc(projectID string, kf jwt.Keyfunc) (*Verifier, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, errors.New("firebase project id must be set")
	}
	if kf == nil {
		return nil, errors.New("keyfunc must be set")
	}
	issuer := issuerPrefix + projectID
	parser := jwt.NewParser(
		jwt.WithIssuer(issuer),
		jwt.WithAudience(projectID),
		jwt.WithLeeway(defaultLeeway),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}),
	)
	return &Verifier{projectID: projectID, issuer: issuer, keyfunc: kf, parser: parser}, nil
}

// Verify parses and validates an ID token and returns its identity claims.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingToken
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var tc tokenClaims
	token, err := v.parser.ParseWithClaims(tokenString, &tc, v.keyfunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if tc.Subject == "" {
		return nil, fmt.Errorf("%w: token missing sub", ErrInvalidToken)
	}

	claims := &Claims{
		UID:           tc.Subject,
		Email:         tc.Email,
		Name:          tc.Name,
		EmailVerified: tc.EmailVerified,
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	}
	return claims, nil
}
