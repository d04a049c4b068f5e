// Package auth verifies session tokens on RPC calls and the shared secret on
// maintenance endpoints.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"taskboard/internal/config"
)

// ErrUnauthorized is returned for every token that cannot be trusted.
var ErrUnauthorized = errors.New("unauthorized")

// Verifier turns a bearer token into the id of the user it was issued to.
type Verifier interface {
	Verify(ctx context.Context, token string) (userID string, err error)
}

// JWTVerifier checks signed JWTs. The subject claim is the user id.
type JWTVerifier struct {
	keyfunc jwt.Keyfunc
	parser  *jwt.Parser
}

// Options narrows the accepted tokens. Empty fields are not checked.
type Options struct {
	Issuer   string
	Audience string
}

func parserOptions(methods []string, opt Options) []jwt.ParserOption {
	out := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithExpirationRequired(),
	}
	if opt.Issuer != "" {
		out = append(out, jwt.WithIssuer(opt.Issuer))
	}
	if opt.Audience != "" {
		out = append(out, jwt.WithAudience(opt.Audience))
	}
	return out
}

// NewHS256 verifies tokens signed with a shared secret.
func NewHS256(secret []byte, opt Options) *JWTVerifier {
	return &JWTVerifier{
		keyfunc: func(*jwt.Token) (any, error) { return secret, nil },
		parser:  jwt.NewParser(parserOptions([]string{jwt.SigningMethodHS256.Alg()}, opt)...),
	}
}

// NewJWKS verifies tokens against a remote key set. Keys are cached and
// refreshed in the background until ctx is cancelled.
func NewJWKS(ctx context.Context, url string, opt Options) (*JWTVerifier, error) {
	if url == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{url})
	if err != nil {
		return nil, fmt.Errorf("create JWKS client: %w", err)
	}
	return &JWTVerifier{
		keyfunc: jwks.Keyfunc,
		parser:  jwt.NewParser(parserOptions([]string{"RS256", "ES256"}, opt)...),
	}, nil
}

// New picks the verifier for cfg: JWKS when a URL is configured, otherwise
// the shared secret.
func New(ctx context.Context, cfg config.AuthConfig) (*JWTVerifier, error) {
	opt := Options{Issuer: cfg.Issuer, Audience: cfg.Audience}
	switch {
	case cfg.JWKSURL != "":
		return NewJWKS(ctx, cfg.JWKSURL, opt)
	case cfg.JWTSecret != "":
		return NewHS256([]byte(cfg.JWTSecret), opt), nil
	default:
		return nil, errors.New("auth: AUTH_JWKS_URL or AUTH_JWT_SECRET must be set")
	}
}

// Verify validates the token and returns its subject.
func (v *JWTVerifier) Verify(_ context.Context, raw string) (string, error) {
	if raw == "" {
		return "", ErrUnauthorized
	}
	claims := &jwt.RegisteredClaims{}
	token, err := v.parser.ParseWithClaims(raw, claims, v.keyfunc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}

// SecretMatches compares a presented maintenance token with the configured
// secret in constant time. An empty secret never matches.
func SecretMatches(presented, secret string) bool {
	if secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) == 1
}
