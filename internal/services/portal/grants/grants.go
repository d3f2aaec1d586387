// Package grants issues and verifies advisor session grants for the portal
// API. Grants are short-lived Ed25519-signed JWTs carrying the advisor ID.
package grants

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
	"github.com/kingstons-portal/backoffice/internal/platform/id"
)

// issuerEnv holds raw env values before post-parse validation.
type issuerEnv struct {
	Issuer     string        `env:"KINGSTONS_PORTAL_SESSION_GRANT_ISSUER"`
	Audience   string        `env:"KINGSTONS_PORTAL_SESSION_GRANT_AUDIENCE"`
	PrivateKey string        `env:"KINGSTONS_PORTAL_SESSION_GRANT_PRIVATE_KEY"`
	TTL        time.Duration `env:"KINGSTONS_PORTAL_SESSION_GRANT_TTL"         envDefault:"12h"`
}

// verifierEnv holds raw env values before post-parse validation.
type verifierEnv struct {
	Issuer    string `env:"KINGSTONS_PORTAL_SESSION_GRANT_ISSUER"`
	Audience  string `env:"KINGSTONS_PORTAL_SESSION_GRANT_AUDIENCE"`
	PublicKey string `env:"KINGSTONS_PORTAL_SESSION_GRANT_PUBLIC_KEY"`
}

// IssuerConfig defines how session grants are minted.
type IssuerConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PrivateKey
	TTL      time.Duration
	Now      func() time.Time
	NewID    func() (string, error)
}

// VerifierConfig defines how session grants are verified.
type VerifierConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// SessionClaims captures validated session grant claims.
type SessionClaims struct {
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	IssuedAt  time.Time
	JWTID     string
	AdvisorID string
}

// sessionClaims is the internal claims type used for JWT parsing.
type sessionClaims struct {
	jwt.RegisteredClaims
	AdvisorID string `json:"advisor_id"`
}

// LoadIssuerConfigFromEnv reads session grant signing configuration.
func LoadIssuerConfigFromEnv() (IssuerConfig, error) {
	var raw issuerEnv
	if err := env.Parse(&raw); err != nil {
		return IssuerConfig{}, fmt.Errorf("parse session grant env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	privateKey := strings.TrimSpace(raw.PrivateKey)
	if issuer == "" {
		return IssuerConfig{}, fmt.Errorf("KINGSTONS_PORTAL_SESSION_GRANT_ISSUER is required")
	}
	if audience == "" {
		return IssuerConfig{}, fmt.Errorf("KINGSTONS_PORTAL_SESSION_GRANT_AUDIENCE is required")
	}
	if privateKey == "" {
		return IssuerConfig{}, fmt.Errorf("KINGSTONS_PORTAL_SESSION_GRANT_PRIVATE_KEY is required")
	}
	keyBytes, err := decodeBase64(privateKey)
	if err != nil {
		return IssuerConfig{}, fmt.Errorf("decode session grant private key: %w", err)
	}
	if len(keyBytes) != ed25519.PrivateKeySize {
		return IssuerConfig{}, fmt.Errorf("session grant private key must be %d bytes", ed25519.PrivateKeySize)
	}
	if raw.TTL <= 0 {
		return IssuerConfig{}, fmt.Errorf("session grant ttl must be positive")
	}
	return IssuerConfig{
		Issuer:   issuer,
		Audience: audience,
		Key:      ed25519.PrivateKey(keyBytes),
		TTL:      raw.TTL,
	}, nil
}

// LoadVerifierConfigFromEnv reads session grant verification configuration.
func LoadVerifierConfigFromEnv(now func() time.Time) (VerifierConfig, error) {
	var raw verifierEnv
	if err := env.Parse(&raw); err != nil {
		return VerifierConfig{}, fmt.Errorf("parse session grant env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	publicKey := strings.TrimSpace(raw.PublicKey)
	if issuer == "" {
		return VerifierConfig{}, fmt.Errorf("KINGSTONS_PORTAL_SESSION_GRANT_ISSUER is required")
	}
	if audience == "" {
		return VerifierConfig{}, fmt.Errorf("KINGSTONS_PORTAL_SESSION_GRANT_AUDIENCE is required")
	}
	if publicKey == "" {
		return VerifierConfig{}, fmt.Errorf("KINGSTONS_PORTAL_SESSION_GRANT_PUBLIC_KEY is required")
	}
	keyBytes, err := decodeBase64(publicKey)
	if err != nil {
		return VerifierConfig{}, fmt.Errorf("decode session grant public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return VerifierConfig{}, fmt.Errorf("session grant public key must be %d bytes", ed25519.PublicKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return VerifierConfig{
		Issuer:   issuer,
		Audience: audience,
		Key:      ed25519.PublicKey(keyBytes),
		Now:      now,
	}, nil
}

// Issue mints a signed session grant for one advisor.
func Issue(cfg IssuerConfig, advisorID string) (string, error) {
	advisorID = strings.TrimSpace(advisorID)
	if advisorID == "" {
		return "", errors.New("advisor id is required")
	}
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.Key) != ed25519.PrivateKeySize {
		return "", errors.New("session grant signer is not configured")
	}
	if cfg.TTL <= 0 {
		return "", errors.New("session grant ttl must be positive")
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	newID := id.NewID
	if cfg.NewID != nil {
		newID = cfg.NewID
	}
	jwtID, err := newID()
	if err != nil {
		return "", fmt.Errorf("generate grant id: %w", err)
	}

	issuedAt := now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(cfg.TTL)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ID:        jwtID,
		},
		AdvisorID: advisorID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	signed, err := token.SignedString(cfg.Key)
	if err != nil {
		return "", fmt.Errorf("sign session grant: %w", err)
	}
	return signed, nil
}

// Validate verifies a session grant token and returns its claims.
func Validate(grant string, cfg VerifierConfig) (SessionClaims, error) {
	grant = strings.TrimSpace(grant)
	if grant == "" {
		return SessionClaims{}, apperrors.New(apperrors.CodeGrantInvalid, "session grant is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.Key) != ed25519.PublicKeySize {
		return SessionClaims{}, errors.New("session grant verifier is not configured")
	}

	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(grant, &parsed, func(token *jwt.Token) (any, error) {
		return cfg.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return SessionClaims{}, mapJWTError(err)
	}

	if parsed.Issuer == "" || parsed.Issuer != cfg.Issuer {
		return SessionClaims{}, apperrors.WithMetadata(
			apperrors.CodeGrantInvalid,
			"session grant issuer mismatch",
			map[string]string{"Field": "issuer"},
		)
	}
	if !audienceContains(parsed.Audience, cfg.Audience) {
		return SessionClaims{}, apperrors.WithMetadata(
			apperrors.CodeGrantInvalid,
			"session grant audience mismatch",
			map[string]string{"Field": "audience"},
		)
	}
	if parsed.ID == "" {
		return SessionClaims{}, apperrors.New(apperrors.CodeGrantInvalid, "session grant jti is required")
	}
	if parsed.ExpiresAt == nil {
		return SessionClaims{}, apperrors.New(apperrors.CodeGrantInvalid, "session grant exp is required")
	}
	if strings.TrimSpace(parsed.AdvisorID) == "" {
		return SessionClaims{}, apperrors.New(apperrors.CodeGrantInvalid, "session grant advisor is required")
	}

	now := cfg.Now().UTC()
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(now) {
		return SessionClaims{}, apperrors.New(apperrors.CodeGrantExpired, "session grant is expired")
	}

	claims := SessionClaims{
		Issuer:    parsed.Issuer,
		Audience:  []string(parsed.Audience),
		ExpiresAt: exp,
		JWTID:     parsed.ID,
		AdvisorID: parsed.AdvisorID,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrEd25519Verification) {
		return apperrors.New(apperrors.CodeGrantInvalid, "session grant signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.New(apperrors.CodeGrantInvalid, "session grant alg is invalid")
	}
	return apperrors.New(apperrors.CodeGrantInvalid, "session grant is invalid")
}

// audienceContains reports whether the audience list contains the given value.
func audienceContains(aud jwt.ClaimStrings, value string) bool {
	for _, item := range aud {
		if item == value {
			return true
		}
	}
	return false
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
