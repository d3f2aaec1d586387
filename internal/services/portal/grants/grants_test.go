package grants

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	apperrors "github.com/kingstons-portal/backoffice/internal/platform/errors"
)

func newKeyPair(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key pair: %v", err)
	}
	return pub, priv
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func testConfigs(t *testing.T, now time.Time) (IssuerConfig, VerifierConfig) {
	t.Helper()

	pub, priv := newKeyPair(t)
	issuer := IssuerConfig{
		Issuer:   "kingstons-portal",
		Audience: "portal-api",
		Key:      priv,
		TTL:      time.Hour,
		Now:      fixedClock(now),
	}
	verifier := VerifierConfig{
		Issuer:   "kingstons-portal",
		Audience: "portal-api",
		Key:      pub,
		Now:      fixedClock(now.Add(time.Minute)),
	}
	return issuer, verifier
}

func TestIssueValidateRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 13, 9, 0, 0, 0, time.UTC)
	issuer, verifier := testConfigs(t, now)

	grant, err := Issue(issuer, "advisor-1")
	if err != nil {
		t.Fatalf("issue grant: %v", err)
	}

	claims, err := Validate(grant, verifier)
	if err != nil {
		t.Fatalf("validate grant: %v", err)
	}
	if claims.AdvisorID != "advisor-1" {
		t.Fatalf("advisor_id = %q, want advisor-1", claims.AdvisorID)
	}
	if claims.JWTID == "" {
		t.Fatal("expected jti to be set")
	}
	if !claims.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("exp = %v, want %v", claims.ExpiresAt, now.Add(time.Hour))
	}
}

func TestIssueRequiresAdvisorID(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 13, 9, 0, 0, 0, time.UTC)
	issuer, _ := testConfigs(t, now)

	if _, err := Issue(issuer, "  "); err == nil {
		t.Fatal("expected advisor id error")
	}
}

func TestValidateRejectsExpiredGrant(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 13, 9, 0, 0, 0, time.UTC)
	issuer, verifier := testConfigs(t, now)
	verifier.Now = fixedClock(now.Add(2 * time.Hour))

	grant, err := Issue(issuer, "advisor-1")
	if err != nil {
		t.Fatalf("issue grant: %v", err)
	}

	_, err = Validate(grant, verifier)
	if !apperrors.IsCode(err, apperrors.CodeGrantExpired) {
		t.Fatalf("error = %v, want GRANT_EXPIRED", err)
	}
}

func TestValidateRejectsWrongKey(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 13, 9, 0, 0, 0, time.UTC)
	issuer, verifier := testConfigs(t, now)
	otherPub, _ := newKeyPair(t)
	verifier.Key = otherPub

	grant, err := Issue(issuer, "advisor-1")
	if err != nil {
		t.Fatalf("issue grant: %v", err)
	}

	_, err = Validate(grant, verifier)
	if !apperrors.IsCode(err, apperrors.CodeGrantInvalid) {
		t.Fatalf("error = %v, want GRANT_INVALID", err)
	}
}

func TestValidateRejectsIssuerMismatch(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 13, 9, 0, 0, 0, time.UTC)
	issuer, verifier := testConfigs(t, now)
	verifier.Issuer = "someone-else"

	grant, err := Issue(issuer, "advisor-1")
	if err != nil {
		t.Fatalf("issue grant: %v", err)
	}

	_, err = Validate(grant, verifier)
	if !apperrors.IsCode(err, apperrors.CodeGrantInvalid) {
		t.Fatalf("error = %v, want GRANT_INVALID", err)
	}
	if apperrors.GetMetadata(err)["Field"] != "issuer" {
		t.Fatalf("metadata = %v, want Field=issuer", apperrors.GetMetadata(err))
	}
}

func TestValidateRejectsEmptyGrant(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 13, 9, 0, 0, 0, time.UTC)
	_, verifier := testConfigs(t, now)

	_, err := Validate("", verifier)
	if !apperrors.IsCode(err, apperrors.CodeGrantInvalid) {
		t.Fatalf("error = %v, want GRANT_INVALID", err)
	}
}
