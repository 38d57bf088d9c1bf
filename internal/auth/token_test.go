package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycontacts/mycontacts/internal/apperr"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func newTestIssuer(t *testing.T, secret string) (*TokenIssuer, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	issuer, err := NewTokenIssuer(secret, time.Hour, WithClock(clock.now))
	require.NoError(t, err)
	return issuer, clock
}

func TestNewTokenIssuerRejectsBadInput(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenIssuer("secret", 0)
	assert.Error(t, err)
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	issuer, _ := newTestIssuer(t, "s3cret")

	token, err := issuer.Issue(Identity{UserID: "u1", Username: "jdoe"})
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	id, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "u1", Username: "jdoe"}, id)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	issuer, clock := newTestIssuer(t, "s3cret")
	issuedAt := clock.t

	token, err := issuer.Issue(Identity{UserID: "u1", Username: "jdoe"})
	require.NoError(t, err)

	clock.t = issuedAt.Add(time.Hour - time.Second)
	_, err = issuer.Verify(token)
	assert.NoError(t, err, "token must still be valid one second before expiry")

	clock.t = issuedAt.Add(time.Hour)
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)

	clock.t = issuedAt.Add(2 * time.Hour)
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestVerifyExpiryBoundaryMidSecond(t *testing.T) {
	for _, offset := range []time.Duration{
		900 * time.Millisecond,
		123 * time.Millisecond,
		999*time.Millisecond + 999*time.Microsecond,
	} {
		t.Run(offset.String(), func(t *testing.T) {
			issuer, clock := newTestIssuer(t, "s3cret")
			clock.t = clock.t.Add(offset)
			issuedAt := clock.t

			token, err := issuer.Issue(Identity{UserID: "u1", Username: "jdoe"})
			require.NoError(t, err)

			clock.t = issuedAt.Add(time.Hour - 100*time.Millisecond)
			_, err = issuer.Verify(token)
			assert.NoError(t, err)

			clock.t = issuedAt.Add(time.Hour - time.Microsecond)
			_, err = issuer.Verify(token)
			assert.NoError(t, err, "token must be valid until the full TTL has elapsed")

			clock.t = issuedAt.Add(time.Hour)
			_, err = issuer.Verify(token)
			assert.ErrorIs(t, err, apperr.ErrInvalidToken)
		})
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	issuer, _ := newTestIssuer(t, "s3cret")
	other, _ := newTestIssuer(t, "another-secret")

	token, err := other.Issue(Identity{UserID: "u1", Username: "jdoe"})
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	issuer, _ := newTestIssuer(t, "s3cret")
	token, err := issuer.Issue(Identity{UserID: "u1", Username: "jdoe"})
	require.NoError(t, err)

	forged, err := issuer.Issue(Identity{UserID: "u2", Username: "mallory"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = issuer.Verify(tampered)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	issuer, clock := newTestIssuer(t, "s3cret")
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
		UserID: "u1",
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = issuer.Verify(hs512)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Verify(none)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestVerifyRequiresExpiryAndUser(t *testing.T) {
	issuer, _ := newTestIssuer(t, "s3cret")

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u1"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = issuer.Verify(noExp)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)

	_, err = issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}
