package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestIssuer() *Issuer {
	return NewIssuer("test-secret", "agenda-accounts", time.Hour, 7*24*time.Hour)
}

func TestIssueAndVerify_AccessToken(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer()
	userID := uuid.New()

	tok, err := issuer.IssueAccessToken(userID, "a@x.com")
	require.NoError(t, err)

	id, err := issuer.Verify(tok, UseAccess)
	require.NoError(t, err)
	require.Equal(t, userID, id.UserID)
	require.Equal(t, "a@x.com", id.Email)
}

func TestVerify_WrongUse(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer()
	refresh, err := issuer.IssueRefreshToken(uuid.New(), "a@x.com")
	require.NoError(t, err)

	// A refresh token must not pass where an access token is expected.
	_, err = issuer.Verify(refresh, UseAccess)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer("test-secret", "agenda-accounts", -time.Minute, -time.Minute)
	tok, err := issuer.IssueAccessToken(uuid.New(), "a@x.com")
	require.NoError(t, err)

	_, err = issuer.Verify(tok, UseAccess)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newTestIssuer().IssueAccessToken(uuid.New(), "a@x.com")
	require.NoError(t, err)

	other := NewIssuer("another-secret", "agenda-accounts", time.Hour, time.Hour)
	_, err = other.Verify(tok, UseAccess)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := newTestIssuer().Verify("not.a.jwt", UseAccess)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_MintsAccessTokenAndKeepsRefreshValid(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer()
	userID := uuid.New()
	refresh, err := issuer.IssueRefreshToken(userID, "a@x.com")
	require.NoError(t, err)

	access, err := issuer.Refresh(refresh)
	require.NoError(t, err)

	id, err := issuer.Verify(access, UseAccess)
	require.NoError(t, err)
	require.Equal(t, userID, id.UserID)
	require.Equal(t, "a@x.com", id.Email)

	// No rotation: the same refresh token works again.
	_, err = issuer.Refresh(refresh)
	require.NoError(t, err)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer()
	access, err := issuer.IssueAccessToken(uuid.New(), "a@x.com")
	require.NoError(t, err)

	_, err = issuer.Refresh(access)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuePair(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer()
	userID := uuid.New()
	pair, err := issuer.IssuePair(userID, "a@x.com")
	require.NoError(t, err)

	_, err = issuer.Verify(pair.AccessToken, UseAccess)
	require.NoError(t, err)
	_, err = issuer.Verify(pair.RefreshToken, UseRefresh)
	require.NoError(t, err)
}
