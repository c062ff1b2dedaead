package user_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/agenda-pj/accounts/pkg/logging"
	"github.com/agenda-pj/accounts/pkg/metrics"
	"github.com/agenda-pj/accounts/pkg/repository/memory"
	"github.com/agenda-pj/accounts/pkg/security/password"
	"github.com/agenda-pj/accounts/pkg/user"
)

type staticIssuer struct{}

func (staticIssuer) IssuePair(userID uuid.UUID, email string) (user.TokenPair, error) {
	return user.TokenPair{AccessToken: "access-" + email, RefreshToken: "refresh-" + email}, nil
}

// recordingNotifier reports every send on a channel so tests can wait for
// the fire-and-forget goroutine.
type recordingNotifier struct {
	sent chan string
	err  error
}

func newRecordingNotifier(err error) *recordingNotifier {
	return &recordingNotifier{sent: make(chan string, 8), err: err}
}

func (n *recordingNotifier) Send(ctx context.Context, to, subject, message string) error {
	n.sent <- to
	return n.err
}

func (n *recordingNotifier) waitForSend(t *testing.T) string {
	t.Helper()
	select {
	case to := <-n.sent:
		return to
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification send")
		return ""
	}
}

func newTestService(t *testing.T, n *recordingNotifier) (user.UseCase, *memory.UserRepository, *metrics.Metrics) {
	t.Helper()
	repo := memory.NewUserRepository()
	m := metrics.New()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := user.NewService(repo, password.NewBcryptHasher(), staticIssuer{}, n, log, m)
	return svc, repo, m
}

func TestSignup_MissingFields(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t, newRecordingNotifier(nil))
	for _, in := range []struct{ name, email, pw string }{
		{"", "a@x.com", "secret"},
		{"Ana", "", "secret"},
		{"Ana", "a@x.com", ""},
		{"   ", "a@x.com", "secret"},
	} {
		_, err := svc.Signup(context.Background(), in.name, in.email, in.pw)
		require.ErrorIs(t, err, user.ErrMissingField)
	}
}

func TestSignup_HashesPasswordAndNotifies(t *testing.T) {
	t.Parallel()

	n := newRecordingNotifier(nil)
	svc, _, m := newTestService(t, n)

	u, err := svc.Signup(context.Background(), "Ana", "a@x.com", "secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", u.PasswordHash)

	ok, err := password.NewBcryptHasher().Verify("secret", u.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, "a@x.com", n.waitForSend(t))
	require.Equal(t, float64(1), testutil.ToFloat64(m.Signups))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t, newRecordingNotifier(nil))
	_, err := svc.Signup(context.Background(), "Ana", "a@x.com", "secret")
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), "Other", "a@x.com", "secret2")
	require.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestSignup_NotifierFailureDoesNotFailSignup(t *testing.T) {
	t.Parallel()

	n := newRecordingNotifier(errors.New("smtp down"))
	svc, _, m := newTestService(t, n)

	_, err := svc.Signup(context.Background(), "Ana", "a@x.com", "secret")
	require.NoError(t, err)

	n.waitForSend(t)
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(m.NotifyFailures) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLogin_ByEmailAndByName(t *testing.T) {
	t.Parallel()

	svc, _, m := newTestService(t, newRecordingNotifier(nil))
	created, err := svc.Signup(context.Background(), "Ana", "a@x.com", "secret")
	require.NoError(t, err)

	for _, login := range []string{"a@x.com", "Ana"} {
		res, err := svc.Login(context.Background(), login, "secret")
		require.NoError(t, err)
		require.Equal(t, created.ID, res.User.ID)
		require.NotEmpty(t, res.Tokens.AccessToken)
		require.NotEmpty(t, res.Tokens.RefreshToken)
	}
	require.Equal(t, float64(2), testutil.ToFloat64(m.Logins))
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t, newRecordingNotifier(nil))
	_, err := svc.Signup(context.Background(), "Ana", "a@x.com", "secret")
	require.NoError(t, err)

	_, errWrongPassword := svc.Login(context.Background(), "a@x.com", "nope")
	_, errNoSuchUser := svc.Login(context.Background(), "ghost@x.com", "secret")

	require.ErrorIs(t, errWrongPassword, user.ErrInvalidCredentials)
	require.ErrorIs(t, errNoSuchUser, user.ErrInvalidCredentials)
	require.Equal(t, errWrongPassword, errNoSuchUser)
}

func TestUpdate_WithoutPasswordKeepsHash(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t, newRecordingNotifier(nil))
	created, err := svc.Signup(context.Background(), "Ana", "a@x.com", "secret")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, user.UpdateInput{
		Name:  "Ana Maria",
		Email: "am@x.com",
	})
	require.NoError(t, err)
	require.Equal(t, "Ana Maria", updated.Name)
	require.Equal(t, "am@x.com", updated.Email)
	require.Equal(t, created.PasswordHash, updated.PasswordHash)
}

func TestUpdate_WithPasswordRehashes(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t, newRecordingNotifier(nil))
	created, err := svc.Signup(context.Background(), "Ana", "a@x.com", "secret")
	require.NoError(t, err)

	newPassword := "changed"
	updated, err := svc.Update(context.Background(), created.ID, user.UpdateInput{
		Name:     "Ana",
		Email:    "a@x.com",
		Password: &newPassword,
	})
	require.NoError(t, err)
	require.NotEqual(t, created.PasswordHash, updated.PasswordHash)

	h := password.NewBcryptHasher()
	ok, err := h.Verify("secret", updated.PasswordHash)
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = h.Verify("changed", updated.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUpdate_UnknownIDFails(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t, newRecordingNotifier(nil))
	_, err := svc.Update(context.Background(), uuid.New(), user.UpdateInput{Name: "x", Email: "x@x.com"})
	require.ErrorIs(t, err, user.ErrUpdateFailed)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t, newRecordingNotifier(nil))
	created, err := svc.Signup(context.Background(), "Ana", "a@x.com", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), created.ID), user.ErrDeleteFailed)

	// The email is free again after the delete.
	_, err = svc.Signup(context.Background(), "Ana", "a@x.com", "secret")
	require.NoError(t, err)
}

func TestList(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t, newRecordingNotifier(nil))
	_, err := svc.Signup(context.Background(), "Ana", "a@x.com", "secret")
	require.NoError(t, err)
	_, err = svc.Signup(context.Background(), "Bia", "b@x.com", "secret")
	require.NoError(t, err)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "Ana", users[0].Name)
	require.Equal(t, "Bia", users[1].Name)
}
