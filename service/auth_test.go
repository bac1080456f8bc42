package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"caisse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	enabled bool
	err     error
	sent    []string
}

func (n *fakeNotifier) Enabled() bool { return n.enabled }

func (n *fakeNotifier) SendPasswordResetNotice(username string) error {
	n.sent = append(n.sent, username)
	return n.err
}

func newAuthService(t *testing.T, notifier ResetNotifier) (*AuthService, *Credentials) {
	db, creds := newTestDB(t)
	log, _ := newTestLogger()
	return NewAuthService(db, creds, notifier, log), creds
}

func TestAuthService_LoginDefaultAdmin(t *testing.T) {
	svc, _ := newAuthService(t, nil)

	user, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "admin", user.Username)
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()

	_, wrongPassword := svc.Login(ctx, "admin", "nope-nope")
	_, unknownUser := svc.Login(ctx, "ghost", "admin123")

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	assert.Equal(t, "Nom d'utilisateur ou mot de passe incorrect.", MessageOf(unknownUser))
}

func TestAuthService_LoginMissingFields(t *testing.T) {
	svc, _ := newAuthService(t, nil)

	_, err := svc.Login(context.Background(), "", "admin123")
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Login(context.Background(), "admin", "")
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Login(context.Background(), "   ", "admin123")
	require.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_LoginMatchesUsernameExactly(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()

	for _, name := range []string{" admin", "admin ", "\tadmin"} {
		_, err := svc.Login(ctx, name, "admin123")
		assert.ErrorIs(t, err, ErrInvalidCredentials, "%q", name)
	}
	_, err := svc.Login(ctx, "admin", "admin123")
	assert.NoError(t, err)
}

func TestAuthService_ResetPassword(t *testing.T) {
	notifier := &fakeNotifier{enabled: true}
	svc, _ := newAuthService(t, notifier)
	ctx := context.Background()

	require.NoError(t, svc.ResetPassword(ctx, "admin", "nouveau-secret"))
	assert.Equal(t, []string{"admin"}, notifier.sent)

	_, err := svc.Login(ctx, "admin", "admin123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "admin", "nouveau-secret")
	require.NoError(t, err)
}

func TestAuthService_ResetPasswordFailures(t *testing.T) {
	notifier := &fakeNotifier{enabled: true}
	svc, _ := newAuthService(t, notifier)
	ctx := context.Background()

	err := svc.ResetPassword(ctx, "", "secret1")
	require.ErrorIs(t, err, ErrValidation)

	err = svc.ResetPassword(ctx, "admin", "12345")
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Le nouveau mot de passe doit comporter au moins 6 caractères.", MessageOf(err))

	err = svc.ResetPassword(ctx, "admin", strings.Repeat("a", 73))
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Le nouveau mot de passe est trop long.", MessageOf(err))

	err = svc.ResetPassword(ctx, "ghost", "secret1")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Nom d'utilisateur non trouvé.", MessageOf(err))

	assert.Empty(t, notifier.sent)
}

func TestAuthService_NotifierErrorIsNotReturned(t *testing.T) {
	notifier := &fakeNotifier{enabled: true, err: errors.New("smtp down")}
	svc, _ := newAuthService(t, notifier)

	require.NoError(t, svc.ResetPassword(context.Background(), "admin", "secret1"))
	assert.Len(t, notifier.sent, 1)
}

func TestAuthService_DisabledNotifierIsSkipped(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, _ := newAuthService(t, notifier)

	require.NoError(t, svc.ResetPassword(context.Background(), "admin", "secret1"))
	assert.Empty(t, notifier.sent)
}

func TestAuthService_LoginNeverExposesDigest(t *testing.T) {
	svc, _ := newAuthService(t, nil)

	user, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.IsType(t, models.UserView{}, user)
}
