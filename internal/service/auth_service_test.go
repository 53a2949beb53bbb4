package service

import (
	"context"
	"testing"

	"factfind/config"
	"factfind/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byExternal map[string]*model.User
	nextID     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byExternal: make(map[string]*model.User), nextID: 1}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*model.User, error) {
	for _, u := range r.byExternal {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByExternalID(_ context.Context, externalID string) (*model.User, error) {
	return r.byExternal[externalID], nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = r.nextID
	r.nextID++
	r.byExternal[user.ExternalID] = user
	return nil
}

func staticConfig() *config.Config {
	return &config.Config{
		AuthMode:      "static",
		JWTSecret:     "test-secret",
		AdminUsername: "admin",
		AdminPassword: "hunter2",
	}
}

func TestStaticLoginAdmin(t *testing.T) {
	svc := NewAuthService(staticConfig(), newFakeUserRepo())

	resp, err := svc.Login("admin", "hunter2")
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)
	assert.NotEmpty(t, resp.Token)
	assert.Contains(t, resp.Subject, "usr_")
}

func TestStaticLoginWrongAdminPassword(t *testing.T) {
	svc := NewAuthService(staticConfig(), newFakeUserRepo())
	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStaticLoginRespondent(t *testing.T) {
	svc := NewAuthService(staticConfig(), newFakeUserRepo())

	resp, err := svc.Login("alice", "anything")
	require.NoError(t, err)
	assert.False(t, resp.IsAdmin)

	// Same username keeps the same subject across logins.
	again, err := svc.Login("alice", "anything")
	require.NoError(t, err)
	assert.Equal(t, resp.Subject, again.Subject)
}

func TestStaticLoginEmptyCredentials(t *testing.T) {
	svc := NewAuthService(staticConfig(), newFakeUserRepo())
	_, err := svc.Login("", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateCreatesUserOnFirstSight(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(staticConfig(), users)
	ctx := context.Background()

	resp, err := svc.Login("bob", "pw")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Subject, user.ExternalID)
	assert.False(t, user.IsAdmin)

	// Second authentication resolves the same row.
	again, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	svc := NewAuthService(staticConfig(), newFakeUserRepo())
	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTModeLoginUnsupported(t *testing.T) {
	cfg := staticConfig()
	cfg.AuthMode = "jwt"
	svc := NewAuthService(cfg, newFakeUserRepo())

	_, err := svc.Login("admin", "hunter2")
	assert.ErrorIs(t, err, ErrLoginUnsupported)
}
