package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/cache"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
	"github.com/johnquangdev/idea-hub/pkg/jwt"
)

type fakeUsers struct {
	upserts int
	stored  map[uuid.UUID]*entities.User
	failing bool
}

func (f *fakeUsers) Upsert(_ context.Context, u *entities.User) error {
	f.upserts++
	if f.failing {
		return errors.New("db down")
	}
	if f.stored == nil {
		f.stored = map[uuid.UUID]*entities.User{}
	}
	f.stored[u.ID] = u
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	if u, ok := f.stored[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) FindByIDs(context.Context, []uuid.UUID) ([]*entities.User, error) {
	return nil, nil
}

func (f *fakeUsers) Search(context.Context, string, int) ([]*entities.User, error) {
	return []*entities.User{}, nil
}

func newTestService(t *testing.T, users *fakeUsers) (*Service, *jwt.Manager) {
	t.Helper()
	seen := cache.NewMemoryStore()
	t.Cleanup(seen.Close)
	tokens := jwt.NewManager("test-secret", "", time.Hour)
	return NewService(tokens, users, seen, zap.NewNop()), tokens
}

func TestAuthenticate(t *testing.T) {
	users := &fakeUsers{}
	svc, tokens := newTestService(t, users)
	id := uuid.New()

	token, err := tokens.GenerateAccessToken(id, "lina@example.com", "admin", "Lina")
	require.NoError(t, err)

	p, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, id, p.UserID)
	assert.True(t, p.IsAdmin())
	assert.Equal(t, "Lina", p.DisplayName())

	// the second request inside the refresh window does not rewrite the profile
	_, err = svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 1, users.upserts)
	assert.Equal(t, entities.RoleAdmin, users.stored[id].Role)
}

func TestAuthenticate_UnknownRoleIsMember(t *testing.T) {
	svc, tokens := newTestService(t, &fakeUsers{})
	token, err := tokens.GenerateAccessToken(uuid.New(), "a@example.com", "superuser", "")
	require.NoError(t, err)

	p, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, p.IsAdmin())
	assert.Equal(t, "a@example.com", p.DisplayName())
}

func TestAuthenticate_Rejects(t *testing.T) {
	svc, _ := newTestService(t, &fakeUsers{})

	_, err := svc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, ucerrors.ErrTokenInvalid)

	expired := jwt.NewManager("test-secret", "", -time.Minute)
	token, err := expired.GenerateAccessToken(uuid.New(), "a@example.com", "member", "")
	require.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ucerrors.ErrTokenExpired)
}

func TestAuthenticate_ProfileFailureIsRetried(t *testing.T) {
	users := &fakeUsers{failing: true}
	svc, tokens := newTestService(t, users)
	token, err := tokens.GenerateAccessToken(uuid.New(), "a@example.com", "member", "")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 2, users.upserts)
}

func TestMe_FallsBackToToken(t *testing.T) {
	svc, _ := newTestService(t, &fakeUsers{})
	p := Principal{UserID: uuid.New(), Email: "x@example.com", Role: entities.RoleMember}

	user, err := svc.Me(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, p.UserID, user.ID)
}

func TestPrincipalContext(t *testing.T) {
	p := Principal{UserID: uuid.New()}
	got, ok := FromContext(WithPrincipal(context.Background(), p))
	assert.True(t, ok)
	assert.Equal(t, p, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}
