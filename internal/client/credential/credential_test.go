package credential

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/desirppc/parcelace/internal/client/models"
	"github.com/desirppc/parcelace/internal/client/stores"
	"github.com/desirppc/parcelace/internal/logging"
)

// brokenStore fails every operation, simulating an unavailable backend.
type brokenStore struct{}

var errBroken = errors.New("store down")

func (brokenStore) Get(ctx context.Context, key string) ([]byte, error) { return nil, errBroken }

func (brokenStore) Set(ctx context.Context, key string, value []byte) error { return errBroken }

func (brokenStore) SetMany(ctx context.Context, values map[string][]byte) error { return errBroken }

func (brokenStore) Delete(ctx context.Context, key string) error { return errBroken }

func (brokenStore) Clear(ctx context.Context) error { return errBroken }

func testUser(id int64) *models.User {
	verified := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	return &models.User{
		ID:               id,
		Name:             "Asha Patel",
		Email:            "asha@example.com",
		Phone:            "9876543210",
		MobileVerifiedAt: &verified,
	}
}

func TestStore_SaveThenRead(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, stores.NewMemoryStore(), stores.NewMemoryStore())

	loginAt := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	require.NoError(t, s.SaveAt(ctx, "tok-abc", testUser(7), loginAt))

	cred, err := s.Read(ctx)
	require.NoError(t, err)
	require.NotNil(t, cred)
	require.Equal(t, "tok-abc", cred.Token)
	require.Equal(t, int64(7), cred.User.ID)
	require.Equal(t, "asha@example.com", cred.User.Email)
	require.True(t, cred.User.IsMobileVerified())
	require.True(t, loginAt.Equal(cred.LoginAt))
}

func TestStore_SaveWritesAllBackends(t *testing.T) {
	ctx := context.Background()
	primary := stores.NewMemoryStore()
	secondary := stores.NewMemoryStore()
	s := NewStore(nil, primary, secondary)

	require.NoError(t, s.Save(ctx, "tok-abc", testUser(1)))

	for _, b := range []stores.Store{primary, secondary} {
		v, err := b.Get(ctx, KeyToken)
		require.NoError(t, err)
		require.Equal(t, []byte("tok-abc"), v)
	}
}

func TestStore_ReadEmptyIsAbsent(t *testing.T) {
	s := NewStore(nil, stores.NewMemoryStore())

	cred, err := s.Read(context.Background())
	require.NoError(t, err)
	require.Nil(t, cred)
}

func TestStore_SaveThenClearIsAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, stores.NewMemoryStore(), stores.NewMemoryStore())

	require.NoError(t, s.Save(ctx, "tok-abc", testUser(1)))
	require.NoError(t, s.Clear(ctx))

	cred, err := s.Read(ctx)
	require.NoError(t, err)
	require.Nil(t, cred)

	// Clear is idempotent.
	require.NoError(t, s.Clear(ctx))
}

func TestStore_MalformedUserIsAbsent(t *testing.T) {
	ctx := context.Background()
	backend := stores.NewMemoryStore()
	s := NewStore(nil, backend)

	require.NoError(t, backend.Set(ctx, KeyToken, []byte("tok-abc")))
	require.NoError(t, backend.Set(ctx, KeyUser, []byte("{not even json")))

	cred, err := s.Read(ctx)
	require.NoError(t, err)
	require.Nil(t, cred)
}

func TestStore_UserWithoutIDIsAbsent(t *testing.T) {
	ctx := context.Background()
	backend := stores.NewMemoryStore()
	s := NewStore(nil, backend)

	require.NoError(t, backend.Set(ctx, KeyToken, []byte("tok-abc")))
	require.NoError(t, backend.Set(ctx, KeyUser, []byte(`{"name":"Asha"}`)))

	cred, err := s.Read(ctx)
	require.NoError(t, err)
	require.Nil(t, cred)
}

func TestStore_EmptyTokenIsAbsent(t *testing.T) {
	ctx := context.Background()
	backend := stores.NewMemoryStore()
	s := NewStore(nil, backend)

	require.NoError(t, backend.Set(ctx, KeyUser, []byte(`{"id":1}`)))

	cred, err := s.Read(ctx)
	require.NoError(t, err)
	require.Nil(t, cred)
}

func TestStore_BadTimestampDegradesToZeroAge(t *testing.T) {
	ctx := context.Background()
	backend := stores.NewMemoryStore()
	s := NewStore(nil, backend)

	require.NoError(t, backend.Set(ctx, KeyToken, []byte("tok-abc")))
	require.NoError(t, backend.Set(ctx, KeyUser, []byte(`{"id":1}`)))
	require.NoError(t, backend.Set(ctx, KeyLoginAt, []byte("yesterday-ish")))

	cred, err := s.Read(ctx)
	require.NoError(t, err)
	require.NotNil(t, cred)
	require.True(t, cred.LoginAt.IsZero())
}

func TestStore_ReadPrefersFirstBackend(t *testing.T) {
	ctx := context.Background()
	primary := stores.NewMemoryStore()
	secondary := stores.NewMemoryStore()
	s := NewStore(nil, primary, secondary)

	require.NoError(t, NewStore(nil, primary).Save(ctx, "tok-primary", testUser(1)))
	require.NoError(t, NewStore(nil, secondary).Save(ctx, "tok-secondary", testUser(2)))

	cred, err := s.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-primary", cred.Token)
}

func TestStore_ReadFallsThroughBrokenBackend(t *testing.T) {
	ctx := context.Background()
	healthy := stores.NewMemoryStore()
	s := NewStore(logging.NewNopLogger(), brokenStore{}, healthy)

	require.NoError(t, NewStore(nil, healthy).Save(ctx, "tok-abc", testUser(3)))

	cred, err := s.Read(ctx)
	require.NoError(t, err)
	require.NotNil(t, cred)
	require.Equal(t, "tok-abc", cred.Token)
}

func TestStore_SaveSurfacesBackendError(t *testing.T) {
	s := NewStore(nil, brokenStore{})

	err := s.Save(context.Background(), "tok-abc", testUser(1))
	require.ErrorIs(t, err, errBroken)
}

func TestStore_UpdateUserKeepsTokenAndTimestamp(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, stores.NewMemoryStore())

	loginAt := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	require.NoError(t, s.SaveAt(ctx, "tok-abc", testUser(1), loginAt))

	updated := testUser(1)
	updated.Name = "Asha P."
	updated.OnboardingCompleted = true
	require.NoError(t, s.UpdateUser(ctx, updated))

	cred, err := s.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-abc", cred.Token)
	require.Equal(t, "Asha P.", cred.User.Name)
	require.True(t, cred.User.OnboardingCompleted)
	require.True(t, loginAt.Equal(cred.LoginAt))
}
