package credentials_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	credentials "github.com/goliatone/go-credentials"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newSessionsDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := credentials.NewSQLiteDB(dsn)
	require.NoError(t, err)

	// Shared-cache in-memory databases vanish when the last connection
	// closes; pin the pool to one connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.NewCreateTable().
		Model((*credentials.Session)(nil)).
		Exec(context.Background())
	require.NoError(t, err)

	return db
}

func TestSessionsIssue(t *testing.T) {
	db := newSessionsDB(t)
	repo := credentials.NewSessionsRepository(db)

	session := &credentials.Session{
		UserID:     uuid.New(),
		APIVersion: "20200115",
		UserAgent:  "test-agent",
	}

	created, err := repo.Issue(context.Background(), session)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NotEmpty(t, created.AccessToken)
	assert.NotEmpty(t, created.RefreshToken)
	assert.NotEqual(t, created.AccessToken, created.RefreshToken)

	require.NotNil(t, created.AccessExpiration)
	require.NotNil(t, created.RefreshExpiration)
	assert.True(t, created.AccessExpiration.After(time.Now()))
	assert.True(t, created.RefreshExpiration.After(*created.AccessExpiration))
}

func TestSessionsGetByAccessToken(t *testing.T) {
	t.Run("live session resolves", func(t *testing.T) {
		db := newSessionsDB(t)
		repo := credentials.NewSessionsRepository(db)

		created, err := repo.Issue(context.Background(), &credentials.Session{
			UserID: uuid.New(),
		})
		require.NoError(t, err)

		found, err := repo.GetByAccessToken(context.Background(), created.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, created.UserID, found.UserID)
	})

	t.Run("expired access token does not resolve", func(t *testing.T) {
		db := newSessionsDB(t)
		repo := credentials.NewSessionsRepository(db)

		expired := time.Now().Add(-48 * time.Hour)
		created, err := repo.Issue(context.Background(), &credentials.Session{
			UserID:           uuid.New(),
			AccessExpiration: &expired,
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.AccessToken)

		_, err = repo.GetByAccessToken(context.Background(), created.AccessToken)
		require.Error(t, err)
		assert.True(t, repository.IsRecordNotFound(err))
	})

	t.Run("unknown token", func(t *testing.T) {
		db := newSessionsDB(t)
		repo := credentials.NewSessionsRepository(db)

		_, err := repo.GetByAccessToken(context.Background(), "no-such-token")
		require.Error(t, err)
		assert.True(t, repository.IsRecordNotFound(err))
	})

	t.Run("blank token", func(t *testing.T) {
		db := newSessionsDB(t)
		repo := credentials.NewSessionsRepository(db)

		_, err := repo.GetByAccessToken(context.Background(), "   ")
		require.Error(t, err)
		assert.True(t, repository.IsRecordNotFound(err))
	})
}
