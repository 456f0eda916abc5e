package users

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*Repo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewRepo(db), mock, db
}

func setupCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCache(client, 5*time.Minute), mr
}

func TestRepo_FindByEmail(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("returns the public projection", func(t *testing.T) {
		mock.ExpectQuery(`from users`).
			WithArgs("ana@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "photo_url"}).
				AddRow("u-1", "ana@example.com", "Ana", ""))

		u, err := repo.FindByEmail(context.Background(), "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
		assert.Equal(t, "Ana", u.Name)
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery(`from users`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Ensure(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("requires a firebase uid", func(t *testing.T) {
		_, err := repo.Ensure(context.Background(), UpsertUser{})
		assert.Error(t, err)
	})

	t.Run("upserts and returns the directory id", func(t *testing.T) {
		mock.ExpectQuery(`insert into users`).
			WithArgs("fb-1", "ana@example.com", "Ana", "").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-1"))

		id, err := repo.Ensure(context.Background(), UpsertUser{
			FirebaseUID: "fb-1",
			Email:       "ana@example.com",
			DisplayName: "Ana",
		})
		require.NoError(t, err)
		assert.Equal(t, "u-1", id)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_RoundTrip(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	assert.Nil(t, cache.GetByEmail(ctx, "ana@example.com"), "cold cache misses")

	cache.PutByEmail(ctx, &User{ID: "u-1", Email: "Ana@Example.com", Name: "Ana"})

	got := cache.GetByEmail(ctx, "ana@example.com")
	require.NotNil(t, got, "lookup is case-insensitive on the address")
	assert.Equal(t, "u-1", got.ID)

	cache.InvalidateEmail(ctx, "ANA@example.com")
	assert.Nil(t, cache.GetByEmail(ctx, "ana@example.com"))
}

func TestCache_EntriesExpire(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	cache.PutByEmail(ctx, &User{ID: "u-1", Email: "ana@example.com"})
	require.NotNil(t, cache.GetByEmail(ctx, "ana@example.com"))

	mr.FastForward(6 * time.Minute)
	assert.Nil(t, cache.GetByEmail(ctx, "ana@example.com"))
}

func TestDirectory_ReadThrough(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()
	cache, _ := setupCache(t)

	dir := NewDirectory(repo, cache)
	ctx := context.Background()

	// First lookup hits the database and fills the cache.
	mock.ExpectQuery(`from users`).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "photo_url"}).
			AddRow("u-1", "ana@example.com", "Ana", ""))

	u, err := dir.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)

	// Second lookup is served from cache: no further query expectation.
	u, err = dir.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDirectory_EnsureInvalidatesCache(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()
	cache, _ := setupCache(t)

	dir := NewDirectory(repo, cache)
	ctx := context.Background()

	cache.PutByEmail(ctx, &User{ID: "u-1", Email: "ana@example.com", Name: "Old Name"})

	mock.ExpectQuery(`insert into users`).
		WithArgs("fb-1", "ana@example.com", "New Name", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-1"))

	_, err := dir.Ensure(ctx, UpsertUser{FirebaseUID: "fb-1", Email: "ana@example.com", DisplayName: "New Name"})
	require.NoError(t, err)

	assert.Nil(t, cache.GetByEmail(ctx, "ana@example.com"), "stale entry dropped")
	require.NoError(t, mock.ExpectationsWereMet())
}
