package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrm-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func createTestUser(t *testing.T, repo user.UserRepository, username string, role user.Role) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	created, err := repo.Create(context.Background(), user.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
	require.NoError(t, err)
	return created
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, repo, "alice", user.RoleUser)
	assert.NotZero(t, created.ID)
	assert.Equal(t, user.RoleUser, created.Role)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(byName.PasswordHash), []byte("password123")))

	exists, err := repo.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)

	createTestUser(t, repo, "bob", user.RoleUser)

	_, err := repo.Create(context.Background(), user.User{Username: "bob", PasswordHash: "x", Role: user.RoleUser})
	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestUserRepository_ListAndCountByRole(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, repo, "admin", user.RoleAdmin)
	createTestUser(t, repo, "carol", user.RoleUser)
	createTestUser(t, repo, "dave", user.RoleUser)

	admins, err := repo.CountByRole(ctx, user.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), admins)

	keyword := "car"
	filter := user.UserFilter{Keyword: &keyword}
	require.NoError(t, filter.Validate())
	users, total, err := repo.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "carol", users[0].Username)
}

func TestWithTransaction_RollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)
	tx := postgresql.NewTxManager(db)
	ctx := context.Background()

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		createTestUserCtx(t, ctx, repo, "eve")
		return user.ErrUsernameExists
	})
	require.ErrorIs(t, err, user.ErrUsernameExists)

	exists, err := repo.ExistsByUsername(ctx, "eve")
	require.NoError(t, err)
	assert.False(t, exists)
}

func createTestUserCtx(t *testing.T, ctx context.Context, repo user.UserRepository, username string) {
	t.Helper()
	_, err := repo.Create(ctx, user.User{Username: username, PasswordHash: "x", Role: user.RoleUser})
	require.NoError(t, err)
}
