package user

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users  map[int64]user.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]user.User{}, nextID: 1}
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u user.User) (user.User, error) {
	if _, ok := f.users[u.ID]; !ok {
		return user.User{}, user.ErrUserNotFound
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _ user.UserFilter) ([]user.User, int64, error) {
	out := make([]user.User, 0, len(f.users))
	for id := int64(1); id < f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role user.Role) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func TestUserService_Create(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()
	email := "dave@example.com"

	resp, err := svc.Create(ctx, user.CreateUserRequest{Username: "dave", Password: "secret123", Email: &email, Role: "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, "dave", resp.Username)
	assert.Equal(t, "ADMIN", resp.Role)
	assert.Equal(t, "2024-01-01 08:00:00", resp.CreatedAt)

	stored := repo.users[resp.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))

	_, err = svc.Create(ctx, user.CreateUserRequest{Username: "dave", Password: "secret123", Role: "USER"})
	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestUserService_Update(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()
	email := "erin@example.com"

	created, err := svc.Create(ctx, user.CreateUserRequest{Username: "erin", Password: "secret123", Email: &email, Role: "USER"})
	require.NoError(t, err)

	empty := ""
	role := "ADMIN"
	password := "newpass1"
	updated, err := svc.Update(ctx, user.UpdateUserRequest{ID: created.ID, Email: &empty, Role: &role, Password: &password})
	require.NoError(t, err)
	assert.Nil(t, updated.Email)
	assert.Equal(t, "ADMIN", updated.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[created.ID].PasswordHash), []byte("newpass1")))

	_, err = svc.Update(ctx, user.UpdateUserRequest{ID: 999, Role: &role})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserService_Delete(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	admin, err := svc.Create(ctx, user.CreateUserRequest{Username: "admin", Password: "secret123", Role: "ADMIN"})
	require.NoError(t, err)
	other, err := svc.Create(ctx, user.CreateUserRequest{Username: "frank", Password: "secret123", Role: "USER"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, admin.ID, admin.ID), user.ErrCannotDeleteSelf)
	assert.ErrorIs(t, svc.Delete(ctx, 999, admin.ID), user.ErrUserNotFound)

	require.NoError(t, svc.Delete(ctx, other.ID, admin.ID))
	_, err = svc.Get(ctx, other.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	for _, name := range []string{"ann", "ben", "cid"} {
		_, err := svc.Create(ctx, user.CreateUserRequest{Username: name, Password: "secret123", Role: "USER"})
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, user.UserFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.Users, 3)
}
