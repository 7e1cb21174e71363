package user

import "context"

// UserService is the admin-facing account management API.
type UserService interface {
	List(ctx context.Context, filter UserFilter) (ListUserResponse, error)
	Get(ctx context.Context, id int64) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	// Delete removes a user; actorID is the caller and cannot delete itself.
	Delete(ctx context.Context, id int64, actorID int64) error
}
