package department

import "context"

type DepartmentRepository interface {
	GetByID(ctx context.Context, id int64) (Department, error)
	ListAll(ctx context.Context) ([]Department, error)
	Create(ctx context.Context, d Department) (Department, error)
	Update(ctx context.Context, d Department) (Department, error)
	Delete(ctx context.Context, id int64) error

	// SiblingNameExists checks name uniqueness under parentID (nil = root), ignoring excludeID.
	SiblingNameExists(ctx context.Context, parentID *int64, name string, excludeID *int64) (bool, error)
	CountChildren(ctx context.Context, id int64) (int64, error)
	CountEmployees(ctx context.Context, id int64) (int64, error)
}
