package user

import (
	"context"

	"userhub/internal/domain/common"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = common.NewNotFound("User")

// Fields carries the mutable columns of a user.
type Fields struct {
	Name  string
	Email string
}

// Repository runs one statement per call against the users table.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, f Fields) (*User, error)
	Update(ctx context.Context, id int64, f Fields) (*User, error)
	Delete(ctx context.Context, id int64) (*User, error)
}
