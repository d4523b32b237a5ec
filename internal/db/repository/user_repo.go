package repository

import (
	"context"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"userhub/internal/db"
	dom "userhub/internal/domain/user"
	"userhub/internal/logging"
)

const (
	listUsersSQL  = `SELECT id, name, email FROM users ORDER BY id ASC`
	getUserSQL    = `SELECT id, name, email FROM users WHERE id = $1`
	createUserSQL = `INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id, name, email`
	updateUserSQL = `UPDATE users SET name = $1, email = $2 WHERE id = $3 RETURNING id, name, email`
	deleteUserSQL = `DELETE FROM users WHERE id = $1 RETURNING id, name, email`
)

type UserRepository struct {
	client *db.Client
	logger logging.Logger
}

func NewUserRepository(client *db.Client, logger logging.Logger) dom.Repository {
	return &UserRepository{
		client: client,
		logger: logger.With("component", "user_repo"),
	}
}

// query runs a single statement and hands the open rows to scan.
func (r *UserRepository) query(ctx context.Context, stmt string, args []any, scan func(*entsql.Rows) error) error {
	var rows entsql.Rows
	if err := r.client.Driver().Query(ctx, stmt, args, &rows); err != nil {
		return err
	}
	defer func() {
		_ = rows.Close()
	}()
	return scan(&rows)
}

func (r *UserRepository) List(ctx context.Context) ([]dom.User, error) {
	var users []dom.User
	err := r.query(ctx, listUsersSQL, []any{}, func(rows *entsql.Rows) error {
		var err error
		users, err = scanUsers(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*dom.User, error) {
	u, err := r.one(ctx, getUserSQL, id)
	if err != nil {
		return nil, wrap("get user", err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, f dom.Fields) (*dom.User, error) {
	u, err := r.one(ctx, createUserSQL, f.Name, f.Email)
	if err != nil {
		return nil, wrap("create user", err)
	}
	r.logger.Debug("user created", "id", u.ID)
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, f dom.Fields) (*dom.User, error) {
	u, err := r.one(ctx, updateUserSQL, f.Name, f.Email, id)
	if err != nil {
		return nil, wrap("update user", err)
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (*dom.User, error) {
	u, err := r.one(ctx, deleteUserSQL, id)
	if err != nil {
		return nil, wrap("delete user", err)
	}
	return u, nil
}

func (r *UserRepository) one(ctx context.Context, stmt string, args ...any) (*dom.User, error) {
	var u *dom.User
	err := r.query(ctx, stmt, args, func(rows *entsql.Rows) error {
		var err error
		u, err = firstUser(rows)
		return err
	})
	return u, err
}

// wrap keeps ErrNotFound unwrapped so its text reaches the client verbatim.
func wrap(op string, err error) error {
	if errors.Is(err, dom.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
