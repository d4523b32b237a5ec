package repository

import (
	entsql "entgo.io/ent/dialect/sql"

	dom "userhub/internal/domain/user"
)

func scanUsers(rows *entsql.Rows) ([]dom.User, error) {
	users := make([]dom.User, 0)
	if err := entsql.ScanSlice(rows, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// firstUser returns the single row produced by a lookup or a RETURNING clause,
// or ErrNotFound when the statement matched nothing.
func firstUser(rows *entsql.Rows) (*dom.User, error) {
	users, err := scanUsers(rows)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, dom.ErrNotFound
	}
	return &users[0], nil
}
