package memory

import (
	"context"
	"sort"
	"sync"

	dom "userhub/internal/domain/user"
)

// UserRepository keeps users in process memory with a serial id, mirroring the
// postgres table. Used when DB_DRIVER=memory and by integration tests.
type UserRepository struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]dom.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		items: make(map[int64]dom.User),
	}
}

func (r *UserRepository) List(ctx context.Context) ([]dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dom.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return nil, dom.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, f dom.Fields) (*dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	u := dom.User{ID: r.seq, Name: f.Name, Email: f.Email}
	r.items[u.ID] = u
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, f dom.Fields) (*dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil, dom.ErrNotFound
	}
	u := dom.User{ID: id, Name: f.Name, Email: f.Email}
	r.items[id] = u
	return &u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (*dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return nil, dom.ErrNotFound
	}
	delete(r.items, id)
	return &u, nil
}

// Ping reports the store as always reachable so it can back the health check.
func (r *UserRepository) Ping(ctx context.Context) error {
	return nil
}
