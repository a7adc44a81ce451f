package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/scms-platform/identity-service/internal/domain"
)

// UserStore is the in-memory implementation, used by tests and as a dev
// fallback. Same contract as the file store: id allocation and email
// uniqueness are enforced inside the lock.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // lower-cased email -> userID

	now func() time.Time
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

// WithClock overrides the clock used for id allocation (tests).
func (r *UserStore) WithClock(now func() time.Time) *UserStore {
	if now != nil {
		r.now = now
	}
	return r
}

func (r *UserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserStore) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, exists := r.byEmail[key]; exists {
		return domain.User{}, domain.ErrEmailExists()
	}

	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	u.ID = domain.NextUserID(r.now(), ids)

	r.byID[u.ID] = u
	r.byEmail[key] = u.ID
	return u, nil
}

func (r *UserStore) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}
