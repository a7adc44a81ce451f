package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/scms-platform/identity-service/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserStore struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User // keyed by lower-cased email

	// injected errors (if set, method returns error)
	getByIDErr    error
	getByEmailErr error
	createErr     error
	listErr       error

	now func() time.Time
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
		now:     time.Now,
	}
}

func (f *fakeUserStore) add(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[strings.ToLower(u.Email)] = u
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserStore) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	key := strings.ToLower(u.Email)
	if _, exists := f.byEmail[key]; exists {
		return domain.User{}, domain.ErrEmailExists()
	}

	ids := make([]string, 0, len(f.byID))
	for id := range f.byID {
		ids = append(ids, id)
	}
	u.ID = domain.NextUserID(f.now(), ids)

	f.byID[u.ID] = u
	f.byEmail[key] = u
	return u, nil
}

func (f *fakeUserStore) List(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type fakeSigner struct {
	signErr error
	signed  []string // userIDs signed for
}

func (f *fakeSigner) Sign(userID, email, role string, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.signed = append(f.signed, userID)
	return "tok." + userID, nil
}

func (f *fakeSigner) Verify(token string) (TokenClaims, error) {
	id, ok := strings.CutPrefix(token, "tok.")
	if !ok {
		return TokenClaims{}, domain.ErrTokenInvalid()
	}
	return TokenClaims{UserID: id}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []UserRegisteredEvent
	err    error
}

func (f *fakePublisher) PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, evt)
	return nil
}

type auditEntry struct {
	action string
	fields map[string]string
}

type auditCapture struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (a *auditCapture) fn(action string, fields map[string]string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, auditEntry{action: action, fields: fields})
}

func (a *auditCapture) has(action string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range a.entries {
		if e.action == action {
			return true
		}
	}
	return false
}

/*
Helpers
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserStore, *fakeHasher, *fakeSigner, *fakePublisher, *auditCapture) {
	t.Helper()

	users := newFakeUserStore()
	hasher := &fakeHasher{}
	signer := &fakeSigner{}
	pub := &fakePublisher{}
	audit := &auditCapture{}

	svc := NewService(users, hasher, signer, pub, Config{}).WithAudit(audit.fn)
	return svc, users, hasher, signer, pub, audit
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code %s, got %v", code, err)
	}
}
