// Package jsonfile persists user records in a single JSON document, matching
// the layout the previous backend left behind ({"users":[...]}).
//
// Every mutation is a full read-modify-write cycle serialized by a mutex, and
// id allocation happens inside that critical section, so two concurrent
// registrations can never receive the same USR-<year>-NNNN id.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/scms-platform/identity-service/internal/domain"
)

type document struct {
	Users []domain.User `json:"users"`
}

type Store struct {
	path string

	mu  sync.Mutex
	now func() time.Time
}

// New creates the backing file with an empty document if it does not exist.
func New(path string) (*Store, error) {
	s := &Store{path: path, now: time.Now}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.save(document{Users: []domain.User{}}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	return s, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range doc.Users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (s *Store) GetByID(ctx context.Context, id string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range doc.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

// Create allocates the next user id and appends the record. Uniqueness and
// allocation happen under the same lock as the rewrite.
func (s *Store) Create(ctx context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return domain.User{}, err
	}

	ids := make([]string, 0, len(doc.Users))
	for _, existing := range doc.Users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.User{}, domain.ErrEmailExists()
		}
		ids = append(ids, existing.ID)
	}

	u.ID = domain.NextUserID(s.now(), ids)
	doc.Users = append(doc.Users, u)

	if err := s.save(doc); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (s *Store) List(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, len(doc.Users))
	copy(out, doc.Users)
	return out, nil
}

// load tolerates a missing or corrupt file by starting from an empty
// document, the same recovery behavior the previous backend had.
func (s *Store) load() (document, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return document{}, nil
	}
	if err != nil {
		return document{}, domain.ErrStoreUnavailable(err)
	}

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return document{}, nil
	}
	return doc, nil
}

// save rewrites the whole document through a temp file + rename so a crash
// mid-write never leaves a truncated store behind.
func (s *Store) save(doc document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return domain.ErrStoreUnavailable(err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return domain.ErrStoreUnavailable(err)
	}
	if err := tmp.Close(); err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	return nil
}
