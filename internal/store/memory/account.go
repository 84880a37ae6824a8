package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"member-portal/accountd/internal/model"
	"member-portal/accountd/internal/store"
)

func (s *Store) Create(_ context.Context, username, password, fullName, email string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Username == username {
			return model.Account{}, store.ErrConflict
		}
	}

	now := time.Now().UTC()
	a := model.Account{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  password,
		FullName:  fullName,
		Email:     email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.accounts[a.ID] = a
	return a, nil
}

func (s *Store) FindByUsername(_ context.Context, username string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) FindByUsernameAndPassword(_ context.Context, username, password string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Username == username && a.Password == password {
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdatePassword(_ context.Context, username, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, a := range s.accounts {
		if a.Username == username {
			a.Password = newPassword
			a.UpdatedAt = time.Now().UTC()
			s.accounts[id] = a
			return nil
		}
	}
	// Unknown username is a silent no-op.
	return nil
}

func (s *Store) ListAll(_ context.Context) ([]model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	return out, nil
}
