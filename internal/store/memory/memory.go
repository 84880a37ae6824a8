// Package memory implements the credential store with in-process maps.
// It backs development setups and tests; postgres is the production store.
package memory

import (
	"sync"

	"member-portal/accountd/internal/model"
)

type Store struct {
	mu       sync.Mutex
	accounts map[string]model.Account // keyed by account ID
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]model.Account),
	}
}
