package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"member-portal/accountd/internal/store"
)

func TestCreateAndFind(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	a, err := s.Create(ctx, "alice", "pw1", "Alice A", "a@x.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.True(t, a.Active)
	assert.NotZero(t, a.CreatedAt)

	got, err := s.FindByUsername(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "pw1", got.Password)

	_, err = s.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateConflict(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	first, err := s.Create(ctx, "bob", "p1", "Bob B", "b@x.com")
	assert.NoError(t, err)

	_, err = s.Create(ctx, "bob", "p2", "Bobby", "b2@x.com")
	assert.ErrorIs(t, err, store.ErrConflict)

	// The original record is untouched.
	got, err := s.FindByUsername(ctx, "bob")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "p1", got.Password)
	assert.Equal(t, "Bob B", got.FullName)
}

func TestFindByEmail(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Create(ctx, "carol", "pw", "Carol C", "c@x.com")
	assert.NoError(t, err)

	got, err := s.FindByEmail(ctx, "c@x.com")
	assert.NoError(t, err)
	assert.Equal(t, "carol", got.Username)

	_, err = s.FindByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFindByUsernameAndPassword(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Create(ctx, "dave", "secret", "Dave D", "d@x.com")
	assert.NoError(t, err)

	got, err := s.FindByUsernameAndPassword(ctx, "dave", "secret")
	assert.NoError(t, err)
	assert.Equal(t, "dave", got.Username)

	_, err = s.FindByUsernameAndPassword(ctx, "dave", "wrong")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.FindByUsernameAndPassword(ctx, "Dave", "secret")
	assert.ErrorIs(t, err, store.ErrNotFound, "username match is exact, not case-folded")
}

func TestUpdatePassword(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	a, err := s.Create(ctx, "erin", "old", "Erin E", "e@x.com")
	assert.NoError(t, err)

	assert.NoError(t, s.UpdatePassword(ctx, "erin", "new"))

	got, err := s.FindByUsername(ctx, "erin")
	assert.NoError(t, err)
	assert.Equal(t, "new", got.Password)
	// Only the password changed.
	assert.Equal(t, a.FullName, got.FullName)
	assert.Equal(t, a.Email, got.Email)
	assert.Equal(t, a.Active, got.Active)

	// Unknown username is a no-op, not an error.
	assert.NoError(t, s.UpdatePassword(ctx, "ghost", "whatever"))
}

func TestListAll(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	all, err := s.ListAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, all)

	_, err = s.Create(ctx, "u1", "p", "U One", "u1@x.com")
	assert.NoError(t, err)
	_, err = s.Create(ctx, "u2", "p", "U Two", "u2@x.com")
	assert.NoError(t, err)

	all, err = s.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
