package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"member-portal/accountd/internal/store"
)

var accountRowColumns = []string{
	"id", "username", "password", "full_name", "email", "active", "created_at", "updated_at",
}

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewStoreWithDB(mock), mock
}

func TestCreate(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`insert into public\.accounts`).
		WithArgs("alice", "pw1", "Alice A", "a@x.com").
		WillReturnRows(pgxmock.NewRows(accountRowColumns).
			AddRow("11111111-1111-1111-1111-111111111111", "alice", "pw1", "Alice A", "a@x.com", true, now, now))

	a, err := s.Create(context.Background(), "alice", "pw1", "Alice A", "a@x.com")
	assert.NoError(t, err)
	assert.Equal(t, "alice", a.Username)
	assert.True(t, a.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConflict(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`insert into public\.accounts`).
		WithArgs("alice", "pw2", "Alice Again", "a2@x.com").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := s.Create(context.Background(), "alice", "pw2", "Alice Again", "a2@x.com")
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUsernameNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`select .+ from public\.accounts\s+where username = \$1`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`where email = \$1\s+order by created_at\s+limit 1`).
		WithArgs("a@x.com").
		WillReturnRows(pgxmock.NewRows(accountRowColumns).
			AddRow("11111111-1111-1111-1111-111111111111", "alice", "pw1", "Alice A", "a@x.com", true, now, now))

	a, err := s.FindByEmail(context.Background(), "a@x.com")
	assert.NoError(t, err)
	assert.Equal(t, "alice", a.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUsernameAndPassword(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`where username = \$1 and password = \$2`).
		WithArgs("alice", "pw1").
		WillReturnRows(pgxmock.NewRows(accountRowColumns).
			AddRow("11111111-1111-1111-1111-111111111111", "alice", "pw1", "Alice A", "a@x.com", true, now, now))

	a, err := s.FindByUsernameAndPassword(context.Background(), "alice", "pw1")
	assert.NoError(t, err)
	assert.Equal(t, "alice", a.Username)

	mock.ExpectQuery(`where username = \$1 and password = \$2`).
		WithArgs("alice", "wrong").
		WillReturnError(pgx.ErrNoRows)

	_, err = s.FindByUsernameAndPassword(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePasswordNoOpOnMiss(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`update public\.accounts`).
		WithArgs("ghost", "newpw").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	// Zero rows affected is still success.
	assert.NoError(t, s.UpdatePassword(context.Background(), "ghost", "newpw"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAll(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`select .+ from public\.accounts`).
		WillReturnRows(pgxmock.NewRows(accountRowColumns).
			AddRow("11111111-1111-1111-1111-111111111111", "alice", "pw1", "Alice A", "a@x.com", true, now, now).
			AddRow("22222222-2222-2222-2222-222222222222", "bob", "pw2", "Bob B", "b@x.com", true, now, now))

	all, err := s.ListAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`create table if not exists public\.accounts`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(`create index if not exists accounts_email_idx`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	assert.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
