package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"member-portal/accountd/internal/model"
	"member-portal/accountd/internal/store"
)

const accountColumns = `id::text, username, password, full_name, email, active, created_at, updated_at`

func scanAccount(row pgx.Row, a *model.Account) error {
	return row.Scan(
		&a.ID,
		&a.Username,
		&a.Password,
		&a.FullName,
		&a.Email,
		&a.Active,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

func (s *Store) Create(ctx context.Context, username, password, fullName, email string) (model.Account, error) {
	var out model.Account
	err := scanAccount(s.db.QueryRow(ctx, `
		insert into public.accounts (username, password, full_name, email)
		values ($1, $2, $3, $4)
		returning `+accountColumns+`
	`, username, password, fullName, email), &out)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.Account{}, store.ErrConflict
		}
		return model.Account{}, err
	}
	return out, nil
}

func (s *Store) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	var a model.Account
	err := scanAccount(s.db.QueryRow(ctx, `
		select `+accountColumns+`
		from public.accounts
		where username = $1
	`, username), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var a model.Account
	// Email is not unique; take the oldest match.
	err := scanAccount(s.db.QueryRow(ctx, `
		select `+accountColumns+`
		from public.accounts
		where email = $1
		order by created_at
		limit 1
	`, email), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) FindByUsernameAndPassword(ctx context.Context, username, password string) (*model.Account, error) {
	var a model.Account
	err := scanAccount(s.db.QueryRow(ctx, `
		select `+accountColumns+`
		from public.accounts
		where username = $1 and password = $2
	`, username, password), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) UpdatePassword(ctx context.Context, username, newPassword string) error {
	// Zero rows affected means the username does not exist; that is a no-op
	// by contract, so the command tag is not inspected.
	_, err := s.db.Exec(ctx, `
		update public.accounts
		set password = $2, updated_at = now()
		where username = $1
	`, username, newPassword)
	return err
}

func (s *Store) ListAll(ctx context.Context) ([]model.Account, error) {
	rows, err := s.db.Query(ctx, `
		select `+accountColumns+`
		from public.accounts
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Account
	for rows.Next() {
		var a model.Account
		if err := scanAccount(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
