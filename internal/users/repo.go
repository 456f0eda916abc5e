package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Repo provides persistence for directory users.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

type UpsertUser struct {
	FirebaseUID string
	Email       string
	DisplayName string
	PhotoURL    string
}

// Ensure upserts the user row for an authenticated identity and returns the
// directory id. Empty claim values never overwrite existing columns.
func (r *Repo) Ensure(ctx context.Context, u UpsertUser) (string, error) {
	if u.FirebaseUID == "" {
		return "", fmt.Errorf("firebase uid required")
	}

	const q = `
insert into users (firebase_uid, email, name, photo_url, updated_at)
values ($1, nullif($2,''), nullif($3,''), nullif($4,''), now())
on conflict (firebase_uid) do update
set
  email = coalesce(excluded.email, users.email),
  name = coalesce(excluded.name, users.name),
  photo_url = coalesce(excluded.photo_url, users.photo_url),
  updated_at = now()
returning id::text;
`
	var id string
	if err := r.db.QueryRowContext(ctx, q, u.FirebaseUID, u.Email, u.DisplayName, u.PhotoURL).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// FindByEmail looks a user up by email, returning the public projection only.
func (r *Repo) FindByEmail(ctx context.Context, email string) (*User, error) {
	const q = `
select id::text, coalesce(email,''), coalesce(name,''), coalesce(photo_url,'')
from users
where lower(email) = lower($1);
`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

// FindByID looks a user up by directory id.
func (r *Repo) FindByID(ctx context.Context, id string) (*User, error) {
	const q = `
select id::text, coalesce(email,''), coalesce(name,''), coalesce(photo_url,'')
from users
where id = $1::uuid;
`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *Repo) scanOne(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
