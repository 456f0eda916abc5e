package users

import "context"

// Directory is the user-lookup surface the rest of the service consumes.
// It wraps the SQL repo with an optional cache; a nil cache means every
// lookup goes straight to the database.
type Directory struct {
	repo  *Repo
	cache *Cache
}

func NewDirectory(repo *Repo, cache *Cache) *Directory {
	return &Directory{repo: repo, cache: cache}
}

func (d *Directory) FindByEmail(ctx context.Context, email string) (*User, error) {
	if d.cache != nil {
		if u := d.cache.GetByEmail(ctx, email); u != nil {
			return u, nil
		}
	}

	u, err := d.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		d.cache.PutByEmail(ctx, u)
	}
	return u, nil
}

func (d *Directory) FindByID(ctx context.Context, id string) (*User, error) {
	return d.repo.FindByID(ctx, id)
}

// Ensure upserts the signed-in identity and keeps the cache coherent.
func (d *Directory) Ensure(ctx context.Context, u UpsertUser) (string, error) {
	id, err := d.repo.Ensure(ctx, u)
	if err != nil {
		return "", err
	}
	if d.cache != nil && u.Email != "" {
		d.cache.InvalidateEmail(ctx, u.Email)
	}
	return id, nil
}
