package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/trouvetonpro/dalil/internal/database"
)

// FavoriteRepo handles favourites.
type FavoriteRepo struct {
	db *sql.DB
}

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add bookmarks a worker; adding twice only refreshes the stored name.
func (r *FavoriteRepo) Add(ctx context.Context, f Favorite) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = database.Now()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO favorites(worker_id, worker_name, created_at) VALUES (?, ?, ?)
	ON CONFLICT(worker_id) DO UPDATE SET worker_name=excluded.worker_name;
	`, f.WorkerID, f.WorkerName, f.CreatedAt)
	return err
}

func (r *FavoriteRepo) Remove(ctx context.Context, workerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE worker_id = ?`, workerID)
	return err
}

func (r *FavoriteRepo) Has(ctx context.Context, workerID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM favorites WHERE worker_id = ?`, workerID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns favourites, most recent first.
func (r *FavoriteRepo) List(ctx context.Context) ([]Favorite, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT worker_id, worker_name, created_at FROM favorites ORDER BY created_at DESC, worker_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.WorkerID, &f.WorkerName, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// IDs returns the set of bookmarked worker ids.
func (r *FavoriteRepo) IDs(ctx context.Context) (map[string]bool, error) {
	favs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(favs))
	for _, f := range favs {
		out[f.WorkerID] = true
	}
	return out, nil
}
