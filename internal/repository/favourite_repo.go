package repository

import (
	"context"
	"database/sql"
	"fmt"

	"transit_dashboard/internal/models"
)

type FavouriteRepository struct {
	db *sql.DB
}

func NewFavouriteRepository(db *sql.DB) *FavouriteRepository {
	return &FavouriteRepository{db: db}
}

var _ Favourites = (*FavouriteRepository)(nil)

const (
	// Relies on UNIQUE(user_id, stop_id): a duplicate affects zero rows instead of failing.
	insertFavouriteSQL = `
		INSERT INTO favourites (user_id, stop_id, stop_name)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, stop_id) DO NOTHING
	`

	selectFavouritesByUserSQL = `
		SELECT id, user_id, stop_id, stop_name
		FROM favourites WHERE user_id = ?
		ORDER BY id
	`

	deleteFavouriteSQL = `DELETE FROM favourites WHERE id = ? AND user_id = ?`
)

// Add stores a favourite. It reports false without error when the user already
// saved this stop; the existing row is left untouched.
func (r *FavouriteRepository) Add(ctx context.Context, userID int, stopID, stopName string) (bool, error) {
	res, err := r.db.ExecContext(ctx, insertFavouriteSQL, userID, stopID, stopName)
	if err != nil {
		return false, fmt.Errorf("insert favourite user=%d stop=%q: %w", userID, stopID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for favourite user=%d stop=%q: %w", userID, stopID, err)
	}
	return n > 0, nil
}

// ListByUser returns all favourites of a user in insertion order. Never nil.
func (r *FavouriteRepository) ListByUser(ctx context.Context, userID int) ([]models.Favourite, error) {
	rows, err := r.db.QueryContext(ctx, selectFavouritesByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select favourites user=%d: %w", userID, err)
	}
	defer rows.Close()

	favs := make([]models.Favourite, 0)
	for rows.Next() {
		var f models.Favourite
		if err := rows.Scan(&f.ID, &f.UserID, &f.StopID, &f.StopName); err != nil {
			return nil, fmt.Errorf("scan favourite: %w", err)
		}
		favs = append(favs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favourites user=%d: %w", userID, err)
	}
	return favs, nil
}

// Remove deletes the favourite only when it belongs to userID. Deleting
// someone else's or a missing favourite is a silent no-op.
func (r *FavouriteRepository) Remove(ctx context.Context, favID, userID int) error {
	if _, err := r.db.ExecContext(ctx, deleteFavouriteSQL, favID, userID); err != nil {
		return fmt.Errorf("delete favourite id=%d user=%d: %w", favID, userID, err)
	}
	return nil
}
