package repository

import (
	"context"
	"database/sql"
	"errors"

	"transit_dashboard/internal/models"
)

// ErrUserExists is returned when the username is already taken.
var ErrUserExists = errors.New("user already exists")

type Users interface {
	Create(ctx context.Context, username, password string) (int, error)
	GetByCredentials(ctx context.Context, username, password string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

type Favourites interface {
	Add(ctx context.Context, userID int, stopID, stopName string) (bool, error)
	ListByUser(ctx context.Context, userID int) ([]models.Favourite, error)
	Remove(ctx context.Context, favID, userID int) error
}

type Repository struct {
	Users      Users
	Favourites Favourites
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:      NewUserRepository(db),
		Favourites: NewFavouriteRepository(db),
	}
}
