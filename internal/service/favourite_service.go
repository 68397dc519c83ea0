package service

import (
	"context"
	"errors"
	"strings"

	"transit_dashboard/internal/models"
	"transit_dashboard/internal/repository"
	"transit_dashboard/internal/stops"
)

var ErrEmptyStopID = errors.New("stop_id must not be empty")

type FavouriteService struct {
	repo repository.Favourites
}

func NewFavouriteService(repo repository.Favourites) *FavouriteService {
	return &FavouriteService{repo: repo}
}

// AddFavourite reports true when created and false when the stop was already saved.
// A blank name is taken from the stop catalogue, or the id when the stop is unknown.
func (s *FavouriteService) AddFavourite(ctx context.Context, userID int, stopID, stopName string) (bool, error) {
	stopID = strings.TrimSpace(stopID)
	if stopID == "" {
		return false, ErrEmptyStopID
	}
	if strings.TrimSpace(stopName) == "" {
		stopName = stopID
		if known, ok := stops.Lookup(stopID); ok {
			stopName = known.Name
		}
	}
	return s.repo.Add(ctx, userID, stopID, stopName)
}

func (s *FavouriteService) ListFavourites(ctx context.Context, userID int) ([]models.Favourite, error) {
	return s.repo.ListByUser(ctx, userID)
}

// RemoveFavourite is scoped to the owner; anything else is a silent no-op.
func (s *FavouriteService) RemoveFavourite(ctx context.Context, favID, userID int) error {
	return s.repo.Remove(ctx, favID, userID)
}
