package service

import (
	"context"

	"transit_dashboard/internal/models"
	"transit_dashboard/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	SignIn(ctx context.Context, username, password string) (models.Identity, error)
	CurrentUser(ctx context.Context, userID int) (*models.User, error)
	IssueSession(id models.Identity) (string, error)
	ParseSession(token string) (models.Identity, error)
}

// Favourites manages a user's saved stops.
type Favourites interface {
	AddFavourite(ctx context.Context, userID int, stopID, stopName string) (bool, error)
	ListFavourites(ctx context.Context, userID int) ([]models.Favourite, error)
	RemoveFavourite(ctx context.Context, favID, userID int) error
}

// Departures returns real-time departures. It never fails; upstream problems
// produce an empty list.
type Departures interface {
	GetDepartures(ctx context.Context, stopIDs string) []models.Departure
}

// Stops exposes the static stop catalogue.
type Stops interface {
	ListStops() []models.Stop
}

type Service struct {
	Authorization
	Favourites
	Departures
	Stops
}

// NewService wires repositories and the departures fetcher into the services.
func NewService(repos *repository.Repository, fetcher DepartureFetcher, session SessionConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, session),
		Favourites:    NewFavouriteService(repos.Favourites),
		Departures:    NewDepartureService(fetcher),
		Stops:         NewStopService(),
	}
}
