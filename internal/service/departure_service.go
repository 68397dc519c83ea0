package service

import (
	"context"
	"strings"

	"transit_dashboard/internal/models"
	"transit_dashboard/internal/stops"
)

// DepartureFetcher is satisfied by *wienerlinien.Client.
type DepartureFetcher interface {
	GetDepartures(ctx context.Context, stopIDs string) []models.Departure
}

type DepartureService struct {
	fetcher DepartureFetcher
}

func NewDepartureService(fetcher DepartureFetcher) *DepartureService {
	return &DepartureService{fetcher: fetcher}
}

// GetDepartures skips the upstream call for blank input.
func (s *DepartureService) GetDepartures(ctx context.Context, stopIDs string) []models.Departure {
	if strings.TrimSpace(stopIDs) == "" || s.fetcher == nil {
		return []models.Departure{}
	}
	deps := s.fetcher.GetDepartures(ctx, stopIDs)
	if deps == nil {
		return []models.Departure{}
	}
	return deps
}

type StopService struct{}

func NewStopService() *StopService { return &StopService{} }

func (StopService) ListStops() []models.Stop { return stops.All() }
