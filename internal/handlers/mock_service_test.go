package handlers

import (
	"context"
	"net/http"

	"transit_dashboard/internal/models"
	"transit_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID  int
	signUpErr error

	signInIdentity models.Identity
	signInErr      error

	issueToken string
	issueErr   error

	// sessions maps cookie values to identities accepted by ParseSession.
	sessions map[string]models.Identity

	currentUser *models.User
	currentErr  error

	lastSignUpUsername string
	lastSignUpPassword string
	lastSignInUsername string
	lastSignInPassword string
	lastIssued         models.Identity
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) SignIn(_ context.Context, username, password string) (models.Identity, error) {
	m.lastSignInUsername = username
	m.lastSignInPassword = password
	return m.signInIdentity, m.signInErr
}

func (m *mockAuth) CurrentUser(_ context.Context, _ int) (*models.User, error) {
	return m.currentUser, m.currentErr
}

func (m *mockAuth) IssueSession(id models.Identity) (string, error) {
	m.lastIssued = id
	return m.issueToken, m.issueErr
}

func (m *mockAuth) ParseSession(token string) (models.Identity, error) {
	if id, ok := m.sessions[token]; ok {
		return id, nil
	}
	return models.Identity{}, service.ErrInvalidSession
}

type mockFavourites struct {
	list    []models.Favourite
	listErr error

	addCreated bool
	addErr     error
	addCalls   int
	lastAdd    models.Favourite

	removeErr    error
	removeCalls  int
	lastRemoveID int
	lastRemoveBy int
}

func (m *mockFavourites) AddFavourite(_ context.Context, userID int, stopID, stopName string) (bool, error) {
	m.addCalls++
	m.lastAdd = models.Favourite{UserID: userID, StopID: stopID, StopName: stopName}
	return m.addCreated, m.addErr
}

func (m *mockFavourites) ListFavourites(_ context.Context, _ int) ([]models.Favourite, error) {
	return m.list, m.listErr
}

func (m *mockFavourites) RemoveFavourite(_ context.Context, favID, userID int) error {
	m.removeCalls++
	m.lastRemoveID = favID
	m.lastRemoveBy = userID
	return m.removeErr
}

type mockDepartures struct {
	resp  []models.Departure
	calls []string
}

func (m *mockDepartures) GetDepartures(_ context.Context, stopIDs string) []models.Departure {
	m.calls = append(m.calls, stopIDs)
	if m.resp == nil {
		return []models.Departure{}
	}
	return m.resp
}

type mockStops struct {
	stops []models.Stop
}

func (m *mockStops) ListStops() []models.Stop { return m.stops }

// ---- Shared Test Helpers ----

const testToken = "valid-session"

var testIdentity = models.Identity{UserID: 7, Username: "alice"}

// newTestService returns a service whose auth mock accepts testToken.
func newTestService() (*service.Service, *mockAuth, *mockFavourites, *mockDepartures) {
	auth := &mockAuth{sessions: map[string]models.Identity{testToken: testIdentity}}
	favs := &mockFavourites{}
	deps := &mockDepartures{}
	s := &service.Service{
		Authorization: auth,
		Favourites:    favs,
		Departures:    deps,
		Stops:         &mockStops{stops: []models.Stop{{ID: "4111,4116", Name: "Karlsplatz"}}},
	}
	return s, auth, favs, deps
}

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts...)
	return h.InitRoutes()
}

func withSession(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	return req
}
