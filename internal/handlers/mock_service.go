package handlers

import (
	"context"
	"net/http"

	"useradmin/internal/models"
	"useradmin/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	loginToken  string
	loginUserID int
	loginErr    error
	parseID     int
	parseErr    error
	logoutErr   error
	seedErr     error
	countN      int
	countErr    error

	lastLoginUsername string
	lastLoginPassword string
	lastLoginRemember bool
	lastParseToken    string
	lastLogoutToken   string
	logoutCalls       int
}

func (m *mockAuth) Login(_ context.Context, username, password string, rememberMe bool) (string, int, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	m.lastLoginRemember = rememberMe
	return m.loginToken, m.loginUserID, m.loginErr
}

func (m *mockAuth) ParseToken(_ context.Context, accessToken string) (int, error) {
	m.lastParseToken = accessToken
	return m.parseID, m.parseErr
}

func (m *mockAuth) Logout(_ context.Context, accessToken string) error {
	m.logoutCalls++
	m.lastLogoutToken = accessToken
	return m.logoutErr
}

func (m *mockAuth) ActiveCount(_ context.Context) (int, error) {
	return m.countN, m.countErr
}

func (m *mockAuth) SeedAdmin(_ context.Context, _, _ string) error {
	return m.seedErr
}

type mockUsers struct {
	listResp  []models.User
	listErr   error
	getResp   models.User
	getErr    error
	createID  int
	createErr error
	updateErr error
	deleteErr error

	lastGetID     int
	lastCreate    service.CreateUserInput
	lastUpdateID  int
	lastUpdate    service.UpdateUserInput
	lastDeleteID  int
	createCalls   int
	updateCalls   int
	deleteCalls   int
}

func (m *mockUsers) List(_ context.Context) ([]models.User, error) {
	return m.listResp, m.listErr
}

func (m *mockUsers) GetByID(_ context.Context, id int) (models.User, error) {
	m.lastGetID = id
	return m.getResp, m.getErr
}

func (m *mockUsers) Create(_ context.Context, in service.CreateUserInput) (int, error) {
	m.createCalls++
	m.lastCreate = in
	return m.createID, m.createErr
}

func (m *mockUsers) Update(_ context.Context, id int, in service.UpdateUserInput) error {
	m.updateCalls++
	m.lastUpdateID = id
	m.lastUpdate = in
	return m.updateErr
}

func (m *mockUsers) Delete(_ context.Context, id int) error {
	m.deleteCalls++
	m.lastDeleteID = id
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
