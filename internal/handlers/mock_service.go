package handlers

import (
	"context"
	"net/http"

	"tasktracker/internal/models"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID    int
	signUpToken string
	signUpErr   error
	signInToken string
	signInErr   error
	authID      int
	authErr     error
	logoutErr   error

	lastSignUpUsername string
	lastSignUpPassword string
	lastSignUpConfirm  string
	lastSignInUsername string
	lastSignInPassword string
	lastAuthToken      string
	lastLogoutToken    string
}

func (m *mockAuth) SignUp(_ context.Context, username, password, confirm string) (int, string, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	m.lastSignUpConfirm = confirm
	return m.signUpID, m.signUpToken, m.signUpErr
}
func (m *mockAuth) SignIn(_ context.Context, username, password string) (string, error) {
	m.lastSignInUsername = username
	m.lastSignInPassword = password
	return m.signInToken, m.signInErr
}
func (m *mockAuth) Authenticate(_ context.Context, token string) (int, error) {
	m.lastAuthToken = token
	return m.authID, m.authErr
}
func (m *mockAuth) Logout(_ context.Context, token string) error {
	m.lastLogoutToken = token
	return m.logoutErr
}

type mockTasks struct {
	createTask   models.Task
	createErr    error
	listResp     []models.Task
	listErr      error
	updateTask   models.Task
	updateErr    error
	deleteErr    error
	bulkDeleted  int
	bulkErr      error
	lastCreate   service.NewTask
	lastUpdateID int
	lastUpdate   service.TaskUpdate
	lastDeleteID int
	lastBulkIDs  []int
	createCalls  int
	updateCalls  int
	deleteCalls  int
	bulkCalls    int
}

func (m *mockTasks) Create(_ context.Context, in service.NewTask) (models.Task, error) {
	m.createCalls++
	m.lastCreate = in
	return m.createTask, m.createErr
}
func (m *mockTasks) List(_ context.Context) ([]models.Task, error) {
	return m.listResp, m.listErr
}
func (m *mockTasks) Update(_ context.Context, id int, in service.TaskUpdate) (models.Task, error) {
	m.updateCalls++
	m.lastUpdateID = id
	m.lastUpdate = in
	return m.updateTask, m.updateErr
}
func (m *mockTasks) Delete(_ context.Context, id int) error {
	m.deleteCalls++
	m.lastDeleteID = id
	return m.deleteErr
}
func (m *mockTasks) BulkDelete(_ context.Context, ids []int) (int, error) {
	m.bulkCalls++
	m.lastBulkIDs = ids
	return m.bulkDeleted, m.bulkErr
}

type mockUsers struct {
	resp []models.User
	err  error
}

func (m *mockUsers) List(_ context.Context) ([]models.User, error) {
	return m.resp, m.err
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
