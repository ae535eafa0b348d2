package handlers

import (
	"context"
	"net/http"
	"time"

	"heater_control/internal/controller"
	"heater_control/internal/models"
	"heater_control/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockControl struct {
	startErr    error
	stopErr     error
	startCalled int
	stopCalled  int
}

func (m *mockControl) Start(ctx context.Context) error {
	m.startCalled++
	return m.startErr
}
func (m *mockControl) Stop(ctx context.Context) error {
	m.stopCalled++
	return m.stopErr
}

type mockMonitoring struct {
	state models.HeaterState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.HeaterState, error) {
	return m.state, m.err
}

type mockEventLog struct {
	resp     []models.ControlEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ControlEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func testControllerConfig() controller.Config {
	return controller.Config{
		TargetC:           40.0,
		HysteresisC:       2.0,
		OverheatC:         50.0,
		StabilizingMillis: 5000,
	}
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, testControllerConfig(), nil)
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
