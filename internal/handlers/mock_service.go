package handlers

import (
	"context"
	"net/http"
	"time"

	"pumpjack_simulator/internal/models"
	"pumpjack_simulator/internal/service"

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

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockPump struct {
	startErr      error
	stopErr       error
	setTargetErr  error
	lastTarget    service.TargetParams
	startCalled   int
	stopCalled    int
	setTargetCall int
}

func (m *mockPump) Start(ctx context.Context) error {
	m.startCalled++
	return m.startErr
}
func (m *mockPump) Stop(ctx context.Context) error {
	m.stopCalled++
	return m.stopErr
}
func (m *mockPump) SetTarget(ctx context.Context, p service.TargetParams) error {
	m.setTargetCall++
	m.lastTarget = p
	return m.setTargetErr
}

type mockMonitoring struct {
	state     models.StoredState
	limits    models.OperatingLimits
	err       error
	limitsErr error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.StoredState, error) {
	return m.state, m.err
}

func (m *mockMonitoring) GetLimits(ctx context.Context) (models.OperatingLimits, error) {
	return m.limits, m.limitsErr
}

type mockEventLog struct {
	resp      []models.PumpEvent
	err       error
	lastFrom  time.Time
	lastTo    time.Time
	lastType  string
	lastLimit int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.PumpEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.lastLimit = f.Limit
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
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
