package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"heatman/internal/models"
	"heatman/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ---- Service Mocks ----

type mockHeater struct {
	status    models.HeaterStatus
	statusErr error
	cfg       models.HeaterConfig
	updateErr error

	lastInclude bool
	lastUpdate  *models.HeaterConfig
	updateCalls int
}

func (m *mockHeater) Status(ctx context.Context, includeConfig bool) (models.HeaterStatus, error) {
	m.lastInclude = includeConfig
	st := m.status
	if includeConfig {
		cfg := m.cfg
		st.Config = &cfg
	}
	return st, m.statusErr
}

func (m *mockHeater) Config() models.HeaterConfig { return m.cfg }

func (m *mockHeater) UpdateConfig(ctx context.Context, cfg models.HeaterConfig) (models.HeaterConfig, error) {
	m.updateCalls++
	if m.updateErr != nil {
		return models.HeaterConfig{}, m.updateErr
	}
	if err := cfg.Validate(); err != nil {
		return models.HeaterConfig{}, err
	}
	m.lastUpdate = &cfg
	m.cfg = cfg
	return cfg, nil
}

type mockController struct {
	mu   sync.Mutex
	snap models.Snapshot
}

func (m *mockController) Snapshot() models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

func (m *mockController) set(s models.Snapshot) {
	m.mu.Lock()
	m.snap = s
	m.mu.Unlock()
}

// ---- Shared Test Helpers ----

const testSecret = "test-secret"

func newTestRouter(s *service.Service, opts Options) *gin.Engine {
	h := NewHandler(s, nil, opts)
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

func signToken(secret, subject string, ttl time.Duration) string {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return s
}
