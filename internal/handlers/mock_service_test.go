package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"poolpump/internal/models"
	"poolpump/internal/service"
)

// Hand-rolled mocks for the service interfaces, one per surface.

type mockControl struct {
	runStates []bool
	stopCalls int
	applied   []service.ControlParams
	err       error
}

func (m *mockControl) Run(ctx context.Context, state bool) error {
	if m.err != nil {
		return m.err
	}
	m.runStates = append(m.runStates, state)
	return nil
}

func (m *mockControl) Stop(ctx context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.stopCalls++
	return nil
}

func (m *mockControl) Apply(ctx context.Context, p service.ControlParams) error {
	if m.err != nil {
		return m.err
	}
	m.applied = append(m.applied, p)
	return nil
}

type mockMonitoring struct {
	status    models.PumpStatus
	config    models.PumpConfig
	statusErr error
	configErr error
}

func (m *mockMonitoring) Status(ctx context.Context) (models.PumpStatus, error) {
	return m.status, m.statusErr
}

func (m *mockMonitoring) Config(ctx context.Context) (models.PumpConfig, error) {
	return m.config, m.configErr
}

type mockPrograms struct {
	applied []service.ProgramParams
	err     error
}

func (m *mockPrograms) Apply(ctx context.Context, p service.ProgramParams) error {
	if m.err != nil {
		return m.err
	}
	m.applied = append(m.applied, p)
	return nil
}

type mockEventLog struct {
	filter service.LogFilter
	events []models.PumpEvent
	err    error
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.PumpEvent, error) {
	m.filter = f
	return m.events, m.err
}

type mockAuth struct {
	signUpID    int
	signUpErr   error
	token       string
	tokenErr    error
	parsedID    int
	parseErr    error
	parsedToken string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	return m.token, m.tokenErr
}

func (m *mockAuth) ParseToken(accessToken string) (int, error) {
	m.parsedToken = accessToken
	return m.parsedID, m.parseErr
}

// testMocks bundles all mocks behind one Service aggregate.
type testMocks struct {
	control    *mockControl
	monitoring *mockMonitoring
	programs   *mockPrograms
	eventLog   *mockEventLog
	auth       *mockAuth
}

func newTestRouter(t *testing.T) (*gin.Engine, *testMocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := &testMocks{
		control:    &mockControl{},
		monitoring: &mockMonitoring{},
		programs:   &mockPrograms{},
		eventLog:   &mockEventLog{},
		auth:       &mockAuth{},
	}
	services := &service.Service{
		Control:       m.control,
		Monitoring:    m.monitoring,
		Programs:      m.programs,
		EventLog:      m.eventLog,
		Authorization: m.auth,
	}
	h := NewHandler(services, nil, t.TempDir())
	return h.InitRoutes(), m
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}
