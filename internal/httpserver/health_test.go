package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"inkscan/internal/monitor"
	"inkscan/internal/note"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

type stubProcessor struct{}

func (stubProcessor) ProcessFile(ctx context.Context, path string) (note.ProcessOutput, error) {
	return note.ProcessOutput{}, nil
}

type stubStateStore struct{}

func (stubStateStore) Load() (monitor.State, error) { return monitor.State{}, nil }
func (stubStateStore) Save(monitor.State) error     { return nil }

// ── Helpers ────────────────────────────────────────────────────────────────

func newTestServer(t *testing.T, mon *monitor.Monitor) *HTTPServer {
	t.Helper()
	srv, err := New(&mockLogger{}, Config{
		Logger:  &mockLogger{},
		Port:    8080,
		Mode:    gin.TestMode,
		Monitor: mon,
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func newStoppedMonitor(t *testing.T) *monitor.Monitor {
	t.Helper()
	mon, err := monitor.New(&mockLogger{}, monitor.Config{WatchFolder: t.TempDir()}, monitor.Deps{
		Processor: stubProcessor{},
		State:     stubStateStore{},
	})
	if err != nil {
		t.Fatalf("new monitor: %v", err)
	}
	return mon
}

func record(srv *HTTPServer, handle gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handle(c)
	return w
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestHealthChecks(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Health", func(t *testing.T) {
		srv := newTestServer(t, nil)
		w := record(srv, srv.healthCheck)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"healthy"`) {
			t.Errorf("body = %s, want healthy status", w.Body.String())
		}
	})

	t.Run("Live", func(t *testing.T) {
		srv := newTestServer(t, nil)
		w := record(srv, srv.liveCheck)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})

	t.Run("Ready Without Monitor", func(t *testing.T) {
		srv := newTestServer(t, nil)
		w := record(srv, srv.readyCheck)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"ready"`) {
			t.Errorf("body = %s, want ready status", w.Body.String())
		}
	})

	t.Run("Ready Fails With Stopped Monitor", func(t *testing.T) {
		srv := newTestServer(t, newStoppedMonitor(t))
		w := record(srv, srv.readyCheck)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", w.Code)
		}
		if !strings.Contains(w.Body.String(), "monitor is not running") {
			t.Errorf("body = %s, want monitor-down message", w.Body.String())
		}
	})

	t.Run("Ready With Running Monitor", func(t *testing.T) {
		mon := newStoppedMonitor(t)
		if err := mon.Start(context.Background()); err != nil {
			t.Fatalf("start monitor: %v", err)
		}
		t.Cleanup(mon.Stop)

		srv := newTestServer(t, mon)
		w := record(srv, srv.readyCheck)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})
}
