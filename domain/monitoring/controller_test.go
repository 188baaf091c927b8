package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeCache struct {
	err error
}

func (f *fakeCache) Ping(context.Context) error {
	return f.err
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	return db, mock
}

func newTestServer(t *testing.T, db *gorm.DB, cache Cache) *httptest.Server {
	t.Helper()

	logger := log.NewLogger(io.Discard, slog.LevelDebug)
	rs := router.CreateRouterService(logger, nil, &router.RouterConfig{
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(NewMonitoringControllerFactory(db, logger, cache, "noop").CreateController())

	server := httptest.NewServer(rs.GetEngine())
	t.Cleanup(server.Close)
	return server
}

func getHealth(t *testing.T, url string) (int, HealthStatus) {
	t.Helper()

	resp, err := http.Get(url + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Data HealthStatus `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body.Data
}

func TestHealthCheck_AllHealthy(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectPing()

	server := newTestServer(t, db, &fakeCache{})

	code, status := getHealth(t, server.URL)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, status.Database)
	assert.Equal(t, 1, status.Cache)
	assert.Equal(t, "noop", status.Notifications)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	server := newTestServer(t, db, nil)

	code, status := getHealth(t, server.URL)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, 0, status.Database)
	assert.Equal(t, 0, status.Cache)
}

func TestHealthCheck_CacheDownIsNotFatal(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectPing()

	server := newTestServer(t, db, &fakeCache{err: errors.New("redis down")})

	code, status := getHealth(t, server.URL)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, status.Database)
	assert.Equal(t, 0, status.Cache)
}

func TestMonitorRoot(t *testing.T) {
	db, _ := newMockDB(t)
	server := newTestServer(t, db, nil)

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
