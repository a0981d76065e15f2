package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newHealthHandler wires a HealthHandler to a sqlmock-backed gorm connection
// so ping failures can be simulated.
func newHealthHandler(t *testing.T) (*HealthHandler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// gorm pings once on Open
	mock.ExpectPing()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       db,
		DriverName: "postgres",
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewHealthHandler(gormDB), mock
}

func healthRequest(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHealth_DatabaseUp(t *testing.T) {
	handler, mock := newHealthHandler(t)
	mock.ExpectPing()

	c, rec := healthRequest("/health")
	require.NoError(t, handler.Health(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.Contains(t, rec.Body.String(), `"database":"healthy"`)
}

func TestHealth_DatabaseDown(t *testing.T) {
	handler, mock := newHealthHandler(t)
	mock.ExpectPing().WillReturnError(sql.ErrConnDone)

	c, rec := healthRequest("/health")
	require.NoError(t, handler.Health(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
	assert.Contains(t, rec.Body.String(), `"database":"unhealthy"`)
}

func TestReady_DatabaseUp(t *testing.T) {
	handler, mock := newHealthHandler(t)
	mock.ExpectPing()

	c, rec := healthRequest("/ready")
	require.NoError(t, handler.Ready(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)
}

func TestReady_DatabaseDown(t *testing.T) {
	handler, mock := newHealthHandler(t)
	mock.ExpectPing().WillReturnError(sql.ErrConnDone)

	c, rec := healthRequest("/ready")
	require.NoError(t, handler.Ready(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"not ready"`)
	assert.Contains(t, rec.Body.String(), `"reason":"database ping failed"`)
}
