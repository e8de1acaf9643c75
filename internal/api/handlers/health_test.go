package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenflow/backend/internal/api/dto"
	"github.com/zenflow/backend/internal/api/handlers"
	"github.com/zenflow/backend/internal/testutil"
)

func TestHealthHandler_Health(t *testing.T) {
	t.Run("database only when queue backends are absent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)
		h := handlers.NewHealthHandler(db, nil, nil)

		rr := httptest.NewRecorder()
		h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		testutil.AssertStatus(t, rr, http.StatusOK)
		var resp handlers.HealthResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "healthy", resp.Services["database"])
		assert.NotContains(t, resp.Services, "redis")
		assert.Nil(t, resp.Queues)
	})

	t.Run("closed database reports unhealthy", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		h := handlers.NewHealthHandler(db, nil, nil)
		rr := httptest.NewRecorder()
		h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		var resp handlers.HealthResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "unhealthy", resp.Services["database"])
	})
}

func TestHealthHandler_Ready(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	h := handlers.NewHealthHandler(db, nil, nil)

	rr := httptest.NewRecorder()
	h.Ready(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp dto.SuccessResponse
	testutil.ParseJSONResponse(t, rr, &resp)
	assert.Equal(t, "ready", resp.Message)
}
