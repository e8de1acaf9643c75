package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenflow/backend/internal/api/dto"
	"github.com/zenflow/backend/internal/api/handlers"
	"github.com/zenflow/backend/internal/api/middleware"
	"github.com/zenflow/backend/internal/database/models"
	"github.com/zenflow/backend/internal/subscription"
	"github.com/zenflow/backend/internal/testutil"
)

func setupSubscriptionTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup) {
	t.Helper()

	tc := testutil.NewTestContext(t)

	service := subscription.NewService(tc.DB)
	handler := handlers.NewSubscriptionHandler(service)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tc.JWTService, discardLogger()))
		r.Post("/api/subscription/select", handler.SelectPlan)
	})

	return r, tc
}

func TestSubscriptionHandler_SelectPlan(t *testing.T) {
	router, tc := setupSubscriptionTestRouter(t)
	defer tc.Cleanup()

	t.Run("selects a plan and activates the subscription", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/subscription/select",
			map[string]string{"plan": "pro"}, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp dto.SelectPlanResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		require.NotNil(t, resp.Organization)
		assert.Equal(t, models.PlanPro, resp.Organization.Plan)
		assert.Equal(t, models.SubscriptionActive, resp.Organization.SubscriptionStatus)
		assert.Equal(t, tc.Org.ID, resp.Organization.ID)
	})

	t.Run("invalid plan leaves organization unchanged", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/subscription/select",
			map[string]string{"plan": "ultra"}, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)

		var org models.Organization
		require.NoError(t, tc.DB.First(&org, "id = ?", tc.Org.ID).Error)
		assert.Equal(t, models.PlanPro, org.Plan) // from the previous subtest
	})

	t.Run("missing token", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "POST", "/api/subscription/select",
			map[string]string{"plan": "pro"})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("expired token", func(t *testing.T) {
		shortLived := testutil.CreateTestJWTServiceWithExpiry(time.Millisecond)
		token := testutil.GenerateTestToken(t, shortLived, tc.User)
		time.Sleep(10 * time.Millisecond)

		req := testutil.AuthenticatedRequest(t, "POST", "/api/subscription/select",
			map[string]string{"plan": "pro"}, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("organization vanished after token issuance", func(t *testing.T) {
		require.NoError(t, tc.DB.Unscoped().Delete(&models.Organization{}, "id = ?", tc.Org.ID).Error)

		req := testutil.AuthenticatedRequest(t, "POST", "/api/subscription/select",
			map[string]string{"plan": "starter"}, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}
