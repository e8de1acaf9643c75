package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/zenflow/backend/internal/api/dto"
	"github.com/zenflow/backend/internal/api/middleware"
	"github.com/zenflow/backend/internal/subscription"
)

type SubscriptionHandler struct {
	service *subscription.Service
}

func NewSubscriptionHandler(service *subscription.Service) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// SelectPlan updates the calling organization's plan. The organization id
// comes from the verified token claims, never from the body.
func (h *SubscriptionHandler) SelectPlan(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	orgID := middleware.GetOrganizationID(r.Context())

	org, err := h.service.SelectPlan(r.Context(), orgID, req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrInvalidPlan):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid plan"})
		case errors.Is(err, subscription.ErrOrganizationNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Organization not found"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.SelectPlanResponse{
		Message:      fmt.Sprintf("Plan updated to %s successfully", org.Plan),
		Organization: org,
	})
}
