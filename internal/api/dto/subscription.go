package dto

import "github.com/zenflow/backend/internal/database/models"

type SelectPlanRequest struct {
	Plan string `json:"plan"`
}

type SelectPlanResponse struct {
	Message      string               `json:"message"`
	Organization *models.Organization `json:"organization"`
}
