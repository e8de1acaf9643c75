package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zenflow/backend/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrInvalidPlan          = errors.New("invalid plan")
	ErrOrganizationNotFound = errors.New("organization not found")
)

// selectablePlans are the tiers an organization may move to. The free tier
// is the default and cannot be selected explicitly.
var selectablePlans = map[string]bool{
	models.PlanStarter:    true,
	models.PlanPro:        true,
	models.PlanEnterprise: true,
}

func IsValidPlan(plan string) bool {
	return selectablePlans[plan]
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SelectPlan moves the organization to the requested plan and marks the
// subscription active. The organization id must come from verified session
// claims, never from the request body, so a tenant can only mutate itself.
func (s *Service) SelectPlan(ctx context.Context, orgID uuid.UUID, plan string) (*models.Organization, error) {
	if !IsValidPlan(plan) {
		return nil, ErrInvalidPlan
	}

	res := s.db.WithContext(ctx).
		Model(&models.Organization{}).
		Where("id = ?", orgID).
		Updates(map[string]interface{}{
			"plan":                plan,
			"subscription_status": models.SubscriptionActive,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrOrganizationNotFound
	}

	var org models.Organization
	if err := s.db.WithContext(ctx).First(&org, "id = ?", orgID).Error; err != nil {
		return nil, err
	}
	return &org, nil
}
