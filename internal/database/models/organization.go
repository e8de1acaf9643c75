package models

// Subscription plans an organization can move to from the default free tier.
const (
	PlanFree       = "free"
	PlanStarter    = "starter"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// Subscription statuses. "none" until a plan is selected.
const (
	SubscriptionNone   = "none"
	SubscriptionActive = "active"
)

type Organization struct {
	Base
	Name               string `gorm:"not null" json:"name"`
	BusinessType       string `json:"business_type"`
	CEP                string `json:"cep"`
	Phone              string `json:"phone"`
	Plan               string `gorm:"default:'free'" json:"plan"`
	SubscriptionStatus string `gorm:"default:'none'" json:"subscription_status"`

	// Relationships
	Users []User `gorm:"foreignKey:OrganizationID" json:"-"`
}

func (Organization) TableName() string {
	return "organizations"
}
