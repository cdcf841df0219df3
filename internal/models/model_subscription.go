package models

import (
	"time"

	"github.com/lovelyapp/backend/pkg/types"
)

// Subscription is the single current plan of a user. The latest approved
// sale overwrites it, including downgrades.
type Subscription struct {
	ID        string                   `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID    string                   `gorm:"column:user_id;type:varchar(36);not null;uniqueIndex" json:"userId"`
	PlanCode  string                   `gorm:"column:plan_code;type:varchar(64);not null" json:"planCode"`
	PlanType  types.PlanType           `gorm:"column:plan_type;type:varchar(32);not null" json:"planType"`
	SaleCode  string                   `gorm:"column:sale_code;type:varchar(128)" json:"saleCode"`
	Status    types.SubscriptionStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	Amount    float64                  `gorm:"column:amount;type:decimal(12,2)" json:"amount"`
	Currency  string                   `gorm:"column:currency;type:varchar(8)" json:"currency"`
	StartDate time.Time                `gorm:"column:start_date" json:"startDate"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) Active() bool {
	return s != nil && s.Status == types.SubscriptionStatusActive
}
