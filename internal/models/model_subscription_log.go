package models

import (
	"time"

	"github.com/lovelyapp/backend/pkg/types"
	"gorm.io/datatypes"
)

// SubscriptionLog records every subscription write for troubleshooting.
type SubscriptionLog struct {
	ID       string                         `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID   string                         `gorm:"column:user_id;type:varchar(36);index;not null" json:"userId"`
	SaleCode string                         `gorm:"column:sale_code;type:varchar(128)" json:"saleCode"`
	Reason   types.SubscriptionChangeReason `gorm:"column:reason;type:varchar(64);not null" json:"reason"`
	// Before is nil for the first purchase.
	Before    datatypes.JSONType[*Subscription] `gorm:"column:before" json:"before"`
	After     datatypes.JSONType[*Subscription] `gorm:"column:after" json:"after"`
	CreatedAt time.Time                         `json:"createdAt"`
}

func (SubscriptionLog) TableName() string {
	return "subscription_logs"
}
