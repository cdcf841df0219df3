package models

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookLog is written for every inbound provider call before any side
// effect, then updated with the processing outcome.
type WebhookLog struct {
	ID       string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Provider string `gorm:"column:provider;type:varchar(32);not null" json:"provider"`
	TraceID  string `gorm:"column:trace_id;type:varchar(128)" json:"traceId"`
	Token    string `gorm:"column:token;type:varchar(255)" json:"token"`
	SaleCode string `gorm:"column:sale_code;type:varchar(128);index" json:"saleCode"`
	// Status is the raw sale_status_enum.
	Status    int            `gorm:"column:status" json:"status"`
	Event     string         `gorm:"column:event;type:varchar(64)" json:"event"`
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload"`
	Processed bool           `gorm:"column:processed;not null;default:false;index" json:"processed"`
	Error     *string        `gorm:"column:error;type:text" json:"error"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (WebhookLog) TableName() string {
	return "webhook_logs"
}
