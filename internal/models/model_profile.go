package models

import "time"

type Profile struct {
	ID            string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID        string    `gorm:"column:user_id;type:varchar(36);not null;uniqueIndex" json:"userId"`
	PartnerName   string    `gorm:"column:partner_name;type:varchar(255)" json:"partnerName"`
	MoodToday     string    `gorm:"column:mood_today;type:varchar(255)" json:"moodToday"`
	DarinessLevel int       `gorm:"column:dariness_level;not null;default:5" json:"darinessLevel"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Profile) TableName() string {
	return "profiles"
}
