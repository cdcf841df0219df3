package models

import "time"

// User is an account able to log into the dashboard. Users are created by the
// first approved sale for an email, or by an operator, and are never deleted.
type User struct {
	ID    string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Email string `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	Name  string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	// PasswordHash is a bcrypt hash and never leaves the service layer.
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
