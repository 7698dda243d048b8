package models

import (
	"time"
)

// Recognised roles. The field is free text and never consulted for authorization.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

type User struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	Username             string    `json:"username" gorm:"size:255;uniqueIndex;not null"`
	Email                string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password             string    `json:"-" gorm:"size:255;not null"`
	EmailValidated       bool      `json:"email_validated" gorm:"not null;default:false"`
	NotificationsEnabled bool      `json:"notifications_enabled" gorm:"not null;default:false"`
	VerificationCode     *string   `json:"-" gorm:"size:10"`
	Rollover             bool      `json:"rollover" gorm:"not null;default:false"`
	Role                 string    `json:"role" gorm:"size:255;not null;default:User"`
	CreatedAt            time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
