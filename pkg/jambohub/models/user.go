package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the contingent roster
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `json:"-"`
	Role         Role           `gorm:"type:varchar(20);not null;default:'youth'" json:"role"`

	// Unit the user belongs to, e.g. "Troop 123" or "Crew 22".
	// A dangling unit name (unit deleted after assignment) is tolerated.
	Unit string `gorm:"index" json:"unit,omitempty"`

	// Roster detail carried opaquely; not consulted by access control.
	Username              string `gorm:"index" json:"username,omitempty"`
	Position              string `json:"position,omitempty"`
	Patrol                string `json:"patrol,omitempty"`
	Phone                 string `json:"phone,omitempty"`
	Age                   string `json:"age,omitempty"`
	Gender                string `json:"gender,omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty"`

	Active          bool `gorm:"default:true" json:"active"`
	PasswordChanged bool `gorm:"default:false" json:"password_changed"`

	// Blanket opt-in for email delivery; ANDed with the channel flag
	// by the notification dispatcher.
	EmailNotifications bool `gorm:"default:true" json:"email_notifications"`

	Messages []Message `gorm:"foreignKey:AuthorID" json:"-"`
}
