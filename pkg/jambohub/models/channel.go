package models

import (
	"time"

	"gorm.io/gorm"
)

// ChannelType represents the kind of channel
type ChannelType string

const (
	ChannelTypePublic     ChannelType = "public"
	ChannelTypeUnit       ChannelType = "unit"
	ChannelTypeLeadership ChannelType = "leadership"
	ChannelTypeParent     ChannelType = "parent"
)

// Valid reports whether the channel type is one of the closed enumeration
func (t ChannelType) Valid() bool {
	switch t {
	case ChannelTypePublic, ChannelTypeUnit, ChannelTypeLeadership, ChannelTypeParent:
		return true
	}
	return false
}

// ChannelTypes returns the display order of channel type buckets
func ChannelTypes() []ChannelType {
	return []ChannelType{ChannelTypePublic, ChannelTypeUnit, ChannelTypeLeadership, ChannelTypeParent}
}

// Channel represents a message stream with role-based read/post lists
type Channel struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description,omitempty"`
	Icon        string         `gorm:"default:'📢'" json:"icon"`
	Type        ChannelType    `gorm:"type:varchar(20);not null;default:'public'" json:"type"`

	// Unit this channel belongs to; set only for unit channels.
	Unit string `gorm:"index" json:"unit,omitempty"`

	// Roles that may read and post. CanPostRoles must be a subset of
	// AllowedRoles; enforced on channel writes, not by the schema.
	AllowedRoles RoleList `gorm:"not null;default:'admin,adult_leader,youth,parent'" json:"allowed_roles"`
	CanPostRoles RoleList `gorm:"not null;default:'admin,adult_leader'" json:"can_post_roles"`

	// Broadcast flags consulted by the notification dispatcher.
	EmailNotifications bool `gorm:"default:true" json:"email_notifications"`
	PushNotifications  bool `gorm:"default:true" json:"push_notifications"`

	Active bool `gorm:"default:true" json:"active"`

	Messages []Message `gorm:"foreignKey:ChannelID" json:"-"`
}
