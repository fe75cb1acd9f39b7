package models

import "time"

// Message represents a single post in a channel. Messages are never
// deleted; the pinned bit is the only in-place mutation.
type Message struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ChannelID uint      `gorm:"not null;index" json:"channel_id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`

	// Content may be empty when an image is attached, never both absent.
	Content  string `gorm:"type:text" json:"content"`
	ImageURL string `json:"image_url,omitempty"`

	Pinned bool `gorm:"default:false" json:"pinned"`

	Author  User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Channel Channel `gorm:"foreignKey:ChannelID" json:"-"`
}
