// Package messages implements the channel message feed: ordered
// history, posting, and moderator pinning. Operations with side effects
// return typed errors so callers can tell a permission failure from a
// validation failure or a missing record.
package messages

import (
	"errors"
	"strings"

	"github.com/vahc/jambohub/pkg/jambohub/access"
	"github.com/vahc/jambohub/pkg/jambohub/models"
	"gorm.io/gorm"
)

var (
	ErrAccessDenied    = errors.New("access denied")
	ErrChannelNotFound = errors.New("channel not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrEmptyMessage    = errors.New("message must have text or an image")
)

// Feed provides the message operations for a channel log.
type Feed struct {
	db *gorm.DB
}

// NewFeed creates a new Feed
func NewFeed(db *gorm.DB) *Feed {
	return &Feed{db: db}
}

// Channel loads a channel by ID
func (f *Feed) Channel(channelID uint) (*models.Channel, error) {
	var channel models.Channel
	if err := f.db.First(&channel, channelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return &channel, nil
}

// List returns all messages in the channel ordered by creation time,
// with message ID as the tie-break so equal timestamps still yield a
// deterministic total order. Access goes through the directory rule:
// role membership plus the unit match for unit channels.
func (f *Feed) List(user *models.User, channelID uint) ([]models.Message, error) {
	channel, err := f.Channel(channelID)
	if err != nil {
		return nil, err
	}

	if !access.CanAccess(user, channel) {
		return nil, ErrAccessDenied
	}

	var msgs []models.Message
	if err := f.db.Preload("Author").
		Where("channel_id = ?", channelID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// Post appends a message to the channel log. The message must carry
// text or an image; the server assigns the timestamp and new messages
// are never born pinned.
func (f *Feed) Post(user *models.User, channelID uint, content, imageURL string) (*models.Message, error) {
	channel, err := f.Channel(channelID)
	if err != nil {
		return nil, err
	}

	if !access.CanPost(user, channel) {
		return nil, ErrAccessDenied
	}

	content = strings.TrimSpace(content)
	if content == "" && imageURL == "" {
		return nil, ErrEmptyMessage
	}

	msg := &models.Message{
		ChannelID: channelID,
		AuthorID:  user.ID,
		Content:   content,
		ImageURL:  imageURL,
	}
	if err := f.db.Create(msg).Error; err != nil {
		return nil, err
	}

	msg.Author = *user
	return msg, nil
}

// TogglePin flips the pinned bit on a message. No locking: concurrent
// toggles both succeed and the last write wins.
func (f *Feed) TogglePin(user *models.User, messageID uint) (*models.Message, error) {
	if !access.CanModerate(user) {
		return nil, ErrAccessDenied
	}

	var msg models.Message
	if err := f.db.First(&msg, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	msg.Pinned = !msg.Pinned
	if err := f.db.Model(&msg).Update("pinned", msg.Pinned).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
