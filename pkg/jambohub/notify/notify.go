// Package notify decides which posts are broadcast and to whom, and
// delivers email through a pluggable mailer. The per-channel broadcast
// flags and the per-user opt-out are independent conditions: the
// channel flag is answered by ShouldNotify, the user opt-out is part of
// recipient resolution.
package notify

import (
	"fmt"
	"log"

	"github.com/vahc/jambohub/pkg/jambohub/models"
	"gorm.io/gorm"
)

// Kind is a delivery mechanism for notifications
type Kind string

const (
	KindEmail Kind = "email"
	KindPush  Kind = "push"
)

// ShouldNotify reports whether posts to the channel are broadcast over
// the given delivery kind. Pure per-channel flag lookup.
func ShouldNotify(channel *models.Channel, kind Kind) bool {
	if channel == nil {
		return false
	}
	switch kind {
	case KindEmail:
		return channel.EmailNotifications
	case KindPush:
		return channel.PushNotifications
	}
	return false
}

// Recipient is a resolved notification target
type Recipient struct {
	Email string
	Name  string
}

// Mailer delivers notification email
type Mailer interface {
	Send(to Recipient, subject, body string) error
}

// Dispatcher resolves recipients and sends notifications after a post
type Dispatcher struct {
	db     *gorm.DB
	mailer Mailer
}

// NewDispatcher creates a new Dispatcher. A nil mailer disables email
// delivery while recipient resolution stays testable.
func NewDispatcher(db *gorm.DB, mailer Mailer) *Dispatcher {
	return &Dispatcher{db: db, mailer: mailer}
}

// Recipients returns the users to notify about a new message: active,
// opted in, allowed to read the channel, in the channel's unit for unit
// channels, and never the sender.
func (d *Dispatcher) Recipients(channel *models.Channel, sender *models.User) ([]Recipient, error) {
	roles := channel.AllowedRoles.Roles()
	if len(roles) == 0 {
		return nil, nil
	}

	query := d.db.Model(&models.User{}).
		Where("active = ?", true).
		Where("email_notifications = ?", true).
		Where("id <> ?", sender.ID).
		Where("role IN ?", roles)

	if channel.Type == models.ChannelTypeUnit && channel.Unit != "" {
		query = query.Where("unit = ?", channel.Unit)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}

	recipients := make([]Recipient, len(users))
	for i, u := range users {
		recipients[i] = Recipient{Email: u.Email, Name: u.Name}
	}
	return recipients, nil
}

// DispatchMessage sends notifications for a newly posted message,
// honoring the channel's broadcast flags. Delivery failures are logged
// and never surfaced to the poster.
func (d *Dispatcher) DispatchMessage(channel *models.Channel, sender *models.User, msg *models.Message) {
	recipients, err := d.Recipients(channel, sender)
	if err != nil {
		log.Printf("notify: resolving recipients for channel %d: %v", channel.ID, err)
		return
	}
	if len(recipients) == 0 {
		return
	}

	if ShouldNotify(channel, KindEmail) && d.mailer != nil {
		subject := fmt.Sprintf("New message in %s - JamboHub", channel.Name)
		body := messageBody(channel.Name, sender.Name, msg)
		for _, r := range recipients {
			if err := d.mailer.Send(r, subject, body); err != nil {
				log.Printf("notify: sending email to %s: %v", r.Email, err)
			}
		}
	}

	if ShouldNotify(channel, KindPush) {
		// Push delivery belongs to the PWA layer; record the batch so
		// the flag is observable.
		log.Printf("notify: push batch for channel %q: %d recipients", channel.Name, len(recipients))
	}
}

func messageBody(channelName, senderName string, msg *models.Message) string {
	preview := msg.Content
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	if preview == "" && msg.ImageURL != "" {
		preview = "[image]"
	}
	return fmt.Sprintf("%s posted in %s:\n\n%s\n", senderName, channelName, preview)
}
