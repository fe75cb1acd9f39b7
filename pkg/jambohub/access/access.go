// Package access decides who can see, post to, and moderate channels.
// All checks are pure functions over the models so every call site shares
// one set of rules; in particular the admin posting override lives here
// and nowhere else.
package access

import "github.com/vahc/jambohub/pkg/jambohub/models"

// CanRead reports whether the user's role may read the channel.
// There is no admin override for reading: a channel whose allowed-role
// list is empty is readable by no one.
func CanRead(user *models.User, channel *models.Channel) bool {
	if user == nil || channel == nil {
		return false
	}
	return channel.AllowedRoles.Contains(user.Role)
}

// CanPost reports whether the user's role may post to the channel.
// Admins may always post regardless of the channel's configured list.
func CanPost(user *models.User, channel *models.Channel) bool {
	if user == nil || channel == nil {
		return false
	}
	if user.Role == models.RoleAdmin {
		return true
	}
	return channel.CanPostRoles.Contains(user.Role)
}

// CanModerate reports whether the user may pin and unpin messages.
// Moderation is user-scoped, not channel-scoped.
func CanModerate(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleAdmin || user.Role == models.RoleAdultLeader
}

// CanAccess reports whether the channel appears in the user's directory
// and whether its messages may be fetched. For unit channels the user's
// unit must match the channel's unit exactly, case-sensitive, for every
// role: the admin override applies to posting only.
func CanAccess(user *models.User, channel *models.Channel) bool {
	if !CanRead(user, channel) {
		return false
	}
	if channel.Type == models.ChannelTypeUnit && channel.Unit != user.Unit {
		return false
	}
	return true
}

// Visible filters channels down to those the user can access,
// preserving the input order. A nil user sees nothing.
func Visible(user *models.User, channels []models.Channel) []models.Channel {
	visible := make([]models.Channel, 0, len(channels))
	if user == nil {
		return visible
	}
	for _, ch := range channels {
		ch := ch
		if CanAccess(user, &ch) {
			visible = append(visible, ch)
		}
	}
	return visible
}

// Grouped partitions channels by type into the fixed bucket order
// public, unit, leadership, parent. Empty buckets are omitted and the
// order within each bucket is the input order.
func Grouped(channels []models.Channel) map[models.ChannelType][]models.Channel {
	groups := make(map[models.ChannelType][]models.Channel)
	for _, ch := range channels {
		if !ch.Type.Valid() {
			continue
		}
		groups[ch.Type] = append(groups[ch.Type], ch)
	}
	return groups
}

// ValidatePostRoles checks the invariant that a channel's post-role list
// is a subset of its read-role list. Applied on channel writes.
func ValidatePostRoles(channel *models.Channel) bool {
	return channel.CanPostRoles.SubsetOf(channel.AllowedRoles)
}
