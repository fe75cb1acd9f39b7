package access

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vahc/jambohub/pkg/jambohub/models"
)

func unitChannel(unit string) *models.Channel {
	return &models.Channel{
		Name:         unit,
		Type:         models.ChannelTypeUnit,
		Unit:         unit,
		AllowedRoles: models.NewRoleList(models.RoleAdmin, models.RoleAdultLeader, models.RoleYouth, models.RoleParent),
		CanPostRoles: models.NewRoleList(models.RoleAdultLeader, models.RoleYouth),
	}
}

func TestCanRead(t *testing.T) {
	ch := &models.Channel{
		Type:         models.ChannelTypeLeadership,
		AllowedRoles: models.NewRoleList(models.RoleAdmin, models.RoleAdultLeader),
		CanPostRoles: models.NewRoleList(models.RoleAdmin, models.RoleAdultLeader),
	}

	require.True(t, CanRead(&models.User{Role: models.RoleAdmin}, ch))
	require.True(t, CanRead(&models.User{Role: models.RoleAdultLeader}, ch))
	require.False(t, CanRead(&models.User{Role: models.RoleYouth}, ch))
	require.False(t, CanRead(&models.User{Role: models.RoleParent}, ch))
	require.False(t, CanRead(nil, ch))
}

func TestCanRead_EmptyAllowedRolesDeniesAdmin(t *testing.T) {
	ch := &models.Channel{Type: models.ChannelTypePublic}

	// No reading override for admins: an empty allowed list means nobody.
	require.False(t, CanRead(&models.User{Role: models.RoleAdmin}, ch))
	require.False(t, CanRead(&models.User{Role: models.RoleYouth}, ch))
}

func TestCanPost_AdminOverride(t *testing.T) {
	ch := &models.Channel{
		Type:         models.ChannelTypePublic,
		AllowedRoles: models.NewRoleList(models.RoleAdmin, models.RoleAdultLeader, models.RoleYouth, models.RoleParent),
		CanPostRoles: models.RoleList(""),
	}

	require.True(t, CanPost(&models.User{Role: models.RoleAdmin}, ch))
	require.False(t, CanPost(&models.User{Role: models.RoleAdultLeader}, ch))
	require.False(t, CanPost(&models.User{Role: models.RoleYouth}, ch))
	require.False(t, CanPost(&models.User{Role: models.RoleParent}, ch))
}

func TestFailClosedOnUnknownRole(t *testing.T) {
	ch := unitChannel("Troop 123")
	for _, role := range []models.Role{"", "superuser", "ADMIN", "adult"} {
		u := &models.User{Role: role, Unit: "Troop 123"}
		require.False(t, CanRead(u, ch), "role %q", role)
		require.False(t, CanPost(u, ch), "role %q", role)
		require.False(t, CanModerate(u), "role %q", role)
	}
}

func TestCanModerate(t *testing.T) {
	require.True(t, CanModerate(&models.User{Role: models.RoleAdmin}))
	require.True(t, CanModerate(&models.User{Role: models.RoleAdultLeader}))
	require.False(t, CanModerate(&models.User{Role: models.RoleYouth}))
	require.False(t, CanModerate(&models.User{Role: models.RoleParent}))
	require.False(t, CanModerate(nil))
}

func TestCanAccess_UnitIsolation(t *testing.T) {
	ch := unitChannel("Troop 1")

	require.True(t, CanAccess(&models.User{Role: models.RoleYouth, Unit: "Troop 1"}, ch))
	require.False(t, CanAccess(&models.User{Role: models.RoleYouth, Unit: "Troop 2"}, ch))
	require.False(t, CanAccess(&models.User{Role: models.RoleYouth, Unit: "troop 1"}, ch))

	// The unit match applies to every role, admins included.
	require.False(t, CanAccess(&models.User{Role: models.RoleAdmin, Unit: "Troop 2"}, ch))
	require.True(t, CanAccess(&models.User{Role: models.RoleParent, Unit: "Troop 1"}, ch))
}

func TestVisible(t *testing.T) {
	channels := []models.Channel{
		{
			Name:         "Announcements",
			Type:         models.ChannelTypePublic,
			AllowedRoles: models.NewRoleList(models.RoleAdmin, models.RoleAdultLeader, models.RoleYouth, models.RoleParent),
		},
		*unitChannel("Troop 1"),
		*unitChannel("Troop 2"),
		{
			Name:         "Leadership",
			Type:         models.ChannelTypeLeadership,
			AllowedRoles: models.NewRoleList(models.RoleAdmin, models.RoleAdultLeader),
		},
	}

	youth := &models.User{Role: models.RoleYouth, Unit: "Troop 1"}
	visible := Visible(youth, channels)

	require.Len(t, visible, 2)
	require.Equal(t, "Announcements", visible[0].Name)
	require.Equal(t, "Troop 1", visible[1].Name)

	// Every visible channel passes the read check (P1).
	for i := range visible {
		require.True(t, CanRead(youth, &visible[i]))
	}

	require.Empty(t, Visible(nil, channels))
}

func TestVisible_PreservesOrder(t *testing.T) {
	channels := []models.Channel{
		{Name: "a", Type: models.ChannelTypePublic, AllowedRoles: models.NewRoleList(models.RoleYouth)},
		{Name: "b", Type: models.ChannelTypePublic, AllowedRoles: models.NewRoleList(models.RoleYouth)},
		{Name: "c", Type: models.ChannelTypePublic, AllowedRoles: models.NewRoleList(models.RoleYouth)},
	}
	visible := Visible(&models.User{Role: models.RoleYouth}, channels)
	require.Len(t, visible, 3)
	require.Equal(t, "a", visible[0].Name)
	require.Equal(t, "b", visible[1].Name)
	require.Equal(t, "c", visible[2].Name)
}

func TestGrouped(t *testing.T) {
	channels := []models.Channel{
		{Name: "ann", Type: models.ChannelTypePublic},
		{Name: "troop1", Type: models.ChannelTypeUnit, Unit: "Troop 1"},
		{Name: "activities", Type: models.ChannelTypePublic},
	}
	groups := Grouped(channels)

	require.Len(t, groups, 2)
	require.Len(t, groups[models.ChannelTypePublic], 2)
	require.Equal(t, "ann", groups[models.ChannelTypePublic][0].Name)
	require.Equal(t, "activities", groups[models.ChannelTypePublic][1].Name)
	require.NotContains(t, groups, models.ChannelTypeLeadership)
}

func TestParentSharesUnitChannel(t *testing.T) {
	// Example scenario: parent of a Troop 123 scout reads but cannot post.
	ch := unitChannel("Troop 123")
	parent := &models.User{Role: models.RoleParent, Unit: "Troop 123"}

	require.True(t, CanRead(parent, ch))
	require.True(t, CanAccess(parent, ch))
	require.False(t, CanPost(parent, ch))
}

func TestValidatePostRoles(t *testing.T) {
	ch := &models.Channel{
		AllowedRoles: models.NewRoleList(models.RoleAdmin, models.RoleAdultLeader),
		CanPostRoles: models.NewRoleList(models.RoleAdmin),
	}
	require.True(t, ValidatePostRoles(ch))

	ch.CanPostRoles = models.NewRoleList(models.RoleAdmin, models.RoleYouth)
	require.False(t, ValidatePostRoles(ch))

	ch.CanPostRoles = models.RoleList("")
	require.True(t, ValidatePostRoles(ch))
}
