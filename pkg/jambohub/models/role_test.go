package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "adult_leader", "youth", "parent"} {
		r, ok := ParseRole(valid)
		require.True(t, ok, "role %q", valid)
		require.Equal(t, Role(valid), r)
	}

	for _, invalid := range []string{"", "superuser", "ADMIN", "adult", " admin extra"} {
		_, ok := ParseRole(invalid)
		require.False(t, ok, "role %q must not parse", invalid)
	}

	r, ok := ParseRole("  youth  ")
	require.True(t, ok)
	require.Equal(t, RoleYouth, r)
}

func TestRoleListDropsUnknownTokens(t *testing.T) {
	// A corrupted column value can only narrow access.
	l := RoleList("admin,superuser,youth,,ADMIN")
	require.Equal(t, []Role{RoleAdmin, RoleYouth}, l.Roles())
	require.True(t, l.Contains(RoleAdmin))
	require.False(t, l.Contains(RoleParent))
	require.False(t, l.Contains(Role("superuser")))
}

func TestRoleListEmpty(t *testing.T) {
	require.Nil(t, RoleList("").Roles())
	require.False(t, RoleList("").Contains(RoleAdmin))
}

func TestNewRoleListFiltersInvalid(t *testing.T) {
	l := NewRoleList(RoleAdmin, Role("bogus"), RoleParent)
	require.Equal(t, RoleList("admin,parent"), l)
}

func TestSubsetOf(t *testing.T) {
	all := NewRoleList(RoleAdmin, RoleAdultLeader, RoleYouth, RoleParent)
	posters := NewRoleList(RoleAdmin, RoleAdultLeader)

	require.True(t, posters.SubsetOf(all))
	require.False(t, all.SubsetOf(posters))
	require.True(t, RoleList("").SubsetOf(posters))
	require.True(t, posters.SubsetOf(posters))
}
