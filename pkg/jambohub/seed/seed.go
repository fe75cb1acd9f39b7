// Package seed provisions the default admin account and the initial
// channel layout on an empty database. A YAML seed file can replace
// the built-in defaults for a different contingent.
package seed

import (
	"fmt"
	"log"
	"os"

	"github.com/vahc/jambohub/pkg/jambohub/auth"
	"github.com/vahc/jambohub/pkg/jambohub/models"
	"gopkg.in/yaml.v2"
	"gorm.io/gorm"
)

// File is the YAML shape of a seed file
type File struct {
	Admin struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
		Unit  string `yaml:"unit"`
	} `yaml:"admin"`
	Channels []ChannelSpec `yaml:"channels"`
	Units    []string      `yaml:"units"`
}

// ChannelSpec describes one seeded channel
type ChannelSpec struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Icon         string   `yaml:"icon"`
	Type         string   `yaml:"type"`
	Unit         string   `yaml:"unit"`
	AllowedRoles []string `yaml:"allowed_roles"`
	CanPostRoles []string `yaml:"can_post_roles"`
}

// Run seeds an empty database. Databases that already hold users are
// left untouched.
func Run(db *gorm.DB, seedFile, defaultPassword string) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	f := defaults()
	if seedFile != "" {
		loaded, err := load(seedFile)
		if err != nil {
			return fmt.Errorf("loading seed file %s: %w", seedFile, err)
		}
		f = loaded
	}

	log.Println("Seeding default data...")

	hash, err := auth.HashPassword(defaultPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:               f.Admin.Name,
		Email:              f.Admin.Email,
		PasswordHash:       hash,
		Role:               models.RoleAdmin,
		Unit:               f.Admin.Unit,
		Active:             true,
		EmailNotifications: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	for _, name := range f.Units {
		if err := db.Create(&models.Unit{Name: name}).Error; err != nil {
			return err
		}
	}

	for _, spec := range f.Channels {
		chType := models.ChannelType(spec.Type)
		if !chType.Valid() {
			return fmt.Errorf("seed channel %q: unknown type %q", spec.Name, spec.Type)
		}
		channel := models.Channel{
			Name:               spec.Name,
			Description:        spec.Description,
			Icon:               spec.Icon,
			Type:               chType,
			Unit:               spec.Unit,
			AllowedRoles:       roleList(spec.AllowedRoles),
			CanPostRoles:       roleList(spec.CanPostRoles),
			EmailNotifications: true,
			PushNotifications:  true,
			Active:             true,
		}
		if !channel.CanPostRoles.SubsetOf(channel.AllowedRoles) {
			return fmt.Errorf("seed channel %q: post roles exceed allowed roles", spec.Name)
		}
		if err := db.Create(&channel).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded admin account %s (default password)", admin.Email)
	return nil
}

func load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func roleList(raw []string) models.RoleList {
	roles := make([]models.Role, 0, len(raw))
	for _, s := range raw {
		if r, ok := models.ParseRole(s); ok {
			roles = append(roles, r)
		}
	}
	return models.NewRoleList(roles...)
}

func defaults() *File {
	var f File
	f.Admin.Name = "Admin"
	f.Admin.Email = "admin@jambohub.org"
	f.Admin.Unit = "Contingent Leadership"

	all := []string{"admin", "adult_leader", "youth", "parent"}
	leaders := []string{"admin", "adult_leader"}

	f.Channels = []ChannelSpec{
		{
			Name:         "Contingent Announcements",
			Description:  "Official updates from leadership",
			Icon:         "📢",
			Type:         "public",
			AllowedRoles: all,
			CanPostRoles: leaders,
		},
		{
			Name:         "Activities & Schedule",
			Description:  "Daily schedules, merit badges, events",
			Icon:         "📅",
			Type:         "public",
			AllowedRoles: all,
			CanPostRoles: leaders,
		},
		{
			Name:         "Adult Leadership",
			Description:  "Leadership coordination - adults only",
			Icon:         "👥",
			Type:         "leadership",
			AllowedRoles: leaders,
			CanPostRoles: leaders,
		},
		{
			Name:         "Family Updates",
			Description:  "Updates for families back home",
			Icon:         "👨‍👩‍👧‍👦",
			Type:         "parent",
			AllowedRoles: []string{"admin", "adult_leader", "parent"},
			CanPostRoles: leaders,
		},
	}
	return &f
}
