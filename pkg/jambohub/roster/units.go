// Package roster manages units and the contingent member directory,
// including the bulk import of member rows.
package roster

import (
	"errors"
	"strings"

	"github.com/vahc/jambohub/pkg/jambohub/models"
	"gorm.io/gorm"
)

var (
	ErrUnitNotFound  = errors.New("unit not found")
	ErrUnitExists    = errors.New("unit name already in use")
	ErrEmptyUnitName = errors.New("unit name cannot be empty")
)

// Directory provides unit lookups and mutations
type Directory struct {
	db *gorm.DB
}

// NewDirectory creates a new Directory
func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

// ResolveUnit finds a unit by its exact, case-sensitive name
func (d *Directory) ResolveUnit(name string) (*models.Unit, error) {
	var unit models.Unit
	if err := d.db.Where("name = ?", name).First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// CreateUnit creates a unit and its paired unit-type channel in one
// transaction, so every unit ends up with exactly one primary channel.
func (d *Directory) CreateUnit(name string) (*models.Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyUnitName
	}

	if _, err := d.ResolveUnit(name); err == nil {
		return nil, ErrUnitExists
	} else if !errors.Is(err, ErrUnitNotFound) {
		return nil, err
	}

	unit := &models.Unit{Name: name}
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(unit).Error; err != nil {
			return err
		}
		channel := &models.Channel{
			Name:        name,
			Description: name + " unit communication",
			Icon:        "🏕️",
			Type:        models.ChannelTypeUnit,
			Unit:        name,
			AllowedRoles: models.NewRoleList(
				models.RoleAdmin, models.RoleAdultLeader, models.RoleYouth, models.RoleParent),
			CanPostRoles: models.NewRoleList(
				models.RoleAdmin, models.RoleAdultLeader, models.RoleYouth),
			EmailNotifications: true,
			PushNotifications:  true,
			Active:             true,
		}
		return tx.Create(channel).Error
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// RenameUnit changes a unit's name. The paired channel keeps following
// the unit, but user rows referencing the old name are left alone.
func (d *Directory) RenameUnit(id uint, name string) (*models.Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyUnitName
	}

	var unit models.Unit
	if err := d.db.First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}

	if existing, err := d.ResolveUnit(name); err == nil && existing.ID != unit.ID {
		return nil, ErrUnitExists
	}

	oldName := unit.Name
	err := d.db.Transaction(func(tx *gorm.DB) error {
		unit.Name = name
		if err := tx.Save(&unit).Error; err != nil {
			return err
		}
		return tx.Model(&models.Channel{}).
			Where("type = ? AND unit = ?", models.ChannelTypeUnit, oldName).
			Updates(map[string]interface{}{"unit": name, "name": name}).Error
	})
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

// DeleteUnit removes a unit record. Users and channels that reference
// the unit by name are not touched; dangling names are tolerated.
func (d *Directory) DeleteUnit(id uint) error {
	var unit models.Unit
	if err := d.db.First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnitNotFound
		}
		return err
	}
	return d.db.Delete(&unit).Error
}

// ListUnits returns all units in creation order
func (d *Directory) ListUnits() ([]models.Unit, error) {
	var units []models.Unit
	if err := d.db.Order("created_at ASC, id ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// ListMembers returns the users whose unit field matches exactly
func (d *Directory) ListMembers(unitName string) ([]models.User, error) {
	var users []models.User
	if err := d.db.Where("unit = ?", unitName).Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
