package models

import (
	"time"

	"gorm.io/gorm"
)

// Unit represents an organizational sub-group (troop, crew).
// Every unit has exactly one paired unit-type channel, provisioned when
// the unit is created. Users and channels reference units by name;
// deleting a unit leaves those references dangling rather than cascading.
type Unit struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
}
