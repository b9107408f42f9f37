// Package models contains domain entities and business models for the mailing administration system
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the acting identity for every guarded operation. Staff users get
// broadened read access in some guards; group membership widens list
// visibility.
type User struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_users_uuid" json:"uuid"`

	FirstName string `gorm:"size:150;not null" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`

	Email        string `gorm:"size:255;not null;uniqueIndex:uk_users_email" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"` // Never serialize password hash

	IsStaff  *bool `gorm:"default:false;index:idx_users_is_staff" json:"is_staff"`
	IsActive *bool `gorm:"default:true;index:idx_users_is_active" json:"is_active"`

	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_users_created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// Relations
	Groups    []Group    `gorm:"many2many:user_groups;" json:"groups,omitempty"`
	Clients   []Client   `gorm:"foreignKey:UserID" json:"-"`
	Messages  []Message  `gorm:"foreignKey:UserID" json:"-"`
	Mailings  []Mailing  `gorm:"foreignKey:UserID" json:"-"`
	AuditLogs []AuditLog `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// HasPerm reports whether any of the user's loaded groups carries the
// permission with the given codename.
func (u *User) HasPerm(codename string) bool {
	for _, g := range u.Groups {
		for _, p := range g.Permissions {
			if p.Codename == codename {
				return true
			}
		}
	}
	return false
}

// InAnyGroup reports whether the user belongs to at least one group.
func (u *User) InAnyGroup() bool {
	return len(u.Groups) > 0
}

// UserFilter represents filter criteria for user queries
type UserFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Email         *string
	IsStaff       *bool
	IsActive      *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// Group is a named collection of permissions users can belong to.
type Group struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:150;not null;uniqueIndex:uk_groups_name" json:"name"`

	Permissions []Permission `gorm:"many2many:group_permissions;" json:"permissions,omitempty"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupFilter represents filter criteria for group queries
type GroupFilter struct {
	ID   *uint
	Name *string
}

// Permission is a grantable capability identified by codename.
type Permission struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Codename string `gorm:"size:100;not null;uniqueIndex:uk_permissions_codename" json:"codename"`
	Name     string `gorm:"size:255;not null" json:"name"`
}

func (Permission) TableName() string {
	return "permissions"
}
