package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleRanger = "ranger"
	RoleAdmin  = "admin"
)

// User is a messaging participant. Credentials and password handling live
// in the auth service; this table is only the identity and role directory
// the messaging core consults.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"type:text" json:"phone,omitempty"`
	Role      string    `gorm:"type:text;not null;default:ranger" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the ID is
// not set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
