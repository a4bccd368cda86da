package models

import (
	"strings"
	"time"
)

type User struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	TeamID *string `gorm:"type:uuid;index" json:"team_id"`
	Team   *Team   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"team,omitempty"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Email     string `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Role      string `gorm:"size:20;default:'technician'" json:"role"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
