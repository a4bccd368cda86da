package models

import "time"

// Usina solar
type Plant struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID string `gorm:"type:uuid;index;not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name       string `gorm:"size:150;uniqueIndex;not null" json:"name"`
	CapacityKW int    `json:"capacity_kw"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
