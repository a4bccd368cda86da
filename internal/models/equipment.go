package models

import "time"

type Equipment struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	PlantID string `gorm:"type:uuid;index;not null" json:"plant_id"`
	Plant   Plant  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ParentID *string    `gorm:"type:uuid;index" json:"parent_id"`
	Parent   *Equipment `gorm:"constraint:OnDelete:SET NULL;" json:"-"`

	Name         string `gorm:"size:150;not null" json:"name"`
	Kind         string `gorm:"size:50" json:"kind"`
	SerialNumber string `gorm:"size:60;uniqueIndex;not null" json:"serial_number"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
