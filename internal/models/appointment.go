package models

import "time"

type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	StartTime time.Time `gorm:"type:timestamptz;not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"type:timestamptz;not null" json:"end_time"`

	Tag string `gorm:"size:100;not null" json:"tag"`

	TechnicianID *string `gorm:"type:uuid;index" json:"technician_id"`
	Technician   *User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"technician,omitempty"`

	// técnico de campo: texto livre, fora do cadastro de técnicos
	FieldTechnician string `gorm:"size:150;index" json:"field_technician"`

	RequesterID *string `gorm:"type:uuid" json:"requester_id"`
	Requester   *User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ClientID    string    `gorm:"type:uuid;index" json:"client_id"`
	Client      Client    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PlantID     string    `gorm:"type:uuid;index" json:"plant_id"`
	Plant       Plant     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	EquipmentID string    `gorm:"type:uuid" json:"equipment_id"`
	Equipment   Equipment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Status string `gorm:"size:30;default:'Pendente'" json:"status"`
	Notes  string `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
