package models

import "time"

// Equipe técnica. O nome é a tag de classificação usada nos agendamentos.
type Team struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Level int    `json:"level"`

	ClientID *string `gorm:"type:uuid" json:"client_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
