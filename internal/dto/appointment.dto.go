package dto

import (
	"time"

	"github.com/BruksfildServices01/solar-scheduler/internal/models"
	"github.com/BruksfildServices01/solar-scheduler/internal/timezone"
)

// AppointmentDTO expõe o horário civil (Brasília) e o instante UTC.
type AppointmentDTO struct {
	ID string `json:"id"`

	Start        string    `json:"start"`
	End          string    `json:"end"`
	StartInstant time.Time `json:"start_instant"`
	EndInstant   time.Time `json:"end_instant"`

	Tag             string  `json:"tag"`
	TechnicianID    *string `json:"technician_id"`
	TechnicianName  string  `json:"technician_name,omitempty"`
	FieldTechnician string  `json:"field_technician"`
	RequesterID     *string `json:"requester_id"`

	ClientID    string `json:"client_id"`
	PlantID     string `json:"plant_id"`
	EquipmentID string `json:"equipment_id"`

	Status string `json:"status"`
	Notes  string `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAppointmentDTO(ap *models.Appointment) AppointmentDTO {
	out := AppointmentDTO{
		ID:              ap.ID,
		Start:           timezone.FormatDateTime(ap.StartTime),
		End:             timezone.FormatDateTime(ap.EndTime),
		StartInstant:    ap.StartTime.UTC(),
		EndInstant:      ap.EndTime.UTC(),
		Tag:             ap.Tag,
		TechnicianID:    ap.TechnicianID,
		FieldTechnician: ap.FieldTechnician,
		RequesterID:     ap.RequesterID,
		ClientID:        ap.ClientID,
		PlantID:         ap.PlantID,
		EquipmentID:     ap.EquipmentID,
		Status:          ap.Status,
		Notes:           ap.Notes,
		CreatedAt:       ap.CreatedAt,
		UpdatedAt:       ap.UpdatedAt,
	}
	if ap.Technician != nil {
		out.TechnicianName = ap.Technician.DisplayName()
	}
	return out
}
