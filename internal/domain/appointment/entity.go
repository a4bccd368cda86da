package appointment

import (
	"strings"

	"github.com/BruksfildServices01/solar-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Patch carrega os campos de uma edição parcial. Campo nil mantém o
// valor atual do agendamento.
type Patch struct {
	Slot            *TimeSlot
	Tag             *string
	TechnicianID    *string
	FieldTechnician *string
	ClientID        *string
	PlantID         *string
	EquipmentID     *string
	Status          *string
	Notes           *string
}

func SlotOf(ap *models.Appointment) TimeSlot {
	return NewTimeSlot(ap.StartTime, ap.EndTime)
}

// Apply devolve o estado efetivo após a edição, sem alterar ap.
func Apply(ap models.Appointment, p Patch) models.Appointment {
	if p.Slot != nil {
		ap.StartTime = p.Slot.Start
		ap.EndTime = p.Slot.End
	}
	if p.Tag != nil {
		ap.Tag = *p.Tag
	}
	if p.TechnicianID != nil {
		// vazio remove o técnico
		ap.TechnicianID = nil
		if id := strings.TrimSpace(*p.TechnicianID); id != "" {
			ap.TechnicianID = &id
		}
		ap.Technician = nil
	}
	if p.FieldTechnician != nil {
		ap.FieldTechnician = NormalizeFieldTechnician(*p.FieldTechnician)
	}
	if p.ClientID != nil {
		ap.ClientID = *p.ClientID
	}
	if p.PlantID != nil {
		ap.PlantID = *p.PlantID
	}
	if p.EquipmentID != nil {
		ap.EquipmentID = *p.EquipmentID
	}
	if p.Status != nil {
		ap.Status = NormalizeStatus(*p.Status)
	}
	if p.Notes != nil {
		ap.Notes = *p.Notes
	}
	return ap
}

// TimeChanged informa se a edição mexe no horário.
func (p Patch) TimeChanged(current *models.Appointment) bool {
	if p.Slot == nil {
		return false
	}
	return !p.Slot.Start.Equal(current.StartTime) || !p.Slot.End.Equal(current.EndTime)
}
