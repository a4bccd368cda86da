package dto

import (
	domain "github.com/BruksfildServices01/solar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/solar-scheduler/internal/timezone"
)

type SlotDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type TechnicianAvailabilityDTO struct {
	TechnicianID   string    `json:"technician_id"`
	TechnicianName string    `json:"technician_name"`
	FreeSlots      []SlotDTO `json:"free_slots"`
}

type AvailabilityDTO struct {
	Date        string                      `json:"date"`
	Tag         string                      `json:"tag"`
	Technicians []TechnicianAvailabilityDTO `json:"technicians"`
}

func NewAvailabilityDTO(in domain.AvailabilityInput, list []domain.TechnicianAvailability) AvailabilityDTO {
	out := AvailabilityDTO{
		Date:        in.Date.String(),
		Tag:         in.Tag,
		Technicians: make([]TechnicianAvailabilityDTO, 0, len(list)),
	}
	for _, a := range list {
		slots := make([]SlotDTO, 0, len(a.FreeSlots))
		for _, s := range a.FreeSlots {
			slots = append(slots, SlotDTO{
				Start: timezone.FormatClock(s.Start),
				End:   timezone.FormatClock(s.End),
			})
		}
		out.Technicians = append(out.Technicians, TechnicianAvailabilityDTO{
			TechnicianID:   a.TechnicianID,
			TechnicianName: a.TechnicianName,
			FreeSlots:      slots,
		})
	}
	return out
}
