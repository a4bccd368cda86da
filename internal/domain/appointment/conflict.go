package appointment

import (
	"github.com/BruksfildServices01/solar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/solar-scheduler/internal/models"
)

// ConflictQuery descreve a consulta de compromissos concorrentes.
// ExcludeID é usado na edição para ignorar o próprio agendamento.
type ConflictQuery struct {
	Parties   []ResponsibleParty
	Slot      TimeSlot
	ExcludeID string
}

func (q ConflictQuery) TechnicianID() string {
	for _, p := range q.Parties {
		if p.Kind() == InternalTechnicianParty {
			return p.Value()
		}
	}
	return ""
}

func (q ConflictQuery) FieldTechnician() string {
	for _, p := range q.Parties {
		if p.Kind() == ExternalFieldTechnicianParty {
			return p.Value()
		}
	}
	return ""
}

type Conflict struct {
	WithAppointmentID string
	Party             ResponsibleParty
}

// DetectConflicts aplica o predicado de sobreposição aos compromissos
// existentes, para cada responsável que os dois compartilham.
func DetectConflicts(existing []models.Appointment, q ConflictQuery) []Conflict {
	var out []Conflict
	for i := range existing {
		ap := &existing[i]
		if q.ExcludeID != "" && ap.ID == q.ExcludeID {
			continue
		}
		if !Overlaps(NewTimeSlot(ap.StartTime, ap.EndTime), q.Slot) {
			continue
		}
		for _, theirs := range PartiesOf(ap) {
			for _, ours := range q.Parties {
				if ours.Equal(theirs) {
					out = append(out, Conflict{WithAppointmentID: ap.ID, Party: ours})
				}
			}
		}
	}
	return out
}

// AssertNoConflict devolve ConflictError se houver qualquer conflito.
func AssertNoConflict(existing []models.Appointment, q ConflictQuery) error {
	if len(DetectConflicts(existing, q)) > 0 {
		return httperr.ErrConflict("time_conflict")
	}
	return nil
}
