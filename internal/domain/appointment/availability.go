package appointment

import (
	"time"

	"github.com/BruksfildServices01/solar-scheduler/internal/timezone"
)

// DefaultBuffer é a folga antes e depois de cada compromisso.
const DefaultBuffer = 30 * time.Minute

// TimeSlot é o intervalo semiaberto [Start, End) em instantes UTC.
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

func NewTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{Start: start.UTC(), End: end.UTC()}
}

func (s TimeSlot) Valid() bool {
	return s.Start.Before(s.End)
}

func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

type AvailabilityInput struct {
	Tag  string
	Date timezone.CivilDate
}

type TechnicianAvailability struct {
	TechnicianID   string
	TechnicianName string
	FreeSlots      []TimeSlot
}

// FreeTime soma a duração dos horários livres.
func (a TechnicianAvailability) FreeTime() time.Duration {
	var total time.Duration
	for _, s := range a.FreeSlots {
		total += s.Duration()
	}
	return total
}

// Fits informa se algum horário livre contém o slot inteiro.
func (a TechnicianAvailability) Fits(slot TimeSlot) bool {
	for _, free := range a.FreeSlots {
		if Contains(free, slot) {
			return true
		}
	}
	return false
}

// FreeSlots calcula os horários livres de um técnico: cada compromisso é
// expandido pelo buffer, recortado ao expediente, unido e complementado.
func FreeSlots(commitments []TimeSlot, window TimeSlot, buffer time.Duration) []TimeSlot {
	occupied := make([]TimeSlot, 0, len(commitments))
	for _, c := range commitments {
		if !c.Valid() {
			continue
		}
		clipped, ok := Clip(Expand(c, buffer), window)
		if !ok {
			continue
		}
		occupied = append(occupied, clipped)
	}
	return Complement(MergeIntervals(occupied), window)
}
