package appointment

import (
	"time"

	"github.com/BruksfildServices01/solar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/solar-scheduler/internal/timezone"
)

// WorkingHours é o expediente da organização em horário civil,
// expresso como deslocamento a partir da meia-noite.
type WorkingHours struct {
	Open  time.Duration
	Close time.Duration
}

var DefaultWorkingHours = WorkingHours{
	Open:  8 * time.Hour,
	Close: 17 * time.Hour,
}

func IsWorkday(wd time.Weekday) bool {
	return wd != time.Saturday && wd != time.Sunday
}

// Window devolve a janela do dia útil [abertura, fechamento) em instantes.
func (w WorkingHours) Window(d timezone.CivilDate) TimeSlot {
	return TimeSlot{Start: d.Offset(w.Open), End: d.Offset(w.Close)}
}

// AssertBusinessHoursAndWorkday valida o slot contra a política:
// segunda a sexta, início em [abertura, fechamento) e fim <= fechamento,
// ambos no mesmo dia civil.
func (w WorkingHours) AssertBusinessHoursAndWorkday(slot TimeSlot) error {
	start := timezone.ToCivil(slot.Start)
	end := timezone.ToCivil(slot.End)

	if !IsWorkday(start.Weekday()) {
		return httperr.ErrPolicy("non_working_day")
	}

	if start.Date() != end.Date() {
		return httperr.ErrPolicy("multi_day_not_allowed")
	}

	open := int(w.Open / time.Second)
	closeAt := int(w.Close / time.Second)

	if start.SecondsOfDay() < open || start.SecondsOfDay() >= closeAt {
		return httperr.ErrPolicy("outside_business_hours")
	}
	if end.SecondsOfDay() > closeAt {
		return httperr.ErrPolicy("outside_business_hours")
	}

	return nil
}
