package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/solar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/solar-scheduler/internal/models"
)

func ptr(s string) *string { return &s }

func booked(id string, techID *string, field string, s TimeSlot) models.Appointment {
	return models.Appointment{
		ID:              id,
		StartTime:       s.Start,
		EndTime:         s.End,
		TechnicianID:    techID,
		FieldTechnician: field,
	}
}

func TestResponsibleParty(t *testing.T) {
	t.Run("equality stays within the variant", func(t *testing.T) {
		assert.True(t, InternalTechnician("abc").Equal(InternalTechnician("abc")))
		assert.False(t, InternalTechnician("abc").Equal(ExternalFieldTechnician("abc")))
		assert.False(t, ExternalFieldTechnician("").Equal(ExternalFieldTechnician("")))
	})

	t.Run("field technician names are normalized", func(t *testing.T) {
		p := ExternalFieldTechnician("  João   da Silva ")
		assert.Equal(t, "João da Silva", p.Value())
		assert.Equal(t, "field:João da Silva", p.Key())
	})

	t.Run("parties of an appointment", func(t *testing.T) {
		ap := booked("1", ptr("tech-1"), "Maria", slot(9, 0, 10, 0))

		assert.Equal(t, []ResponsibleParty{InternalTechnician("tech-1"), ExternalFieldTechnician("Maria")}, PartiesOf(&ap))
		assert.Equal(t, []string{"technician:tech-1", "field:Maria"}, LockKeys(PartiesOf(&ap)))
	})

	t.Run("empty parties are skipped", func(t *testing.T) {
		assert.Empty(t, Parties(nil, "  "))
		assert.Empty(t, Parties(ptr(""), ""))
	})
}

func TestDetectConflicts(t *testing.T) {
	existing := []models.Appointment{
		booked("a", ptr("tech-1"), "", slot(10, 0, 11, 0)),
		booked("b", ptr("tech-2"), "Maria", slot(13, 0, 14, 0)),
		booked("c", nil, "Carlos", slot(15, 0, 16, 0)),
	}

	t.Run("same technician overlapping", func(t *testing.T) {
		got := DetectConflicts(existing, ConflictQuery{
			Parties: []ResponsibleParty{InternalTechnician("tech-1")},
			Slot:    slot(10, 30, 11, 30),
		})

		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].WithAppointmentID)
		assert.Equal(t, InternalTechnician("tech-1"), got[0].Party)
	})

	t.Run("touching is not a conflict", func(t *testing.T) {
		got := DetectConflicts(existing, ConflictQuery{
			Parties: []ResponsibleParty{InternalTechnician("tech-1")},
			Slot:    slot(11, 0, 12, 0),
		})
		assert.Empty(t, got)
	})

	t.Run("field technician conflicts across technicians", func(t *testing.T) {
		got := DetectConflicts(existing, ConflictQuery{
			Parties: []ResponsibleParty{InternalTechnician("tech-3"), ExternalFieldTechnician("Maria")},
			Slot:    slot(13, 30, 14, 30),
		})

		require.Len(t, got, 1)
		assert.Equal(t, "b", got[0].WithAppointmentID)
		assert.Equal(t, ExternalFieldTechnicianParty, got[0].Party.Kind())
	})

	t.Run("own id is excluded", func(t *testing.T) {
		err := AssertNoConflict(existing, ConflictQuery{
			Parties:   []ResponsibleParty{InternalTechnician("tech-1")},
			Slot:      slot(10, 0, 11, 0),
			ExcludeID: "a",
		})
		assert.NoError(t, err)
	})

	t.Run("conflict error", func(t *testing.T) {
		err := AssertNoConflict(existing, ConflictQuery{
			Parties: []ResponsibleParty{ExternalFieldTechnician("Carlos")},
			Slot:    slot(15, 30, 16, 30),
		})
		assert.True(t, httperr.IsBusiness(err, "time_conflict"))
		assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	})

	t.Run("query accessors", func(t *testing.T) {
		q := ConflictQuery{Parties: []ResponsibleParty{ExternalFieldTechnician("Carlos"), InternalTechnician("tech-9")}}
		assert.Equal(t, "tech-9", q.TechnicianID())
		assert.Equal(t, "Carlos", q.FieldTechnician())
	})
}
