package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/solar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/solar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/solar-scheduler/internal/timezone"
)

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("buffered free slots per active technician", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, f.ana, 10, 0, 11, 0)

		got, err := f.availability.Execute(ctx, domain.AvailabilityInput{Tag: "Equipe A", Date: wednesday})
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, f.ana.ID, got[0].TechnicianID)
		assert.Equal(t, "Ana Lima", got[0].TechnicianName)
		assert.Equal(t, []domain.TimeSlot{
			{Start: wednesday.At(8, 0), End: wednesday.At(9, 30)},
			{Start: wednesday.At(11, 30), End: wednesday.At(17, 0)},
		}, got[0].FreeSlots)

		assert.Equal(t, f.bruno.ID, got[1].TechnicianID)
		assert.Equal(t, []domain.TimeSlot{{Start: wednesday.At(8, 0), End: wednesday.At(17, 0)}}, got[1].FreeSlots)
	})

	t.Run("other days are not affected", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, f.ana, 10, 0, 11, 0)

		thursday := timezone.CivilDate{Year: 2025, Month: time.March, Day: 13}
		got, err := f.availability.Execute(ctx, domain.AvailabilityInput{Tag: "Equipe A", Date: thursday})
		require.NoError(t, err)
		assert.Equal(t, []domain.TimeSlot{{Start: thursday.At(8, 0), End: thursday.At(17, 0)}}, got[0].FreeSlots)
	})

	t.Run("fully booked technician is still listed", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, f.bruno, 8, 0, 17, 0)

		got, err := f.availability.Execute(ctx, domain.AvailabilityInput{Tag: "Equipe A", Date: wednesday})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.NotNil(t, got[1].FreeSlots)
		assert.Empty(t, got[1].FreeSlots)
	})

	t.Run("weekend has no free slots", func(t *testing.T) {
		f := newFixture(t)
		saturday := timezone.CivilDate{Year: 2025, Month: time.March, Day: 15}

		got, err := f.availability.Execute(ctx, domain.AvailabilityInput{Tag: "Equipe A", Date: saturday})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Empty(t, got[0].FreeSlots)
	})

	t.Run("team without technicians", func(t *testing.T) {
		f := newFixture(t)

		got, err := f.availability.Execute(ctx, domain.AvailabilityInput{Tag: "Equipe Vazia", Date: wednesday})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unknown team", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.availability.Execute(ctx, domain.AvailabilityInput{Tag: "Equipe Z", Date: wednesday})
		assert.True(t, httperr.IsBusiness(err, "team_not_found"))
	})
}
