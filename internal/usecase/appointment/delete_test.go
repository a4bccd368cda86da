package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/solar-scheduler/internal/httperr"
)

func TestDeleteAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture(t)

		err := f.delete.Execute(ctx, nil, "missing")
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
		assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
	})

	t.Run("second delete is not found", func(t *testing.T) {
		f := newFixture(t)
		ap := f.book(t, f.ana, 10, 0, 11, 0)

		require.NoError(t, f.delete.Execute(ctx, strptr("requester-1"), ap.ID))

		err := f.delete.Execute(ctx, nil, ap.ID)
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})

	t.Run("frees the slot", func(t *testing.T) {
		f := newFixture(t)
		ap := f.book(t, f.ana, 10, 0, 11, 0)
		require.NoError(t, f.delete.Execute(ctx, nil, ap.ID))

		again := f.book(t, f.ana, 10, 0, 11, 0)
		assert.NotEqual(t, ap.ID, again.ID)
	})
}
