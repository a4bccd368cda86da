package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/solar-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/solar-scheduler/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// Execute remove o agendamento. Não há revalidação: apagar só libera horário.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	requesterID *string,
	appointmentID string,
) error {

	if err := uc.repo.DeleteAppointment(ctx, appointmentID); err != nil {
		return lookupErr(err, "appointment_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   requesterID,
		Action:   audit.ActionAppointmentDeleted,
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	uc.log.Info("appointment deleted", zap.String("appointment_id", appointmentID))
	return nil
}
