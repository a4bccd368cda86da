package appointment

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/solar-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/solar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/solar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/solar-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/solar-scheduler/internal/models"
	"github.com/BruksfildServices01/solar-scheduler/internal/timezone"
)

// UpdateAppointmentInput: campo nil mantém o valor atual.
type UpdateAppointmentInput struct {
	ID          string
	RequesterID *string

	Start *string
	End   *string
	Tag   *string

	Client    *string
	Plant     *string
	Equipment *string

	FieldTechnician *string
	TechnicianID    *string

	Status *string
	Notes  *string
}

type UpdateAppointment struct {
	repo   domain.Repository
	locker lock.Locker
	audit  *audit.Dispatcher
	opts   Options
	log    *zap.Logger
}

func NewUpdateAppointment(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
	opts Options,
	log *zap.Logger,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
		opts:   opts,
		log:    log,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	current, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, lookupErr(err, "appointment_not_found")
	}

	patch, err := uc.buildPatch(ctx, current, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Gates sobre o estado efetivo
	// --------------------------------------------------
	next := domain.Apply(*current, patch)
	slot := domain.SlotOf(&next)

	if err := requireRange(slot); err != nil {
		return nil, err
	}
	if err := uc.opts.checkSchedule(slot, patch.TimeChanged(current)); err != nil {
		return nil, err
	}

	var tech *models.User
	if next.TechnicianID != nil {
		if tech, err = requireActiveTechnician(ctx, uc.repo, *next.TechnicianID); err != nil {
			return nil, err
		}
	}

	// Edição confere o slot cru, sem a folga da atribuição automática:
	// pode encostar em outro agendamento do mesmo técnico.
	parties := domain.PartiesOf(&next)
	query := domain.ConflictQuery{Parties: parties, Slot: slot, ExcludeID: next.ID}

	err = uc.opts.withPartyLocks(ctx, uc.locker, parties, func() error {
		return commit(ctx, uc.repo, []domain.ConflictQuery{query}, func(tx domain.Repository) error {
			return tx.UpdateAppointment(ctx, &next)
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("appointment_not_found")
		}
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Dispatch(audit.Event{
				UserID:   in.RequesterID,
				Action:   audit.ActionAppointmentConflict,
				Entity:   "appointment",
				EntityID: &next.ID,
			})
		}
		return nil, err
	}
	next.Technician = tech

	uc.audit.Dispatch(audit.Event{
		UserID:   in.RequesterID,
		Action:   audit.ActionAppointmentUpdated,
		Entity:   "appointment",
		EntityID: &next.ID,
		Metadata: map[string]string{
			"start": timezone.FormatDateTime(next.StartTime),
			"end":   timezone.FormatDateTime(next.EndTime),
		},
	})

	uc.log.Info("appointment updated",
		zap.String("appointment_id", next.ID),
		zap.Bool("time_changed", patch.TimeChanged(current)),
	)

	return &next, nil
}

// buildPatch valida e resolve apenas os campos enviados.
func (uc *UpdateAppointment) buildPatch(
	ctx context.Context,
	current *models.Appointment,
	in UpdateAppointmentInput,
) (domain.Patch, error) {

	patch := domain.Patch{
		TechnicianID:    in.TechnicianID,
		FieldTechnician: in.FieldTechnician,
		Status:          in.Status,
		Notes:           in.Notes,
	}

	if in.Start != nil || in.End != nil {
		slot := domain.SlotOf(current)
		if in.Start != nil {
			start, err := parseInstant(*in.Start)
			if err != nil {
				return patch, err
			}
			slot.Start = start
		}
		if in.End != nil {
			end, err := parseInstant(*in.End)
			if err != nil {
				return patch, err
			}
			slot.End = end
		}
		patch.Slot = &slot
	}

	if in.Tag != nil {
		tag := strings.TrimSpace(*in.Tag)
		if tag == "" {
			return patch, httperr.ErrValidation("invalid_request")
		}
		if err := requireTeam(ctx, uc.repo, tag); err != nil {
			return patch, err
		}
		patch.Tag = &tag
	}

	clientID, plantID := current.ClientID, current.PlantID
	var err error

	if in.Client != nil {
		if clientID, err = resolveClient(ctx, uc.repo, *in.Client); err != nil {
			return patch, err
		}
		patch.ClientID = &clientID
	}
	if in.Plant != nil {
		if plantID, err = resolvePlant(ctx, uc.repo, clientID, *in.Plant); err != nil {
			return patch, err
		}
		patch.PlantID = &plantID
	}
	if in.Equipment != nil {
		equipmentID, err := resolveEquipment(ctx, uc.repo, plantID, *in.Equipment)
		if err != nil {
			return patch, err
		}
		patch.EquipmentID = &equipmentID
	}

	return patch, nil
}
