package appointment

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/solar-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/solar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/solar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/solar-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/solar-scheduler/internal/models"
	"github.com/BruksfildServices01/solar-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	RequesterID *string

	Start string
	End   string
	Tag   string

	Client    string
	Plant     string
	Equipment string

	FieldTechnician string
	TechnicianID    string

	Status string
	Notes  string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo         domain.Repository
	locker       lock.Locker
	selector     domain.Selector
	availability *GetAvailability
	audit        *audit.Dispatcher
	opts         Options
	log          *zap.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	locker lock.Locker,
	selector domain.Selector,
	audit *audit.Dispatcher,
	opts Options,
	log *zap.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:         repo,
		locker:       locker,
		selector:     selector,
		availability: NewGetAvailability(repo, opts, log),
		audit:        audit,
		opts:         opts,
		log:          log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Data / hora civil
	// --------------------------------------------------
	start, err := parseInstant(in.Start)
	if err != nil {
		return nil, err
	}
	end, err := parseInstant(in.End)
	if err != nil {
		return nil, err
	}
	slot := domain.NewTimeSlot(start, end)

	// --------------------------------------------------
	// 2️⃣ Intervalo, passado e expediente
	// --------------------------------------------------
	if err := requireRange(slot); err != nil {
		return nil, err
	}
	if err := uc.opts.checkSchedule(slot, true); err != nil {
		return nil, err
	}

	tag := strings.TrimSpace(in.Tag)
	if tag == "" {
		return nil, httperr.ErrValidation("invalid_request")
	}

	// --------------------------------------------------
	// 3️⃣ Cliente / usina / equipamento
	// --------------------------------------------------
	refs, err := resolveReferences(ctx, uc.repo, in.Client, in.Plant, in.Equipment)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		StartTime:       slot.Start,
		EndTime:         slot.End,
		Tag:             tag,
		FieldTechnician: domain.NormalizeFieldTechnician(in.FieldTechnician),
		RequesterID:     in.RequesterID,
		ClientID:        refs.ClientID,
		PlantID:         refs.PlantID,
		EquipmentID:     refs.EquipmentID,
		Status:          domain.NormalizeStatus(in.Status),
		Notes:           strings.TrimSpace(in.Notes),
	}

	// --------------------------------------------------
	// 4️⃣ Técnico: escolhido ou informado
	// --------------------------------------------------
	if id := strings.TrimSpace(in.TechnicianID); id != "" {
		err = uc.createForTechnician(ctx, ap, id)
	} else {
		err = uc.createAutoAssigned(ctx, ap, slot)
	}
	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			uc.dispatchConflict(in.RequesterID, ap)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   in.RequesterID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{
			"start": timezone.FormatDateTime(ap.StartTime),
			"end":   timezone.FormatDateTime(ap.EndTime),
			"tag":   ap.Tag,
		},
	})

	uc.log.Info("appointment created",
		zap.String("appointment_id", ap.ID),
		zap.Stringp("technician_id", ap.TechnicianID),
		zap.String("field_technician", ap.FieldTechnician),
		zap.Time("start", ap.StartTime),
	)

	return ap, nil
}

// createForTechnician: técnico informado, conferido contra conflitos dos
// dois responsáveis.
func (uc *CreateAppointment) createForTechnician(ctx context.Context, ap *models.Appointment, techID string) error {
	if err := requireTeam(ctx, uc.repo, ap.Tag); err != nil {
		return err
	}

	tech, err := requireActiveTechnician(ctx, uc.repo, techID)
	if err != nil {
		return err
	}
	ap.TechnicianID = &tech.ID

	parties := domain.PartiesOf(ap)
	query := domain.ConflictQuery{Parties: parties, Slot: domain.SlotOf(ap)}

	err = uc.opts.withPartyLocks(ctx, uc.locker, parties, func() error {
		return commit(ctx, uc.repo, []domain.ConflictQuery{query}, func(tx domain.Repository) error {
			return tx.CreateAppointment(ctx, ap)
		})
	})
	if err != nil {
		return err
	}
	ap.Technician = tech
	return nil
}

// createAutoAssigned escolhe entre os técnicos da equipe cujo horário
// livre contém o slot inteiro. Se o escolhido perder a corrida para outro
// agendamento, tenta o próximo candidato.
func (uc *CreateAppointment) createAutoAssigned(ctx context.Context, ap *models.Appointment, slot domain.TimeSlot) error {
	availability, err := uc.availability.Execute(ctx, domain.AvailabilityInput{
		Tag:  ap.Tag,
		Date: timezone.CivilDateOf(slot.Start),
	})
	if err != nil {
		return err
	}

	candidates := slices.DeleteFunc(availability, func(a domain.TechnicianAvailability) bool {
		return !a.Fits(slot)
	})

	for len(candidates) > 0 {
		chosen := uc.selector.Pick(candidates)
		ap.TechnicianID = &chosen.TechnicianID

		err := uc.commitAssigned(ctx, ap, slot)
		if err == nil {
			if tech, err := uc.repo.GetTechnician(ctx, chosen.TechnicianID); err == nil {
				ap.Technician = tech
			}
			return nil
		}
		if !httperr.IsBusiness(err, "time_conflict") {
			return err
		}

		// o conflito pode ser do técnico de campo, que vale para todos
		if ap.FieldTechnician != "" && uc.fieldTechnicianBusy(ctx, ap, slot) {
			return err
		}

		uc.log.Info("technician taken meanwhile, trying next",
			zap.String("technician_id", chosen.TechnicianID),
		)
		candidates = slices.DeleteFunc(candidates, func(a domain.TechnicianAvailability) bool {
			return a.TechnicianID == chosen.TechnicianID
		})
	}

	ap.TechnicianID = nil
	return httperr.ErrConflict("no_technician_available")
}

// commitAssigned revalida o técnico escolhido com o buffer, o mesmo
// critério da disponibilidade, e o técnico de campo com o slot puro.
func (uc *CreateAppointment) commitAssigned(ctx context.Context, ap *models.Appointment, slot domain.TimeSlot) error {
	parties := domain.PartiesOf(ap)

	queries := []domain.ConflictQuery{{
		Parties: domain.Parties(ap.TechnicianID, ""),
		Slot:    domain.Expand(slot, uc.opts.Buffer),
	}}
	if ap.FieldTechnician != "" {
		queries = append(queries, domain.ConflictQuery{
			Parties: domain.Parties(nil, ap.FieldTechnician),
			Slot:    slot,
		})
	}

	return uc.opts.withPartyLocks(ctx, uc.locker, parties, func() error {
		return commit(ctx, uc.repo, queries, func(tx domain.Repository) error {
			return tx.CreateAppointment(ctx, ap)
		})
	})
}

func (uc *CreateAppointment) fieldTechnicianBusy(ctx context.Context, ap *models.Appointment, slot domain.TimeSlot) bool {
	q := domain.ConflictQuery{Parties: domain.Parties(nil, ap.FieldTechnician), Slot: slot}
	existing, err := uc.repo.FindConflicting(ctx, q)
	if err != nil {
		return true
	}
	return len(domain.DetectConflicts(existing, q)) > 0
}

func (uc *CreateAppointment) dispatchConflict(requester *string, ap *models.Appointment) {
	uc.audit.Dispatch(audit.Event{
		UserID: requester,
		Action: audit.ActionAppointmentConflict,
		Entity: "appointment",
		Metadata: map[string]any{
			"start":            timezone.FormatDateTime(ap.StartTime),
			"end":              timezone.FormatDateTime(ap.EndTime),
			"technician_id":    ap.TechnicianID,
			"field_technician": ap.FieldTechnician,
		},
	})
}
