package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/solar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/solar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/solar-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/solar-scheduler/internal/models"
	"github.com/BruksfildServices01/solar-scheduler/internal/timezone"
)

// ======================================================
// OPTIONS
// ======================================================

// Options reúne a política de agenda compartilhada pelos use cases.
type Options struct {
	WorkingHours domain.WorkingHours
	Buffer       time.Duration
	LockWait     time.Duration
	Now          func() time.Time
}

func DefaultOptions() Options {
	return Options{
		WorkingHours: domain.DefaultWorkingHours,
		Buffer:       domain.DefaultBuffer,
		LockWait:     5 * time.Second,
		Now:          timezone.Now,
	}
}

// ======================================================
// GATES
// ======================================================

func parseInstant(s string) (time.Time, error) {
	t, err := timezone.ParseDateTime(s)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date_or_time")
	}
	return t, nil
}

func requireRange(slot domain.TimeSlot) error {
	if !slot.Valid() {
		return httperr.ErrValidation("invalid_time_range")
	}
	return nil
}

// checkSchedule aplica o gate de passado (quando pedido) e a política de
// expediente, nessa ordem.
func (o Options) checkSchedule(slot domain.TimeSlot, checkPast bool) error {
	if checkPast && slot.Start.Before(o.Now()) {
		return httperr.ErrValidation("start_in_past")
	}
	return o.WorkingHours.AssertBusinessHoursAndWorkday(slot)
}

// ======================================================
// REFERENCES
// ======================================================

type references struct {
	ClientID    string
	PlantID     string
	EquipmentID string
}

func resolveClient(ctx context.Context, repo domain.Repository, name string) (string, error) {
	c, err := repo.FindClientByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return "", lookupErr(err, "client_not_found")
	}
	return c.ID, nil
}

func resolvePlant(ctx context.Context, repo domain.Repository, clientID, name string) (string, error) {
	p, err := repo.FindPlant(ctx, clientID, strings.TrimSpace(name))
	if err != nil {
		return "", lookupErr(err, "plant_not_found")
	}
	return p.ID, nil
}

func resolveEquipment(ctx context.Context, repo domain.Repository, plantID, ref string) (string, error) {
	e, err := repo.FindEquipment(ctx, plantID, strings.TrimSpace(ref))
	if err != nil {
		return "", lookupErr(err, "equipment_not_found")
	}
	return e.ID, nil
}

func resolveReferences(ctx context.Context, repo domain.Repository, client, plant, equipment string) (references, error) {
	var refs references
	var err error

	if refs.ClientID, err = resolveClient(ctx, repo, client); err != nil {
		return refs, err
	}
	if refs.PlantID, err = resolvePlant(ctx, repo, refs.ClientID, plant); err != nil {
		return refs, err
	}
	if refs.EquipmentID, err = resolveEquipment(ctx, repo, refs.PlantID, equipment); err != nil {
		return refs, err
	}
	return refs, nil
}

// lookupErr troca ErrNotFound pelo código de negócio e embrulha o resto.
func lookupErr(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound(code)
	}
	return fmt.Errorf("%s lookup: %w", strings.TrimSuffix(code, "_not_found"), err)
}

func requireTeam(ctx context.Context, repo domain.Repository, tag string) error {
	ok, err := repo.TeamExists(ctx, tag)
	if err != nil {
		return fmt.Errorf("team lookup: %w", err)
	}
	if !ok {
		return httperr.ErrNotFound("team_not_found")
	}
	return nil
}

func requireActiveTechnician(ctx context.Context, repo domain.Repository, id string) (*models.User, error) {
	tech, err := repo.GetTechnician(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "technician_not_found")
	}
	if !tech.Active {
		return nil, httperr.ErrPolicy("technician_inactive")
	}
	return tech, nil
}

// ======================================================
// CRITICAL SECTION
// ======================================================

// withPartyLocks executa fn segurando o lock de cada responsável.
func (o Options) withPartyLocks(
	ctx context.Context,
	locker lock.Locker,
	parties []domain.ResponsibleParty,
	fn func() error,
) error {

	waitCtx := ctx
	if o.LockWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, o.LockWait)
		defer cancel()
	}

	keys := domain.LockKeys(parties)
	unlock, err := locker.Lock(waitCtx, keys...)
	if err != nil {
		return fmt.Errorf("locking %v: %w", keys, err)
	}
	defer unlock()

	return fn()
}

// commit confere os conflitos e grava na mesma transação.
func commit(
	ctx context.Context,
	repo domain.Repository,
	queries []domain.ConflictQuery,
	write func(tx domain.Repository) error,
) error {

	return repo.WithinTransaction(ctx, func(tx domain.Repository) error {
		for _, q := range queries {
			if len(q.Parties) == 0 {
				continue
			}
			existing, err := tx.FindConflicting(ctx, q)
			if err != nil {
				return fmt.Errorf("finding conflicts: %w", err)
			}
			if err := domain.AssertNoConflict(existing, q); err != nil {
				return err
			}
		}
		return write(tx)
	})
}
