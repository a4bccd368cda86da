package appointment

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/solar-scheduler/internal/domain/appointment"
)

type GetAvailability struct {
	repo domain.Repository
	opts Options
	log  *zap.Logger
}

func NewGetAvailability(
	repo domain.Repository,
	opts Options,
	log *zap.Logger,
) *GetAvailability {
	return &GetAvailability{
		repo: repo,
		opts: opts,
		log:  log,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TechnicianAvailability, error) {

	tag := strings.TrimSpace(in.Tag)

	if err := requireTeam(ctx, uc.repo, tag); err != nil {
		return nil, err
	}

	techs, err := uc.repo.ListActiveTechnicians(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("listing technicians: %w", err)
	}

	out := make([]domain.TechnicianAvailability, 0, len(techs))
	for _, t := range techs {
		out = append(out, domain.TechnicianAvailability{
			TechnicianID:   t.ID,
			TechnicianName: t.DisplayName(),
			FreeSlots:      []domain.TimeSlot{},
		})
	}
	slices.SortFunc(out, func(a, b domain.TechnicianAvailability) int {
		if c := strings.Compare(a.TechnicianName, b.TechnicianName); c != 0 {
			return c
		}
		return strings.Compare(a.TechnicianID, b.TechnicianID)
	})

	// fim de semana não tem janela agendável
	if len(out) == 0 || !domain.IsWorkday(in.Date.Weekday()) {
		return out, nil
	}

	window := uc.opts.WorkingHours.Window(in.Date)
	ids := make([]string, len(out))
	for i, a := range out {
		ids[i] = a.TechnicianID
	}

	// compromissos cujo buffer alcança a janela também contam
	apps, err := uc.repo.ListAppointmentsForTechnicians(
		ctx,
		ids,
		window.Start.Add(-uc.opts.Buffer),
		window.End.Add(uc.opts.Buffer),
	)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	commitments := make(map[string][]domain.TimeSlot, len(out))
	for i := range apps {
		if apps[i].TechnicianID == nil {
			continue
		}
		id := *apps[i].TechnicianID
		commitments[id] = append(commitments[id], domain.SlotOf(&apps[i]))
	}

	for i := range out {
		out[i].FreeSlots = domain.FreeSlots(commitments[out[i].TechnicianID], window, uc.opts.Buffer)
	}

	uc.log.Debug("availability computed",
		zap.String("tag", tag),
		zap.String("date", in.Date.String()),
		zap.Int("technicians", len(out)),
		zap.Int("appointments", len(apps)),
	)

	return out, nil
}
