package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/solar-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/solar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/solar-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/solar-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/solar-scheduler/internal/models"
	"github.com/BruksfildServices01/solar-scheduler/internal/timezone"
)

// quarta-feira
var wednesday = timezone.CivilDate{Year: 2025, Month: time.March, Day: 12}

type fixture struct {
	repo   *repository.AppointmentMemoryRepository
	locker *lock.MemoryLocker
	audit  *audit.Dispatcher
	opts   Options
	now    time.Time

	ana, bruno, carla models.User

	availability *GetAvailability
	create       *CreateAppointment
	update       *UpdateAppointment
	delete       *DeleteAppointment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:   repository.NewAppointmentMemoryRepository(),
		locker: lock.NewMemoryLocker(),
		now:    timezone.CivilDate{Year: 2025, Month: time.March, Day: 10}.At(7, 0),
	}

	team := f.repo.AddTeam(models.Team{Name: "Equipe A"})
	f.repo.AddTeam(models.Team{Name: "Equipe Vazia"})
	f.ana = f.repo.AddTechnician(models.User{TeamID: &team.ID, FirstName: "Ana", LastName: "Lima", Active: true})
	f.bruno = f.repo.AddTechnician(models.User{TeamID: &team.ID, FirstName: "Bruno", LastName: "Souza", Active: true})
	f.carla = f.repo.AddTechnician(models.User{TeamID: &team.ID, FirstName: "Carla", Active: false})

	client := f.repo.AddClient(models.Client{Name: "Solaris"})
	plant := f.repo.AddPlant(models.Plant{ClientID: client.ID, Name: "UFV Norte"})
	f.repo.AddEquipment(models.Equipment{PlantID: plant.ID, Name: "Inversor 01", SerialNumber: "INV-001"})
	f.repo.AddEquipment(models.Equipment{PlantID: plant.ID, Name: "String Box 02", SerialNumber: "SB-002"})

	f.audit = audit.NewDispatcher(audit.NewZapSink(zap.NewNop()), 100, zap.NewNop())
	t.Cleanup(f.audit.Close)

	f.opts = DefaultOptions()
	f.opts.Now = func() time.Time { return f.now }

	log := zap.NewNop()
	f.availability = NewGetAvailability(f.repo, f.opts, log)
	f.create = NewCreateAppointment(f.repo, f.locker, &domain.RoundRobinSelector{}, f.audit, f.opts, log)
	f.update = NewUpdateAppointment(f.repo, f.locker, f.audit, f.opts, log)
	f.delete = NewDeleteAppointment(f.repo, f.audit, log)
	return f
}

// civil formata um horário da quarta-feira de teste.
func civil(h, m int) string {
	return timezone.FormatDateTime(wednesday.At(h, m))
}

func (f *fixture) input(h1, m1, h2, m2 int) CreateAppointmentInput {
	return CreateAppointmentInput{
		Start:     civil(h1, m1),
		End:       civil(h2, m2),
		Tag:       "Equipe A",
		Client:    "Solaris",
		Plant:     "UFV Norte",
		Equipment: "Inversor 01",
	}
}

func (f *fixture) book(t *testing.T, tech models.User, h1, m1, h2, m2 int) *models.Appointment {
	t.Helper()

	in := f.input(h1, m1, h2, m2)
	in.TechnicianID = tech.ID
	ap, err := f.create.Execute(context.Background(), in)
	require.NoError(t, err)
	return ap
}

func strptr(s string) *string { return &s }
