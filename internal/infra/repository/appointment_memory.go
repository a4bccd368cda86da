package repository

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/solar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/solar-scheduler/internal/models"
)

// AppointmentMemoryRepository guarda tudo em mapas protegidos por mutex.
// Serve aos testes e ao STORE_DRIVER=memory. Transações são serializadas
// com as demais escritas e desfeitas pelo undo log quando fn falha.
type AppointmentMemoryRepository struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	teams        map[string]models.Team
	users        map[string]models.User
	clients      map[string]models.Client
	plants       map[string]models.Plant
	equipment    map[string]models.Equipment
	appointments map[string]models.Appointment

	now func() time.Time
}

func NewAppointmentMemoryRepository() *AppointmentMemoryRepository {
	return &AppointmentMemoryRepository{
		teams:        map[string]models.Team{},
		users:        map[string]models.User{},
		clients:      map[string]models.Client{},
		plants:       map[string]models.Plant{},
		equipment:    map[string]models.Equipment{},
		appointments: map[string]models.Appointment{},
		now:          time.Now,
	}
}

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// --------------------------------------------------
// Seed
// --------------------------------------------------

func (r *AppointmentMemoryRepository) AddTeam(t models.Team) models.Team {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = newID(t.ID)
	r.teams[t.ID] = t
	return t
}

func (r *AppointmentMemoryRepository) AddTechnician(u models.User) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = newID(u.ID)
	r.users[u.ID] = u
	return u
}

func (r *AppointmentMemoryRepository) AddClient(c models.Client) models.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = newID(c.ID)
	r.clients[c.ID] = c
	return c
}

func (r *AppointmentMemoryRepository) AddPlant(p models.Plant) models.Plant {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = newID(p.ID)
	r.plants[p.ID] = p
	return p
}

func (r *AppointmentMemoryRepository) AddEquipment(e models.Equipment) models.Equipment {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = newID(e.ID)
	r.equipment[e.ID] = e
	return e
}

// --------------------------------------------------
// Team / Technician
// --------------------------------------------------

func (r *AppointmentMemoryRepository) TeamExists(_ context.Context, tag string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.teamByName(tag)
	return ok, nil
}

func (r *AppointmentMemoryRepository) teamByName(name string) (models.Team, bool) {
	for _, t := range r.teams {
		if t.Name == name {
			return t, true
		}
	}
	return models.Team{}, false
}

func (r *AppointmentMemoryRepository) ListActiveTechnicians(_ context.Context, tag string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.teamByName(tag)
	if !ok {
		return nil, nil
	}

	var out []models.User
	for _, u := range r.users {
		if u.Active && u.TeamID != nil && *u.TeamID == team.ID {
			out = append(out, u)
		}
	}
	slices.SortFunc(out, func(a, b models.User) int {
		if c := strings.Compare(a.DisplayName(), b.DisplayName()); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *AppointmentMemoryRepository) GetTechnician(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

// --------------------------------------------------
// Client / Plant / Equipment
// --------------------------------------------------

func (r *AppointmentMemoryRepository) FindClientByName(_ context.Context, name string) (*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *AppointmentMemoryRepository) FindPlant(_ context.Context, clientID, name string) (*models.Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.plants {
		if p.ClientID == clientID && strings.EqualFold(p.Name, name) {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *AppointmentMemoryRepository) FindEquipment(_ context.Context, plantID, ref string) (*models.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.equipment {
		if e.PlantID == plantID && (strings.EqualFold(e.Name, ref) || e.SerialNumber == ref) {
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentMemoryRepository) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if ap.TechnicianID != nil {
		if u, ok := r.users[*ap.TechnicianID]; ok {
			ap.Technician = &u
		}
	}
	return &ap, nil
}

func (r *AppointmentMemoryRepository) ListAppointmentsForTechnicians(
	_ context.Context,
	technicianIDs []string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	window := domain.NewTimeSlot(start, end)
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.TechnicianID == nil || !slices.Contains(technicianIDs, *ap.TechnicianID) {
			continue
		}
		if domain.Overlaps(domain.SlotOf(&ap), window) {
			out = append(out, ap)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *AppointmentMemoryRepository) FindConflicting(_ context.Context, q domain.ConflictQuery) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := slices.Collect(maps.Values(r.appointments))
	var out []models.Appointment
	for _, c := range domain.DetectConflicts(all, q) {
		if ap, ok := r.appointments[c.WithAppointmentID]; ok && !slices.ContainsFunc(out, func(a models.Appointment) bool { return a.ID == ap.ID }) {
			out = append(out, ap)
		}
	}
	sortByStart(out)
	return out, nil
}

// Escritas fora de transação esperam as transações em curso.

func (r *AppointmentMemoryRepository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return r.createAppointment(ap, nil)
}

func (r *AppointmentMemoryRepository) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return r.updateAppointment(ap, nil)
}

func (r *AppointmentMemoryRepository) DeleteAppointment(_ context.Context, id string) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return r.deleteAppointment(id, nil)
}

func (r *AppointmentMemoryRepository) createAppointment(ap *models.Appointment, undo undoLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap.ID = newID(ap.ID)
	undo.remember(r.appointments, ap.ID)

	now := r.now().UTC()
	ap.CreatedAt = now
	ap.UpdatedAt = now
	stored := *ap
	stored.Technician = nil
	r.appointments[ap.ID] = stored
	return nil
}

func (r *AppointmentMemoryRepository) updateAppointment(ap *models.Appointment, undo undoLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[ap.ID]; !ok {
		return domain.ErrNotFound
	}
	undo.remember(r.appointments, ap.ID)

	ap.UpdatedAt = r.now().UTC()
	stored := *ap
	stored.Technician = nil
	r.appointments[ap.ID] = stored
	return nil
}

func (r *AppointmentMemoryRepository) deleteAppointment(id string, undo undoLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[id]; !ok {
		return domain.ErrNotFound
	}
	undo.remember(r.appointments, id)
	delete(r.appointments, id)
	return nil
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

// undoLog guarda, por id, a linha anterior à primeira escrita da
// transação. nil significa que a linha não existia.
type undoLog map[string]*models.Appointment

func (u undoLog) remember(rows map[string]models.Appointment, id string) {
	if u == nil {
		return
	}
	if _, seen := u[id]; seen {
		return
	}
	if prev, ok := rows[id]; ok {
		u[id] = &prev
		return
	}
	u[id] = nil
}

// memoryTx é a visão da transação: leituras vão direto ao repositório,
// escritas entram no undo log.
type memoryTx struct {
	*AppointmentMemoryRepository
	undo undoLog
}

func (tx *memoryTx) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	return tx.createAppointment(ap, tx.undo)
}

func (tx *memoryTx) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	return tx.updateAppointment(ap, tx.undo)
}

func (tx *memoryTx) DeleteAppointment(_ context.Context, id string) error {
	return tx.deleteAppointment(id, tx.undo)
}

// WithinTransaction aninhada reaproveita a transação externa.
func (tx *memoryTx) WithinTransaction(_ context.Context, fn func(tx domain.Repository) error) error {
	return fn(tx)
}

func (r *AppointmentMemoryRepository) WithinTransaction(
	_ context.Context,
	fn func(tx domain.Repository) error,
) error {

	r.txMu.Lock()
	defer r.txMu.Unlock()

	tx := &memoryTx{AppointmentMemoryRepository: r, undo: undoLog{}}
	if err := fn(tx); err != nil {
		r.rollback(tx.undo)
		return err
	}
	return nil
}

func (r *AppointmentMemoryRepository) rollback(undo undoLog) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, prev := range undo {
		if prev == nil {
			delete(r.appointments, id)
			continue
		}
		r.appointments[id] = *prev
	}
}

func sortByStart(apps []models.Appointment) {
	slices.SortFunc(apps, func(a, b models.Appointment) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// Compile-time check
var (
	_ domain.Repository = (*AppointmentMemoryRepository)(nil)
	_ domain.Repository = (*memoryTx)(nil)
)
