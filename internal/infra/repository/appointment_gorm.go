package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/solar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/solar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/solar-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// notFound troca o erro do gorm pelo sentinel do domínio.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// writeErr traduz violação da exclusion constraint em conflito de horário.
func writeErr(err error) error {
	if httperr.IsExclusionConflict(err) {
		return httperr.ErrConflict("time_conflict")
	}
	return err
}

// --------------------------------------------------
// Team / Technician
// --------------------------------------------------

func (r *AppointmentGormRepository) TeamExists(
	ctx context.Context,
	tag string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("name = ?", tag).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) ListActiveTechnicians(
	ctx context.Context,
	tag string,
) ([]models.User, error) {

	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN teams ON teams.id = users.team_id").
		Where("teams.name = ? AND users.active = ?", tag, true).
		Order("users.first_name ASC, users.last_name ASC, users.id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *AppointmentGormRepository) GetTechnician(
	ctx context.Context,
	id string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// --------------------------------------------------
// Client / Plant / Equipment
// --------------------------------------------------

func (r *AppointmentGormRepository) FindClientByName(
	ctx context.Context,
	name string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		First(&client).Error; err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

func (r *AppointmentGormRepository) FindPlant(
	ctx context.Context,
	clientID string,
	name string,
) (*models.Plant, error) {

	var plant models.Plant
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND LOWER(name) = ?", clientID, strings.ToLower(name)).
		First(&plant).Error; err != nil {
		return nil, notFound(err)
	}
	return &plant, nil
}

func (r *AppointmentGormRepository) FindEquipment(
	ctx context.Context,
	plantID string,
	ref string,
) (*models.Equipment, error) {

	var eq models.Equipment
	if err := r.db.WithContext(ctx).
		Where("plant_id = ? AND (LOWER(name) = ? OR serial_number = ?)", plantID, strings.ToLower(ref), ref).
		Order("parent_id NULLS FIRST").
		First(&eq).Error; err != nil {
		return nil, notFound(err)
	}
	return &eq, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Technician").
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForTechnicians(
	ctx context.Context,
	technicianIDs []string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	if len(technicianIDs) == 0 {
		return nil, nil
	}

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "technician_id", "field_technician", "start_time", "end_time").
		Where(
			"technician_id IN ? AND start_time < ? AND end_time > ?",
			technicianIDs, end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) FindConflicting(
	ctx context.Context,
	q domain.ConflictQuery,
) ([]models.Appointment, error) {

	var (
		parties []string
		args    []any
	)
	if id := q.TechnicianID(); id != "" {
		parties = append(parties, "technician_id = ?")
		args = append(args, id)
	}
	if name := q.FieldTechnician(); name != "" {
		parties = append(parties, "field_technician = ?")
		args = append(args, name)
	}
	if len(parties) == 0 {
		return nil, nil
	}

	tx := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("("+strings.Join(parties, " OR ")+")", args...).
		Where("start_time < ? AND end_time > ?", q.Slot.End, q.Slot.Start)

	if q.ExcludeID != "" {
		tx = tx.Where("id <> ?", q.ExcludeID)
	}

	var apps []models.Appointment
	if err := tx.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return writeErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error)
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	// Updates em vez de Save: Save faria upsert de um registro já apagado
	res := r.db.WithContext(ctx).
		Model(ap).
		Select("*").
		Omit(clause.Associations).
		Updates(ap)
	if res.Error != nil {
		return writeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) WithinTransaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
	if err != nil {
		return fmt.Errorf("appointment transaction: %w", err)
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
