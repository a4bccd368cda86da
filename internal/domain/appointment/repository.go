package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/solar-scheduler/internal/models"
)

// ErrNotFound é devolvido pelos repositórios quando o registro não existe.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// -------- Team / Technician --------
	TeamExists(
		ctx context.Context,
		tag string,
	) (bool, error)

	ListActiveTechnicians(
		ctx context.Context,
		tag string,
	) ([]models.User, error)

	GetTechnician(
		ctx context.Context,
		id string,
	) (*models.User, error)

	// -------- Client / Plant / Equipment --------
	FindClientByName(
		ctx context.Context,
		name string,
	) (*models.Client, error)

	FindPlant(
		ctx context.Context,
		clientID string,
		name string,
	) (*models.Plant, error)

	// ref pode ser o nome ou o número de série
	FindEquipment(
		ctx context.Context,
		plantID string,
		ref string,
	) (*models.Equipment, error)

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	ListAppointmentsForTechnicians(
		ctx context.Context,
		technicianIDs []string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// FindConflicting devolve os agendamentos dos responsáveis da consulta
	// que se sobrepõem ao slot. Dentro de WithinTransaction as linhas
	// ficam travadas até o commit.
	FindConflicting(
		ctx context.Context,
		q ConflictQuery,
	) ([]models.Appointment, error)

	// -------- Appointment (write) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id string,
	) error

	WithinTransaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error
}
