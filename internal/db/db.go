package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/solar-scheduler/internal/config"
	"github.com/BruksfildServices01/solar-scheduler/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// exclusion constraints: o banco também recusa dois agendamentos
// sobrepostos do mesmo técnico ou do mesmo técnico de campo
var constraints = []struct {
	name string
	ddl  string
}{
	{
		name: "appointments_technician_no_overlap",
		ddl: `ALTER TABLE appointments ADD CONSTRAINT appointments_technician_no_overlap
			EXCLUDE USING gist (technician_id WITH =, tstzrange(start_time, end_time, '[)') WITH &&)
			WHERE (technician_id IS NOT NULL)`,
	},
	{
		name: "appointments_field_technician_no_overlap",
		ddl: `ALTER TABLE appointments ADD CONSTRAINT appointments_field_technician_no_overlap
			EXCLUDE USING gist (field_technician WITH =, tstzrange(start_time, end_time, '[)') WITH &&)
			WHERE (field_technician <> '')`,
	},
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(
		&models.Team{},
		&models.User{},
		&models.Client{},
		&models.Plant{},
		&models.Equipment{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	// sem btree_gist as constraints não existem; o lock da aplicação
	// continua valendo
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Warn("btree_gist unavailable, skipping exclusion constraints", zap.Error(err))
		return nil
	}

	for _, c := range constraints {
		var count int64
		if err := db.Raw(`SELECT COUNT(*) FROM pg_constraint WHERE conname = ?`, c.name).Scan(&count).Error; err != nil {
			return fmt.Errorf("checking constraint %s: %w", c.name, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Exec(c.ddl).Error; err != nil {
			log.Warn("could not add exclusion constraint", zap.String("constraint", c.name), zap.Error(err))
			continue
		}
		log.Info("exclusion constraint added", zap.String("constraint", c.name))
	}

	return nil
}
