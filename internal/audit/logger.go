package audit

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/solar-scheduler/internal/models"
)

// Logger grava os eventos na tabela audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev Event) error {
	log := models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metadataJSON(ev.Metadata),
	}

	return l.db.Create(&log).Error
}

// ZapSink escreve os eventos no log estruturado. Usado sem banco.
type ZapSink struct {
	log *zap.Logger
}

func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log.Named("audit")}
}

func (s *ZapSink) Log(ev Event) error {
	fields := []zap.Field{
		zap.String("action", ev.Action),
		zap.String("entity", ev.Entity),
		zap.String("metadata", metadataJSON(ev.Metadata)),
	}
	if ev.UserID != nil {
		fields = append(fields, zap.String("user_id", *ev.UserID))
	}
	if ev.EntityID != nil {
		fields = append(fields, zap.String("entity_id", *ev.EntityID))
	}
	s.log.Info("audit", fields...)
	return nil
}

func metadataJSON(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}
