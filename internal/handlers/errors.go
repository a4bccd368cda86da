package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/solar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/solar-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/solar-scheduler/internal/middleware"
)

// writeError responde erros de negócio com o código deles; o resto é
// infraestrutura e vira 503 (lock) ou 500.
func writeError(c *gin.Context, log *zap.Logger, err error, fallbackCode, fallbackMessage string) {
	if httperr.WriteBusiness(c, err) {
		return
	}

	if errors.Is(err, lock.ErrNotAcquired) {
		log.Warn("lock not acquired", zap.String("path", c.FullPath()), zap.Error(err))
		httperr.Unavailable(c, "scheduling_busy", "Agenda ocupada, tente novamente.")
		return
	}

	log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	httperr.Internal(c, fallbackCode, fallbackMessage)
}

func requesterID(c *gin.Context) *string {
	if id := c.GetString(middleware.ContextUserID); id != "" {
		return &id
	}
	return nil
}
