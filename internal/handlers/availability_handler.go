package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/solar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/solar-scheduler/internal/dto"
	"github.com/BruksfildServices01/solar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/solar-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/solar-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/solar-scheduler/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	availability *ucAppointment.GetAvailability
	log          *zap.Logger
}

func NewAvailabilityHandler(
	availability *ucAppointment.GetAvailability,
	log *zap.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: availability,
		log:          log,
	}
}

// Get: GET /api/availability?tag=Equipe%20A&date=2025-03-12 (ou 12/03/2025)
func (h *AvailabilityHandler) Get(c *gin.Context) {
	tag := strings.TrimSpace(c.Query("tag"))
	dateStr := strings.TrimSpace(c.Query("date"))

	if tag == "" || dateStr == "" {
		httperr.BadRequest(c, "missing_params", httperr.MessageFor("missing_params"))
		return
	}

	date, err := timezone.ParseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", httperr.MessageFor("invalid_date"))
		return
	}

	in := domain.AvailabilityInput{Tag: tag, Date: date}
	list, err := h.availability.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, err, "failed_to_load_availability", "Erro ao calcular disponibilidade.")
		return
	}

	httpresp.OK(c, dto.NewAvailabilityDTO(in, list))
}
