package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/solar-scheduler/internal/dto"
	"github.com/BruksfildServices01/solar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/solar-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/solar-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create *ucAppointment.CreateAppointment
	update *ucAppointment.UpdateAppointment
	remove *ucAppointment.DeleteAppointment
	log    *zap.Logger
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	remove *ucAppointment.DeleteAppointment,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create: create,
		update: update,
		remove: remove,
		log:    log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Start     string `json:"start" binding:"required"` // YYYY-MM-DDTHH:mm, horário de Brasília
	End       string `json:"end" binding:"required"`
	Tag       string `json:"tag" binding:"required"`
	Client    string `json:"client" binding:"required"`
	Plant     string `json:"plant" binding:"required"`
	Equipment string `json:"equipment" binding:"required"`

	FieldTechnician string `json:"field_technician"`
	TechnicianID    string `json:"technician_id"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Start     *string `json:"start"`
	End       *string `json:"end"`
	Tag       *string `json:"tag"`
	Client    *string `json:"client"`
	Plant     *string `json:"plant"`
	Equipment *string `json:"equipment"`

	FieldTechnician *string `json:"field_technician"`
	TechnicianID    *string `json:"technician_id"`
	Status          *string `json:"status"`
	Notes           *string `json:"notes"`
}

// appointmentID devolve false (e responde 404) se o id não for um UUID.
func appointmentID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		httperr.NotFound(c, "appointment_not_found", httperr.MessageFor("appointment_not_found"))
		return "", false
	}
	return id, true
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", httperr.MessageFor("invalid_request"))
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		RequesterID:     requesterID(c),
		Start:           req.Start,
		End:             req.End,
		Tag:             req.Tag,
		Client:          req.Client,
		Plant:           req.Plant,
		Equipment:       req.Equipment,
		FieldTechnician: req.FieldTechnician,
		TechnicianID:    req.TechnicianID,
		Status:          req.Status,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(c, h.log, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	httpresp.Created(c, dto.NewAppointmentDTO(ap))
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", httperr.MessageFor("invalid_request"))
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		ID:              id,
		RequesterID:     requesterID(c),
		Start:           req.Start,
		End:             req.End,
		Tag:             req.Tag,
		Client:          req.Client,
		Plant:           req.Plant,
		Equipment:       req.Equipment,
		FieldTechnician: req.FieldTechnician,
		TechnicianID:    req.TechnicianID,
		Status:          req.Status,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(c, h.log, err, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(ap))
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), requesterID(c), id); err != nil {
		writeError(c, h.log, err, "failed_to_delete_appointment", "Erro ao remover agendamento.")
		return
	}

	httpresp.NoContent(c)
}
