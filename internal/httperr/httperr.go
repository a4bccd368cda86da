package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// ======================================================
// BUSINESS → HTTP
// ======================================================

var messages = map[string]string{
	"invalid_request":         "Dados inválidos.",
	"invalid_date_or_time":    "Formato de data e hora inválido.",
	"invalid_date":            "Data inválida.",
	"missing_params":          "Tag e data são obrigatórias.",
	"invalid_time_range":      "A data de início deve ser anterior ao fim.",
	"start_in_past":           "Data já passou.",
	"non_working_day":         "Compromissos só podem ser agendados em dias úteis (segunda a sexta).",
	"outside_business_hours":  "Compromissos só podem ser agendados entre 08:00 e 17:00 (Horário de Brasília).",
	"multi_day_not_allowed":   "O compromisso deve começar e terminar no mesmo dia.",
	"team_not_found":          "Equipe não encontrada.",
	"technician_not_found":    "Técnico não encontrado.",
	"technician_inactive":     "Técnico inativo.",
	"client_not_found":        "Cliente não encontrado.",
	"plant_not_found":         "Usina não encontrada.",
	"equipment_not_found":     "Equipamento não encontrado.",
	"appointment_not_found":   "Agendamento não encontrado.",
	"time_conflict":           "Já existe um compromisso nesse horário para o técnico ou técnico de campo.",
	"no_technician_available": "Nenhum técnico disponível no horário solicitado.",
}

func MessageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}

// StatusFor traduz o tipo do erro de negócio para o status HTTP.
func StatusFor(be BusinessError) int {
	switch be.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindPolicy:
		return http.StatusNotAcceptable
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		if be.Code == "no_technician_available" {
			return http.StatusNotAcceptable
		}
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// WriteBusiness responde um BusinessError e devolve false se err não for um.
func WriteBusiness(c *gin.Context, err error) bool {
	be, ok := AsBusiness(err)
	if !ok {
		return false
	}
	Write(c, StatusFor(be), be.Code, MessageFor(be.Code))
	return true
}

// IsExclusionConflict detecta violação da constraint EXCLUDE do Postgres.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01"
	}
	return false
}
