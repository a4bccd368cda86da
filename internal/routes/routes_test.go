package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/solar-scheduler/internal/audit"
	"github.com/BruksfildServices01/solar-scheduler/internal/config"
	domain "github.com/BruksfildServices01/solar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/solar-scheduler/internal/dto"
	"github.com/BruksfildServices01/solar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/solar-scheduler/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/solar-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/solar-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/solar-scheduler/internal/usecase/appointment"
)

const secret = "test-secret"

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := infraRepo.NewAppointmentMemoryRepository()
	infraRepo.SeedDemo(repo)

	dispatcher := audit.NewDispatcher(audit.NewZapSink(zap.NewNop()), 10, zap.NewNop())
	t.Cleanup(dispatcher.Close)

	opts := ucAppointment.DefaultOptions()
	opts.Now = func() time.Time {
		return timezone.CivilDate{Year: 2025, Month: time.March, Day: 10}.At(7, 0)
	}

	r := gin.New()
	RegisterRoutes(r, &config.Config{JWTSecret: secret}, Deps{
		Repo:     repo,
		Locker:   lock.NewMemoryLocker(),
		Selector: domain.LeastLoadedSelector{},
		Audit:    dispatcher,
		Options:  opts,
		Log:      zap.NewNop(),
	})
	return r
}

func token(t *testing.T) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "7d3b2c1e-9a41-4f5e-8b11-2f6a7c9d0e12",
		"role": "coordinator",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func booking(start, end string) map[string]any {
	return map[string]any{
		"start":     start,
		"end":       end,
		"tag":       "Equipe A",
		"client":    "Solaris Energia",
		"plant":     "UFV Norte",
		"equipment": "INV-001",
	}
}

func TestHealthIsPublic(t *testing.T) {
	r := newServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIRequiresToken(t *testing.T) {
	r := newServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability?tag=Equipe%20A&date=2025-03-12", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing_authorization_header", errorCode(t, w))

	req := httptest.NewRequest(http.MethodGet, "/api/availability?tag=Equipe%20A&date=2025-03-12", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAvailabilityEndpoint(t *testing.T) {
	r := newServer(t)

	t.Run("whole day for idle technicians", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/api/availability?tag=Equipe%20A&date=12/03/2025", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got dto.AvailabilityDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

		assert.Equal(t, "2025-03-12", got.Date)
		require.Len(t, got.Technicians, 2)
		assert.Equal(t, "Ana Lima", got.Technicians[0].TechnicianName)
		assert.Equal(t, []dto.SlotDTO{{Start: "08:00:00", End: "17:00:00"}}, got.Technicians[0].FreeSlots)
	})

	t.Run("missing params", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/api/availability?date=2025-03-12", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "missing_params", errorCode(t, w))
	})

	t.Run("malformed date", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/api/availability?tag=Equipe%20A&date=2025-13-01", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown team", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/api/availability?tag=Equipe%20Z&date=2025-03-12", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "team_not_found", errorCode(t, w))
	})
}

func TestAppointmentLifecycle(t *testing.T) {
	r := newServer(t)

	// criação com escolha automática
	w := do(t, r, http.MethodPost, "/api/appointments", booking("2025-03-12T10:00", "2025-03-12T11:00"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created dto.AppointmentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "2025-03-12T10:00:00", created.Start)
	assert.Equal(t, time.Date(2025, time.March, 12, 13, 0, 0, 0, time.UTC), created.StartInstant)
	assert.Equal(t, "Pendente", created.Status)
	require.NotNil(t, created.TechnicianID)
	require.NotNil(t, created.RequesterID)
	assert.Equal(t, "7d3b2c1e-9a41-4f5e-8b11-2f6a7c9d0e12", *created.RequesterID)
	assert.NotEmpty(t, created.TechnicianName)

	// mesmo técnico, horário sobreposto
	conflicting := booking("2025-03-12T10:30", "2025-03-12T11:30")
	conflicting["technician_id"] = *created.TechnicianID
	w = do(t, r, http.MethodPost, "/api/appointments", conflicting)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "time_conflict", errorCode(t, w))

	// sábado
	w = do(t, r, http.MethodPost, "/api/appointments", booking("2025-03-15T10:00", "2025-03-15T11:00"))
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
	assert.Equal(t, "non_working_day", errorCode(t, w))

	// corpo incompleto
	w = do(t, r, http.MethodPost, "/api/appointments", map[string]any{"start": "2025-03-12T10:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", errorCode(t, w))

	// edição parcial
	w = do(t, r, http.MethodPatch, "/api/appointments/"+created.ID, map[string]any{"notes": "limpeza dos módulos"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated dto.AppointmentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "limpeza dos módulos", updated.Notes)
	assert.Equal(t, created.Start, updated.Start)

	// remoção e segunda remoção
	w = do(t, r, http.MethodDelete, "/api/appointments/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodDelete, "/api/appointments/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "appointment_not_found", errorCode(t, w))

	w = do(t, r, http.MethodPatch, "/api/appointments/"+created.ID, map[string]any{"notes": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodDelete, "/api/appointments/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
