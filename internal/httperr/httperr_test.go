package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrValidation("start_in_past"), http.StatusBadRequest},
		{ErrPolicy("non_working_day"), http.StatusNotAcceptable},
		{ErrNotFound("appointment_not_found"), http.StatusNotFound},
		{ErrConflict("time_conflict"), http.StatusConflict},
		{ErrConflict("no_technician_available"), http.StatusNotAcceptable},
		{ErrBusiness("anything"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		be, ok := AsBusiness(tc.err)
		require.True(t, ok)
		assert.Equal(t, tc.want, StatusFor(be), be.Code)
	}
}

func TestBusinessErrorSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrConflict("time_conflict"))

	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.True(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(err, KindPolicy))
	assert.False(t, IsBusiness(errors.New("time_conflict"), "time_conflict"))
}

func TestWriteBusiness(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	assert.False(t, WriteBusiness(c, errors.New("boom")))
	require.True(t, WriteBusiness(c, ErrPolicy("outside_business_hours")))

	assert.Equal(t, http.StatusNotAcceptable, w.Code)
	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "outside_business_hours", body.Code)
	assert.Contains(t, body.Message, "08:00")
}

func TestIsExclusionConflict(t *testing.T) {
	assert.True(t, IsExclusionConflict(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})))
	assert.False(t, IsExclusionConflict(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsExclusionConflict(errors.New("23P01")))
}
