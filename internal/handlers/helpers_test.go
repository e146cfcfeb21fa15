package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motocase/internal/common"
	"motocase/internal/services"
)

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"unauthenticated", services.ErrUnauthenticated, http.StatusUnauthorized, "Authentication required"},
		{"forbidden", services.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"not found", fmt.Errorf("failed to load case: %w", pgx.ErrNoRows), http.StatusNotFound, "case not found"},
		{"rule violation", common.Rulef("case status must be one of: open, in_progress, closed"), http.StatusBadRequest, "case status must be one of"},
		{"wrapped rule violation", fmt.Errorf("create rejected: %w", common.Rulef("unknown plan: plan_x")), http.StatusBadRequest, "unknown plan"},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/cases", nil)
			rec := httptest.NewRecorder()
			require.NoError(t, serviceError(e.NewContext(req, rec), tt.err, "case"))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestServiceErrorHidesInternalFailures(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/cases", nil)
	rec := httptest.NewRecorder()

	infraErr := errors.New("failed to connect to host=db user=motocase database=motocase: dial tcp 10.0.0.5:5432: connect: connection refused")
	require.NoError(t, serviceError(e.NewContext(req, rec), infraErr, "case"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
	assert.NotContains(t, rec.Body.String(), "dial tcp")
	assert.NotContains(t, rec.Body.String(), "host=db")
}
