package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestClassifyErrorStatusCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.ErrAlreadyApplied, http.StatusConflict},
		{apperrors.ErrAlreadyMember, http.StatusConflict},
		{apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{apperrors.ErrPermissionDenied, http.StatusForbidden},
		{apperrors.ErrAdminRequired, http.StatusForbidden},
		{apperrors.ErrNotParticipant, http.StatusForbidden},
		{apperrors.ErrOpportunityNotFound, http.StatusNotFound},
		{apperrors.ErrApplicationNotFound, http.StatusNotFound},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{apperrors.ErrOpportunityExpired, http.StatusBadRequest},
		{apperrors.ErrInvalidStatus, http.StatusBadRequest},
		{errors.New("pool closed"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			status, detail := classifyError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.NotNil(t, detail)
		})
	}
}

// Wrapped service errors must still land on the right status.
func TestClassifyErrorUnwraps(t *testing.T) {
	status, _ := classifyError(fmt.Errorf("applying: %w", apperrors.ErrAlreadyApplied))
	assert.Equal(t, http.StatusConflict, status)
}

func TestHandleAPIErrorWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/applications", nil)

	HandleAPIError(c, apperrors.ErrAlreadyApplied)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.True(t, c.IsAborted())
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), "already applied")
}
