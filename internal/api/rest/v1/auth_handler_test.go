//go:build unit
// +build unit

package v1

import (
	"net/http"
	"testing"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/infrastructure/auth"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestTokenIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()

	settings := &config.AuthSettings{
		SigningKey: "0123456789abcdef0123456789abcdef",
		DemoSecret: "pilot-demo-secret",
		Issuer:     "subsidy-pilot-service",
	}

	issuer, err := auth.NewTokenIssuer(settings, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	return issuer
}

func TestAuthHandler_IssueToken_Success(t *testing.T) {
	mockAuditService := new(MockAuditService)
	handler := NewAuthHandler(newTestTokenIssuer(t), mockAuditService)

	userID := uuid.New().String()
	mockAuditService.On("Record", mock.Anything, mock.MatchedBy(func(event *audit.Event) bool {
		return event.Action == audit.ActionTokenIssued && event.UserID == userID
	})).Return()

	c, w, _ := newAuthedTestContext(t, "POST", "/auth/token", TokenRequest{
		UserID: userID,
		Secret: "pilot-demo-secret",
	})

	handler.IssueToken(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")
	assert.Contains(t, w.Body.String(), "expires_at")
	mockAuditService.AssertExpectations(t)
}

func TestAuthHandler_IssueToken_WrongSecret_Error(t *testing.T) {
	mockAuditService := new(MockAuditService)
	handler := NewAuthHandler(newTestTokenIssuer(t), mockAuditService)

	c, w, _ := newAuthedTestContext(t, "POST", "/auth/token", TokenRequest{
		UserID: uuid.New().String(),
		Secret: "wrong-secret",
	})

	handler.IssueToken(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credential")
	mockAuditService.AssertNotCalled(t, "Record")
}

func TestAuthHandler_IssueToken_MissingUserID_Error(t *testing.T) {
	mockAuditService := new(MockAuditService)
	handler := NewAuthHandler(newTestTokenIssuer(t), mockAuditService)

	c, w, _ := newAuthedTestContext(t, "POST", "/auth/token", map[string]any{})

	handler.IssueToken(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuditService.AssertNotCalled(t, "Record")
}
