package v1

import (
	"fmt"
	"net/http"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/infrastructure/auth"

	"github.com/gin-gonic/gin"
)

// AuthHandler defines the interface for handling token issuance
type AuthHandler interface {
	IssueToken(ctx *gin.Context)
}

// authHandler struct holds the token issuer
type authHandler struct {
	tokenIssuer *auth.TokenIssuer
	audit       audit.Recorder
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(tokenIssuer *auth.TokenIssuer, auditRecorder audit.Recorder) AuthHandler {
	return &authHandler{
		tokenIssuer: tokenIssuer,
		audit:       auditRecorder,
	}
}

// IssueToken issues a signed access token for a user
func (handler *authHandler) IssueToken(ctx *gin.Context) {
	var request TokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("invalid token request: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := handler.tokenIssuer.VerifyCredential(request.Secret); err != nil {
		var errorResponse ErrorResponse
		errorMessage := "invalid credential"
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusUnauthorized, errorResponse)
		return
	}

	token, expiresAt, err := handler.tokenIssuer.Issue(request.UserID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("could not issue token: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	handler.audit.Record(ctx, &audit.Event{
		UserID:   request.UserID,
		Action:   audit.ActionTokenIssued,
		ClientIP: ctx.ClientIP(),
	})

	ctx.JSON(http.StatusOK, TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
