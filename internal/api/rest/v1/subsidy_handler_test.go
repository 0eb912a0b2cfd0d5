//go:build unit
// +build unit

package v1

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"subsidy_pilot_service/internal/domain/subsidies"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSubsidyHandler_List_WithFilter_Success(t *testing.T) {
	mockSubsidyService := new(MockSubsidyService)
	mockApplicationService := new(MockApplicationService)
	handler := NewSubsidyHandler(mockSubsidyService, mockApplicationService)

	subsidy := &subsidies.Subsidy{
		ID:         uuid.New().String(),
		SourceCode: "eu-cap",
		ExternalID: "cap-2026-001",
		Title:      "Eco-scheme direct payment",
		Country:    "DE",
		UpdatedAt:  time.Now(),
	}

	mockSubsidyService.On("List", mock.Anything, mock.MatchedBy(func(query *subsidies.SubsidyQuery) bool {
		return query.Country == "DE" && query.OpenOnly
	})).Return([]*subsidies.Subsidy{subsidy}, nil)

	c, w, _ := newAuthedTestContext(t, "GET", "/subsidies?country=DE&openOnly=true", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Eco-scheme direct payment")
	mockSubsidyService.AssertExpectations(t)
}

func TestSubsidyHandler_MatchesForFarm_Success(t *testing.T) {
	mockSubsidyService := new(MockSubsidyService)
	mockApplicationService := new(MockApplicationService)
	handler := NewSubsidyHandler(mockSubsidyService, mockApplicationService)

	farmID := uuid.New().String()
	subsidy := &subsidies.Subsidy{
		ID:         uuid.New().String(),
		SourceCode: "eu-cap",
		ExternalID: "cap-2026-001",
		Title:      "Eco-scheme direct payment",
		Country:    "DE",
		UpdatedAt:  time.Now(),
	}

	mockSubsidyService.On("MatchesForFarm", mock.Anything, farmID).Return([]*subsidies.Subsidy{subsidy}, nil)

	c, w, _ := newAuthedTestContext(t, "GET", "/farms/"+farmID+"/matches", nil)
	c.Params = gin.Params{{Key: "id", Value: farmID}}

	handler.MatchesForFarm(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), subsidy.ID)
}

func TestSubsidyHandler_CreateApplication_Success(t *testing.T) {
	mockSubsidyService := new(MockSubsidyService)
	mockApplicationService := new(MockApplicationService)
	handler := NewSubsidyHandler(mockSubsidyService, mockApplicationService)

	farmID := uuid.New().String()
	subsidyID := uuid.New().String()

	mockApplicationService.On("Create", mock.Anything, farmID, subsidyID).Return(&subsidies.Application{
		ID:        uuid.New().String(),
		FarmID:    farmID,
		SubsidyID: subsidyID,
		Status:    subsidies.ApplicationStatusDraft,
		CreatedAt: time.Now(),
	}, nil)

	c, w, _ := newAuthedTestContext(t, "POST", "/applications", ApplicationRequest{
		FarmID:    farmID,
		SubsidyID: subsidyID,
	})

	handler.CreateApplication(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), subsidies.ApplicationStatusDraft)
	mockApplicationService.AssertExpectations(t)
}

func TestSubsidyHandler_CreateApplication_ClosedSubsidy_Error(t *testing.T) {
	mockSubsidyService := new(MockSubsidyService)
	mockApplicationService := new(MockApplicationService)
	handler := NewSubsidyHandler(mockSubsidyService, mockApplicationService)

	farmID := uuid.New().String()
	subsidyID := uuid.New().String()

	mockApplicationService.On("Create", mock.Anything, farmID, subsidyID).
		Return(nil, errors.New("subsidy no longer accepts applications"))

	c, w, _ := newAuthedTestContext(t, "POST", "/applications", ApplicationRequest{
		FarmID:    farmID,
		SubsidyID: subsidyID,
	})

	handler.CreateApplication(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no longer accepts")
}

func TestSubsidyHandler_TransitionApplication_Success(t *testing.T) {
	mockSubsidyService := new(MockSubsidyService)
	mockApplicationService := new(MockApplicationService)
	handler := NewSubsidyHandler(mockSubsidyService, mockApplicationService)

	applicationID := uuid.New().String()
	now := time.Now()

	mockApplicationService.On("Transition", mock.Anything, applicationID, subsidies.ApplicationStatusSubmitted).
		Return(&subsidies.Application{
			ID:          applicationID,
			FarmID:      uuid.New().String(),
			SubsidyID:   uuid.New().String(),
			Status:      subsidies.ApplicationStatusSubmitted,
			CreatedAt:   now.Add(-time.Hour),
			SubmittedAt: &now,
		}, nil)

	c, w, _ := newAuthedTestContext(t, "PUT", "/applications/"+applicationID+"/status", TransitionRequest{
		Status: subsidies.ApplicationStatusSubmitted,
	})
	c.Params = gin.Params{{Key: "id", Value: applicationID}}

	handler.TransitionApplication(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "submitted_at")
	mockApplicationService.AssertExpectations(t)
}

func TestSubsidyHandler_TransitionApplication_IllegalMove_Error(t *testing.T) {
	mockSubsidyService := new(MockSubsidyService)
	mockApplicationService := new(MockApplicationService)
	handler := NewSubsidyHandler(mockSubsidyService, mockApplicationService)

	applicationID := uuid.New().String()
	mockApplicationService.On("Transition", mock.Anything, applicationID, subsidies.ApplicationStatusApproved).
		Return(nil, errors.New("illegal transition from 'draft' to 'approved'"))

	c, w, _ := newAuthedTestContext(t, "PUT", "/applications/"+applicationID+"/status", TransitionRequest{
		Status: subsidies.ApplicationStatusApproved,
	})
	c.Params = gin.Params{{Key: "id", Value: applicationID}}

	handler.TransitionApplication(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "illegal transition")
}
