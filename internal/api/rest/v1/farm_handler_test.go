//go:build unit
// +build unit

package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"subsidy_pilot_service/internal/domain/farms"
	"subsidy_pilot_service/internal/infrastructure/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthedTestContext(t *testing.T, method, url string, body any) (*gin.Context, *httptest.ResponseRecorder, string) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	userID := uuid.New().String()
	c.Set(auth.UserIDKey, userID)

	return c, w, userID
}

func TestFarmHandler_Create_Success(t *testing.T) {
	mockFarmService := new(MockFarmService)
	handler := NewFarmHandler(mockFarmService)

	c, w, userID := newAuthedTestContext(t, "POST", "/farms", FarmRequest{
		Name:     "Hofgut Sonnenfeld",
		Country:  "DE",
		Region:   "Bayern",
		Hectares: 42.5,
	})

	mockFarmService.On("Create", mock.Anything, mock.MatchedBy(func(farm *farms.Farm) bool {
		return farm.OwnerUserID == userID && farm.Name == "Hofgut Sonnenfeld"
	})).Return(&farms.Farm{
		ID:          uuid.New().String(),
		OwnerUserID: userID,
		Name:        "Hofgut Sonnenfeld",
		Country:     "DE",
		Region:      "Bayern",
		Hectares:    42.5,
		CreatedAt:   time.Now(),
	}, nil)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Hofgut Sonnenfeld")
	mockFarmService.AssertExpectations(t)
}

func TestFarmHandler_Create_MissingName_Error(t *testing.T) {
	mockFarmService := new(MockFarmService)
	handler := NewFarmHandler(mockFarmService)

	c, w, _ := newAuthedTestContext(t, "POST", "/farms", map[string]any{"country": "DE"})

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockFarmService.AssertNotCalled(t, "Create")
}

func TestFarmHandler_List_Success(t *testing.T) {
	mockFarmService := new(MockFarmService)
	handler := NewFarmHandler(mockFarmService)

	c, w, userID := newAuthedTestContext(t, "GET", "/farms", nil)

	mockFarmService.On("ListByOwner", mock.Anything, userID).Return([]*farms.Farm{
		{ID: uuid.New().String(), OwnerUserID: userID, Name: "Hofgut Sonnenfeld", Country: "DE", CreatedAt: time.Now()},
	}, nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hofgut Sonnenfeld")
}

func TestFarmHandler_GetByID_NotFound_Error(t *testing.T) {
	mockFarmService := new(MockFarmService)
	handler := NewFarmHandler(mockFarmService)

	farmID := uuid.New().String()
	c, w, _ := newAuthedTestContext(t, "GET", "/farms/"+farmID, nil)
	c.Params = gin.Params{{Key: "id", Value: farmID}}

	mockFarmService.On("GetByID", mock.Anything, farmID).Return(nil, errors.New("not found"))

	handler.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestFarmHandler_DeleteByID_Success(t *testing.T) {
	mockFarmService := new(MockFarmService)
	handler := NewFarmHandler(mockFarmService)

	farmID := uuid.New().String()
	c, w, _ := newAuthedTestContext(t, "DELETE", "/farms/"+farmID, nil)
	c.Params = gin.Params{{Key: "id", Value: farmID}}

	mockFarmService.On("DeleteByID", mock.Anything, farmID).Return(nil)

	handler.DeleteByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), farmID)
	mockFarmService.AssertExpectations(t)
}
