package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/service/profile"
	"github.com/Domenick1991/carrental/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProfileUseCase is a mock implementation of profile.ProfileUseCase
type MockProfileUseCase struct {
	mock.Mock
}

func (m *MockProfileUseCase) SaveDriverLicense(ctx context.Context, license domain.DriverLicense) error {
	args := m.Called(ctx, license)
	return args.Error(0)
}

func (m *MockProfileUseCase) DriverLicense(ctx context.Context) (*domain.DriverLicense, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DriverLicense), args.Error(1)
}

func TestProfileHandler_save(t *testing.T) {
	mockService := &MockProfileUseCase{}
	handler := NewProfileHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("PUT", "/profile/driver-license",
		bytes.NewReader([]byte(`{"number":"12345","expirationDate":"01/31/2030","imageUrl":"https://img.example.com/l.png"}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	license := domain.DriverLicense{Number: "12345", ExpirationDate: "01/31/2030", ImageURL: "https://img.example.com/l.png"}
	mockService.On("SaveDriverLicense", c.Request.Context(), license).Return(nil)

	handler.save(c)

	assert.Equal(t, http.StatusOK, w.Code)

	mockService.AssertExpectations(t)
}

func TestProfileHandler_save_Invalid(t *testing.T) {
	mockService := &MockProfileUseCase{}
	handler := NewProfileHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("PUT", "/profile/driver-license", bytes.NewReader([]byte(`{"number":"abc"}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("SaveDriverLicense", c.Request.Context(), domain.DriverLicense{Number: "abc"}).
		Return(validation.Errors{"number": "invalid"})

	handler.save(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	mockService.AssertExpectations(t)
}

func TestProfileHandler_get_NotFound(t *testing.T) {
	mockService := &MockProfileUseCase{}
	handler := NewProfileHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/profile/driver-license", nil)

	mockService.On("DriverLicense", c.Request.Context()).Return(nil, profile.ErrLicenseNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	mockService.AssertExpectations(t)
}
