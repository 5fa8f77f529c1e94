package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/cart"
	"github.com/Domenick1991/carrental/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartHandler(t *testing.T) (*CartHandler, *MockCatalogUseCase) {
	t.Helper()
	catalogService := &MockCatalogUseCase{}
	store := cart.NewStore(context.Background(), storage.NewMemoryStore(),
		cart.WithIDGenerator(func() string { return "item-1" }))
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return NewCartHandler(store, catalogService), catalogService
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var response cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestCartHandler_add(t *testing.T) {
	handler, catalogService := newCartHandler(t)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/cart/items", bytes.NewReader([]byte(`{"carId":"kia-rio"}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	car := &domain.Car{ID: "kia-rio", Brand: "Kia", Model: "Rio", PricePerDay: 30}
	catalogService.On("GetByID", c.Request.Context(), "kia-rio").Return(car, nil)

	handler.add(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var item domain.CartLineItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, 1, item.Quantity)

	catalogService.AssertExpectations(t)
}

func TestCartHandler_add_UnknownCar(t *testing.T) {
	handler, catalogService := newCartHandler(t)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/cart/items", bytes.NewReader([]byte(`{"carId":"nope"}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	catalogService.On("GetByID", c.Request.Context(), "nope").Return(nil, repository.ErrCarNotFound)

	handler.add(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, handler.cart.Items())
}

func TestCartHandler_add_MissingCarID(t *testing.T) {
	handler, _ := newCartHandler(t)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/cart/items", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.add(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandler_updateQuantityAndToggle(t *testing.T) {
	handler, _ := newCartHandler(t)
	handler.cart.AddItem(context.Background(), domain.Car{ID: "camry", Brand: "Toyota", Model: "Camry", PricePerDay: 50})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "item-1"}}
	c.Request = httptest.NewRequest("PUT", "/cart/items/item-1/quantity", bytes.NewReader([]byte(`{"quantity":3}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.updateQuantity(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeCart(t, w)
	assert.Equal(t, 1, response.TotalItems)
	assert.Equal(t, 3, response.TotalQuantity)
	assert.Equal(t, 150.0, response.TotalPrice)
	assert.False(t, response.Items[0].IsSelected)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "item-1"}}
	c.Request = httptest.NewRequest("POST", "/cart/items/item-1/toggle", nil)

	handler.toggle(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeCart(t, w).Items[0].IsSelected)
}

func TestCartHandler_removeAndClear(t *testing.T) {
	handler, _ := newCartHandler(t)
	handler.cart.AddItem(context.Background(), domain.Car{ID: "camry", PricePerDay: 50})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "item-1"}}
	c.Request = httptest.NewRequest("DELETE", "/cart/items/item-1", nil)

	handler.remove(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeCart(t, w)
	assert.Empty(t, response.Items)
	assert.Equal(t, 0.0, response.TotalPrice)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/cart", nil)

	handler.clear(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"totalItems":0,"totalQuantity":0,"totalPrice":0}`, w.Body.String())
}

// summaryOnlyCart panics on every method except Summary.
type summaryOnlyCart struct {
	cart.CartUseCase
	summary cart.Summary
}

func (s summaryOnlyCart) Summary() cart.Summary {
	return s.summary
}

func TestCartHandler_get_UsesSingleSnapshot(t *testing.T) {
	summary := cart.Summary{
		Items:         []domain.CartLineItem{{ID: "item-1", Car: domain.Car{ID: "camry", PricePerDay: 50}, Quantity: 2}},
		TotalItems:    1,
		TotalQuantity: 2,
		TotalPrice:    100,
	}
	handler := NewCartHandler(summaryOnlyCart{summary: summary}, &MockCatalogUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/cart", nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, summary, decodeCart(t, w))
}
