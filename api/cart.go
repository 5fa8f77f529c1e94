package api

import (
	"net/http"

	"github.com/Domenick1991/carrental/internal/service/cart"
	"github.com/Domenick1991/carrental/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cart    cart.CartUseCase
	catalog catalog.CatalogUseCase
}

type addItemRequest struct {
	CarID string `json:"carId" binding:"required"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse = cart.Summary

func NewCartHandler(cart cart.CartUseCase, catalog catalog.CatalogUseCase) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog}
}

func (h *CartHandler) Register(router *gin.RouterGroup) {
	router.GET("/cart", h.get)
	router.DELETE("/cart", h.clear)
	router.POST("/cart/items", h.add)
	router.DELETE("/cart/items/:id", h.remove)
	router.PUT("/cart/items/:id/quantity", h.updateQuantity)
	router.POST("/cart/items/:id/toggle", h.toggle)
}

func (h *CartHandler) view() cartResponse {
	return h.cart.Summary()
}

func (h *CartHandler) get(c *gin.Context) {
	c.JSON(http.StatusOK, h.view())
}

func (h *CartHandler) add(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	car, err := h.catalog.GetByID(c.Request.Context(), req.CarID)
	if err != nil {
		writeError(c, err)
		return
	}

	item := h.cart.AddItem(c.Request.Context(), *car)
	c.JSON(http.StatusCreated, item)
}

func (h *CartHandler) remove(c *gin.Context) {
	h.cart.RemoveItem(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, h.view())
}

func (h *CartHandler) updateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// quantities below 1 are ignored by the store
	h.cart.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
	c.JSON(http.StatusOK, h.view())
}

func (h *CartHandler) toggle(c *gin.Context) {
	h.cart.ToggleSelect(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, h.view())
}

func (h *CartHandler) clear(c *gin.Context) {
	h.cart.ClearCart(c.Request.Context())
	c.JSON(http.StatusOK, h.view())
}
