package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	service booking.BookingUseCase
}

func NewCheckoutHandler(service booking.BookingUseCase) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

func (h *CheckoutHandler) Register(router *gin.RouterGroup) {
	router.GET("/checkout/quote", h.quote)
	router.POST("/checkout/confirm", h.confirm)
}

func (h *CheckoutHandler) quote(c *gin.Context) {
	quote, err := h.service.Quote(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *CheckoutHandler) confirm(c *gin.Context) {
	var input booking.ConfirmInput
	// an empty body is allowed for non-card payments
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Confirm(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
