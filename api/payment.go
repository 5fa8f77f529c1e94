package api

import (
	"net/http"

	"github.com/Domenick1991/carrental/internal/service/payment"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service payment.PaymentUseCase
}

type paymentRequest struct {
	Method string `json:"method"`
}

type paymentResponse struct {
	Method   string `json:"method"`
	Selected bool   `json:"selected"`
}

func NewPaymentHandler(service payment.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.GET("/payment", h.get)
	router.PUT("/payment", h.selectMethod)
	router.DELETE("/payment", h.clear)
}

func (h *PaymentHandler) get(c *gin.Context) {
	method, ok := h.service.Selected()
	c.JSON(http.StatusOK, paymentResponse{Method: method, Selected: ok})
}

func (h *PaymentHandler) selectMethod(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Select(c.Request.Context(), req.Method); err != nil {
		writeError(c, err)
		return
	}
	h.get(c)
}

func (h *PaymentHandler) clear(c *gin.Context) {
	h.service.Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}
