package api

import (
	"net/http"

	"github.com/Domenick1991/carrental/internal/service/history"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service history.HistoryUseCase
}

func NewNotificationHandler(service history.HistoryUseCase) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) Register(router *gin.RouterGroup) {
	router.GET("/notifications", h.list)
	router.DELETE("/notifications", h.clear)
}

func (h *NotificationHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List(c.Request.Context()))
}

func (h *NotificationHandler) clear(c *gin.Context) {
	h.service.Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}
