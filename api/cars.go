package api

import (
	"net/http"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	service catalog.CatalogUseCase
}

func NewCarHandler(service catalog.CatalogUseCase) *CarHandler {
	return &CarHandler{service: service}
}

func (h *CarHandler) Register(router *gin.RouterGroup) {
	router.GET("/cars", h.list)
	router.GET("/cars/:id", h.get)
}

func (h *CarHandler) list(c *gin.Context) {
	cars, err := h.service.List(c.Request.Context(), domain.CarCategory(c.Query("category")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cars)
}

func (h *CarHandler) get(c *gin.Context) {
	car, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}
