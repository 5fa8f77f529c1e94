package api

import (
	"net/http"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/service/profile"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service profile.ProfileUseCase
}

func NewProfileHandler(service profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) Register(router *gin.RouterGroup) {
	router.GET("/profile/driver-license", h.get)
	router.PUT("/profile/driver-license", h.save)
}

func (h *ProfileHandler) get(c *gin.Context) {
	license, err := h.service.DriverLicense(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, license)
}

func (h *ProfileHandler) save(c *gin.Context) {
	var license domain.DriverLicense
	if err := c.ShouldBindJSON(&license); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.SaveDriverLicense(c.Request.Context(), license); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, license)
}
