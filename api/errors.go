package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/Domenick1991/carrental/internal/service/payment"
	"github.com/Domenick1991/carrental/internal/service/profile"
	"github.com/Domenick1991/carrental/internal/validation"
	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, err error) {
	var fields validation.Errors
	switch {
	case errors.As(err, &fields):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": fields})
	case errors.Is(err, repository.ErrCarNotFound), errors.Is(err, profile.ErrLicenseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrNothingSelected),
		errors.Is(err, booking.ErrNoPaymentMethod),
		errors.Is(err, booking.ErrCardRequired),
		errors.Is(err, payment.ErrEmptyPaymentMethod):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
