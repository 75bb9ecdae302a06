package controllers

import (
	"errors"
	"net/http"

	"freshkeep/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError maps service errors onto HTTP statuses. Storage errors
// stay opaque 500s; outbound-service failures surface as gateway errors
// so the client can tell them from its own mistakes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrMissingAPIKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDispositionFinal):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidAPIKey),
		errors.Is(err, services.ErrServerFailure),
		errors.Is(err, services.ErrNetwork),
		errors.Is(err, services.ErrBadResponse):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
