package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jsck45/social-network-api/apperrors"
	"github.com/jsck45/social-network-api/logger"
)

// respondError maps the typed service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var notFound *apperrors.NotFoundError
	var validation *apperrors.ValidationError
	var duplicate *apperrors.DuplicateKeyError
	var invalidRef *apperrors.InvalidReferenceError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validation), errors.As(err, &invalidRef):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &duplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Get().Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
