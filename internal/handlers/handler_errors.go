package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Gabriel4210/DRE/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service error onto the HTTP status the API documents.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, failMsg string) {
	var (
		dataErr *apperrors.DataError
		appErr  *apperrors.AppError
	)
	switch {
	// A DataError may wrap a ValidationError of the bad row; it is still a 500.
	case errors.As(err, &dataErr):
		logger.Error("Stored transaction data is invalid", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Stored transaction data is invalid",
			"detail": dataErr.Error(),
		})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Rejected invalid input", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &appErr) && appErr.Code >= http.StatusBadRequest:
		logger.Error(failMsg, slog.String("error", err.Error()))
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
	default:
		logger.Error(failMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg})
	}
}
