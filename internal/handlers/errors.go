package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/amortization_manager/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusForError maps application errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrOverpayment):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidSchedule),
		errors.Is(err, apperrors.ErrInvalidPayment):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrScheduleLocked),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes err as a JSON error. Server errors get failMsg instead
// of the internal detail, which is only logged.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, failMsg string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(failMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": failMsg})
		return
	}
	logger.Warn(failMsg, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}
