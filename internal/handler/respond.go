package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sreekanth-25/Project-Tracker-Application/internal/model"
)

// respondError maps domain errors onto their HTTP status. Anything
// unrecognized is a storage or programming failure and stays generic.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrProjectNotFound),
		errors.Is(err, model.ErrTaskNotFound),
		errors.Is(err, model.ErrMilestoneNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
