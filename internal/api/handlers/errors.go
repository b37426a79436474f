package handlers

import (
	"errors"

	"transformer-load/internal/api/models"

	"github.com/gin-gonic/gin"
)

var errPresetNotFound = errors.New("transformer preset not found")

func respondError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
