package routes

import (
	"errors"
	"net/http"

	"taskory/taskory/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID pulls the authenticated user out of the gin context.
// The auth middleware sets it; a missing value means the route was
// registered without the middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return userIDInterface.(uuid.UUID), true
}

// handleValidationError renders field-level validation failures as a 400
// with a field→message map. Returns true when the error was handled.
func handleValidationError(c *gin.Context, err error) bool {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return true
	}

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": models.ValidationErrors{verr.Field: verr.Message}})
		return true
	}

	return false
}
