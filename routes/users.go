package routes

import (
	"errors"
	"net/http"

	"taskory/taskory/database"
	"taskory/taskory/services"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints. They are self-scoped:
// a caller can only reach their own record, and any other id looks like
// a missing resource.
func RegisterUserRoutes(group *gin.RouterGroup, db *database.Database, userService services.UserServiceInterface) {
	group.GET("/users/:id", func(c *gin.Context) { GetUserById(c, db, userService) })
	group.PUT("/users/:id", func(c *gin.Context) { UpdateUser(c, db, userService) })
	group.DELETE("/users/:id", func(c *gin.Context) { DeleteUser(c, db, userService) })
}

func GetUserById(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if c.Param("id") != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user, err := userService.GetUserById(db, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func UpdateUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if c.Param("id") != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var userData map[string]interface{}
	if err := c.ShouldBindJSON(&userData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := userService.UpdateUser(db, userID, userData)
	if err != nil {
		if handleValidationError(c, err) {
			return
		}
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func DeleteUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if c.Param("id") != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := userService.DeleteUser(db, userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}
