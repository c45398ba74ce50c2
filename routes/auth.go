package routes

import (
	"errors"
	"net/http"

	"taskory/taskory/database"
	"taskory/taskory/services"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

func RegisterAuthRoutes(router *gin.Engine, db *database.Database, authService services.AuthServiceInterface, userService services.UserServiceInterface) {
	group := router.Group("/api/v1/auth")
	{
		group.POST("/register", func(c *gin.Context) { Register(c, db, authService, userService) })
		group.POST("/login", func(c *gin.Context) { Login(c, db, authService) })
		group.POST("/refresh", func(c *gin.Context) { RefreshToken(c, authService) })
	}
}

// RegisterProfileRoutes registers the authenticated profile endpoint.
func RegisterProfileRoutes(group *gin.RouterGroup, db *database.Database, userService services.UserServiceInterface) {
	group.GET("/auth/profile", func(c *gin.Context) { GetProfile(c, db, userService) })
}

func Register(c *gin.Context, db *database.Database, authService services.AuthServiceInterface, userService services.UserServiceInterface) {
	var request registerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := userService.Register(db, services.RegisterInput{
		Username:        request.Username,
		Email:           request.Email,
		Password:        request.Password,
		PasswordConfirm: request.PasswordConfirm,
		FirstName:       request.FirstName,
		LastName:        request.LastName,
	})
	if err != nil {
		if handleValidationError(c, err) {
			return
		}
		if errors.Is(err, services.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tokens, err := authService.IssueTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    user,
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
		"message": "User registered successfully",
	})
}

func Login(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, tokens, err := authService.Login(db, request.Username, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
	})
}

func RefreshToken(c *gin.Context, authService services.AuthServiceInterface) {
	var request refreshRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	access, err := authService.Refresh(request.Refresh)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

func GetProfile(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
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
