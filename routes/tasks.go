package routes

import (
	"errors"
	"net/http"

	"taskory/taskory/database"
	"taskory/taskory/services"

	"github.com/gin-gonic/gin"
)

func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface) {
	group.GET("/tasks", func(c *gin.Context) { GetTasks(c, db, taskService) })
	group.POST("/tasks", func(c *gin.Context) { CreateTask(c, db, taskService) })
	group.GET("/tasks/stats", func(c *gin.Context) { GetTaskStats(c, db, taskService) })
	group.GET("/tasks/:id", func(c *gin.Context) { GetTaskById(c, db, taskService) })
	group.PUT("/tasks/:id", func(c *gin.Context) { UpdateTask(c, db, taskService) })
	group.PATCH("/tasks/:id", func(c *gin.Context) { UpdateTask(c, db, taskService) })
	group.DELETE("/tasks/:id", func(c *gin.Context) { DeleteTask(c, db, taskService) })
}

func CreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var taskData map[string]interface{}
	if err := c.ShouldBindJSON(&taskData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	createdTask, err := taskService.CreateTask(db, userID, taskData)
	if err != nil {
		if handleValidationError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, createdTask)
}

func GetTaskById(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task, err := taskService.GetTaskById(db, userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, task)
}

func UpdateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var taskData map[string]interface{}
	if err := c.ShouldBindJSON(&taskData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	updatedTask, err := taskService.UpdateTask(db, userID, c.Param("id"), taskData)
	if err != nil {
		if handleValidationError(c, err) {
			return
		}
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updatedTask)
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := taskService.DeleteTask(db, userID, c.Param("id")); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}

func GetTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := make(map[string]interface{})

	if completed := c.Query("completed"); completed != "" {
		params["completed"] = completed
	}

	if priority := c.Query("priority"); priority != "" {
		params["priority"] = priority
	}

	if search := c.Query("search"); search != "" {
		params["search"] = search
	}

	if ordering := c.Query("ordering"); ordering != "" {
		params["ordering"] = ordering
	}

	tasks, err := taskService.GetTasks(db, userID, params)
	if err != nil {
		if handleValidationError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func GetTaskStats(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := taskService.GetTaskStats(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
