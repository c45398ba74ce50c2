package services

import (
	"errors"
	"strings"

	"taskory/taskory/broker"
	"taskory/taskory/database"
	"taskory/taskory/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fields assigned server-side. Supplying them on create is a validation
// error; on update they are dropped without complaint.
var readOnlyTaskFields = []string{"id", "user_id", "owner", "created_at", "updated_at"}

// Columns the listing may be ordered by.
var taskOrderingColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"priority":   "priority",
}

// TaskServiceInterface is the ownership-scoped repository over tasks.
// Every method takes the owner explicitly and only ever touches rows
// belonging to that owner; a foreign task id behaves exactly like a
// missing one.
type TaskServiceInterface interface {
	CreateTask(db *database.Database, ownerID uuid.UUID, input map[string]interface{}) (models.Task, error)
	GetTaskById(db *database.Database, ownerID uuid.UUID, id string) (models.Task, error)
	UpdateTask(db *database.Database, ownerID uuid.UUID, id string, input map[string]interface{}) (models.Task, error)
	DeleteTask(db *database.Database, ownerID uuid.UUID, id string) error
	GetTasks(db *database.Database, ownerID uuid.UUID, params map[string]interface{}) ([]models.Task, error)
	GetTaskStats(db *database.Database, ownerID uuid.UUID) (models.TaskStats, error)
}

type TaskService struct{}

func (s *TaskService) CreateTask(db *database.Database, ownerID uuid.UUID, input map[string]interface{}) (models.Task, error) {
	verrs := models.ValidationErrors{}

	for _, field := range readOnlyTaskFields {
		if _, present := input[field]; present {
			verrs[field] = "field is read-only"
		}
	}

	title := ""
	if raw, ok := input["title"].(string); ok {
		trimmed, verr := models.ValidateTitle(raw)
		if verr != nil {
			verrs[verr.Field] = verr.Message
		} else {
			title = trimmed
		}
	} else {
		verrs["title"] = "title is required"
	}

	description := ""
	if raw, ok := input["description"].(string); ok {
		trimmed, verr := models.ValidateDescription(raw)
		if verr != nil {
			verrs[verr.Field] = verr.Message
		} else {
			description = trimmed
		}
	}

	priority := models.PriorityMedium
	if raw, ok := input["priority"].(string); ok && raw != "" {
		validated, verr := models.ValidatePriority(raw)
		if verr != nil {
			verrs[verr.Field] = verr.Message
		} else {
			priority = validated
		}
	}

	completed := false
	if value, ok := input["completed"].(bool); ok {
		completed = value
	}

	if len(verrs) > 0 {
		return models.Task{}, verrs
	}

	task := models.Task{
		ID:          uuid.New(),
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Completed:   completed,
		Priority:    priority,
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	if err := tx.Create(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	event, err := models.NewEvent(
		string(broker.TaskCreated),
		"task",
		ownerID.String(),
		map[string]interface{}{
			"task_id":   task.ID.String(),
			"user_id":   task.UserID.String(),
			"title":     task.Title,
			"completed": task.Completed,
			"priority":  string(task.Priority),
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	broker.PublishEvent(broker.TaskSubject, event)

	return task, nil
}

func (s *TaskService) GetTaskById(db *database.Database, ownerID uuid.UUID, id string) (models.Task, error) {
	var task models.Task
	if err := db.DB.First(&task, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskService) UpdateTask(db *database.Database, ownerID uuid.UUID, id string, input map[string]interface{}) (models.Task, error) {
	verrs := models.ValidationErrors{}
	updates := map[string]interface{}{}

	if raw, ok := input["title"].(string); ok {
		trimmed, verr := models.ValidateTitle(raw)
		if verr != nil {
			verrs[verr.Field] = verr.Message
		} else {
			updates["title"] = trimmed
		}
	}

	if raw, ok := input["description"].(string); ok {
		trimmed, verr := models.ValidateDescription(raw)
		if verr != nil {
			verrs[verr.Field] = verr.Message
		} else {
			updates["description"] = trimmed
		}
	}

	if raw, ok := input["priority"].(string); ok {
		validated, verr := models.ValidatePriority(raw)
		if verr != nil {
			verrs[verr.Field] = verr.Message
		} else {
			updates["priority"] = string(validated)
		}
	}

	if value, ok := input["completed"].(bool); ok {
		updates["completed"] = value
	}

	if len(verrs) > 0 {
		return models.Task{}, verrs
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if len(updates) > 0 {
		if err := tx.Model(&task).Updates(updates).Error; err != nil {
			tx.Rollback()
			return models.Task{}, err
		}
	}

	event, err := models.NewEvent(
		string(broker.TaskUpdated),
		"task",
		ownerID.String(),
		map[string]interface{}{
			"task_id":   task.ID.String(),
			"user_id":   task.UserID.String(),
			"title":     task.Title,
			"completed": task.Completed,
			"priority":  string(task.Priority),
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	broker.PublishEvent(broker.TaskSubject, event)

	return task, nil
}

func (s *TaskService) DeleteTask(db *database.Database, ownerID uuid.UUID, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := tx.Delete(&task).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		string(broker.TaskDeleted),
		"task",
		ownerID.String(),
		map[string]interface{}{
			"task_id": task.ID.String(),
			"user_id": task.UserID.String(),
		},
	)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	broker.PublishEvent(broker.TaskSubject, event)

	return nil
}

func (s *TaskService) GetTasks(db *database.Database, ownerID uuid.UUID, params map[string]interface{}) ([]models.Task, error) {
	query := db.DB.Where("user_id = ?", ownerID)

	if completed, ok := params["completed"].(string); ok && completed != "" {
		query = query.Where("completed = ?", completed == "true")
	}

	if priority, ok := params["priority"].(string); ok && priority != "" {
		validated, verr := models.ValidatePriority(priority)
		if verr != nil {
			return nil, models.ValidationErrors{verr.Field: verr.Message}
		}
		query = query.Where("priority = ?", string(validated))
	}

	if search, ok := params["search"].(string); ok && search != "" {
		// LOWER+LIKE keeps the match case-insensitive on both drivers.
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	query = query.Order(taskOrdering(params))

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// taskOrdering resolves the ordering override, defaulting to newest
// first. Unknown fields fall back to the default rather than erroring.
func taskOrdering(params map[string]interface{}) string {
	ordering, _ := params["ordering"].(string)
	descending := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")

	column, ok := taskOrderingColumns[field]
	if !ok {
		return "created_at DESC"
	}
	if descending {
		return column + " DESC"
	}
	return column + " ASC"
}

func (s *TaskService) GetTaskStats(db *database.Database, ownerID uuid.UUID) (models.TaskStats, error) {
	var stats models.TaskStats
	owned := func() *gorm.DB {
		return db.DB.Model(&models.Task{}).Where("user_id = ?", ownerID)
	}

	if err := owned().Count(&stats.Total).Error; err != nil {
		return models.TaskStats{}, err
	}
	if err := owned().Where("completed = ?", true).Count(&stats.Completed).Error; err != nil {
		return models.TaskStats{}, err
	}
	stats.Pending = stats.Total - stats.Completed

	if err := owned().Where("priority = ?", models.PriorityHigh).Count(&stats.ByPriority.High).Error; err != nil {
		return models.TaskStats{}, err
	}
	if err := owned().Where("priority = ?", models.PriorityMedium).Count(&stats.ByPriority.Medium).Error; err != nil {
		return models.TaskStats{}, err
	}
	if err := owned().Where("priority = ?", models.PriorityLow).Count(&stats.ByPriority.Low).Error; err != nil {
		return models.TaskStats{}, err
	}

	return stats, nil
}

var TaskServiceInstance TaskServiceInterface = &TaskService{}
