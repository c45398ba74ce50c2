package services

import (
	"errors"

	"taskory/taskory/broker"
	"taskory/taskory/database"
	"taskory/taskory/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegisterInput carries the raw registration fields.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
}

type UserServiceInterface interface {
	Register(db *database.Database, input RegisterInput) (models.User, error)
	GetUserById(db *database.Database, id uuid.UUID) (models.User, error)
	UpdateUser(db *database.Database, id uuid.UUID, input map[string]interface{}) (models.User, error)
	DeleteUser(db *database.Database, id uuid.UUID) error
}

type UserService struct {
	authService AuthServiceInterface
}

func NewUserService(authService AuthServiceInterface) *UserService {
	return &UserService{authService: authService}
}

func (s *UserService) Register(db *database.Database, input RegisterInput) (models.User, error) {
	verrs := models.ValidationErrors{}

	if input.Username == "" {
		verrs["username"] = "username is required"
	}
	if input.Email == "" {
		verrs["email"] = "email is required"
	}
	if verr := models.ValidatePasswordMatch(input.Password, input.PasswordConfirm); verr != nil {
		verrs[verr.Field] = verr.Message
	}
	if verr := s.authService.CheckPasswordStrength(input.Password); verr != nil {
		verrs[verr.Field] = verr.Message
	}
	if len(verrs) > 0 {
		return models.User{}, verrs
	}

	passwordHash, err := s.authService.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	var taken int64
	if err := tx.Model(&models.User{}).
		Where("username = ? OR email = ?", input.Username, input.Email).
		Count(&taken).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}
	if taken > 0 {
		tx.Rollback()
		return models.User{}, ErrUserExists
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	event, err := models.NewEvent(
		string(broker.UserRegistered),
		"user",
		user.ID.String(),
		map[string]interface{}{
			"user_id":  user.ID.String(),
			"username": user.Username,
			"email":    user.Email,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	broker.PublishEvent(broker.UserSubject, event)

	return user, nil
}

func (s *UserService) GetUserById(db *database.Database, id uuid.UUID) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(db *database.Database, id uuid.UUID, input map[string]interface{}) (models.User, error) {
	updates := map[string]interface{}{}

	if email, ok := input["email"].(string); ok {
		if email == "" {
			return models.User{}, models.ValidationErrors{"email": "email cannot be empty"}
		}
		updates["email"] = email
	}
	if firstName, ok := input["first_name"].(string); ok {
		updates["first_name"] = firstName
	}
	if lastName, ok := input["last_name"].(string); ok {
		updates["last_name"] = lastName
	}
	if password, ok := input["password"].(string); ok {
		if verr := s.authService.CheckPasswordStrength(password); verr != nil {
			return models.User{}, models.ValidationErrors{verr.Field: verr.Message}
		}
		passwordHash, err := s.authService.HashPassword(password)
		if err != nil {
			return models.User{}, err
		}
		updates["password_hash"] = passwordHash
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	var user models.User
	if err := tx.First(&user, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if len(updates) > 0 {
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			tx.Rollback()
			return models.User{}, err
		}
	}

	event, err := models.NewEvent(
		string(broker.UserUpdated),
		"user",
		user.ID.String(),
		map[string]interface{}{
			"user_id": user.ID.String(),
			"email":   user.Email,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	broker.PublishEvent(broker.UserSubject, event)

	return user, nil
}

func (s *UserService) DeleteUser(db *database.Database, id uuid.UUID) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var user models.User
	if err := tx.First(&user, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// The user's tasks go with the account.
	if err := tx.Where("user_id = ?", id).Delete(&models.Task{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		string(broker.UserDeleted),
		"user",
		user.ID.String(),
		map[string]interface{}{
			"user_id": user.ID.String(),
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

	broker.PublishEvent(broker.UserSubject, event)

	return nil
}

var UserServiceInstance UserServiceInterface
