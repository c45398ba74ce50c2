package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskory/taskory/database"
	"taskory/taskory/models"
	"taskory/taskory/services"
	"taskory/taskory/utils/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testUserID = uuid.Must(uuid.Parse("123e4567-e89b-12d3-a456-426614174000"))

type MockAuthService struct{}

func (m *MockAuthService) Login(db *database.Database, username, password string) (models.User, token.Pair, error) {
	if username == "alice" && password == "Abc12345" {
		return models.User{ID: testUserID, Username: "alice", Email: "alice@example.com"},
			token.Pair{Access: "mock-access", Refresh: "mock-refresh"}, nil
	}
	return models.User{}, token.Pair{}, services.ErrInvalidCredentials
}

func (m *MockAuthService) Refresh(refreshToken string) (string, error) {
	if refreshToken == "mock-refresh" {
		return "mock-access-2", nil
	}
	return "", services.ErrInvalidToken
}

func (m *MockAuthService) IssueTokens(user models.User) (token.Pair, error) {
	return token.Pair{Access: "mock-access", Refresh: "mock-refresh"}, nil
}

func (m *MockAuthService) ValidateToken(tokenString string) (*services.JWTClaims, error) {
	if tokenString == "mock-access" {
		return &services.JWTClaims{UserID: testUserID, Username: "alice", TokenType: token.TypeAccess}, nil
	}
	return nil, services.ErrInvalidToken
}

func (m *MockAuthService) HashPassword(password string) (string, error) {
	return "hashed-" + password, nil
}

func (m *MockAuthService) ComparePasswords(hashedPassword, password string) error {
	return nil
}

func (m *MockAuthService) CheckPasswordStrength(password string) *models.ValidationError {
	if len(password) < 8 {
		return &models.ValidationError{Field: "password", Message: "password must contain at least 8 characters"}
	}
	return nil
}

type MockUserService struct{}

func (m *MockUserService) Register(db *database.Database, input services.RegisterInput) (models.User, error) {
	if verr := models.ValidatePasswordMatch(input.Password, input.PasswordConfirm); verr != nil {
		return models.User{}, models.ValidationErrors{verr.Field: verr.Message}
	}
	if input.Username == "taken" {
		return models.User{}, services.ErrUserExists
	}
	return models.User{ID: uuid.New(), Username: input.Username, Email: input.Email}, nil
}

func (m *MockUserService) GetUserById(db *database.Database, id uuid.UUID) (models.User, error) {
	if id == testUserID {
		return models.User{ID: testUserID, Username: "alice", Email: "alice@example.com"}, nil
	}
	return models.User{}, services.ErrUserNotFound
}

func (m *MockUserService) UpdateUser(db *database.Database, id uuid.UUID, input map[string]interface{}) (models.User, error) {
	if id != testUserID {
		return models.User{}, services.ErrUserNotFound
	}
	user := models.User{ID: testUserID, Username: "alice", Email: "alice@example.com"}
	if email, ok := input["email"].(string); ok {
		user.Email = email
	}
	return user, nil
}

func (m *MockUserService) DeleteUser(db *database.Database, id uuid.UUID) error {
	if id != testUserID {
		return services.ErrUserNotFound
	}
	return nil
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	db := &database.Database{}

	RegisterAuthRoutes(router, db, &MockAuthService{}, &MockUserService{})

	apiGroup := router.Group("/api/v1")
	apiGroup.Use(func(c *gin.Context) {
		c.Set("userID", testUserID)
		c.Next()
	})
	RegisterProfileRoutes(apiGroup, db, &MockUserService{})
	RegisterUserRoutes(apiGroup, db, &MockUserService{})

	return router
}

func TestRegisterRoute(t *testing.T) {
	router := setupAuthRouter()

	t.Run("Valid Registration", func(t *testing.T) {
		w := httptest.NewRecorder()
		reqBody := `{"username":"bob","email":"bob@example.com","password":"Abc12345","password_confirm":"Abc12345"}`
		req, _ := http.NewRequest("POST", "/api/v1/auth/register", bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "bob@example.com")
		assert.Contains(t, w.Body.String(), "access")
		assert.Contains(t, w.Body.String(), "refresh")
	})

	t.Run("Password Mismatch", func(t *testing.T) {
		w := httptest.NewRecorder()
		reqBody := `{"username":"bob","email":"bob@example.com","password":"Abc12345","password_confirm":"Abc12399"}`
		req, _ := http.NewRequest("POST", "/api/v1/auth/register", bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "passwords do not match")
	})

	t.Run("Missing Email", func(t *testing.T) {
		w := httptest.NewRecorder()
		reqBody := `{"username":"bob","password":"Abc12345","password_confirm":"Abc12345"}`
		req, _ := http.NewRequest("POST", "/api/v1/auth/register", bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		w := httptest.NewRecorder()
		reqBody := `{"username":"taken","email":"taken@example.com","password":"Abc12345","password_confirm":"Abc12345"}`
		req, _ := http.NewRequest("POST", "/api/v1/auth/register", bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already taken")
	})
}

func TestLoginRoute(t *testing.T) {
	router := setupAuthRouter()

	t.Run("Valid Credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		reqBody := `{"username":"alice","password":"Abc12345"}`
		req, _ := http.NewRequest("POST", "/api/v1/auth/login", bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "mock-access")
		assert.Contains(t, w.Body.String(), "mock-refresh")
	})

	t.Run("Invalid Credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		reqBody := `{"username":"alice","password":"wrong"}`
		req, _ := http.NewRequest("POST", "/api/v1/auth/login", bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Missing Password", func(t *testing.T) {
		w := httptest.NewRecorder()
		reqBody := `{"username":"alice"}`
		req, _ := http.NewRequest("POST", "/api/v1/auth/login", bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRefreshRoute(t *testing.T) {
	router := setupAuthRouter()

	t.Run("Valid Refresh Token", func(t *testing.T) {
		w := httptest.NewRecorder()
		reqBody := `{"refresh":"mock-refresh"}`
		req, _ := http.NewRequest("POST", "/api/v1/auth/refresh", bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "mock-access-2")
	})

	t.Run("Invalid Refresh Token", func(t *testing.T) {
		w := httptest.NewRecorder()
		reqBody := `{"refresh":"bogus"}`
		req, _ := http.NewRequest("POST", "/api/v1/auth/refresh", bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestProfileRoute(t *testing.T) {
	router := setupAuthRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/auth/profile", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestUserRoutes_SelfScoped(t *testing.T) {
	router := setupAuthRouter()

	t.Run("Get Own Account", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/users/"+testUserID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice@example.com")
	})

	t.Run("Foreign Account Looks Missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/users/"+uuid.New().String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Update Own Account", func(t *testing.T) {
		w := httptest.NewRecorder()
		reqBody := `{"email":"updated@example.com"}`
		req, _ := http.NewRequest("PUT", "/api/v1/users/"+testUserID.String(), bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "updated@example.com")
	})

	t.Run("Update Foreign Account Looks Missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		reqBody := `{"email":"hacked@example.com"}`
		req, _ := http.NewRequest("PUT", "/api/v1/users/"+uuid.New().String(), bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Delete Own Account", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/v1/users/"+testUserID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
