package services

import (
	"time"
	"unicode"

	"taskory/taskory/database"
	"taskory/taskory/models"
	"taskory/taskory/utils/token"

	"golang.org/x/crypto/bcrypt"
)

// Use the JWTClaims from token package
type JWTClaims = token.JWTClaims

const minPasswordLength = 8

type AuthServiceInterface interface {
	Login(db *database.Database, username, password string) (models.User, token.Pair, error)
	Refresh(refreshToken string) (string, error)
	IssueTokens(user models.User) (token.Pair, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
	HashPassword(password string) (string, error)
	ComparePasswords(hashedPassword, password string) error
	CheckPasswordStrength(password string) *models.ValidationError
}

type AuthService struct {
	jwtSecret         []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
}

func NewAuthService(jwtSecret string, accessMinutes, refreshHours int) *AuthService {
	return &AuthService{
		jwtSecret:         []byte(jwtSecret),
		accessExpiration:  time.Duration(accessMinutes) * time.Minute,
		refreshExpiration: time.Duration(refreshHours) * time.Hour,
	}
}

func (s *AuthService) Login(db *database.Database, username, password string) (models.User, token.Pair, error) {
	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, token.Pair{}, ErrInvalidCredentials
	}

	if err := s.ComparePasswords(user.PasswordHash, password); err != nil {
		return models.User{}, token.Pair{}, ErrInvalidCredentials
	}

	pair, err := s.IssueTokens(user)
	if err != nil {
		return models.User{}, token.Pair{}, err
	}

	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := token.ValidateRefreshToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", ErrInvalidToken
	}

	return token.GenerateToken(claims.UserID, claims.Username, token.TypeAccess, s.jwtSecret, s.accessExpiration)
}

func (s *AuthService) IssueTokens(user models.User) (token.Pair, error) {
	return token.GeneratePair(user.ID, user.Username, s.jwtSecret, s.accessExpiration, s.refreshExpiration)
}

// ValidateToken uses the token utility to validate tokens
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	return token.ValidateToken(tokenString, s.jwtSecret)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// CheckPasswordStrength enforces the registration password policy:
// at least 8 characters and not entirely numeric.
func (s *AuthService) CheckPasswordStrength(password string) *models.ValidationError {
	if len(password) < minPasswordLength {
		return &models.ValidationError{Field: "password", Message: "password must contain at least 8 characters"}
	}

	numeric := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		return &models.ValidationError{Field: "password", Message: "password cannot be entirely numeric"}
	}

	return nil
}

var AuthServiceInstance AuthServiceInterface
