package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common auth errors
var (
	ErrAuthHeaderMissing = errors.New("Authentication required")
	ErrInvalidAuthFormat = errors.New("Authorization header format must be Bearer {token}")
	ErrInvalidToken      = errors.New("Invalid or expired token")
	ErrNotRefreshToken   = errors.New("Token is not a refresh token")
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// JWTClaims holds the standard JWT claims plus our custom claims.
type JWTClaims struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	TokenType string    `json:"token_type"`
	jwt.RegisteredClaims
}

// Pair bundles the access and refresh tokens issued on login and
// registration.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// ValidateToken validates a JWT token string and returns the claims.
func ValidateToken(tokenString string, secret []byte) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// ValidateRefreshToken validates a token and checks it carries the
// refresh type claim.
func ValidateRefreshToken(tokenString string, secret []byte) (*JWTClaims, error) {
	claims, err := ValidateToken(tokenString, secret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TypeRefresh {
		return nil, ErrNotRefreshToken
	}
	return claims, nil
}

// GenerateToken creates a single JWT token of the given type.
func GenerateToken(userID uuid.UUID, username, tokenType string, secret []byte, expiration time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := JWTClaims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

// GeneratePair issues an access/refresh token pair for a user.
func GeneratePair(userID uuid.UUID, username string, secret []byte, accessExpiration, refreshExpiration time.Duration) (Pair, error) {
	access, err := GenerateToken(userID, username, TypeAccess, secret, accessExpiration)
	if err != nil {
		return Pair{}, err
	}

	refresh, err := GenerateToken(userID, username, TypeRefresh, secret, refreshExpiration)
	if err != nil {
		return Pair{}, err
	}

	return Pair{Access: access, Refresh: refresh}, nil
}

// ExtractToken extracts a bearer token from the authorization header.
func ExtractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrAuthHeaderMissing
	}

	// Extract token from Bearer schema
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrInvalidAuthFormat
	}

	return parts[1], nil
}
