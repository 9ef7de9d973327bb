package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"service-plus/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

// Claims represents the JWT claims issued at login. The embedded database
// name is the only tenant-routing hint authenticated requests carry; routing
// is never re-derived from client-supplied tenant ids after login.
type Claims struct {
	UserType string `json:"user_type"`          // "S" superadmin, "A" tenant admin, "B" tenant user
	ClientID int64  `json:"client_id,omitempty"`
	DBName   string `json:"db_name,omitempty"`
	jwt.RegisteredClaims
}

// JWTUtil is a utility for JWT token operations
type JWTUtil struct {
	config *config.JWTConfig
}

// New creates a new JWT utility with the given configuration
func New(cfg *config.JWTConfig) *JWTUtil {
	return &JWTUtil{config: cfg}
}

// Generate creates a signed token embedding the resolved tenant context.
func (j *JWTUtil) Generate(subject, userType string, clientID int64, dbName string) (string, error) {
	if j.config == nil {
		return "", errors.New("JWT configuration not provided")
	}

	claims := Claims{
		UserType: userType,
		ClientID: clientID,
		DBName:   dbName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(j.config.ExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.SigningKey))
}

// Validate validates and parses the JWT token
func (j *JWTUtil) Validate(tokenString string) (*Claims, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.config.SigningKey), nil
		},
	)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
