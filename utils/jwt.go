package utils

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Default secret for local development only.
		secret = "DeliveryAppDevSecret2024"
	}
	JWTSecret = []byte(secret)
}

type CustomClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(userID uint, role string) (string, error) {
	claims := &CustomClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "DeliveryApp",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	if IsTokenBlacklisted(tokenString) {
		return nil, errors.New("token has been revoked")
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

var (
	blacklistedTokens = make(map[string]time.Time)
	blacklistMutex    sync.Mutex
)

// BlacklistToken invalidates a token until its 24h lifetime is over.
func BlacklistToken(token string) {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	blacklistedTokens[token] = time.Now().Add(24 * time.Hour)
}

func IsTokenBlacklisted(token string) bool {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()

	if expiry, exists := blacklistedTokens[token]; exists {
		if time.Now().Before(expiry) {
			return true
		}
		delete(blacklistedTokens, token)
	}
	return false
}
