package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateAnalystJWT generates a token for an authenticated analyst. The
// token carries the role recorded in audit entries for actions it authorizes.
func GenerateAnalystJWT(analystID int64, isAdmin bool, secret []byte, expiresInHours int) (string, error) {
	expiresAt := time.Now().Add(time.Duration(expiresInHours) * time.Hour)

	claims := jwt.MapClaims{
		"analyst_id": analystID,
		"is_admin":   isAdmin,
		"exp":        expiresAt.Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseAnalystJWT validates a token and returns the analyst id and admin flag.
func ParseAnalystJWT(tokenString string, secret []byte) (int64, bool, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return 0, false, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, false, fmt.Errorf("invalid token claims")
	}

	idFloat, ok := claims["analyst_id"].(float64)
	if !ok {
		return 0, false, fmt.Errorf("analyst_id claim missing")
	}
	isAdmin, _ := claims["is_admin"].(bool)
	return int64(idFloat), isAdmin, nil
}
