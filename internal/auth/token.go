package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload carried by session tokens. AthleteID identifies the
// authenticated athlete; the embedded registered claims supply expiry.
type Claims struct {
	AthleteID int64 `json:"athleteID"`
	jwt.RegisteredClaims
}

// tokenTTL is how long a session token stays valid after login.
const tokenTTL = 24 * time.Hour

// GenerateToken creates a signed HS256 JWT for the given athlete.
func GenerateToken(athleteID int64, secret string) (string, error) {
	claims := &Claims{
		AthleteID: athleteID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses a token string, verifies its signature and standard
// claims, and returns the athlete claims on success.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything other than our HMAC method.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
