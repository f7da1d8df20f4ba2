package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// JWTHandler manages creation and validation of the bearer tokens issued on
// sign-in.
type JWTHandler struct {
	// SecretKey is used to sign tokens.
	SecretKey []byte
	// TTL defines how long generated tokens remain valid.
	TTL time.Duration
}

// Claims carries the authenticated identity attached to protected requests.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// MakeJWTHandler validates the provided secret and returns a configured handler.
func MakeJWTHandler(secret []byte, ttl time.Duration) (JWTHandler, error) {
	if len(secret) < 16 {
		return JWTHandler{}, errors.New("secret key too short")
	}

	if ttl <= 0 {
		return JWTHandler{}, errors.New("token ttl must be positive")
	}

	return JWTHandler{SecretKey: secret, TTL: ttl}, nil
}

// Generate creates a signed JWT for the provided identity.
func (j JWTHandler) Generate(userID, email string) (string, time.Time, error) {
	expiry := time.Now().Add(j.TTL)

	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(j.SecretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiry, nil
}

// Validate parses the token string and returns the Claims if valid.
func (j JWTHandler) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}

		return j.SecretKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.UserID == "" {
		return nil, errors.New("token carries no identity")
	}

	return claims, nil
}
