package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessSubject = "access"

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrUnsupportedSigning = errors.New("unsupported signing algorithm")
)

type LibrarianClaims struct {
	User_id int64 `json:"user_id"`
	jwt.RegisteredClaims
}

func signingMethod(algorithm string) (*jwt.SigningMethodHMAC, error) {
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSigning, algorithm)
	}

	return method, nil
}

func CreateJWTToken(id int64, secret string, algorithm string, ttl time.Duration) (string, error) {
	method, err := signingMethod(algorithm)

	if err != nil {
		return "", err
	}

	now := time.Now()

	token, err := jwt.NewWithClaims(method, &LibrarianClaims{
		User_id: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   accessSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}).SignedString([]byte(secret))

	if err != nil {
		return "", fmt.Errorf("error creating jwt token: %v", err)
	}

	return token, nil
}

// DecodeJWTToken returns the librarian id carried by an access token. Expired
// tokens fail with ErrExpiredToken, anything else that does not verify fails
// with ErrInvalidToken.
func DecodeJWTToken(token string, secret string, algorithm string) (int64, error) {
	if _, err := signingMethod(algorithm); err != nil {
		return 0, err
	}

	claims := &LibrarianClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{algorithm}),
		jwt.WithSubject(accessSubject),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.User_id == 0 {
		return 0, fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}

	return claims.User_id, nil
}
