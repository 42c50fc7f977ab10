// Package auth issues and validates the signed access and refresh tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yeabtsegataye/equb-system/internal/common"
)

// Payload is the identity embedded in both tokens of a session.
type Payload struct {
	ID    string
	Email string
}

// Claims is the JWT body: the identity plus the standard registered claims.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken signs p with HS256 so that it expires validity after issuedAt.
func GenerateToken(p Payload, secretKey []byte, issuedAt time.Time, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: p.ID,
		Email:  p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validity)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks the signature and expiry of tokenString against secretKey.
// Expiry yields common.ErrTokenExpired; anything else yields common.ErrInvalidToken.
func Verify(tokenString string, secretKey []byte, opts ...jwt.ParserOption) (Payload, error) {
	claims := &Claims{}

	opts = append([]jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}, opts...)

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Payload{}, common.ErrTokenExpired
		}
		return Payload{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return Payload{}, common.ErrInvalidToken
	}

	return Payload{ID: claims.UserID, Email: claims.Email}, nil
}
