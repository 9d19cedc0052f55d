package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity payload carried by a token.
type Claims struct {
	UserID   uint
	Email    string
	Username string
}

// TokenService signs and verifies identity tokens against a single secret.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue produces a signed token carrying exactly {id, email, username}.
// No expiration claim is set; tokens stay valid until the secret changes.
func (s *TokenService) Issue(userID uint, email, username string) (string, error) {
	claims := jwt.MapClaims{
		"id":       userID,
		"email":    email,
		"username": username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the signature and decodes the claims. It does not check
// whether the referenced user still exists.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	userIDFloat, ok := claims["id"].(float64)

	if !ok {
		return nil, fmt.Errorf("invalid user ID in token claims")
	}

	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)

	return &Claims{
		UserID:   uint(userIDFloat),
		Email:    email,
		Username: username,
	}, nil
}
