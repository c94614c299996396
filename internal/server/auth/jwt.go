// Package auth implements the session core of the site: password hashing,
// signed identity tokens, the session cookie that carries them and the
// per-request gate that turns a cookie back into an identity.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/robotika/internal/common"
	"github.com/dmitrijs2005/robotika/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is what a valid token proves about its bearer.
type Identity struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// Claims is the JWT payload: the registered claims plus the identity fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string      `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// TokenService issues and verifies HS256 tokens. It holds no mutable state
// after construction and is safe for concurrent use.
type TokenService struct {
	secretKey        []byte
	validityDuration time.Duration
	now              func() time.Time
}

func NewTokenService(secretKey []byte, validityDuration time.Duration) *TokenService {
	return &TokenService{
		secretKey:        secretKey,
		validityDuration: validityDuration,
		now:              time.Now,
	}
}

// Issue signs a token for identity that expires validityDuration from now.
func (s *TokenService) Issue(identity Identity) (string, error) {
	return GenerateToken(identity, s.secretKey, s.now(), s.validityDuration)
}

// Verify returns the identity carried by tokenString, or
// common.ErrInvalidToken for every kind of failure.
func (s *TokenService) Verify(tokenString string) (*Identity, error) {
	return ParseToken(tokenString, s.secretKey, s.now)
}

// GenerateToken signs identity with secretKey. iat is issuedAt and exp is
// issuedAt+validityDuration.
func GenerateToken(identity Identity, secretKey []byte, issuedAt time.Time, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validityDuration)),
		},
		UserID:   identity.ID,
		Username: identity.Username,
		Role:     identity.Role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature, algorithm and expiry against now and
// returns the embedded identity. Whatever goes wrong, the error is
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte, now func() time.Time) (*Identity, error) {
	if tokenString == "" {
		return nil, common.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil || !token.Valid {
		return nil, errors.Join(common.ErrInvalidToken, err)
	}

	if claims.UserID == "" || claims.Username == "" || !claims.Role.Valid() {
		return nil, common.ErrInvalidToken
	}

	return &Identity{ID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}
