package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles recognized by the clinic backend.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// ErrUnauthorized is returned when a token is missing, malformed, expired,
// or carries a role other than the one required.
var ErrUnauthorized = errors.New("auth: unauthorized")

type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenService mints and verifies the HS256 bearer tokens used by every
// authenticated endpoint. The subject is the entity id (doctor id, patient
// id, or admin username); the role claim binds the token to one caller type.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue mints a token for the given subject and role.
func (s *TokenService) Issue(subjectID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Role: role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the token signature, expiry, and role, and resolves the
// subject id. Any failure collapses to ErrUnauthorized: the caller learns
// nothing about why a credential was rejected.
func (s *TokenService) Verify(tokenStr, requiredRole string) (string, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return "", err
	}
	if claims.Role != requiredRole {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}

// SubjectOf resolves the subject id of an already-role-checked token. Used to
// bind a caller to the patient id in their own record: mutation endpoints
// trust the token subject, never a client-supplied id.
func (s *TokenService) SubjectOf(tokenStr string) (string, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *TokenService) parse(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrUnauthorized
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
