package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func GenerateToken(secret, email string, ttl time.Duration) (string, error) {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
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

// Service authenticates the single configured admin credential and
// issues bearer tokens for the API.
type Service struct {
	secret     string
	ttl        time.Duration
	adminEmail string
	adminHash  string
}

func NewService(secret, adminEmail, adminPassword string, ttl time.Duration) (*Service, error) {
	if strings.TrimSpace(adminPassword) == "" {
		return nil, errors.New("admin password must not be empty")
	}
	hash, err := HashPassword(adminPassword)
	if err != nil {
		return nil, err
	}
	return &Service{
		secret:     secret,
		ttl:        ttl,
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
		adminHash:  hash,
	}, nil
}

func (s *Service) Login(email, password string) (string, error) {
	if strings.ToLower(strings.TrimSpace(email)) != s.adminEmail {
		return "", ErrInvalidCredentials
	}
	if err := CheckPassword(s.adminHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return GenerateToken(s.secret, s.adminEmail, s.ttl)
}
