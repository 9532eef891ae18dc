package service

import (
	"errors"
	"time"

	"github.com/dom/league-skinset-finder/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminDisabled      = errors.New("admin access is not configured")
)

const roleAdmin = "admin"

// AdminService guards the mutating endpoints with a single shared password.
type AdminService struct {
	cfg *config.Config
}

func NewAdminService(cfg *config.Config) *AdminService {
	return &AdminService{cfg: cfg}
}

type AdminToken struct {
	Token     string
	ExpiresAt time.Time
}

func (s *AdminService) IssueToken(password string) (*AdminToken, error) {
	if s.cfg.AdminPasswordHash == "" {
		return nil, ErrAdminDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": roleAdmin,
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}
	return &AdminToken{Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *AdminService) ValidateToken(tokenString string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if role, _ := claims["role"].(string); role != roleAdmin {
		return nil, errors.New("token is not an admin token")
	}

	return &claims, nil
}
