package admin

import (
	"fmt"
	"time"

	"stagepass/internal/shared/apperr"
	"stagepass/internal/shared/config"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// Claims carried by an operator session token.
type Claims struct {
	Role string `json:"role"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

type Service interface {
	Login(passphrase string) (*Session, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Session is an issued operator token and its lifetime.
type Session struct {
	Token     string
	ExpiresIn time.Duration
}

type service struct {
	cfg config.AdminConfig
}

func NewService(cfg config.AdminConfig) Service {
	return &service{cfg: cfg}
}

func (s *service) Login(passphrase string) (*Session, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PassphraseHash), []byte(passphrase)); err != nil {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid passphrase")
	}

	token, err := s.generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &Session{Token: token, ExpiresIn: s.cfg.TokenExpiresIn}, nil
}

func (s *service) generateToken() (string, error) {
	now := time.Now()

	claims := &Claims{
		Role: "admin",
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenExpiresIn)),
			Issuer:    "stagepass",
			Subject:   "operator",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid token claims")
	}
	if claims.Type != "access" {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid token type")
	}
	if claims.Role != "admin" {
		return nil, apperr.New(apperr.KindUnauthorized, "insufficient permissions")
	}

	return claims, nil
}
