package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"devconnect/internal/config"
)

// AuthService mints access tokens. Verification lives in the transport
// middleware; both sides share the signing secret held in config, which is
// initialized once at startup and read-only thereafter.
type AuthService struct {
	config *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{config: cfg}
}

// GenerateToken issues an HS256 access token for the subject.
func (s *AuthService) GenerateToken(subjectID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": subjectID,
		"exp":     time.Now().Add(time.Duration(s.config.TokenMaxAge) * time.Second).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
