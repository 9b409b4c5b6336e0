package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match
	// the configured admin identity.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken indicates a token whose signature or expiry failed.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrForbidden indicates a structurally valid token without the
	// admin role.
	ErrForbidden = errors.New("admin role required")
)

const adminRole = "admin"

// Claims is the verified identity carried by an admin token.
type Claims struct {
	Subject string
	Role    string
}

// Service issues and verifies stateless admin credentials. Tokens are
// HS256 JWTs with a fixed lifetime; there is no refresh or revocation,
// so invalidating outstanding tokens requires rotating the secret.
type Service struct {
	secret            []byte
	adminEmail        string
	adminPassword     string
	adminPasswordHash string
	tokenTTL          time.Duration
}

func New(secret, adminEmail, adminPassword, adminPasswordHash string) *Service {
	return &Service{
		secret:            []byte(secret),
		adminEmail:        strings.ToLower(strings.TrimSpace(adminEmail)),
		adminPassword:     adminPassword,
		adminPasswordHash: adminPasswordHash,
		tokenTTL:          7 * 24 * time.Hour,
	}
}

// Login returns a signed token when the credentials match the
// configured admin identity.
func (s *Service) Login(email, password string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(normalized), []byte(s.adminEmail)) == 1
	if !emailOK || !s.passwordMatches(password) {
		return "", ErrInvalidCredentials
	}
	claims := jwt.MapClaims{
		"sub":  s.adminEmail,
		"role": adminRole,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates signature, expiry and role.
func (s *Service) Verify(token string) (Claims, error) {
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	m, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := m["sub"].(string)
	role, _ := m["role"].(string)
	if role != adminRole {
		return Claims{}, ErrForbidden
	}
	return Claims{Subject: sub, Role: role}, nil
}

// passwordMatches prefers a bcrypt hash when one is configured and
// falls back to a constant-time comparison against the plain value.
func (s *Service) passwordMatches(password string) bool {
	if s.adminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)) == nil
	}
	if s.adminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
}
