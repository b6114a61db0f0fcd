package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"maintdesk/internal/caching"
	"maintdesk/internal/models"
	"maintdesk/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "maintdesk"

// AuthService handles login, password hashing and JWT issuing
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	GenerateToken(user *models.User) (*models.TokenResponse, error)
	ValidateToken(token string) (*TokenClaims, error)
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) bool
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo    repositories.UserRepository
	cacheSvc    caching.CacheService
	jwtSecret   []byte
	tokenTTL    time.Duration
	maxAttempts int
	window      time.Duration
}

// NewAuthService creates a new authentication service; cacheSvc may be nil to disable throttling
func NewAuthService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTL time.Duration, maxAttempts int, window time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{
		userRepo:    userRepo,
		cacheSvc:    cacheSvc,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Login verifies the password before looking at the approval state
func (s *authService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, invalid("username and password are required")
	}

	if s.throttled(ctx, username) {
		return nil, ErrTooManyAttempts
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFailure(ctx, username)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !s.CheckPassword(user.PasswordHash, password) {
		s.recordFailure(ctx, username)
		return nil, ErrInvalidCredentials
	}

	switch user.ApprovalStatus {
	case models.ApprovalPending:
		return nil, ErrAccountPending
	case models.ApprovalRejected:
		return nil, ErrAccountRejected
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	if s.cacheSvc != nil {
		if err := s.cacheSvc.ResetLoginFailures(ctx, username); err != nil {
			log.Printf("Failed to reset login failures for %s: %v", username, err)
		}
	}
	return &models.LoginResponse{TokenResponse: *token, User: user}, nil
}

func (s *authService) throttled(ctx context.Context, username string) bool {
	if s.cacheSvc == nil || s.maxAttempts <= 0 {
		return false
	}
	n, err := s.cacheSvc.LoginFailures(ctx, username)
	if err != nil {
		log.Printf("Login throttle lookup failed for %s: %v", username, err)
		return false
	}
	return n >= s.maxAttempts
}

func (s *authService) recordFailure(ctx context.Context, username string) {
	if s.cacheSvc == nil || s.maxAttempts <= 0 {
		return
	}
	if _, err := s.cacheSvc.RecordLoginFailure(ctx, username, s.window); err != nil {
		log.Printf("Failed to record login failure for %s: %v", username, err)
	}
}

// GenerateToken signs an HS256 access token for the user
func (s *authService) GenerateToken(user *models.User) (*models.TokenResponse, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:   user.Username,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}
	return &models.TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}

// ValidateToken validates JWT access token
func (s *authService) ValidateToken(token string) (*TokenClaims, error) {
	jwtToken, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if claims, ok := jwtToken.Claims.(*TokenClaims); ok && jwtToken.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token claims")
}

func (s *authService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *authService) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
