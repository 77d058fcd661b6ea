package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/config"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/models"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/repository"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Signup(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*AccessToken, error)
	ValidateAccessToken(tokenString string) (uint, error)
	Me(ctx context.Context, userID uint) (*models.User, error)
}

// AccessToken is a signed bearer token and its lifetime in seconds
type AccessToken struct {
	Token     string
	ExpiresIn int64
}

type authService struct {
	store     repository.Store
	jwtSecret []byte
	cfg       *config.Config
	logger    *slog.Logger
	now       func() time.Time
}

// NewAuthService creates a new authentication service instance
func NewAuthService(store repository.Store, cfg *config.Config, logger *slog.Logger) AuthService {
	return NewAuthServiceWithClock(store, cfg, logger, time.Now)
}

// NewAuthServiceWithClock is NewAuthService with an injectable clock
func NewAuthServiceWithClock(
	store repository.Store,
	cfg *config.Config,
	logger *slog.Logger,
	now func() time.Time,
) AuthService {
	return &authService{
		store:     store,
		jwtSecret: []byte(cfg.JWTSecret),
		cfg:       cfg,
		logger:    logger,
		now:       now,
	}
}

// NormalizeEmail lower-cases and trims an address so lookups match signup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	s.logger.Info("📝 [AuthService] Signup attempt", "email", email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return nil, err
	}

	var user *models.User
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		_, err := tx.Users().FindByEmail(email)
		if err == nil {
			return ErrEmailAlreadyExists
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		now := s.now().UTC()
		user = &models.User{
			Email:        email,
			PasswordHash: string(hashedPassword),
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := tx.Users().Create(user); err != nil {
			// lost a race with a concurrent signup
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrEmailAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			s.logger.Warn("⚠️ [AuthService] Email already registered", "email", email)
		} else {
			s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		}
		return nil, err
	}

	s.logger.Info("✅ [AuthService] User registered successfully", "user_id", user.ID)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AccessToken, error) {
	email = NormalizeEmail(email)
	s.logger.Info("🔐 [AuthService] Login attempt", "email", email)

	var user *models.User
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		user, err = tx.Users().FindByEmail(email)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("⚠️ [AuthService] User not found", "email", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "email", email)
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user.ID)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate token", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] User logged in successfully", "user_id", user.ID)
	return &AccessToken{
		Token:     token,
		ExpiresIn: s.cfg.AccessTokenExpiration,
	}, nil
}

func (s *authService) Me(ctx context.Context, userID uint) (*models.User, error) {
	var user *models.User
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		user, err = tx.Users().FindByID(userID)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) ValidateAccessToken(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return s.jwtSecret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.JWTIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, ErrInvalidToken
	}

	return uint(userID), nil
}

func (s *authService) generateAccessToken(userID uint) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    s.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.AccessTokenExpiration) * time.Second)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
