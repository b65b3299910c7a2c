package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"agencyhub/internal/models"
	"agencyhub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const tokenLifetime = 24 * time.Hour

type AuthService interface {
	Register(username, password string) (*models.User, error)
	Login(username, password string) (string, time.Time, error)
	Logout(username string) error
	ListUsers() ([]*models.User, error)
}

type authService struct {
	repo      repository.AuthRepository
	jwtSecret []byte
	logger    *zap.Logger
}

func NewAuthService(repo repository.AuthRepository, jwtSecret []byte, logger *zap.Logger) AuthService {
	return &authService{
		repo:      repo,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Register creates a new user. The first registered user becomes the agency
// admin; everyone after that is a member.
func (s *authService) Register(username, password string) (*models.User, error) {
	existing, err := s.repo.GetUserByUsername(username)
	if err != nil {
		s.logger.Error("Failed to look up username", zap.Error(err))
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	count, err := s.repo.CountUsers()
	if err != nil {
		s.logger.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	passwordHash, err := s.hashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleMember
	if count == 0 {
		role = models.RoleAdmin
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := s.repo.CreateUser(user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(username, password string) (string, time.Time, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		s.logger.Error("Failed to get user by username", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil {
		return "", time.Time{}, ErrUserNotFound
	}

	if !s.verifyPassword(user.PasswordHash, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	expirationTime := time.Now().Add(tokenLifetime)
	claims := &models.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		s.logger.Error("Failed to sign JWT token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("username", user.Username))
	return tokenString, expirationTime, nil
}

func (s *authService) Logout(username string) error {
	// Tokens are short-lived and stateless; logout is an audit event only.
	s.logger.Info("User logged out", zap.String("username", username))
	return nil
}

func (s *authService) ListUsers() ([]*models.User, error) {
	return s.repo.ListUsers()
}

// hashPassword hashes with argon2id. The salt and parameters are encoded
// into the stored string: $argon2id$v=19$m=65536,t=1,p=4$SALT$HASH.
func (s *authService) hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)

	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	encodedHash := base64.RawStdEncoding.EncodeToString(hash)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, 64*1024, 1, 4, encodedSalt, encodedHash), nil
}

// verifyPassword re-hashes the candidate with the stored salt and parameters
// and compares in constant time.
func (s *authService) verifyPassword(hashedPassword, password string) bool {
	sections := strings.Split(strings.TrimPrefix(hashedPassword, "$"), "$")
	if len(sections) != 5 || sections[0] != "argon2id" {
		s.logger.Error("Invalid stored hash format", zap.Int("sections", len(sections)))
		return false
	}

	var version int
	fmt.Sscanf(sections[1], "v=%d", &version)

	var m, t, p uint32
	fmt.Sscanf(sections[2], "m=%d,t=%d,p=%d", &m, &t, &p)

	salt, err := base64.RawStdEncoding.DecodeString(sections[3])
	if err != nil {
		s.logger.Error("Failed to decode salt", zap.Error(err))
		return false
	}
	storedHash, err := base64.RawStdEncoding.DecodeString(sections[4])
	if err != nil {
		s.logger.Error("Failed to decode hash", zap.Error(err))
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, t, m, uint8(p), uint32(len(storedHash)))
	return subtle.ConstantTimeCompare(candidate, storedHash) == 1
}
