package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"patenthub/internal/models"
	"patenthub/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on login whether the email is unknown or
// the password is wrong, so callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNoToken marks a request that carried no token at all. Callers map it to
// the same unauthorized outcome as ErrInvalidToken; the distinction exists
// for logging.
var ErrNoToken = errors.New("no token provided")

// ErrInvalidToken marks a malformed, badly signed or expired token.
var ErrInvalidToken = errors.New("invalid token")

// ErrUserNotFound marks a valid token whose subject no longer exists.
var ErrUserNotFound = errors.New("user not found")

// AuthService handles registration, login and token issue/verification.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL: time.Hour,
	}
}

// RegisterUser hashes the password, stores the user and issues a token for
// the new identity. A caller-supplied id is discarded; the store assigns
// one.
func (s *AuthService) RegisterUser(user *models.User) (string, error) {
	user.ID = ""
	if existingUser, err := s.userRepo.GetByEmail(user.Email); err == nil && existingUser != nil {
		return "", repositories.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	if user.Role == "" {
		user.Role = "user"
	}

	if err := s.userRepo.Create(user); err != nil {
		return "", fmt.Errorf("failed to register user: %w", err)
	}

	return s.IssueToken(user.ID, user.Role)
}

// LoginUser authenticates by email and password. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) LoginUser(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken signs a token embedding the user id and role, valid for one
// hour.
func (s *AuthService) IssueToken(userID, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken parses and validates a token, returning the embedded user id
// and role. The role claim is only a hint; Authenticate loads the current
// role from the store.
func (s *AuthService) VerifyToken(tokenString string) (string, string, error) {
	if tokenString == "" {
		return "", "", ErrNoToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return "", "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	return userID, role, nil
}

// Authenticate resolves a raw token to the caller's identity. Roles can
// change after a token was issued, so the user is re-fetched on every call
// and the store's role wins over the token's.
func (s *AuthService) Authenticate(tokenString string) (*models.Identity, error) {
	userID, _, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}

	return &models.Identity{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}
