package services_test

import (
	"fmt"
	"testing"
	"time"

	"patenthub/internal/models"
	"patenthub/internal/repositories"
	"patenthub/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

const testJWTSecret = "test_jwt_secret"

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	user := &models.User{
		ID:       "attacker-chosen-id",
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	}

	mockRepo.On("GetByEmail", user.Email).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created := args.Get(0).(*models.User)
		// The service must hand over a blank id for the store to fill in.
		assert.Empty(t, created.ID)
		created.ID = "user-123"
	}).Return(nil).Once()

	token, err := authService.RegisterUser(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user", user.Role)
	assert.Equal(t, "user-123", user.ID)

	// The stored password must be a hash matching the original.
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))

	// The issued token must decode to the new user's id.
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "user", claims["role"])
	mockRepo.AssertExpectations(t)

	// Duplicate email is rejected before hashing or storing anything.
	mockRepo.On("GetByEmail", user.Email).Return(&models.User{ID: "other"}, nil).Once()
	_, err = authService.RegisterUser(user)
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Name:     "Test User",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     "admin",
	}

	// Successful login returns a token carrying id and role.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, loggedIn, err := authService.LoginUser(user.Email, "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims := parsedToken.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	mockRepo.AssertExpectations(t)

	// Wrong password and unknown email yield the identical error.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, errWrongPassword := authService.LoginUser(user.Email, "wrongpassword")
	assert.ErrorIs(t, errWrongPassword, services.ErrInvalidCredentials)

	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, repositories.ErrNotFound).Once()
	_, _, errUnknownEmail := authService.LoginUser("nobody@example.com", "password123")
	assert.ErrorIs(t, errUnknownEmail, services.ErrInvalidCredentials)

	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_VerifyToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	validToken, err := authService.IssueToken("user-123", "user")
	assert.NoError(t, err)

	userID, role, err := authService.VerifyToken(validToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.Equal(t, "user", role)

	// Missing token is a distinct condition from a malformed one.
	_, _, err = authService.VerifyToken("")
	assert.ErrorIs(t, err, services.ErrNoToken)

	_, _, err = authService.VerifyToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// A token signed with another secret is rejected.
	otherService := services.NewAuthService(mockRepo, "other_secret")
	foreignToken, _ := otherService.IssueToken("user-123", "user")
	_, _, err = authService.VerifyToken(foreignToken)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// An expired token is rejected.
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"role":    "user",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, _, err = authService.VerifyToken(expiredTokenString)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestAuthService_Authenticate(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// The token's role claim is only a hint: the store's current role wins.
	token, err := authService.IssueToken("user-123", "user")
	assert.NoError(t, err)

	mockRepo.On("GetByID", "user-123").Return(&models.User{
		ID:    "user-123",
		Name:  "Test User",
		Email: "test@example.com",
		Role:  "admin",
	}, nil).Once()

	identity, err := authService.Authenticate(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", identity.ID)
	assert.Equal(t, "admin", identity.Role)
	mockRepo.AssertExpectations(t)

	// A valid token whose subject was deleted is unauthorized.
	mockRepo.On("GetByID", "user-123").Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.Authenticate(token)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}
