package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	app_errors "visitas/internal/errors"
	"visitas/internal/models"
	"visitas/internal/types"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"rol"`
	jwt.RegisteredClaims
}

// LoginResult bundles the issued token with the authenticated user.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"usuario"`
}

// CreateUserParams carries the fields an admin supplies for a new account.
type CreateUserParams struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthService handles accounts, credentials and token issuance.
type AuthService struct {
	db         *gorm.DB
	authConfig types.AuthConfig
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, configManager types.ConfigManager) *AuthService {
	return &AuthService{
		db:         db,
		authConfig: configManager.GetAuthConfig(),
	}
}

// Login verifies credentials and issues a signed token. A missing account and
// a wrong password produce the same error so the endpoint does not leak which
// emails exist.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.Where("email = ? AND activo = ?", email, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewI18nError(app_errors.ErrUnauthorized, "auth.invalid_credentials", nil)
		}
		return nil, app_errors.ParseDBError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, NewI18nError(app_errors.ErrUnauthorized, "auth.invalid_credentials", nil)
	}

	token, expiresAt, err := s.issueToken(&user)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return nil, app_errors.ErrInternalServer
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: &user}, nil
}

// issueToken signs an HS256 token with a unique jti for the user.
func (s *AuthService) issueToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.authConfig.TokenTTLHours) * time.Hour)

	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.authConfig.JWTSecret))
	return signed, expiresAt, err
}

// ParseToken validates a token string and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.authConfig.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, app_errors.NewAuthenticationError("invalid or expired token")
	}
	return claims, nil
}

// GetUser loads an active user by id.
func (s *AuthService) GetUser(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ? AND activo = ?", id, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_errors.ErrUnauthorized
		}
		return nil, app_errors.ParseDBError(err)
	}
	return &user, nil
}

// ListUsers returns all accounts, newest first.
func (s *AuthService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id DESC").Find(&users).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return users, nil
}

// CreateUser registers a new account. Emails are unique; the role must be one
// of the known roles.
func (s *AuthService) CreateUser(params CreateUserParams) (*models.User, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if name == "" || email == "" {
		return nil, app_errors.NewValidationError("name and email are required")
	}
	if len(params.Password) < 8 {
		return nil, app_errors.NewValidationError("password must be at least 8 characters")
	}
	role := params.Role
	if role == "" {
		role = models.RoleOperator
	}
	if role != models.RoleAdmin && role != models.RoleOperator {
		return nil, app_errors.NewValidationError(fmt.Sprintf("invalid role: %s", role))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, app_errors.ErrInternalServer
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	if err := s.db.Create(user).Error; err != nil {
		apiErr := app_errors.ParseDBError(err)
		if apiErr.Code == app_errors.ErrDuplicateResource.Code {
			return nil, NewI18nError(apiErr, "auth.email_taken", nil)
		}
		return nil, apiErr
	}
	return user, nil
}

// DeactivateUser disables an account without deleting its recorded entries.
func (s *AuthService) DeactivateUser(id uint) error {
	result := s.db.Model(&models.User{}).Where("id = ?", id).Update("activo", false)
	if result.Error != nil {
		return app_errors.ParseDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return app_errors.ErrResourceNotFound
	}
	return nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *AuthService) ChangePassword(userID uint, current, next string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return app_errors.ParseDBError(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return NewI18nError(app_errors.ErrUnauthorized, "auth.invalid_credentials", nil)
	}
	if len(next) < 8 {
		return app_errors.NewValidationError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return app_errors.ErrInternalServer
	}
	if err := s.db.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		return app_errors.ParseDBError(err)
	}
	return nil
}
