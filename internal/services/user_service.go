package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BcryptCost is the adaptive hash cost used for every stored password.
const BcryptCost = 10

var (
	errInvalidUserID = apperror.Validation("invalid user id")
	errUserNotFound  = apperror.NotFound("user not found")
	errEmailTaken    = apperror.Conflict("email already registered")
	errNothingToSave = apperror.Validation("no data to update")
)

// userColumns is the user projection used for every read: the password hash
// is never selected.
var userColumns = []string{"id", "email", "name", "role", "avatar_url", "created_at", "updated_at"}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashPassword hashes a plaintext password at BcryptCost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Create registers a user. The email lookup only produces a friendlier error
// earlier; the unique index decides when two writers race.
func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateInput(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", req.Email).Count(&existing).Error; err != nil {
		return nil, apperror.Internal("failed to check email", err)
	}
	if existing > 0 {
		return nil, errEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Password:  hash,
		Name:      strings.TrimSpace(req.Name),
		Role:      role,
		AvatarURL: req.AvatarURL,
	}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, errEmailTaken
		}
		return nil, apperror.Internal("failed to create user", err)
	}

	user.Password = ""
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Select(userColumns).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, apperror.Internal("failed to list users", err)
	}
	return users, nil
}

// ParseUserID validates a user identifier from a path parameter.
func ParseUserID(raw string) (uuid.UUID, error) {
	return parseID(raw, errInvalidUserID)
}

func (s *UserService) GetByID(ctx context.Context, rawID string) (*models.User, error) {
	id, err := parseID(rawID, errInvalidUserID)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

func (s *UserService) get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select(userColumns).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateLookup(err, errUserNotFound, "failed to load user")
	}
	return &user, nil
}

// Role returns the stored role for id. Authorization uses it so that a demoted
// admin loses access before their token expires.
func (s *UserService) Role(ctx context.Context, id uuid.UUID) (models.Role, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("id", "role").First(&user, "id = ?", id).Error; err != nil {
		return "", translateLookup(err, errUserNotFound, "failed to load user role")
	}
	return user.Role, nil
}

func (s *UserService) Update(ctx context.Context, rawID string, req *dto.UpdateUserRequest) (*models.User, error) {
	id, err := parseID(rawID, errInvalidUserID)
	if err != nil {
		return nil, err
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		req.Email = &email
	}
	if err := validateInput(req); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Email != nil && *req.Email != "" {
		updates["email"] = *req.Email
	}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil && *req.Role != "" {
		updates["role"] = *req.Role
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, apperror.Internal("failed to hash password", err)
		}
		updates["password"] = hash
	}
	if len(updates) == 0 {
		return nil, errNothingToSave
	}

	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, apperror.Conflict("email already used by another user")
		}
		return nil, apperror.Internal("failed to update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errUserNotFound
	}
	return s.get(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, errInvalidUserID)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return apperror.Internal("failed to delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return errUserNotFound
	}
	return nil
}

// findByEmail returns the full row, hash included, for credential checks only.
func (s *UserService) findByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, apperror.Internal("failed to load user", err)
	}
	return &user, nil
}
