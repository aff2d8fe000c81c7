package dto

import "github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"

type CreateUserRequest struct {
	Email     string      `json:"email" form:"email" validate:"required,email,max=255"`
	Password  string      `json:"password" form:"password" validate:"required,max=72"`
	Name      string      `json:"name" form:"name" validate:"max=255"`
	Role      models.Role `json:"role" form:"role" validate:"omitempty,oneof=USER ADMIN"`
	AvatarURL string      `json:"avatarUrl" form:"avatarUrl" validate:"omitempty,max=1024"`
}

// UpdateUserRequest only carries mutable fields; id and timestamps are not
// representable and therefore never applied.
type UpdateUserRequest struct {
	Email     *string      `json:"email" form:"email" validate:"omitempty,email,max=255"`
	Password  *string      `json:"password" form:"password" validate:"omitempty,max=72"`
	Name      *string      `json:"name" form:"name" validate:"omitempty,max=255"`
	Role      *models.Role `json:"role" form:"role" validate:"omitempty,oneof=USER ADMIN"`
	AvatarURL *string      `json:"avatarUrl" form:"avatarUrl" validate:"omitempty,max=1024"`
}
