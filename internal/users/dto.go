package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	FullName    string         `json:"full_name"`
	Role        enums.UserRole `json:"role"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FullName     string
	Role         *enums.UserRole
	IsActive     *bool
}

// FromModel converts a user row plus its optional profile into a DTO.
func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	dto := &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		Role:        enums.UserRoleClient,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
	if u.Profile != nil {
		dto.FullName = u.Profile.FullName
		dto.Role = u.Profile.Role
	}
	return dto
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	user := &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		IsActive:     isActive,
	}

	if c.FullName != "" || c.Role != nil {
		role := enums.UserRoleClient
		if c.Role != nil {
			role = *c.Role
		}
		user.Profile = &models.UserProfile{
			FullName: c.FullName,
			Role:     role,
		}
	}

	return user
}
