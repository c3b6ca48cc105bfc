package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/user/domain"
	"github.com/taller-sys/taller-backend/pkg/auth"
)

// UpdateUserCommand represents the command to update profile fields.
// Nil pointers leave the current value untouched.
type UpdateUserCommand struct {
	UserID   uint
	Email    *string
	FullName *string
	Phone    *string
	Password *string
}

// UpdateUserHandler handles user profile updates
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command
func (h *UpdateUserHandler) Handle(cmd UpdateUserCommand) (*domain.User, error) {
	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.Email != nil {
		if *cmd.Email == "" {
			return nil, fmt.Errorf("email cannot be empty")
		}
		if existing, _ := h.repo.FindByEmail(*cmd.Email); existing != nil && existing.ID != user.ID {
			return nil, fmt.Errorf("email already exists")
		}
		user.Email = *cmd.Email
	}
	if cmd.FullName != nil {
		if *cmd.FullName == "" {
			return nil, fmt.Errorf("full name cannot be empty")
		}
		user.FullName = *cmd.FullName
	}
	if cmd.Phone != nil {
		user.Phone = *cmd.Phone
	}
	if cmd.Password != nil {
		if len(*cmd.Password) < 6 {
			return nil, fmt.Errorf("password must be at least 6 characters")
		}
		hashed, err := auth.HashPassword(*cmd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashed
	}

	if err := h.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
