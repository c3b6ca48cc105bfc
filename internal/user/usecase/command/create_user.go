package command

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/user/domain"
	"github.com/taller-sys/taller-backend/pkg/auth"
)

// CreateUserCommand represents the admin command to create a staff account
// with an explicit role.
type CreateUserCommand struct {
	Username string
	Email    string
	Password string
	FullName string
	Phone    string
	Role     string
}

// CreateUserHandler handles staff account creation
type CreateUserHandler struct {
	repo domain.UserRepository
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(repo domain.UserRepository) *CreateUserHandler {
	return &CreateUserHandler{repo: repo}
}

// Handle executes the create user command
func (h *CreateUserHandler) Handle(cmd CreateUserCommand) (*domain.User, error) {
	if cmd.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(cmd.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	if cmd.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}
	if cmd.Role == "" {
		cmd.Role = domain.RoleCliente
	}
	if !domain.ValidRole(cmd.Role) {
		return nil, fmt.Errorf("invalid role: %s", cmd.Role)
	}

	if existingUser, _ := h.repo.FindByUsername(cmd.Username); existingUser != nil {
		return nil, fmt.Errorf("username already exists")
	}
	if existingUser, _ := h.repo.FindByEmail(cmd.Email); existingUser != nil {
		return nil, fmt.Errorf("email already exists")
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username: cmd.Username,
		Email:    cmd.Email,
		Password: hashedPassword,
		FullName: cmd.FullName,
		Phone:    cmd.Phone,
		Role:     cmd.Role,
		IsActive: true,
	}

	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
