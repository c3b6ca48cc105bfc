package query

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/user/domain"
)

// ListUsersQuery represents the query to list users, optionally by role
type ListUsersQuery struct {
	Role   string
	Limit  int
	Offset int
}

// ListUsersHandler handles list users queries
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(q ListUsersQuery) ([]domain.User, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 200 {
		q.Limit = 200
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Role != "" {
		if !domain.ValidRole(q.Role) {
			return nil, fmt.Errorf("invalid role: %s", q.Role)
		}
		return h.repo.FindByRole(q.Role, q.Limit, q.Offset)
	}
	return h.repo.FindAll(q.Limit, q.Offset)
}
