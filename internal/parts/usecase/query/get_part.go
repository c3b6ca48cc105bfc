package query

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/parts/domain"
)

// GetPartQuery represents the query to get a part
type GetPartQuery struct {
	ID uint
}

// GetPartHandler handles get part query
type GetPartHandler struct {
	repo domain.PartRepository
}

// NewGetPartHandler creates a new get part handler
func NewGetPartHandler(repo domain.PartRepository) *GetPartHandler {
	return &GetPartHandler{repo: repo}
}

// Handle executes the get part query
func (h *GetPartHandler) Handle(query GetPartQuery) (*domain.Part, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	return h.repo.FindByID(query.ID)
}
