package query

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/parts/domain"
)

// ListPartsQuery represents the query to list parts
type ListPartsQuery struct {
	Limit      int
	Offset     int
	ActiveOnly bool
}

// ListPartsHandler handles list parts query
type ListPartsHandler struct {
	repo domain.PartRepository
}

// NewListPartsHandler creates a new list parts handler
func NewListPartsHandler(repo domain.PartRepository) *ListPartsHandler {
	return &ListPartsHandler{repo: repo}
}

// Handle executes the list parts query
func (h *ListPartsHandler) Handle(query ListPartsQuery) ([]domain.Part, error) {
	if query.Limit == 0 {
		query.Limit = 50
	}

	if query.Limit > 200 {
		query.Limit = 200
	}

	parts, err := h.repo.FindAll(query.Limit, query.Offset, query.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}

	return parts, nil
}
