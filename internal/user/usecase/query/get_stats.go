package query

import (
	"fmt"

	"github.com/taller-sys/taller-backend/internal/user/domain"
)

// UserStats summarizes the accounts in the system
type UserStats struct {
	TotalUsers  int64 `json:"total_users"`
	ActiveUsers int64 `json:"active_users"`
	Admins      int64 `json:"admins"`
	Staff       int64 `json:"staff"`
	Clientes    int64 `json:"clientes"`
}

// GetStatsHandler handles user statistics queries
type GetStatsHandler struct {
	repo domain.UserRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.UserRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the stats query
func (h *GetStatsHandler) Handle() (*UserStats, error) {
	total, err := h.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	active, err := h.repo.CountActive()
	if err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}
	admins, err := h.repo.CountByRole(domain.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to count admins: %w", err)
	}
	recep, err := h.repo.CountByRole(domain.RoleRecepcionista)
	if err != nil {
		return nil, fmt.Errorf("failed to count recepcionistas: %w", err)
	}
	tecnicos, err := h.repo.CountByRole(domain.RoleTecnico)
	if err != nil {
		return nil, fmt.Errorf("failed to count tecnicos: %w", err)
	}
	clientes, err := h.repo.CountByRole(domain.RoleCliente)
	if err != nil {
		return nil, fmt.Errorf("failed to count clientes: %w", err)
	}

	return &UserStats{
		TotalUsers:  total,
		ActiveUsers: active,
		Admins:      admins,
		Staff:       admins + recep + tecnicos,
		Clientes:    clientes,
	}, nil
}
