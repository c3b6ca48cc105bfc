package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// Register godoc
// @Summary Register a new account
// @Description Create a customer portal account (role is always cliente)
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,full_name=string,phone=string} true "Registration data"
// @Success 201 {object} object{id=int,username=string,email=string,full_name=string,phone=string,role=string,is_active=bool,created_at=string,updated_at=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/register [post]
func (h *UserHandler) RegisterDoc() {}

// Login godoc
// @Summary User login
// @Description Authenticate user and get JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} object{token=string,user=object}
// @Failure 401 {object} object{error=string}
// @Failure 429 {object} object{error=string}
// @Router /auth/login [post]
func (h *UserHandler) LoginDoc() {}

// GetProfile godoc
// @Summary Get current user profile
// @Description Get authenticated user's profile information
// @Tags Usuarios
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{id=int,username=string,email=string,full_name=string,phone=string,role=string,is_active=bool}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /usuarios/me [get]
func (h *UserHandler) GetProfileDoc() {}

// UpdateProfile godoc
// @Summary Update current user profile
// @Description Update authenticated user's profile
// @Tags Usuarios
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{email=string,full_name=string,phone=string,password=string} true "Update data"
// @Success 200 {object} object{id=int,username=string,email=string,full_name=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /usuarios/me [put]
func (h *UserHandler) UpdateProfileDoc() {}

// CreateUser godoc
// @Summary Create account (admin)
// @Description Admin endpoint to create an account with an explicit role
// @Tags Usuarios
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,full_name=string,phone=string,role=string} true "Account data"
// @Success 201 {object} object{id=int,username=string,email=string,full_name=string,role=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /usuarios [post]
func (h *UserHandler) CreateUserDoc() {}

// ListUsers godoc
// @Summary List accounts (admin)
// @Description List accounts, optionally filtered by role
// @Tags Usuarios
// @Security BearerAuth
// @Produce json
// @Param role query string false "Filter by role"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} object{id=int,username=string,email=string,role=string,is_active=bool}
// @Failure 403 {object} object{error=string}
// @Router /usuarios [get]
func (h *UserHandler) ListUsersDoc() {}

// ChangeRole godoc
// @Summary Change account role (admin)
// @Tags Usuarios
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body object{role=string} true "New role"
// @Success 200 {object} object{id=int,role=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /usuarios/{id}/role [put]
func (h *UserHandler) ChangeRoleDoc() {}

// GetStats godoc
// @Summary Account statistics (admin)
// @Tags Usuarios
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{total_users=int,active_users=int,admins=int,staff=int,clientes=int}
// @Failure 403 {object} object{error=string}
// @Router /usuarios/stats [get]
func (h *UserHandler) GetStatsDoc() {}
