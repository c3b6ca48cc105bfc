package command

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/taller-sys/taller-backend/internal/user/domain"
	"github.com/taller-sys/taller-backend/internal/user/repository"
	"github.com/taller-sys/taller-backend/pkg/auth"
)

func testRepo(t *testing.T) *repository.GormUserRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.NewGormUserRepository(db)
}

func register(t *testing.T, repo domain.UserRepository, username string) *domain.User {
	t.Helper()
	user, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: username,
		Email:    username + "@example.com",
		Password: "secreto1",
		FullName: "Cuenta " + username,
	})
	if err != nil {
		t.Fatalf("register %q: %v", username, err)
	}
	return user
}

func TestRegister_AlwaysCliente(t *testing.T) {
	repo := testRepo(t)
	user := register(t, repo, "maria")

	if user.Role != domain.RoleCliente {
		t.Errorf("role = %q, want cliente", user.Role)
	}
	if !user.IsActive {
		t.Error("new account should be active")
	}
	if user.Password == "secreto1" {
		t.Error("password stored in plaintext")
	}
	if !auth.CheckPassword(user.Password, "secreto1") {
		t.Error("stored hash does not match the password")
	}
}

func TestRegister_Validation(t *testing.T) {
	repo := testRepo(t)
	handler := NewRegisterUserHandler(repo)

	cases := []struct {
		name string
		cmd  RegisterUserCommand
		want string
	}{
		{"missing username", RegisterUserCommand{Email: "a@b.c", Password: "secreto1", FullName: "A"}, "username"},
		{"missing email", RegisterUserCommand{Username: "a", Password: "secreto1", FullName: "A"}, "email"},
		{"short password", RegisterUserCommand{Username: "a", Email: "a@b.c", Password: "corta", FullName: "A"}, "at least 6"},
		{"missing full name", RegisterUserCommand{Username: "a", Email: "a@b.c", Password: "secreto1"}, "full name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := handler.Handle(tc.cmd); err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("got %v, want error containing %q", err, tc.want)
			}
		})
	}
}

func TestRegister_Duplicates(t *testing.T) {
	repo := testRepo(t)
	register(t, repo, "pedro")
	handler := NewRegisterUserHandler(repo)

	_, err := handler.Handle(RegisterUserCommand{
		Username: "pedro", Email: "otro@example.com", Password: "secreto1", FullName: "Otro",
	})
	if err == nil || !strings.Contains(err.Error(), "username already exists") {
		t.Errorf("duplicate username: got %v", err)
	}

	_, err = handler.Handle(RegisterUserCommand{
		Username: "pedro2", Email: "pedro@example.com", Password: "secreto1", FullName: "Otro",
	})
	if err == nil || !strings.Contains(err.Error(), "email already exists") {
		t.Errorf("duplicate email: got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := testRepo(t)
	user := register(t, repo, "lucia")

	result, err := NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "lucia", Password: "secreto1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Error("token not issued")
	}
	claims, err := auth.ValidateToken(result.Token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != domain.RoleCliente {
		t.Errorf("claims = %+v, want user %d with role cliente", claims, user.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := testRepo(t)
	register(t, repo, "jorge")

	_, err := NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "jorge", Password: "equivocada"})
	if err == nil || !strings.Contains(err.Error(), "invalid credentials") {
		t.Errorf("wrong password: got %v, want invalid credentials", err)
	}

	// Unknown usernames get the same generic message
	_, err = NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "nadie", Password: "secreto1"})
	if err == nil || !strings.Contains(err.Error(), "invalid credentials") {
		t.Errorf("unknown user: got %v, want invalid credentials", err)
	}
}

func TestLogin_DisabledAccount(t *testing.T) {
	repo := testRepo(t)
	user := register(t, repo, "laura")

	if _, err := NewToggleActiveHandler(repo).Handle(ToggleActiveCommand{UserID: user.ID}); err != nil {
		t.Fatalf("toggle active: %v", err)
	}

	_, err := NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "laura", Password: "secreto1"})
	if err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Errorf("disabled account: got %v, want account is disabled", err)
	}
}

func TestDeleteUser_LastAdminProtected(t *testing.T) {
	repo := testRepo(t)

	admin, err := NewCreateUserHandler(repo).Handle(CreateUserCommand{
		Username: "jefe", Email: "jefe@example.com", Password: "secreto1",
		FullName: "Jefe de Taller", Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}

	handler := NewDeleteUserHandler(repo)
	if err := handler.Handle(DeleteUserCommand{UserID: admin.ID}); err == nil || !strings.Contains(err.Error(), "last admin") {
		t.Errorf("delete last admin: got %v, want refusal", err)
	}

	segundo, err := NewCreateUserHandler(repo).Handle(CreateUserCommand{
		Username: "subjefe", Email: "subjefe@example.com", Password: "secreto1",
		FullName: "Segundo Admin", Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("create second admin: %v", err)
	}

	if err := handler.Handle(DeleteUserCommand{UserID: segundo.ID}); err != nil {
		t.Errorf("delete with another admin present: %v", err)
	}
}
