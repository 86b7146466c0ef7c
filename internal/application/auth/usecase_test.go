package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/auditpro-api/internal/application/auth"
	"github.com/jhoicas/auditpro-api/internal/application/dto"
	"github.com/jhoicas/auditpro-api/internal/domain"
	"github.com/jhoicas/auditpro-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/auditpro-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

// fakeUserRepo repositorio en memoria.
type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users = append(r.users, u)
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) { return r.users, nil }

func (r *fakeUserRepo) Delete(_ context.Context, username string) error {
	for i, u := range r.users {
		if u.Username == username {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int, error) { return len(r.users), nil }

func newUseCase() (*auth.AuthUseCase, *fakeUserRepo) {
	repo := &fakeUserRepo{}
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "auditpro-test"})
	return uc, repo
}

func TestEnsureDefaultAdmin_CreaSoloSiVacio(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()

	created, err := uc.EnsureDefaultAdmin(ctx, "1234", "Administrador Principal")
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, repo.users, 1)
	assert.Equal(t, entity.RoleAdmin, repo.users[0].Role)
	assert.NotEqual(t, "1234", repo.users[0].PasswordHash, "la contraseña se guarda hasheada")

	created, err = uc.EnsureDefaultAdmin(ctx, "1234", "Administrador Principal")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.users, 1)
}

func TestEnsureDefaultAdmin_SinPasswordFalla(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.EnsureDefaultAdmin(context.Background(), "", "Admin")
	assert.Error(t, err)
}

func TestLogin_UsuarioSinDistinguirMayusculas(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.EnsureDefaultAdmin(ctx, "1234", "Administrador Principal")
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "ADMIN", Password: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "admin", out.User.Username)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.Equal(t, "admin", claims.Username)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.EnsureDefaultAdmin(ctx, "1234", "Admin")
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreateUser_DuplicadoSinDistinguirMayusculas(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	u, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: "maria", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAuditor, u.Role, "rol por defecto auditor")
	assert.Equal(t, "Maria", u.Name, "nombre por defecto capitalizado")

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Username: "MARIA", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateUser_RolInvalido(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{Username: "x", Password: "y", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteUser_AdminProtegido(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	_, err := uc.EnsureDefaultAdmin(ctx, "1234", "Admin")
	require.NoError(t, err)
	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Username: "pedro", Password: "pw"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.DeleteUser(ctx, "Admin"), domain.ErrForbidden)
	assert.ErrorIs(t, uc.DeleteUser(ctx, "nadie"), domain.ErrNotFound)
	require.NoError(t, uc.DeleteUser(ctx, "PEDRO"))
	assert.Len(t, repo.users, 1)

	list, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "admin", list[0].Username)
}
