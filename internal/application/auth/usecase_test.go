package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/auth"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/pkg/jwt"
)

const testSecret = "test-secret"

type memUsers struct {
	byID    map[string]*entity.User
	touched []string
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	c := *u
	m.byID[u.ID] = &c
	return nil
}
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := m.byID[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}
func (m *memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}
func (m *memUsers) ExistsUsernameOrEmail(_ context.Context, username, email, excludeID string) (bool, error) {
	for _, u := range m.byID {
		if u.ID != excludeID && (u.Username == username || u.Email == email) {
			return true, nil
		}
	}
	return false, nil
}
func (m *memUsers) Update(_ context.Context, u *entity.User) (bool, error) {
	c := *u
	m.byID[u.ID] = &c
	return true, nil
}
func (m *memUsers) TouchLastLogin(_ context.Context, id string) error {
	m.touched = append(m.touched, id)
	return nil
}
func (m *memUsers) List(context.Context) ([]*entity.User, error) { return nil, nil }
func (m *memUsers) Count(context.Context) (int, error)           { return len(m.byID), nil }
func (m *memUsers) Delete(_ context.Context, id string) (bool, error) {
	delete(m.byID, id)
	return true, nil
}

func newAuth(t *testing.T) (*auth.AuthUseCase, *memUsers, *dto.UserResponse) {
	t.Helper()
	repo := &memUsers{byID: map[string]*entity.User{}}
	uc := auth.NewAuthUseCase(repo, usecase.NewUserUseCase(repo), auth.JWTConfig{Secret: testSecret, ExpMinutes: 480, Issuer: "test"})
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Username: "ana", Email: "ana@acme.test", Password: "clave123", FullName: "Ana", Role: entity.RoleManager,
	})
	require.NoError(t, err)
	return uc, repo, u
}

func TestLogin_EmiteTokenConRol(t *testing.T) {
	uc, repo, user := newAuth(t)

	res, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.User.ID)
	assert.NotNil(t, res.User.LastLogin)
	assert.Equal(t, []string{user.ID}, repo.touched)

	claims, err := jwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, entity.RoleManager, claims.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, repo, user := newAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	repo.byID[user.ID].IsActive = false
	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuario inactivo")

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.touched)
}

func TestMe(t *testing.T) {
	uc, repo, user := newAuth(t)

	me, err := uc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@acme.test", me.Email)

	repo.byID[user.ID].IsActive = false
	_, err = uc.Me(context.Background(), user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	uc, _, _ := newAuth(t)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Username: "ana", Email: "otra@acme.test", Password: "x", FullName: "Otra",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}
