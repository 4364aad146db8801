package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// Actor usuario autenticado que ejecuta la operación (tomado del JWT).
type Actor struct {
	ID   string
	Role string
}

// IsAdmin informa si el actor es administrador.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

func (a Actor) canAccess(userID string) bool { return a.IsAdmin() || a.ID == userID }

// UserUseCase aplica reglas de negocio para usuarios.
// Un admin gestiona a todos; el resto solo puede leer y editar su propio perfil.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista usuarios (solo admin).
func (uc *UserUseCase) List(ctx context.Context, actor Actor) ([]dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID (el propio o cualquiera si es admin).
func (uc *UserUseCase) GetByID(ctx context.Context, actor Actor, id string) (*dto.UserResponse, error) {
	if !actor.canAccess(id) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// Create crea un usuario (solo admin).
func (uc *UserUseCase) Create(ctx context.Context, actor Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	user, err := NewUser(in)
	if err != nil {
		return nil, err
	}
	if err := uc.insert(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Update actualiza campos del perfil. Solo un admin puede cambiar role o is_active.
func (uc *UserUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !actor.canAccess(id) {
		return nil, domain.ErrForbidden
	}
	if !actor.IsAdmin() && (in.Role != nil || in.IsActive != nil) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	changed := false
	if v := trimPtr(in.Username); v != nil {
		user.Username, changed = *v, true
	}
	if v := trimPtr(in.Email); v != nil {
		user.Email, changed = strings.ToLower(*v), true
	}
	if v := trimPtr(in.FullName); v != nil {
		user.FullName, changed = *v, true
	}
	if v := trimPtr(in.Role); v != nil {
		if !entity.ValidRole(*v) {
			return nil, domain.ErrInvalidInput
		}
		user.Role, changed = *v, true
	}
	if in.IsActive != nil {
		user.IsActive, changed = *in.IsActive, true
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash, changed = hash, true
	}
	if !changed {
		return nil, domain.ErrInvalidInput
	}

	if in.Username != nil || in.Email != nil {
		taken, err := uc.repo.ExistsUsernameOrEmail(ctx, user.Username, user.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrEmailAlreadyExists
		}
	}

	user.UpdatedAt = time.Now()
	ok, err := uc.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// Delete elimina un usuario (solo admin, nunca a sí mismo).
func (uc *UserUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if actor.ID == id {
		return domain.ErrInvalidInput
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return nil
}

// ChangePassword cambia la contraseña. Un usuario no admin debe confirmar la actual.
func (uc *UserUseCase) ChangePassword(ctx context.Context, actor Actor, id string, in dto.ChangePasswordRequest) error {
	if !actor.canAccess(id) {
		return domain.ErrForbidden
	}
	if in.NewPassword == "" {
		return domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !actor.IsAdmin() {
		if in.CurrentPassword == "" {
			return domain.ErrInvalidInput
		}
		if !CheckPassword(user.PasswordHash, in.CurrentPassword) {
			return domain.ErrUnauthorized
		}
	}
	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	ok, err := uc.repo.Update(ctx, user)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return nil
}

// Register alta pública. El rol pedido solo se respeta para el primer usuario del sistema
// (arranque del primer admin); después todo registro público es staff o se rechaza.
func (uc *UserUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	user, err := NewUser(in)
	if err != nil {
		return nil, err
	}
	if user.Role != entity.RoleStaff {
		n, err := uc.repo.Count(ctx)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, domain.ErrForbidden
		}
	}
	if err := uc.insert(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (uc *UserUseCase) insert(ctx context.Context, user *entity.User) error {
	taken, err := uc.repo.ExistsUsernameOrEmail(ctx, user.Username, user.Email, "")
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrEmailAlreadyExists
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return domain.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// NewUser valida la entrada y construye un usuario activo con la contraseña hasheada.
// Role vacío = staff.
func NewUser(in dto.RegisterRequest) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullName := strings.TrimSpace(in.FullName)
	if username == "" || email == "" || in.Password == "" || fullName == "" {
		return nil, domain.ErrInvalidInput
	}
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = entity.RoleStaff
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// HashPassword hashea con bcrypt (costo por defecto).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compara una contraseña con su hash bcrypt.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ToUserResponse mapea un usuario al DTO de salida (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
