// Package auth contiene el caso de uso de autenticación de usuarios de
// tenant. Los usuarios viven en la partición del tenant resuelto, así que el
// repositorio de usuarios llega por llamada, no por constructor.
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
	"github.com/jhoicas/eventos-api/pkg/jwt"
)

// UseCase emite tokens JWT contra los usuarios de la partición del tenant.
type UseCase struct {
	jwtSecret  string
	jwtIssuer  string
	expMinutes int
}

// NewUseCase construye el caso de uso con la configuración JWT.
func NewUseCase(jwtSecret, jwtIssuer string, expMinutes int) *UseCase {
	return &UseCase{jwtSecret: jwtSecret, jwtIssuer: jwtIssuer, expMinutes: expMinutes}
}

// Login valida credenciales contra la partición y emite un token con el
// subdominio del tenant como claim. Credenciales malas y usuario inexistente
// devuelven el mismo ErrUnauthorized.
func (uc *UseCase) Login(ctx context.Context, users repository.UserRepository, tenant *entity.Tenant, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	u, err := users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtSecret, u.ID, tenant.Domain, u.Role, uc.jwtIssuer, uc.expMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(u)}, nil
}

// ListUsers devuelve los usuarios de la partición del tenant resuelto.
func (uc *UseCase) ListUsers(ctx context.Context, users repository.UserRepository, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	all, err := users.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(all))
	for _, u := range all {
		items = append(items, toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
