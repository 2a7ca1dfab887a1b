package repository

import (
	"context"

	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para los usuarios de un
// tenant. Las implementaciones van atadas a la partición (schema) del tenant:
// el mismo puerto sirve para cualquier partición resuelta.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
}
