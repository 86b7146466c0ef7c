package repository

import (
	"context"

	"github.com/jhoicas/auditpro-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// GetByUsername compara el usuario sin distinguir mayúsculas; (nil, nil) si no existe.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Delete(ctx context.Context, username string) error
	Count(ctx context.Context) (int, error)
}
