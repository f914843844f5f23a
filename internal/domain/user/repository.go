package user

import (
	"context"

	"github.com/BruksfildServices01/clients-api/internal/domain"
	"github.com/BruksfildServices01/clients-api/internal/models"
)

// Input carries the plain password; repositories hash it before it is stored.
type Input struct {
	Name     string
	Email    string
	Password string
}

type Repository interface {
	Count(ctx context.Context, q domain.ListQuery) (int64, error)
	Create(ctx context.Context, in Input) (uint, error)
	GetAll(ctx context.Context, q domain.ListQuery) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateByID(ctx context.Context, id uint, in Input) error
}
