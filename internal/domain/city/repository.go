package city

import (
	"context"

	"github.com/BruksfildServices01/clients-api/internal/domain"
	"github.com/BruksfildServices01/clients-api/internal/models"
)

type Input struct {
	Name    string
	StateID int
}

type Repository interface {
	Count(ctx context.Context, q domain.ListQuery) (int64, error)
	Create(ctx context.Context, in Input) (uint, error)
	GetAll(ctx context.Context, q domain.ListQuery) ([]models.City, error)
	GetByID(ctx context.Context, id uint) (*models.City, error)
	UpdateByID(ctx context.Context, id uint, in Input) error
	DeleteByID(ctx context.Context, id uint) error
}
