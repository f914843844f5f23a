package client

import (
	"context"

	"github.com/BruksfildServices01/clients-api/internal/domain"
	"github.com/BruksfildServices01/clients-api/internal/models"
)

type Input struct {
	Name   string
	Email  string
	CityID uint
}

// Repository checks that the city exists and the email is free before
// every write.
type Repository interface {
	Count(ctx context.Context, q domain.ListQuery) (int64, error)
	Create(ctx context.Context, in Input) (uint, error)
	GetAll(ctx context.Context, q domain.ListQuery) ([]models.Client, error)
	GetByID(ctx context.Context, id uint) (*models.Client, error)
	UpdateByID(ctx context.Context, id uint, in Input) error
	DeleteByID(ctx context.Context, id uint) error
}
