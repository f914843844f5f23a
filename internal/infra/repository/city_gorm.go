package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clients-api/internal/domain"
	"github.com/BruksfildServices01/clients-api/internal/domain/city"
	"github.com/BruksfildServices01/clients-api/internal/httperr"
	"github.com/BruksfildServices01/clients-api/internal/models"
)

var _ city.Repository = (*CityGormRepository)(nil)

var cityListing = listing{
	searchColumns: []string{"name"},
	orderColumns: map[string]string{
		"id":      "id",
		"name":    "name",
		"stateId": "state_id",
	},
}

type CityGormRepository struct {
	db  *gorm.DB
	err storeErrors
}

func NewCityGormRepository(db *gorm.DB, log zerolog.Logger) *CityGormRepository {
	return &CityGormRepository{
		db:  db,
		err: storeErrors{log: log.With().Str("repo", "cities").Logger()},
	}
}

func (r *CityGormRepository) Count(ctx context.Context, q domain.ListQuery) (int64, error) {
	total, err := countRows[models.City](ctx, r.db, cityListing, q)
	if err != nil {
		return 0, r.err.internal("count", "fetching records", err)
	}
	return total, nil
}

func (r *CityGormRepository) Create(ctx context.Context, in city.Input) (uint, error) {
	c := models.City{Name: in.Name, StateID: in.StateID}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return 0, r.err.internal("create", "creating the record", err)
	}
	return c.ID, nil
}

func (r *CityGormRepository) GetAll(ctx context.Context, q domain.ListQuery) ([]models.City, error) {
	rows, err := listRows(ctx, r.db, cityListing, q, func(c models.City) uint { return c.ID })
	if err != nil {
		return nil, r.err.internal("get_all", "fetching records", err)
	}
	return rows, nil
}

func (r *CityGormRepository) GetByID(ctx context.Context, id uint) (*models.City, error) {
	var c models.City
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrRecordNotFound()
		}
		return nil, r.err.internal("get_by_id", "fetching the record", err)
	}
	return &c, nil
}

func (r *CityGormRepository) UpdateByID(ctx context.Context, id uint, in city.Input) error {
	err := r.db.WithContext(ctx).
		Model(&models.City{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":     in.Name,
			"state_id": in.StateID,
		}).Error
	if err != nil {
		return r.err.internal("update_by_id", "updating the record", err)
	}
	return nil
}

func (r *CityGormRepository) DeleteByID(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.City{}, id).Error; err != nil {
		if isForeignKeyViolation(err) {
			return httperr.BadRequest(httperr.MsgStillReferenced)
		}
		return r.err.internal("delete_by_id", "deleting the record", err)
	}
	return nil
}
