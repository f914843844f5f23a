package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clients-api/internal/domain"
	"github.com/BruksfildServices01/clients-api/internal/domain/client"
	"github.com/BruksfildServices01/clients-api/internal/httperr"
	"github.com/BruksfildServices01/clients-api/internal/models"
)

var _ client.Repository = (*ClientGormRepository)(nil)

var clientListing = listing{
	searchColumns: []string{"name", "email"},
	orderColumns: map[string]string{
		"id":     "id",
		"name":   "name",
		"email":  "email",
		"cityId": "city_id",
	},
}

type ClientGormRepository struct {
	db  *gorm.DB
	err storeErrors
}

func NewClientGormRepository(db *gorm.DB, log zerolog.Logger) *ClientGormRepository {
	return &ClientGormRepository{
		db:  db,
		err: storeErrors{log: log.With().Str("repo", "clients").Logger()},
	}
}

func (r *ClientGormRepository) Count(ctx context.Context, q domain.ListQuery) (int64, error) {
	total, err := countRows[models.Client](ctx, r.db, clientListing, q)
	if err != nil {
		return 0, r.err.internal("count", "fetching records", err)
	}
	return total, nil
}

// checkWrite runs the probes shared by create and update. exceptID is the row
// being updated, zero on create.
func (r *ClientGormRepository) checkWrite(ctx context.Context, op, action string, in client.Input, exceptID uint) error {
	var cities int64
	if err := r.db.WithContext(ctx).
		Model(&models.City{}).
		Where("id = ?", in.CityID).
		Count(&cities).Error; err != nil {
		return r.err.internal(op, action, err)
	}
	if cities == 0 {
		return httperr.BadRequest(httperr.MsgCityNotFound)
	}

	taken, err := emailTaken(ctx, r.db, &models.Client{}, in.Email, exceptID)
	if err != nil {
		return r.err.internal(op, action, err)
	}
	if taken {
		return httperr.ErrEmailRegistered()
	}
	return nil
}

func (r *ClientGormRepository) Create(ctx context.Context, in client.Input) (uint, error) {
	in.Email = normalizeEmail(in.Email)
	if err := r.checkWrite(ctx, "create", "creating the record", in, 0); err != nil {
		return 0, err
	}

	c := models.Client{Name: in.Name, Email: in.Email, CityID: in.CityID}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return 0, r.writeError("create", "creating the record", err)
	}
	return c.ID, nil
}

func (r *ClientGormRepository) GetAll(ctx context.Context, q domain.ListQuery) ([]models.Client, error) {
	rows, err := listRows(ctx, r.db, clientListing, q, func(c models.Client) uint { return c.ID })
	if err != nil {
		return nil, r.err.internal("get_all", "fetching records", err)
	}
	return rows, nil
}

func (r *ClientGormRepository) GetByID(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrRecordNotFound()
		}
		return nil, r.err.internal("get_by_id", "fetching the record", err)
	}
	return &c, nil
}

func (r *ClientGormRepository) UpdateByID(ctx context.Context, id uint, in client.Input) error {
	in.Email = normalizeEmail(in.Email)
	if err := r.checkWrite(ctx, "update_by_id", "updating the record", in, id); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":    in.Name,
			"email":   in.Email,
			"city_id": in.CityID,
		}).Error
	if err != nil {
		return r.writeError("update_by_id", "updating the record", err)
	}
	return nil
}

func (r *ClientGormRepository) DeleteByID(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Client{}, id).Error; err != nil {
		return r.err.internal("delete_by_id", "deleting the record", err)
	}
	return nil
}

// writeError covers races the probes cannot see, such as two requests
// registering the same email at once.
func (r *ClientGormRepository) writeError(op, action string, err error) error {
	switch {
	case isDuplicateKey(err):
		return httperr.ErrEmailRegistered()
	case isForeignKeyViolation(err):
		return httperr.BadRequest(httperr.MsgCityNotFound)
	}
	return r.err.internal(op, action, err)
}
