package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clients-api/internal/auth"
	"github.com/BruksfildServices01/clients-api/internal/domain"
	"github.com/BruksfildServices01/clients-api/internal/domain/user"
	"github.com/BruksfildServices01/clients-api/internal/httperr"
	"github.com/BruksfildServices01/clients-api/internal/models"
)

var _ user.Repository = (*UserGormRepository)(nil)

var userListing = listing{
	searchColumns: []string{"name", "email"},
	orderColumns: map[string]string{
		"id":    "id",
		"name":  "name",
		"email": "email",
	},
}

type UserGormRepository struct {
	db     *gorm.DB
	hasher auth.Hasher
	err    storeErrors
}

func NewUserGormRepository(db *gorm.DB, hasher auth.Hasher, log zerolog.Logger) *UserGormRepository {
	return &UserGormRepository{
		db:     db,
		hasher: hasher,
		err:    storeErrors{log: log.With().Str("repo", "users").Logger()},
	}
}

func (r *UserGormRepository) Count(ctx context.Context, q domain.ListQuery) (int64, error) {
	total, err := countRows[models.User](ctx, r.db, userListing, q)
	if err != nil {
		return 0, r.err.internal("count", "fetching records", err)
	}
	return total, nil
}

func (r *UserGormRepository) Create(ctx context.Context, in user.Input) (uint, error) {
	email := normalizeEmail(in.Email)

	taken, err := emailTaken(ctx, r.db, &models.User{}, email, 0)
	if err != nil {
		return 0, r.err.internal("create", "creating the record", err)
	}
	if taken {
		return 0, httperr.ErrEmailRegistered()
	}

	hashed, err := r.hasher.Make(in.Password)
	if err != nil {
		return 0, r.err.internal("create", "creating the record", err)
	}

	u := models.User{Name: in.Name, Email: email, Password: hashed}
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		if isDuplicateKey(err) {
			return 0, httperr.ErrEmailRegistered()
		}
		return 0, r.err.internal("create", "creating the record", err)
	}
	return u.ID, nil
}

func (r *UserGormRepository) GetAll(ctx context.Context, q domain.ListQuery) ([]models.User, error) {
	rows, err := listRows(ctx, r.db, userListing, q, func(u models.User) uint { return u.ID })
	if err != nil {
		return nil, r.err.internal("get_all", "fetching records", err)
	}
	return rows, nil
}

func (r *UserGormRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrRecordNotFound()
		}
		return nil, r.err.internal("get_by_id", "fetching the record", err)
	}
	return &u, nil
}

// GetByEmail is only used by sign-in, so a miss is reported exactly like a
// wrong password.
func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(normalizeEmail(email))).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrInvalidCredentials()
		}
		return nil, r.err.internal("get_by_email", "fetching the record", err)
	}
	return &u, nil
}

func (r *UserGormRepository) UpdateByID(ctx context.Context, id uint, in user.Input) error {
	email := normalizeEmail(in.Email)

	taken, err := emailTaken(ctx, r.db, &models.User{}, email, id)
	if err != nil {
		return r.err.internal("update_by_id", "updating the record", err)
	}
	if taken {
		return httperr.ErrEmailRegistered()
	}

	hashed, err := r.hasher.Make(in.Password)
	if err != nil {
		return r.err.internal("update_by_id", "updating the record", err)
	}

	err = r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":     in.Name,
			"email":    email,
			"password": hashed,
		}).Error
	if err != nil {
		if isDuplicateKey(err) {
			return httperr.ErrEmailRegistered()
		}
		return r.err.internal("update_by_id", "updating the record", err)
	}
	return nil
}
