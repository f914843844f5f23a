package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clients-api/internal/domain"
	"github.com/BruksfildServices01/clients-api/internal/httperr"
)

// listing describes how an entity is searched and sorted. orderColumns maps
// the API field names to table columns.
type listing struct {
	searchColumns []string
	orderColumns  map[string]string
}

func (l listing) textFilter(filter string) (string, []any) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return "", nil
	}

	like := "%" + strings.ToLower(filter) + "%"
	conds := make([]string, 0, len(l.searchColumns))
	args := make([]any, 0, len(l.searchColumns))
	for _, col := range l.searchColumns {
		conds = append(conds, "LOWER("+col+") LIKE ?")
		args = append(args, like)
	}
	return strings.Join(conds, " OR "), args
}

func (l listing) orderBy(q domain.ListQuery) clause.OrderByColumn {
	col, ok := l.orderColumns[q.OrderBy]
	if !ok {
		col = l.orderColumns[domain.DefaultOrderBy]
	}
	return clause.OrderByColumn{
		Column: clause.Column{Name: col},
		Desc:   q.Order == "desc",
	}
}

func countRows[T any](ctx context.Context, db *gorm.DB, l listing, q domain.ListQuery) (int64, error) {
	tx := db.WithContext(ctx).Model(new(T))
	if cond, args := l.textFilter(q.Filter); cond != "" {
		tx = tx.Where(cond, args...)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// listRows returns one page. When q.ID is set the row with that id also
// matches, and if it falls outside the page it is appended at the end.
func listRows[T any](ctx context.Context, db *gorm.DB, l listing, q domain.ListQuery, idOf func(T) uint) ([]T, error) {
	q = q.WithDefaults()

	tx := db.WithContext(ctx).Model(new(T))
	if cond, args := l.textFilter(q.Filter); cond != "" {
		if q.ID > 0 {
			cond = "(" + cond + ") OR id = ?"
			args = append(args, q.ID)
		}
		tx = tx.Where(cond, args...)
	}

	rows := []T{}
	if err := tx.
		Order(l.orderBy(q)).
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	if q.ID == 0 {
		return rows, nil
	}
	for _, row := range rows {
		if idOf(row) == q.ID {
			return rows, nil
		}
	}

	var extra T
	err := db.WithContext(ctx).Where("id = ?", q.ID).Take(&extra).Error
	switch {
	case err == nil:
		rows = append(rows, extra)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	return rows, nil
}

// storeErrors turns storage failures into StatusErrors, logging the cause.
type storeErrors struct {
	log zerolog.Logger
}

func (s storeErrors) internal(op, action string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg("storage error")
	return httperr.Internal(action)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key")
}

func emailTaken(ctx context.Context, db *gorm.DB, model any, email string, exceptID uint) (bool, error) {
	tx := db.WithContext(ctx).Model(model).Where("LOWER(email) = ?", strings.ToLower(email))
	if exceptID > 0 {
		tx = tx.Where("id <> ?", exceptID)
	}

	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// normalizeEmail only trims. Addresses are stored as submitted and compared
// case-insensitively.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
