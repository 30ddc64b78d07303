package sql

import (
	"fmt"
	"strings"

	"storerate/internal/entity"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GormRepository implements Repository using GORM.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// clampWindow normalises page/limit to the allowed window. Invalid values are
// clamped, never rejected.
func clampWindow(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// orderClause maps an untrusted sort field through the resource's allow-list
// and appends an id tiebreak so page boundaries stay stable under equal keys.
// The raw client string never reaches the query.
func orderClause(allowed map[string]string, sortBy, sortOrder string) string {
	column, ok := allowed[strings.ToLower(strings.TrimSpace(sortBy))]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(sortOrder), "asc") {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s, id %s", column, direction, direction)
}

// likePattern builds a case-insensitive substring pattern.
func likePattern(value string) string {
	return "%" + strings.ToLower(strings.TrimSpace(value)) + "%"
}

func (r *GormRepository) makeMeta(total int64, page, perPage int) *entity.Meta {
	return &entity.Meta{
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
}
