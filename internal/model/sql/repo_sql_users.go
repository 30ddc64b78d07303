package sql

import (
	"context"
	"fmt"
	"strings"

	"storerate/internal/entity"

	"gorm.io/gorm"
)

var userSortFields = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"name":       "name",
	"email":      "email",
}

// CreateUser persists a new user record.
func (r *GormRepository) CreateUser(ctx context.Context, user *entity.DbUser) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByID loads a user by ID.
func (r *GormRepository) GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var user entity.DbUser
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail loads a user by email, case-insensitively.
func (r *GormRepository) GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, fmt.Errorf("email is empty")
	}

	var user entity.DbUser
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(trimmed)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserPassword replaces the stored password hash.
func (r *GormRepository) UpdateUserPassword(ctx context.Context, id uint, passwordHash string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid user id")
	}
	if strings.TrimSpace(passwordHash) == "" {
		return fmt.Errorf("password hash is empty")
	}
	result := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("id = ?", id).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// userFilterQuery builds the conjunctive predicate shared by the count and
// window queries. Absent filters are omitted.
func (r *GormRepository) userFilterQuery(ctx context.Context, params *entity.UserQuery) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.DbUser{})
	if params == nil {
		return query
	}
	if trimmed := strings.TrimSpace(params.Name); trimmed != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(trimmed))
	}
	if trimmed := strings.TrimSpace(params.Email); trimmed != "" {
		query = query.Where("LOWER(email) LIKE ?", likePattern(trimmed))
	}
	if trimmed := strings.TrimSpace(params.Address); trimmed != "" {
		query = query.Where("LOWER(address) LIKE ?", likePattern(trimmed))
	}
	if trimmed := strings.TrimSpace(params.Role); trimmed != "" {
		query = query.Where("role = ?", trimmed)
	}
	return query
}

// ListUsers returns one page of users plus the total matching count. Count
// and window run on the identical predicate.
func (r *GormRepository) ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.userFilterQuery(ctx, params)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page, limit := 1, defaultPageSize
	sortBy, sortOrder := "", ""
	if params != nil {
		page, limit = clampWindow(params.Page, params.Limit)
		sortBy, sortOrder = params.SortBy, params.SortOrder
	}

	var users []entity.DbUser
	err := query.Order(orderClause(userSortFields, sortBy, sortOrder)).
		Offset((page - 1) * limit).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, nil, err
	}

	return users, r.makeMeta(total, page, limit), nil
}

// ExportUsers returns all users matching the filters, without a page window.
func (r *GormRepository) ExportUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	sortBy, sortOrder := "", ""
	if params != nil {
		sortBy, sortOrder = params.SortBy, params.SortOrder
	}

	var users []entity.DbUser
	err := r.userFilterQuery(ctx, params).
		Order(orderClause(userSortFields, sortBy, sortOrder)).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CountUsers returns total user count.
func (r *GormRepository) CountUsers(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
