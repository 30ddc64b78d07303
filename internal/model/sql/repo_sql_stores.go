package sql

import (
	"context"
	"fmt"
	"strings"

	"storerate/internal/entity"

	"gorm.io/gorm"
)

var storeSortFields = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"name":       "name",
}

// CreateStoreWithOwner atomically creates a store_owner account and its
// store. Either both rows persist or neither does; a failure after the user
// insert rolls the user back too.
func (r *GormRepository) CreateStoreWithOwner(ctx context.Context, owner *entity.DbUser, store *entity.DbStore) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if owner == nil || store == nil {
		return fmt.Errorf("owner and store are required")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner.Role = entity.UserRoleStoreOwner
		if err := tx.Create(owner).Error; err != nil {
			return err
		}
		store.OwnerID = owner.ID
		if err := tx.Create(store).Error; err != nil {
			return err
		}
		return nil
	})
}

// GetStoreByID loads a store with its owner.
func (r *GormRepository) GetStoreByID(ctx context.Context, id uint) (*entity.DbStore, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid store id")
	}
	var store entity.DbStore
	if err := r.db.WithContext(ctx).Preload("Owner").First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// GetStoreByOwnerID loads the store owned by the given user.
func (r *GormRepository) GetStoreByOwnerID(ctx context.Context, ownerID uint) (*entity.DbStore, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("invalid owner id")
	}
	var store entity.DbStore
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// ListStores returns one page of stores (with owners preloaded) plus the
// total matching count.
func (r *GormRepository) ListStores(ctx context.Context, params *entity.StoreQuery) ([]entity.DbStore, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbStore{})
	if params != nil {
		if trimmed := strings.TrimSpace(params.Name); trimmed != "" {
			query = query.Where("LOWER(name) LIKE ?", likePattern(trimmed))
		}
		if trimmed := strings.TrimSpace(params.Email); trimmed != "" {
			query = query.Where("LOWER(email) LIKE ?", likePattern(trimmed))
		}
		if trimmed := strings.TrimSpace(params.Address); trimmed != "" {
			query = query.Where("LOWER(address) LIKE ?", likePattern(trimmed))
		}
	}

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

	var stores []entity.DbStore
	err := query.Preload("Owner").
		Order(orderClause(storeSortFields, sortBy, sortOrder)).
		Offset((page - 1) * limit).Limit(limit).Find(&stores).Error
	if err != nil {
		return nil, nil, err
	}

	return stores, r.makeMeta(total, page, limit), nil
}

// BrowseStores returns one page of the shopper listing. The keyword matches
// store name or address.
func (r *GormRepository) BrowseStores(ctx context.Context, params *entity.BrowseQuery) ([]entity.DbStore, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbStore{})
	if params != nil {
		if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
			kw := likePattern(keyword)
			query = query.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", kw, kw)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page, limit := 1, defaultPageSize
	if params != nil {
		page, limit = clampWindow(params.Page, params.Limit)
	}

	var stores []entity.DbStore
	err := query.Preload("Owner").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&stores).Error
	if err != nil {
		return nil, nil, err
	}

	return stores, r.makeMeta(total, page, limit), nil
}

// SetStorePhoto records the storage path of the store's photo.
func (r *GormRepository) SetStorePhoto(ctx context.Context, id uint, photoPath string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid store id")
	}
	result := r.db.WithContext(ctx).Model(&entity.DbStore{}).Where("id = ?", id).
		Update("photo_path", photoPath)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountStores returns total store count.
func (r *GormRepository) CountStores(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbStore{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
