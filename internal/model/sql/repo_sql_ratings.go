package sql

import (
	"context"
	"errors"
	"fmt"

	"storerate/internal/entity"

	"gorm.io/gorm"
)

// UpsertRating creates or updates the caller's rating for a store. The
// returned bool is true when a new row was inserted. A duplicate-key
// violation on insert means a concurrent first-time submission won the race;
// it is retried as an update so the (user, store) pair always ends with
// exactly one row.
func (r *GormRepository) UpsertRating(ctx context.Context, userID, storeID uint, value int, comment *string) (*entity.DbRating, bool, error) {
	if r == nil || r.db == nil {
		return nil, false, fmt.Errorf("repository not initialised")
	}
	if userID == 0 || storeID == 0 {
		return nil, false, fmt.Errorf("invalid user or store id")
	}
	if value < 1 || value > 5 {
		return nil, false, fmt.Errorf("rating out of range: %d", value)
	}

	db := r.db.WithContext(ctx)

	var existing entity.DbRating
	err := db.Where("store_id = ? AND user_id = ?", storeID, userID).First(&existing).Error
	switch {
	case err == nil:
		if err := r.updateRatingRow(db, &existing, value, comment); err != nil {
			return nil, false, err
		}
		return &existing, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to insert
	default:
		return nil, false, err
	}

	row := entity.DbRating{
		StoreID: storeID,
		UserID:  userID,
		Rating:  value,
		Comment: comment,
	}
	if err := db.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var winner entity.DbRating
			if err := db.Where("store_id = ? AND user_id = ?", storeID, userID).First(&winner).Error; err != nil {
				return nil, false, err
			}
			if err := r.updateRatingRow(db, &winner, value, comment); err != nil {
				return nil, false, err
			}
			return &winner, false, nil
		}
		return nil, false, err
	}
	return &row, true, nil
}

// updateRatingRow updates rating/comment in place, preserving id and
// created_at.
func (r *GormRepository) updateRatingRow(db *gorm.DB, row *entity.DbRating, value int, comment *string) error {
	err := db.Model(row).Updates(map[string]interface{}{
		"rating":  value,
		"comment": comment,
	}).Error
	if err != nil {
		return err
	}
	row.Rating = value
	row.Comment = comment
	return nil
}

// GetRatingByID loads a rating by ID.
func (r *GormRepository) GetRatingByID(ctx context.Context, id uint) (*entity.DbRating, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid rating id")
	}
	var rating entity.DbRating
	if err := r.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// DeleteRating removes a rating by ID.
func (r *GormRepository) DeleteRating(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid rating id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbRating{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListStoreRatings returns all ratings for one store, newest first, with the
// rating users preloaded.
func (r *GormRepository) ListStoreRatings(ctx context.Context, storeID uint) ([]entity.DbRating, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if storeID == 0 {
		return nil, fmt.Errorf("invalid store id")
	}
	var ratings []entity.DbRating
	err := r.db.WithContext(ctx).Preload("User").
		Where("store_id = ?", storeID).
		Order("created_at DESC, id DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// ListUserRatings returns all ratings submitted by one user, newest first,
// with the rated stores preloaded.
func (r *GormRepository) ListUserRatings(ctx context.Context, userID uint) ([]entity.DbRating, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var ratings []entity.DbRating
	err := r.db.WithContext(ctx).Preload("Store").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// ListAllRatings returns every rating with store and user preloaded, newest
// first.
func (r *GormRepository) ListAllRatings(ctx context.Context) ([]entity.DbRating, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var ratings []entity.DbRating
	err := r.db.WithContext(ctx).Preload("Store").Preload("User").
		Order("created_at DESC, id DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// CountRatings returns total rating count.
func (r *GormRepository) CountRatings(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbRating{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// StoreRatingStats computes average and count for one store in a single
// pass. A store with no ratings reports average 0 and count 0.
func (r *GormRepository) StoreRatingStats(ctx context.Context, storeID uint) (entity.RatingStats, error) {
	if r == nil || r.db == nil {
		return entity.RatingStats{}, fmt.Errorf("repository not initialised")
	}
	if storeID == 0 {
		return entity.RatingStats{}, fmt.Errorf("invalid store id")
	}

	var row struct {
		Average float64
		Count   int64
	}
	err := r.db.WithContext(ctx).Model(&entity.DbRating{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("store_id = ?", storeID).
		Scan(&row).Error
	if err != nil {
		return entity.RatingStats{}, err
	}
	return entity.RatingStats{StoreID: storeID, Average: row.Average, Count: row.Count}, nil
}

// RatingStatsByStore computes per-store average and count for a set of
// stores in one grouped query. Stores without ratings are absent from the
// result map.
func (r *GormRepository) RatingStatsByStore(ctx context.Context, storeIDs []uint) (map[uint]entity.RatingStats, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	stats := make(map[uint]entity.RatingStats, len(storeIDs))
	if len(storeIDs) == 0 {
		return stats, nil
	}

	var rows []struct {
		StoreID uint
		Average float64
		Count   int64
	}
	err := r.db.WithContext(ctx).Model(&entity.DbRating{}).
		Select("store_id, AVG(rating) AS average, COUNT(*) AS count").
		Where("store_id IN ?", storeIDs).
		Group("store_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		stats[row.StoreID] = entity.RatingStats{StoreID: row.StoreID, Average: row.Average, Count: row.Count}
	}
	return stats, nil
}

// UserRatingsByStore fetches one user's ratings over a set of stores in a
// single query, keyed by store id, for the listing overlay.
func (r *GormRepository) UserRatingsByStore(ctx context.Context, userID uint, storeIDs []uint) (map[uint]entity.DbRating, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	byStore := make(map[uint]entity.DbRating, len(storeIDs))
	if userID == 0 || len(storeIDs) == 0 {
		return byStore, nil
	}

	var ratings []entity.DbRating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id IN ?", userID, storeIDs).
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}

	for _, rating := range ratings {
		byStore[rating.StoreID] = rating
	}
	return byStore, nil
}
