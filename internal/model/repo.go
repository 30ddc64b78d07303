package model

import (
	"context"

	"storerate/internal/entity"
)

// Repository defines the data-access operations backing the HTTP layer.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *entity.DbUser) error
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	UpdateUserPassword(ctx context.Context, id uint, passwordHash string) error
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error)
	ExportUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, error)
	CountUsers(ctx context.Context) (int64, error)

	// Stores
	CreateStoreWithOwner(ctx context.Context, owner *entity.DbUser, store *entity.DbStore) error
	GetStoreByID(ctx context.Context, id uint) (*entity.DbStore, error)
	GetStoreByOwnerID(ctx context.Context, ownerID uint) (*entity.DbStore, error)
	ListStores(ctx context.Context, params *entity.StoreQuery) ([]entity.DbStore, *entity.Meta, error)
	BrowseStores(ctx context.Context, params *entity.BrowseQuery) ([]entity.DbStore, *entity.Meta, error)
	SetStorePhoto(ctx context.Context, id uint, photoPath string) error
	CountStores(ctx context.Context) (int64, error)

	// Ratings
	UpsertRating(ctx context.Context, userID, storeID uint, value int, comment *string) (*entity.DbRating, bool, error)
	GetRatingByID(ctx context.Context, id uint) (*entity.DbRating, error)
	DeleteRating(ctx context.Context, id uint) error
	ListStoreRatings(ctx context.Context, storeID uint) ([]entity.DbRating, error)
	ListUserRatings(ctx context.Context, userID uint) ([]entity.DbRating, error)
	ListAllRatings(ctx context.Context) ([]entity.DbRating, error)
	CountRatings(ctx context.Context) (int64, error)

	// Aggregates
	StoreRatingStats(ctx context.Context, storeID uint) (entity.RatingStats, error)
	RatingStatsByStore(ctx context.Context, storeIDs []uint) (map[uint]entity.RatingStats, error)
	UserRatingsByStore(ctx context.Context, userID uint, storeIDs []uint) (map[uint]entity.DbRating, error)
}
