package entity

import "time"

// DbStore represents a persisted store. Every store references exactly one
// owning user of role store_owner, created in the same transaction.
type DbStore struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email       string    `gorm:"column:email;type:varchar(255)" json:"email"`
	Description string    `gorm:"column:description;type:varchar(1000)" json:"description"`
	Address     string    `gorm:"column:address;type:varchar(500)" json:"address"`
	PhotoPath   string    `gorm:"column:photo_path;type:varchar(500)" json:"-"`
	OwnerID     uint      `gorm:"column:owner_id;index;not null" json:"owner_id"`
	Owner       *DbUser   `gorm:"foreignKey:OwnerID" json:"-"`
}

// TableName overrides default pluralised name.
func (DbStore) TableName() string {
	return "stores"
}

// StoreQuery supports the admin store listing with filters and pagination.
type StoreQuery struct {
	BaseParams
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Address string `json:"address" form:"address"`
}

// BrowseQuery supports the shopper-facing store listing. Keyword matches
// store name and address.
type BrowseQuery struct {
	Page    int    `json:"page" form:"page"`
	Limit   int    `json:"limit" form:"limit"`
	Keyword string `json:"q" form:"q"`
}

type OwnerSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StoreSummary is the admin/owner view of a store. AverageRating is nil when
// the store has no ratings yet.
type StoreSummary struct {
	ID            uint          `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Description   string        `json:"description"`
	Address       string        `json:"address"`
	PhotoURL      string        `json:"photo_url,omitempty"`
	Owner         *OwnerSummary `json:"owner,omitempty"`
	AverageRating *float64      `json:"average_rating"`
	TotalRatings  int64         `json:"total_ratings"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type StoreListResponse struct {
	Success bool           `json:"success"`
	Total   int64          `json:"total"`
	Count   int            `json:"count"`
	Page    int            `json:"page"`
	PerPage int            `json:"perPage"`
	Stores  []StoreSummary `json:"stores"`
}

// BrowseStoreItem is a store in the shopper listing: the public aggregate
// plus the caller's own rating overlay. Overlay fields are null when the
// caller has not rated the store; AverageRating is null when nobody has.
type BrowseStoreItem struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	Description   string   `json:"description"`
	PhotoURL      string   `json:"photo_url,omitempty"`
	OwnerName     string   `json:"owner_name"`
	AverageRating *float64 `json:"average_rating"`
	TotalRatings  int64    `json:"total_ratings"`
	UserRating    *int     `json:"user_rating"`
	UserComment   *string  `json:"user_comment"`
	UserRatingID  *uint    `json:"user_rating_id"`
}

type BrowseStoresResponse struct {
	Success bool              `json:"success"`
	Total   int64             `json:"total"`
	Count   int               `json:"count"`
	Page    int               `json:"page"`
	PerPage int               `json:"perPage"`
	Stores  []BrowseStoreItem `json:"stores"`
}

type StoreCreateRequest struct {
	Name              string `json:"name" binding:"required"`
	Email             string `json:"email"`
	Description       string `json:"description"`
	Address           string `json:"address"`
	OwnerName         string `json:"owner_name" binding:"required"`
	OwnerEmail        string `json:"owner_email" binding:"required,email"`
	TemporaryPassword string `json:"temporary_password" binding:"required,min=8"`
}

type StoreCreateResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Store   StoreSummary `json:"store"`
	Owner   OwnerSummary `json:"owner"`
}
