package entity

import "time"

// DbRating represents one user's rating of one store. The composite unique
// index enforces the one-rating-per-user-per-store invariant at the database
// level; concurrent first-time submissions collapse onto the update path.
type DbRating struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	StoreID   uint      `gorm:"column:store_id;not null;uniqueIndex:idx_ratings_store_user" json:"store_id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_ratings_store_user" json:"user_id"`
	Rating    int       `gorm:"column:rating;not null" json:"rating"`
	Comment   *string   `gorm:"column:comment;type:varchar(1000)" json:"comment"`
	Store     *DbStore  `gorm:"foreignKey:StoreID" json:"-"`
	User      *DbUser   `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides default pluralised name.
func (DbRating) TableName() string {
	return "ratings"
}

type RateStoreRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

type RateStoreResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MyRatingItem is one entry of a user's own rating history.
type MyRatingItem struct {
	ID           uint      `json:"id"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	StoreID      uint      `json:"store_id"`
	StoreName    string    `json:"store_name"`
	StoreEmail   string    `json:"store_email"`
	StoreAddress string    `json:"store_address"`
}

type MyRatingsResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Ratings []MyRatingItem `json:"ratings"`
}

type StoreRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type UserRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AdminRatingItem is one entry of the platform-wide rating listing.
type AdminRatingItem struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Store     StoreRef  `json:"store"`
	User      UserRef   `json:"user"`
}

type AdminRatingsResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Ratings []AdminRatingItem `json:"ratings"`
}

// OwnerRatingItem is one rating as shown on the store-owner dashboard.
type OwnerRatingItem struct {
	RatingID  uint      `json:"rating_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
}

// OwnerStats is the aggregate shown to the store owner. Unlike the shopper
// listing, an empty aggregate reports average 0 rather than null.
type OwnerStats struct {
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

type OwnerDashboardData struct {
	Store   StoreSummary      `json:"store"`
	Stats   OwnerStats        `json:"stats"`
	Ratings []OwnerRatingItem `json:"ratings"`
}

type OwnerDashboardResponse struct {
	Success bool               `json:"success"`
	Data    OwnerDashboardData `json:"data"`
}

type OwnerRatingsResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Ratings []OwnerRatingItem `json:"ratings"`
}
