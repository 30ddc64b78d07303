package entity

// Meta holds pagination metadata for list queries.
type Meta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
	Total   int64 `json:"total"`
}

// BaseParams holds the pagination and sorting parameters shared by list
// endpoints. SortBy is validated against a per-resource allow-list in the
// repository; unknown values fall back to created_at. Only the literal
// value "asc" (case-insensitive) switches SortOrder to ascending.
type BaseParams struct {
	Page      int    `json:"page" form:"page"`
	Limit     int    `json:"limit" form:"limit"`
	SortBy    string `json:"sortBy" form:"sortBy"`
	SortOrder string `json:"sortOrder" form:"sortOrder"`
}

// RatingStats is the aggregate of all ratings for one store.
type RatingStats struct {
	StoreID uint    `json:"-"`
	Average float64 `json:"average_rating"`
	Count   int64   `json:"total_ratings"`
}
