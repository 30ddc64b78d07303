package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storerate/internal/entity"
)

// BrowseStores lists stores for shoppers with the public rating aggregate
// and the caller's own rating overlaid in a single pass.
func (h *HTTPHandler) BrowseStores(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		Unauthorized(c, "authentication required")
		return
	}

	var params entity.BrowseQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx := c.Request.Context()
	stores, meta, err := h.Repo.BrowseStores(ctx, &params)
	if err != nil {
		logRequestError(c, err, "browse stores failed")
		InternalError(c, err)
		return
	}

	ids := make([]uint, 0, len(stores))
	for i := range stores {
		ids = append(ids, stores[i].ID)
	}
	statsByStore, err := h.Repo.RatingStatsByStore(ctx, ids)
	if err != nil {
		logRequestError(c, err, "store stats failed")
		InternalError(c, err)
		return
	}
	mine, err := h.Repo.UserRatingsByStore(ctx, user.ID, ids)
	if err != nil {
		logRequestError(c, err, "rating overlay failed")
		InternalError(c, err)
		return
	}

	items := make([]entity.BrowseStoreItem, 0, len(stores))
	for i := range stores {
		s := &stores[i]
		item := entity.BrowseStoreItem{
			ID:          s.ID,
			Name:        s.Name,
			Email:       s.Email,
			Address:     s.Address,
			Description: s.Description,
			PhotoURL:    h.photoURL(s.PhotoPath),
		}
		if s.Owner != nil {
			item.OwnerName = s.Owner.Name
		}
		if stats, ok := statsByStore[s.ID]; ok && stats.Count > 0 {
			avg := roundAverage(stats.Average)
			item.AverageRating = &avg
			item.TotalRatings = stats.Count
		}
		if r, ok := mine[s.ID]; ok {
			rating := r.Rating
			id := r.ID
			item.UserRating = &rating
			item.UserComment = r.Comment
			item.UserRatingID = &id
		}
		items = append(items, item)
	}
	c.JSON(http.StatusOK, entity.BrowseStoresResponse{
		Success: true,
		Total:   meta.Total,
		Count:   len(items),
		Page:    meta.Page,
		PerPage: meta.PerPage,
		Stores:  items,
	})
}

// RateStore submits or overwrites the caller's rating for a store. A first
// submission answers 201, an overwrite 200.
func (h *HTTPHandler) RateStore(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		Unauthorized(c, "authentication required")
		return
	}
	storeID, err := strconv.ParseUint(c.Param("storeId"), 10, 32)
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid store id")
		return
	}

	var req entity.RateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		BadRequest(c, ErrCodeInvalidRating, "rating must be an integer between 1 and 5")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Repo.GetStoreByID(ctx, uint(storeID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeStoreNotFound, "store not found")
			return
		}
		logRequestError(c, err, "lookup store failed")
		InternalError(c, err)
		return
	}

	_, created, err := h.Repo.UpsertRating(ctx, user.ID, uint(storeID), req.Rating, req.Comment)
	if err != nil {
		logRequestError(c, err, "upsert rating failed")
		InternalError(c, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, entity.RateStoreResponse{Success: true, Message: "rating submitted"})
		return
	}
	c.JSON(http.StatusOK, entity.RateStoreResponse{Success: true, Message: "rating updated"})
}

// MyRatings returns the caller's rating history with store context.
func (h *HTTPHandler) MyRatings(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		Unauthorized(c, "authentication required")
		return
	}

	ratings, err := h.Repo.ListUserRatings(c.Request.Context(), user.ID)
	if err != nil {
		logRequestError(c, err, "list ratings failed")
		InternalError(c, err)
		return
	}

	items := make([]entity.MyRatingItem, 0, len(ratings))
	for i := range ratings {
		r := &ratings[i]
		item := entity.MyRatingItem{
			ID:        r.ID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			StoreID:   r.StoreID,
		}
		if r.Store != nil {
			item.StoreName = r.Store.Name
			item.StoreEmail = r.Store.Email
			item.StoreAddress = r.Store.Address
		}
		items = append(items, item)
	}
	c.JSON(http.StatusOK, entity.MyRatingsResponse{Success: true, Count: len(items), Ratings: items})
}

// DeleteRating removes one of the caller's own ratings. Ratings belonging to
// other users are reported as not found rather than forbidden.
func (h *HTTPHandler) DeleteRating(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		Unauthorized(c, "authentication required")
		return
	}
	id, err := strconv.ParseUint(c.Param("ratingId"), 10, 32)
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid rating id")
		return
	}

	ctx := c.Request.Context()
	rating, err := h.Repo.GetRatingByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRatingNotFound, "rating not found")
			return
		}
		logRequestError(c, err, "lookup rating failed")
		InternalError(c, err)
		return
	}
	if rating.UserID != user.ID {
		NotFound(c, ErrCodeRatingNotFound, "rating not found")
		return
	}

	if err := h.Repo.DeleteRating(ctx, rating.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRatingNotFound, "rating not found")
			return
		}
		logRequestError(c, err, "delete rating failed")
		InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "rating deleted"})
}
