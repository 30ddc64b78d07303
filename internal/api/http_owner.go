package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storerate/internal/entity"
)

func (h *HTTPHandler) ownedStore(c *gin.Context) (*entity.DbStore, bool) {
	user, ok := CurrentUser(c)
	if !ok {
		Unauthorized(c, "authentication required")
		return nil, false
	}
	store, err := h.Repo.GetStoreByOwnerID(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeStoreNotFound, "no store found for this owner")
			return nil, false
		}
		logRequestError(c, err, "lookup store failed")
		InternalError(c, err)
		return nil, false
	}
	return store, true
}

func ownerRatingItems(ratings []entity.DbRating) []entity.OwnerRatingItem {
	items := make([]entity.OwnerRatingItem, 0, len(ratings))
	for i := range ratings {
		r := &ratings[i]
		item := entity.OwnerRatingItem{
			RatingID:  r.ID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
			UserID:    r.UserID,
		}
		if r.User != nil {
			item.UserName = r.User.Name
			item.UserEmail = r.User.Email
		}
		items = append(items, item)
	}
	return items
}

// OwnerDashboard returns the owner's store, its aggregate and every rating
// it has received. An unrated store reports average 0.
func (h *HTTPHandler) OwnerDashboard(c *gin.Context) {
	store, ok := h.ownedStore(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	stats, err := h.Repo.StoreRatingStats(ctx, store.ID)
	if err != nil {
		logRequestError(c, err, "store stats failed")
		InternalError(c, err)
		return
	}
	ratings, err := h.Repo.ListStoreRatings(ctx, store.ID)
	if err != nil {
		logRequestError(c, err, "list ratings failed")
		InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.OwnerDashboardResponse{
		Success: true,
		Data: entity.OwnerDashboardData{
			Store: h.storeSummary(store, &stats),
			Stats: entity.OwnerStats{
				AverageRating: roundAverage(stats.Average),
				TotalRatings:  stats.Count,
			},
			Ratings: ownerRatingItems(ratings),
		},
	})
}

// OwnerStore returns the caller's store profile.
func (h *HTTPHandler) OwnerStore(c *gin.Context) {
	store, ok := h.ownedStore(c)
	if !ok {
		return
	}
	stats, err := h.Repo.StoreRatingStats(c.Request.Context(), store.ID)
	if err != nil {
		logRequestError(c, err, "store stats failed")
		InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "store": h.storeSummary(store, &stats)})
}

// OwnerRatings returns the ratings received by the caller's store.
func (h *HTTPHandler) OwnerRatings(c *gin.Context) {
	store, ok := h.ownedStore(c)
	if !ok {
		return
	}
	ratings, err := h.Repo.ListStoreRatings(c.Request.Context(), store.ID)
	if err != nil {
		logRequestError(c, err, "list ratings failed")
		InternalError(c, err)
		return
	}
	items := ownerRatingItems(ratings)
	c.JSON(http.StatusOK, entity.OwnerRatingsResponse{Success: true, Count: len(items), Ratings: items})
}
