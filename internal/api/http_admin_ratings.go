package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storerate/internal/entity"
)

// AdminListRatings returns every rating on the platform with the rated
// store and the rating user attached.
func (h *HTTPHandler) AdminListRatings(c *gin.Context) {
	ratings, err := h.Repo.ListAllRatings(c.Request.Context())
	if err != nil {
		logRequestError(c, err, "list ratings failed")
		InternalError(c, err)
		return
	}

	items := make([]entity.AdminRatingItem, 0, len(ratings))
	for i := range ratings {
		r := &ratings[i]
		item := entity.AdminRatingItem{
			ID:        r.ID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		}
		if r.Store != nil {
			item.Store = entity.StoreRef{ID: r.Store.ID, Name: r.Store.Name}
		}
		if r.User != nil {
			item.User = entity.UserRef{ID: r.User.ID, Name: r.User.Name, Email: r.User.Email}
		}
		items = append(items, item)
	}
	c.JSON(http.StatusOK, entity.AdminRatingsResponse{Success: true, Count: len(items), Ratings: items})
}
