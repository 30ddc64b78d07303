package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storerate/internal/auth"
	"storerate/internal/entity"
)

// AdminDashboard returns platform-wide counts.
func (h *HTTPHandler) AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.Repo.CountUsers(ctx)
	if err != nil {
		logRequestError(c, err, "count users failed")
		InternalError(c, err)
		return
	}
	stores, err := h.Repo.CountStores(ctx)
	if err != nil {
		logRequestError(c, err, "count stores failed")
		InternalError(c, err)
		return
	}
	ratings, err := h.Repo.CountRatings(ctx)
	if err != nil {
		logRequestError(c, err, "count ratings failed")
		InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"totalUsers":   users,
			"totalStores":  stores,
			"totalRatings": ratings,
		},
	})
}

// AdminListUsers lists users with filtering, sorting and pagination.
func (h *HTTPHandler) AdminListUsers(c *gin.Context) {
	var params entity.UserQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		InvalidPayload(c, err)
		return
	}

	users, meta, err := h.Repo.ListUsers(c.Request.Context(), &params)
	if err != nil {
		logRequestError(c, err, "list users failed")
		InternalError(c, err)
		return
	}

	summaries := make([]entity.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, userSummary(&users[i]))
	}
	c.JSON(http.StatusOK, entity.UserListResponse{
		Success: true,
		Total:   meta.Total,
		Count:   len(summaries),
		Page:    meta.Page,
		PerPage: meta.PerPage,
		Users:   summaries,
	})
}

// AdminGetUser returns one user. For store owners the owned store and its
// rating aggregate are attached.
func (h *HTTPHandler) AdminGetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid user id")
		return
	}

	ctx := c.Request.Context()
	user, err := h.Repo.GetUserByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logRequestError(c, err, "lookup user failed")
		InternalError(c, err)
		return
	}

	detail := entity.UserDetail{UserSummary: userSummary(user)}
	if user.Role == entity.UserRoleStoreOwner {
		store, err := h.Repo.GetStoreByOwnerID(ctx, user.ID)
		switch {
		case err == nil:
			stats, err := h.Repo.StoreRatingStats(ctx, store.ID)
			if err != nil {
				logRequestError(c, err, "store stats failed")
				InternalError(c, err)
				return
			}
			detail.Store = &entity.OwnedStore{
				StoreSummary: h.storeSummary(store, nil),
				Stats:        stats,
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Owner without a store yet; detail.Store stays nil.
		default:
			logRequestError(c, err, "lookup store failed")
			InternalError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": detail})
}

// AdminCreateUser creates an account with an explicit role.
func (h *HTTPHandler) AdminCreateUser(c *gin.Context) {
	var req entity.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}
	switch req.Role {
	case entity.UserRoleAdmin, entity.UserRoleStoreOwner, entity.UserRoleNormalUser:
	default:
		BadRequest(c, ErrCodeInvalidRequest, "role must be admin, store_owner or normal_user")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logRequestError(c, err, "hash password failed")
		InternalError(c, err)
		return
	}

	user := &entity.DbUser{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Address:      req.Address,
		Role:         req.Role,
	}
	if err := h.Repo.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeEmailExists, "an account with this email already exists")
			return
		}
		logRequestError(c, err, "create user failed")
		InternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "user created", "user": userSummary(user)})
}
