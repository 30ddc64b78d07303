package api

import (
	"errors"
	"io"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storerate/internal/auth"
	"storerate/internal/entity"
)

const maxPhotoBytes = 5 << 20

var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// roundAverage keeps rating averages at 2 decimals on the wire.
func roundAverage(avg float64) float64 {
	return math.Round(avg*100) / 100
}

// storeSummary builds the client view of a store. stats is nil when the
// store has no ratings; the average then serializes as null.
func (h *HTTPHandler) storeSummary(store *entity.DbStore, stats *entity.RatingStats) entity.StoreSummary {
	summary := entity.StoreSummary{
		ID:          store.ID,
		Name:        store.Name,
		Email:       store.Email,
		Description: store.Description,
		Address:     store.Address,
		PhotoURL:    h.photoURL(store.PhotoPath),
		CreatedAt:   store.CreatedAt,
		UpdatedAt:   store.UpdatedAt,
	}
	if store.Owner != nil {
		summary.Owner = &entity.OwnerSummary{ID: store.Owner.ID, Name: store.Owner.Name, Email: store.Owner.Email}
	}
	if stats != nil && stats.Count > 0 {
		avg := roundAverage(stats.Average)
		summary.AverageRating = &avg
		summary.TotalRatings = stats.Count
	}
	return summary
}

// AdminListStores lists stores with filters, owner info and rating aggregates.
func (h *HTTPHandler) AdminListStores(c *gin.Context) {
	var params entity.StoreQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx := c.Request.Context()
	stores, meta, err := h.Repo.ListStores(ctx, &params)
	if err != nil {
		logRequestError(c, err, "list stores failed")
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

	summaries := make([]entity.StoreSummary, 0, len(stores))
	for i := range stores {
		var stats *entity.RatingStats
		if s, ok := statsByStore[stores[i].ID]; ok {
			stats = &s
		}
		summaries = append(summaries, h.storeSummary(&stores[i], stats))
	}
	c.JSON(http.StatusOK, entity.StoreListResponse{
		Success: true,
		Total:   meta.Total,
		Count:   len(summaries),
		Page:    meta.Page,
		PerPage: meta.PerPage,
		Stores:  summaries,
	})
}

// AdminCreateStore provisions a store together with its owner account in a
// single transaction.
func (h *HTTPHandler) AdminCreateStore(c *gin.Context) {
	var req entity.StoreCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	hash, err := auth.HashPassword(req.TemporaryPassword)
	if err != nil {
		logRequestError(c, err, "hash password failed")
		InternalError(c, err)
		return
	}

	owner := &entity.DbUser{
		Name:         strings.TrimSpace(req.OwnerName),
		Email:        strings.ToLower(strings.TrimSpace(req.OwnerEmail)),
		PasswordHash: hash,
	}
	store := &entity.DbStore{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Description: req.Description,
		Address:     req.Address,
	}
	if err := h.Repo.CreateStoreWithOwner(c.Request.Context(), owner, store); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeEmailExists, "an account with the owner email already exists")
			return
		}
		logRequestError(c, err, "create store failed")
		InternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity.StoreCreateResponse{
		Success: true,
		Message: "store and owner account created",
		Store:   h.storeSummary(store, nil),
		Owner:   entity.OwnerSummary{ID: owner.ID, Name: owner.Name, Email: owner.Email},
	})
}

// AdminUploadStorePhoto accepts a multipart "photo" file and stores it via
// the configured storage backend.
func (h *HTTPHandler) AdminUploadStorePhoto(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("storeId"), 10, 32)
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid store id")
		return
	}

	ctx := c.Request.Context()
	store, err := h.Repo.GetStoreByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeStoreNotFound, "store not found")
			return
		}
		logRequestError(c, err, "lookup store failed")
		InternalError(c, err)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		MissingField(c, "photo")
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		BadRequest(c, ErrCodeInvalidRequest, "photo exceeds the 5MB limit")
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedPhotoExts[ext] {
		BadRequest(c, ErrCodeInvalidRequest, "photo must be a jpg, jpeg, png, gif or webp file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logRequestError(c, err, "open upload failed")
		InternalError(c, err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		logRequestError(c, err, "read upload failed")
		InternalError(c, err)
		return
	}
	if len(data) > maxPhotoBytes {
		BadRequest(c, ErrCodeInvalidRequest, "photo exceeds the 5MB limit")
		return
	}

	path, err := h.Storage.SavePhoto(ctx, data, store.ID, ext)
	if err != nil {
		logRequestError(c, err, "save photo failed")
		InternalError(c, err)
		return
	}
	if err := h.Repo.SetStorePhoto(ctx, store.ID, path); err != nil {
		logRequestError(c, err, "record photo failed")
		InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "photo_url": h.photoURL(path)})
}
