package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storerate/internal/auth"
	"storerate/internal/config"
	"storerate/internal/entity"
	"storerate/internal/model"
	"storerate/internal/storage"
)

type HTTPHandler struct {
	Config      *config.Config
	Repo        model.Repository
	Storage     storage.Storage
	AuthManager *auth.Manager

	photoBaseURL string
}

func NewHTTPHandler(cfg *config.Config, repo model.Repository, store storage.Storage, manager *auth.Manager) *HTTPHandler {
	return &HTTPHandler{
		Config:       cfg,
		Repo:         repo,
		Storage:      store,
		AuthManager:  manager,
		photoBaseURL: strings.TrimRight(cfg.StoragePublicBaseURL, "/"),
	}
}

// RegisterRoutes wires every API route group onto the engine.
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.AuthMiddleware(), h.Logout)
		authGroup.GET("/check", h.AuthMiddleware(), h.CheckSession)
		authGroup.POST("/changePassword", h.AuthMiddleware(), h.ChangePassword)
	}

	adminGroup := api.Group("/admin", h.AuthMiddleware(), h.RequireRole(entity.UserRoleAdmin))
	{
		adminGroup.GET("/dashboard", h.AdminDashboard)
		adminGroup.GET("/users", h.AdminListUsers)
		adminGroup.POST("/users", h.AdminCreateUser)
		adminGroup.GET("/users/:id", h.AdminGetUser)
		adminGroup.GET("/stores", h.AdminListStores)
		adminGroup.POST("/stores", h.AdminCreateStore)
		adminGroup.POST("/stores/:storeId/photo", h.AdminUploadStorePhoto)
		adminGroup.GET("/ratings", h.AdminListRatings)
		adminGroup.GET("/export/users", h.AdminExportUsers)
		adminGroup.GET("/export/ratings", h.AdminExportRatings)
	}

	ownerGroup := api.Group("/store", h.AuthMiddleware(), h.RequireRole(entity.UserRoleStoreOwner))
	{
		ownerGroup.GET("/dashboard", h.OwnerDashboard)
		ownerGroup.GET("/me", h.OwnerStore)
		ownerGroup.GET("/ratings", h.OwnerRatings)
	}

	userGroup := api.Group("/user", h.AuthMiddleware(), h.RequireRole(entity.UserRoleNormalUser))
	{
		userGroup.GET("/stores", h.BrowseStores)
		userGroup.POST("/stores/:storeId/rate", h.RateStore)
		userGroup.GET("/my-ratings", h.MyRatings)
		userGroup.DELETE("/ratings/:ratingId", h.DeleteRating)
	}
}

// photoURL turns a stored photo path into a client-facing URL. Absolute
// base URLs (S3 endpoints, CDNs) are joined as-is; relative bases resolve
// against this server.
func (h *HTTPHandler) photoURL(path string) string {
	if path == "" {
		return ""
	}
	return h.photoBaseURL + "/" + strings.TrimLeft(path, "/")
}

func logRequestError(c *gin.Context, err error, msg string) {
	logrus.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
		"error":  err,
	}).Error(msg)
}
