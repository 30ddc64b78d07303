package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storerate/internal/auth"
	"storerate/internal/entity"
)

func userSummary(u *entity.DbUser) entity.UserSummary {
	return entity.UserSummary{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (h *HTTPHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.Config.SessionCookieName, token, maxAge, "/", "", h.Config.SessionCookieSecure, true)
}

func (h *HTTPHandler) issueSession(c *gin.Context, user *entity.DbUser) error {
	token, _, err := h.AuthManager.GenerateToken(user)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, token, int(h.AuthManager.Expiry().Seconds()))
	return nil
}

// Register creates a normal-user account and starts a session.
func (h *HTTPHandler) Register(c *gin.Context) {
	var req entity.AuthRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
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
		Role:         entity.UserRoleNormalUser,
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

	if err := h.issueSession(c, user); err != nil {
		logRequestError(c, err, "issue session failed")
		InternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity.AuthResponse{Success: true, Message: "registration successful", User: userSummary(user)})
}

// Login verifies credentials and starts a session.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	user, err := h.Repo.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid email or password")
			return
		}
		logRequestError(c, err, "lookup user failed")
		InternalError(c, err)
		return
	}
	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		respondError(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid email or password")
		return
	}

	if err := h.issueSession(c, user); err != nil {
		logRequestError(c, err, "issue session failed")
		InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.AuthResponse{Success: true, Message: "login successful", User: userSummary(user)})
}

// Logout clears the session cookie.
func (h *HTTPHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}

// CheckSession reports the authenticated user behind the current session.
func (h *HTTPHandler) CheckSession(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		Unauthorized(c, "authentication required")
		return
	}
	dbUser, err := h.Repo.GetUserByID(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusUnauthorized, ErrCodeSessionExpired, "account no longer exists")
			return
		}
		logRequestError(c, err, "lookup user failed")
		InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.AuthResponse{Success: true, User: userSummary(dbUser)})
}

// ChangePassword updates the caller's password after verifying the current one.
func (h *HTTPHandler) ChangePassword(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	dbUser, err := h.Repo.GetUserByID(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusUnauthorized, ErrCodeSessionExpired, "account no longer exists")
			return
		}
		logRequestError(c, err, "lookup user failed")
		InternalError(c, err)
		return
	}
	if err := auth.VerifyPassword(dbUser.PasswordHash, req.CurrentPassword); err != nil {
		respondError(c, http.StatusForbidden, ErrCodeWrongPassword, "current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		logRequestError(c, err, "hash password failed")
		InternalError(c, err)
		return
	}
	if err := h.Repo.UpdateUserPassword(c.Request.Context(), dbUser.ID, hash); err != nil {
		logRequestError(c, err, "update password failed")
		InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "password updated"})
}
