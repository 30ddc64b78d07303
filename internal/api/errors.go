package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the "code" field of error responses.
const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeSessionExpired     = "SESSION_EXPIRED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeEmailExists        = "EMAIL_EXISTS"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeStoreNotFound      = "STORE_NOT_FOUND"
	ErrCodeRatingNotFound     = "RATING_NOT_FOUND"
	ErrCodeInvalidRating      = "INVALID_RATING"
	ErrCodeWrongPassword      = "WRONG_PASSWORD"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// APIError is the uniform error envelope for every non-2xx response.
type APIError struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, APIError{Success: false, Code: code, Message: message})
}

func respondErrorDetails(c *gin.Context, status int, code, message, details string) {
	c.AbortWithStatusJSON(status, APIError{Success: false, Code: code, Message: message, Details: details})
}

func BadRequest(c *gin.Context, code, message string) {
	respondError(c, http.StatusBadRequest, code, message)
}

func InvalidPayload(c *gin.Context, err error) {
	respondErrorDetails(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload", err.Error())
}

func Unauthorized(c *gin.Context, message string) {
	respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	respondError(c, http.StatusForbidden, ErrCodeForbidden, message)
}

func MissingField(c *gin.Context, field string) {
	respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, field+" is required")
}

func NotFound(c *gin.Context, code, message string) {
	respondError(c, http.StatusNotFound, code, message)
}

// InternalError answers a generic 500. The cause is logged at the call site,
// never sent to the client.
func InternalError(c *gin.Context, _ error) {
	respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}
