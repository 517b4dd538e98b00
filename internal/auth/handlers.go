package auth

import (
	"errors"
	"net/http"

	"notes-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers maps the authentication service onto the wire contract.
// Keep these thin: parse input, call the service, translate errors.
// Every branch that writes a response returns immediately.
type Handlers struct {
	Service *Service
	Cookies *CookieManager
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /auth.
func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "all fields are required"})
		return
	}

	result, err := h.Service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	// Refresh token travels only in the protected cookie; access token
	// only in the body.
	h.Cookies.Attach(c, result.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"accessToken": result.AccessToken})
}

// Refresh handles GET /auth/refresh. Public by design: it exists because
// the access token has expired.
func (h Handlers) Refresh(c *gin.Context) {
	refreshToken, ok := h.Cookies.Read(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	access, err := h.Service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": access})
}

// Logout handles POST /auth/logout. Idempotent: with no cookie present
// there is nothing to clear and the call still succeeds. It never
// consults the directory and never fails.
func (h Handlers) Logout(c *gin.Context) {
	if _, ok := h.Cookies.Read(c); !ok {
		c.Status(http.StatusNoContent)
		return
	}

	h.Cookies.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "cookie cleared"})
}

func (h Handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "all fields are required"})
	case errors.Is(err, ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
	case errors.Is(err, ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden"})
	default:
		logger.FromGin(c).Error("auth request failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
