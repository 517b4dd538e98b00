package users

import (
	"errors"
	"fmt"
	"net/http"

	"notes-platform/internal/directory"
	"notes-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers exposes user administration. Routes are expected to sit behind
// the auth middleware plus a Manager/Admin role gate.
type Handlers struct {
	Service *Service
}

// List handles GET /users.
func (h Handlers) List(c *gin.Context) {
	all, err := h.Service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(all) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "no users found"})
		return
	}
	c.JSON(http.StatusOK, all)
}

type createUserRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// Create handles POST /users.
func (h Handlers) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "all fields are required"})
		return
	}

	user, err := h.Service.Create(c.Request.Context(), CreateRequest{
		Username: req.Username,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("new user %s created", user.Username)})
}

type updateUserRequest struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Active   *bool    `json:"active"`
	Password string   `json:"password"`
}

// Update handles PATCH /users.
func (h Handlers) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "some properties are missing"})
		return
	}

	user, err := h.Service.Update(c.Request.Context(), UpdateRequest{
		ID:       req.ID,
		Username: req.Username,
		Roles:    req.Roles,
		Active:   *req.Active,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s updated", user.Username)})
}

type deleteUserRequest struct {
	ID string `json:"id"`
}

// Delete handles DELETE /users.
func (h Handlers) Delete(c *gin.Context) {
	var req deleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "user id required"})
		return
	}

	user, err := h.Service.Delete(c.Request.Context(), req.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("user %s with id %s deleted", user.Username, user.ID)})
}

func (h Handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "some properties are missing"})
	case errors.Is(err, ErrHasNotes):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "user has assigned notes"})
	case errors.Is(err, directory.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "user not found"})
	case errors.Is(err, directory.ErrDuplicate):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"message": "username already exists"})
	default:
		logger.FromGin(c).Error("users request failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
