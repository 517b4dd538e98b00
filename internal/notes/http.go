package notes

import (
	"errors"
	"fmt"
	"net/http"

	"notes-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers exposes notes CRUD behind the auth middleware.
// Keep these thin: parse/validate input, call the service, return JSON.
type Handlers struct {
	Service *Service
}

// List handles GET /notes.
func (h Handlers) List(c *gin.Context) {
	all, err := h.Service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(all) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "no notes found"})
		return
	}
	c.JSON(http.StatusOK, all)
}

type createNoteRequest struct {
	UserID string `json:"user"`
	Title  string `json:"title"`
	Body   string `json:"text"`
}

// Create handles POST /notes.
func (h Handlers) Create(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "all fields are required"})
		return
	}

	note, err := h.Service.Create(c.Request.Context(), CreateRequest{
		UserID: req.UserID,
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("new note %q created", note.Title)})
}

type updateNoteRequest struct {
	ID        string `json:"id"`
	UserID    string `json:"user"`
	Title     string `json:"title"`
	Body      string `json:"text"`
	Completed *bool  `json:"completed"`
}

// Update handles PATCH /notes.
func (h Handlers) Update(c *gin.Context) {
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Completed == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "all fields are required"})
		return
	}

	note, err := h.Service.Update(c.Request.Context(), UpdateRequest{
		ID:        req.ID,
		UserID:    req.UserID,
		Title:     req.Title,
		Body:      req.Body,
		Completed: *req.Completed,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%q updated", note.Title)})
}

type deleteNoteRequest struct {
	ID string `json:"id"`
}

// Delete handles DELETE /notes.
func (h Handlers) Delete(c *gin.Context) {
	var req deleteNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "note id required"})
		return
	}

	note, err := h.Service.Delete(c.Request.Context(), req.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("note %q with id %s deleted", note.Title, note.ID)})
}

func (h Handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "all fields are required"})
	case errors.Is(err, ErrNotFound):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "note not found"})
	case errors.Is(err, ErrDuplicateTitle):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"message": "note title already exists"})
	default:
		logger.FromGin(c).Error("notes request failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
