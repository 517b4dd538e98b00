package notes

import (
	"context"
	"errors"
	"time"
)

// Note is a work item assigned to a directory user.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	Body      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteWithOwner joins a note with its owner's username for list views.
type NoteWithOwner struct {
	Note
	Username string `json:"username"`
}

var (
	ErrNotFound        = errors.New("note not found")
	ErrDuplicateTitle  = errors.New("note title already exists")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Store is the notes persistence contract. Title equality is
// case-insensitive, matching the unique index on LOWER(title).
type Store interface {
	List(ctx context.Context) ([]Note, error)
	FindByID(ctx context.Context, id string) (Note, error)
	FindByTitle(ctx context.Context, title string) (Note, error)
	Create(ctx context.Context, n Note) (Note, error)
	Update(ctx context.Context, n Note) (Note, error)
	Delete(ctx context.Context, id string) (Note, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}
