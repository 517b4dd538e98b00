package notes

import (
	"context"
	"errors"
	"fmt"

	"notes-platform/internal/directory"

	"github.com/google/uuid"
)

// Service provides note operations for the protected API surface.
// It resolves owner usernames through the directory on reads; callers
// never see raw user records.
type Service struct {
	store Store
	users directory.Store
}

func NewService(store Store, users directory.Store) *Service {
	return &Service{store: store, users: users}
}

// List returns all notes joined with their owner's username.
func (s *Service) List(ctx context.Context) ([]NoteWithOwner, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]NoteWithOwner, 0, len(all))
	for _, n := range all {
		owner, err := s.users.FindByID(ctx, n.UserID)
		if err != nil {
			if errors.Is(err, directory.ErrNotFound) {
				// Orphaned note: surface it without an owner rather than
				// hiding it from the list.
				out = append(out, NoteWithOwner{Note: n})
				continue
			}
			return nil, err
		}
		out = append(out, NoteWithOwner{Note: n, Username: owner.Username})
	}
	return out, nil
}

type CreateRequest struct {
	UserID string
	Title  string
	Body   string
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Note, error) {
	if req.UserID == "" || req.Title == "" || req.Body == "" {
		return Note{}, ErrInvalidArgument
	}

	if _, err := s.store.FindByTitle(ctx, req.Title); err == nil {
		return Note{}, ErrDuplicateTitle
	} else if !errors.Is(err, ErrNotFound) {
		return Note{}, err
	}

	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return Note{}, fmt.Errorf("%w: unknown user", ErrInvalidArgument)
		}
		return Note{}, err
	}

	return s.store.Create(ctx, Note{
		ID:     uuid.NewString(),
		UserID: req.UserID,
		Title:  req.Title,
		Body:   req.Body,
	})
}

type UpdateRequest struct {
	ID        string
	UserID    string
	Title     string
	Body      string
	Completed bool
}

func (s *Service) Update(ctx context.Context, req UpdateRequest) (Note, error) {
	if req.ID == "" || req.UserID == "" || req.Title == "" || req.Body == "" {
		return Note{}, ErrInvalidArgument
	}

	existing, err := s.store.FindByID(ctx, req.ID)
	if err != nil {
		return Note{}, err
	}

	// Duplicate-title check must not trip over the note being updated.
	if dup, err := s.store.FindByTitle(ctx, req.Title); err == nil && dup.ID != existing.ID {
		return Note{}, ErrDuplicateTitle
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return Note{}, err
	}

	existing.UserID = req.UserID
	existing.Title = req.Title
	existing.Body = req.Body
	existing.Completed = req.Completed

	return s.store.Update(ctx, existing)
}

func (s *Service) Delete(ctx context.Context, id string) (Note, error) {
	if id == "" {
		return Note{}, ErrInvalidArgument
	}
	return s.store.Delete(ctx, id)
}
