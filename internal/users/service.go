package users

import (
	"context"
	"errors"
	"fmt"

	"notes-platform/internal/auth"
	"notes-platform/internal/directory"

	"github.com/google/uuid"
)

// DefaultRole is assigned when a new user is created without explicit roles.
const DefaultRole = "Employee"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrHasNotes        = errors.New("user has assigned notes")
)

// NoteCounter is the slice of the notes store the user admin needs: a user
// with assigned notes must not be deleted.
type NoteCounter interface {
	CountByUser(ctx context.Context, userID string) (int, error)
}

// Service provides user administration on top of the directory.
// Password hashing happens here so raw passwords never reach the store.
type Service struct {
	store directory.Store
	notes NoteCounter
}

func NewService(store directory.Store, notes NoteCounter) *Service {
	return &Service{store: store, notes: notes}
}

func (s *Service) List(ctx context.Context) ([]directory.PublicUser, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]directory.PublicUser, 0, len(all))
	for _, u := range all {
		out = append(out, u.Public())
	}
	return out, nil
}

type CreateRequest struct {
	Username string
	Password string
	Roles    []string
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (directory.PublicUser, error) {
	if req.Username == "" || req.Password == "" {
		return directory.PublicUser{}, ErrInvalidArgument
	}

	// The store enforces uniqueness too, but checking first gives the
	// caller a clean duplicate error before paying for a bcrypt hash.
	if _, err := s.store.FindByUsername(ctx, req.Username); err == nil {
		return directory.PublicUser{}, directory.ErrDuplicate
	} else if !errors.Is(err, directory.ErrNotFound) {
		return directory.PublicUser{}, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return directory.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	roles := req.Roles
	if len(roles) == 0 {
		roles = []string{DefaultRole}
	}

	created, err := s.store.Create(ctx, directory.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Roles:        roles,
		Active:       true,
	})
	if err != nil {
		return directory.PublicUser{}, err
	}
	return created.Public(), nil
}

type UpdateRequest struct {
	ID       string
	Username string
	Roles    []string
	Active   bool

	// Password is optional; empty means keep the current hash.
	Password string
}

func (s *Service) Update(ctx context.Context, req UpdateRequest) (directory.PublicUser, error) {
	if req.ID == "" || req.Username == "" || len(req.Roles) == 0 {
		return directory.PublicUser{}, ErrInvalidArgument
	}

	user, err := s.store.FindByID(ctx, req.ID)
	if err != nil {
		return directory.PublicUser{}, err
	}

	// Duplicate check must allow the user to keep (or re-case) their own name.
	if existing, err := s.store.FindByUsername(ctx, req.Username); err == nil && existing.ID != user.ID {
		return directory.PublicUser{}, directory.ErrDuplicate
	} else if err != nil && !errors.Is(err, directory.ErrNotFound) {
		return directory.PublicUser{}, err
	}

	user.Username = req.Username
	user.Roles = req.Roles
	user.Active = req.Active

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return directory.PublicUser{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	updated, err := s.store.Update(ctx, user)
	if err != nil {
		return directory.PublicUser{}, err
	}
	return updated.Public(), nil
}

func (s *Service) Delete(ctx context.Context, id string) (directory.PublicUser, error) {
	if id == "" {
		return directory.PublicUser{}, ErrInvalidArgument
	}

	count, err := s.notes.CountByUser(ctx, id)
	if err != nil {
		return directory.PublicUser{}, err
	}
	if count > 0 {
		return directory.PublicUser{}, ErrHasNotes
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return directory.PublicUser{}, err
	}
	return deleted.Public(), nil
}
