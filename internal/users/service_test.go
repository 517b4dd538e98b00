package users

import (
	"context"
	"errors"
	"testing"

	"notes-platform/internal/auth"
	"notes-platform/internal/directory"
	"notes-platform/internal/notes"
)

func testUsersService(t *testing.T) (*Service, *directory.MemoryStore, *notes.MemoryStore) {
	t.Helper()
	store := directory.NewMemoryStore()
	noteStore := notes.NewMemoryStore()
	return NewService(store, noteStore), store, noteStore
}

func TestCreate_HashesPasswordAndDefaultsRole(t *testing.T) {
	svc, store, _ := testUsersService(t)
	ctx := context.Background()

	pub, err := svc.Create(ctx, CreateRequest{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(pub.Roles) != 1 || pub.Roles[0] != DefaultRole {
		t.Fatalf("expected default role, got %v", pub.Roles)
	}

	stored, err := store.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.PasswordHash == "secret" || stored.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
	if !auth.VerifyPassword("secret", stored.PasswordHash) {
		t.Fatalf("stored hash does not verify")
	}
	if !stored.Active {
		t.Fatalf("new users start active")
	}
}

func TestCreate_RequiresUsernameAndPassword(t *testing.T) {
	svc, _, _ := testUsersService(t)

	for _, req := range []CreateRequest{
		{Username: "", Password: "x"},
		{Username: "alice", Password: ""},
	} {
		if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%+v: expected ErrInvalidArgument, got %v", req, err)
		}
	}
}

func TestCreate_DuplicateUsernameIsCaseInsensitive(t *testing.T) {
	svc, _, _ := testUsersService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateRequest{Username: "alice", Password: "x"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateRequest{Username: "ALICE", Password: "y"}); !errors.Is(err, directory.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUpdate_KeepsHashWhenPasswordEmpty(t *testing.T) {
	svc, store, _ := testUsersService(t)
	ctx := context.Background()

	pub, err := svc.Create(ctx, CreateRequest{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before, _ := store.FindByID(ctx, pub.ID)

	if _, err := svc.Update(ctx, UpdateRequest{ID: pub.ID, Username: "alice2", Roles: []string{"Manager"}, Active: true}); err != nil {
		t.Fatalf("update: %v", err)
	}

	after, _ := store.FindByID(ctx, pub.ID)
	if after.PasswordHash != before.PasswordHash {
		t.Fatalf("hash must be untouched when no new password is given")
	}
	if after.Username != "alice2" || after.Roles[0] != "Manager" {
		t.Fatalf("unexpected user after update: %+v", after)
	}
}

func TestUpdate_RehashesNewPassword(t *testing.T) {
	svc, store, _ := testUsersService(t)
	ctx := context.Background()

	pub, err := svc.Create(ctx, CreateRequest{Username: "alice", Password: "old"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, UpdateRequest{ID: pub.ID, Username: "alice", Roles: []string{DefaultRole}, Active: true, Password: "new"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	after, _ := store.FindByID(ctx, pub.ID)
	if !auth.VerifyPassword("new", after.PasswordHash) {
		t.Fatalf("expected new password to verify")
	}
	if auth.VerifyPassword("old", after.PasswordHash) {
		t.Fatalf("old password must no longer verify")
	}
}

func TestUpdate_RejectsUsernameOfAnotherUser(t *testing.T) {
	svc, _, _ := testUsersService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateRequest{Username: "alice", Password: "x"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	bob, err := svc.Create(ctx, CreateRequest{Username: "bob", Password: "x"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(ctx, UpdateRequest{ID: bob.ID, Username: "Alice", Roles: []string{DefaultRole}, Active: true})
	if !errors.Is(err, directory.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestDelete_BlockedWhileNotesRemain(t *testing.T) {
	svc, store, noteStore := testUsersService(t)
	ctx := context.Background()

	pub, err := svc.Create(ctx, CreateRequest{Username: "alice", Password: "x"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := noteStore.Create(ctx, notes.Note{ID: "n1", UserID: pub.ID, Title: "t", Body: "b"}); err != nil {
		t.Fatalf("seed note: %v", err)
	}

	if _, err := svc.Delete(ctx, pub.ID); !errors.Is(err, ErrHasNotes) {
		t.Fatalf("expected ErrHasNotes, got %v", err)
	}

	if _, err := noteStore.Delete(ctx, "n1"); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	if _, err := svc.Delete(ctx, pub.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := store.FindByID(ctx, pub.ID); !errors.Is(err, directory.ErrNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
}
