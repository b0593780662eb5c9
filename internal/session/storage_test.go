package session

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"leavectl/internal/auth"
)

func TestFileStorageRoundTrip(t *testing.T) {
	store := NewStorage(t.TempDir(), false)

	user := &auth.User{
		ID:         "u1",
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "jane.doe@example.com",
		Role:       auth.RoleManager,
		Department: "Engineering",
	}
	store.WriteUser(user)
	store.WriteToken("tok-123")

	got, ok := store.ReadUser()
	if !ok {
		t.Fatal("expected stored user")
	}
	if *got != *user {
		t.Fatalf("user mismatch: %+v vs %+v", got, user)
	}

	tok, ok := store.ReadToken()
	if !ok || tok != "tok-123" {
		t.Fatalf("expected stored token, got %q ok=%v", tok, ok)
	}

	store.ClearToken()
	store.ClearUser()
	if _, ok := store.ReadToken(); ok {
		t.Fatal("expected token cleared")
	}
	if _, ok := store.ReadUser(); ok {
		t.Fatal("expected user cleared")
	}

	// clearing again is a no-op
	store.ClearToken()
	store.ClearUser()
}

func TestFileStorageCorruptUser(t *testing.T) {
	dir := t.TempDir()
	store := NewStorage(dir, false)

	if err := os.WriteFile(filepath.Join(dir, userFile), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, ok := store.ReadUser(); ok {
		t.Fatal("expected corrupt user to read as absent")
	}
}

func TestSealedStorage(t *testing.T) {
	dir := t.TempDir()
	store := NewStorage(dir, true)

	store.WriteToken("secret-token")

	blob, err := os.ReadFile(filepath.Join(dir, tokenFile))
	if err != nil {
		t.Fatalf("read sealed file: %v", err)
	}
	if bytes.Contains(blob, []byte("secret-token")) {
		t.Fatal("token stored in plaintext despite sealing")
	}

	tok, ok := store.ReadToken()
	if !ok || tok != "secret-token" {
		t.Fatalf("expected sealed round-trip, got %q ok=%v", tok, ok)
	}

	// a fresh store over the same dir reuses the key file
	reopened := NewStorage(dir, true)
	tok, ok = reopened.ReadToken()
	if !ok || tok != "secret-token" {
		t.Fatalf("expected reopen to read sealed token, got %q ok=%v", tok, ok)
	}

	// tampering makes the slot read as absent
	blob[len(blob)-1] ^= 0xff
	if err := os.WriteFile(filepath.Join(dir, tokenFile), blob, 0o600); err != nil {
		t.Fatalf("write tampered file: %v", err)
	}
	if _, ok := store.ReadToken(); ok {
		t.Fatal("expected tampered ciphertext to read as absent")
	}
}

func TestNopStorage(t *testing.T) {
	store := NewStorage("", false)

	store.WriteToken("tok")
	store.WriteUser(&auth.User{ID: "u1"})
	if _, ok := store.ReadToken(); ok {
		t.Fatal("nop storage must not retain a token")
	}
	if _, ok := store.ReadUser(); ok {
		t.Fatal("nop storage must not retain a user")
	}
	store.ClearToken()
	store.ClearUser()
}
