package session

import (
	"context"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	if token, err := store.Token(ctx, "sid"); err != nil || token != "" {
		t.Fatalf("expected empty token for fresh session, got %q err %v", token, err)
	}

	if err := store.SaveToken(ctx, "sid", "tok-1"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if token, _ := store.Token(ctx, "sid"); token != "tok-1" {
		t.Fatalf("expected tok-1, got %q", token)
	}

	if err := store.SaveToken(ctx, "sid", "tok-2"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if token, _ := store.Token(ctx, "sid"); token != "tok-2" {
		t.Fatalf("expected replacement token, got %q", token)
	}

	if err := store.DeleteToken(ctx, "sid"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if token, _ := store.Token(ctx, "sid"); token != "" {
		t.Fatalf("expected token cleared, got %q", token)
	}

	// Deleting twice must stay silent.
	if err := store.DeleteToken(ctx, "sid"); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
}

func TestMemoryStoreIsolatesSessions(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.SaveToken(ctx, "a", "tok-a")
	_ = store.SaveToken(ctx, "b", "tok-b")
	_ = store.DeleteToken(ctx, "a")

	if token, _ := store.Token(ctx, "b"); token != "tok-b" {
		t.Fatalf("session b token lost: %q", token)
	}
}

func TestNewSessionIDIsUnique(t *testing.T) {
	t.Parallel()

	if NewSessionID() == NewSessionID() {
		t.Fatal("expected distinct session ids")
	}
}

func TestNewRedisStoreRequiresClient(t *testing.T) {
	t.Parallel()

	if _, err := NewRedisStore(nil, 0); err == nil {
		t.Fatal("expected nil client to error")
	}
}
