package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	opts := ArtifactKeyOpts{Width: 1200, Height: 750, Ground: "olive", Format: "jpg"}
	hashes := []string{"aaa", "bbb"}

	// determinism
	k1 := k.ArtifactKey("parking-lot-problem", opts, hashes)
	k2 := k.ArtifactKey("parking-lot-problem", opts, hashes)
	if k1 != k2 {
		t.Error("identical inputs should produce identical keys")
	}

	// any differing component changes the key
	if k1 == k.ArtifactKey("other-slug", opts, hashes) {
		t.Error("different slugs should produce different keys")
	}
	other := opts
	other.Grain = true
	if k1 == k.ArtifactKey("parking-lot-problem", other, hashes) {
		t.Error("different options should produce different keys")
	}
	if k1 == k.ArtifactKey("parking-lot-problem", opts, []string{"aaa"}) {
		t.Error("different input hashes should produce different keys")
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// miss before set
	_, hit, err := c.Get(ctx, "artifact:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expected miss before Set")
	}

	// set then hit
	payload := []byte{0xff, 0xd8, 0xff, 0xe0} // arbitrary binary round-trip
	if err := c.Set(ctx, "artifact:abc", payload, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "artifact:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != string(payload) {
		t.Error("payload mismatch after round-trip")
	}

	// expired entries read as a miss
	if err := c.Set(ctx, "artifact:ttl", payload, -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "artifact:ttl"); hit {
		t.Error("expired entry should be a miss")
	}

	// delete
	if err := c.Delete(ctx, "artifact:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "artifact:abc"); hit {
		t.Error("expected miss after Delete")
	}
	if err := c.Delete(ctx, "artifact:missing"); err != nil {
		t.Errorf("deleting a missing key should not error: %v", err)
	}
}
