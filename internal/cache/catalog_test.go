package cache

import (
	"context"
	"testing"
	"time"

	"github.com/davesbikeparts/partshub/internal/domain/part"
)

func TestCatalogMemoryFallback(t *testing.T) {
	// no redis configured; the in-process cache carries the catalog
	c := NewCatalog(nil, time.Minute)

	ctx := context.Background()

	if _, ok := c.Get(ctx); ok {
		t.Fatal("expected a cold cache")
	}

	parts := []part.Part{{ID: "p-1", Name: "Carbon Fork", PriceCents: 19900}}

	c.Set(ctx, parts)

	got, ok := c.Get(ctx)

	if !ok {
		t.Fatal("expected a warm cache")
	}

	if len(got) != 1 || got[0].Name != "Carbon Fork" {
		t.Errorf("got %+v", got)
	}

	c.Invalidate(ctx)

	if _, ok := c.Get(ctx); ok {
		t.Fatal("expected a cold cache after invalidation")
	}
}

func TestCacheEntriesExpire(t *testing.T) {
	c := New(20 * time.Millisecond)

	c.Set("k", "v")

	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected a hit before expiry")
	}

	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected a miss after expiry")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")

	if _, ok := c.Get("a"); ok {
		t.Error("deleted key still present")
	}

	if _, ok := c.Get("b"); !ok {
		t.Error("unrelated key evicted")
	}

	c.Clear()

	if _, ok := c.Get("b"); ok {
		t.Error("key survived clear")
	}
}
