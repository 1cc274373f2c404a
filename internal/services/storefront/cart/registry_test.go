package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/storefront/internal/services/storefront/catalog"
)

func TestNewRegistryRequiresStore(t *testing.T) {
	t.Parallel()

	if _, err := NewRegistry(nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestRegistryReturnsSameSessionPerVisitor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemoryStore()
	registry, err := NewRegistry(store)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	first, err := registry.Session(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	second, err := registry.Session(ctx, " visitor-1 ")
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if first != second || first.Cart != second.Cart {
		t.Fatal("expected one session per visitor")
	}
	other, err := registry.Session(ctx, "visitor-2")
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if other == first {
		t.Fatal("visitors must not share sessions")
	}
	if registry.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", registry.Len())
	}
	if got := store.loadCount(); got != 2 {
		t.Fatalf("loads = %d, want 2", got)
	}
}

func TestRegistryRejectsBlankVisitor(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(newMemoryStore())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	if _, err := registry.Session(context.Background(), "  "); err == nil {
		t.Fatal("expected error")
	}
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

const twoLineCart = `[{"id":1,"title":"Item 1","price":"150","image":"img/item.webp","quantity":1},` +
	`{"id":2,"title":"Item 2","price":"300","image":"img/item.webp","quantity":1}]`

func TestRegistryDropsIdleSessionsAndReloads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemoryStore()
	clock := newTestClock()

	registry, err := NewRegistry(store, WithSessionTTL(time.Minute), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	session, err := registry.Session(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if _, _, err := session.Cart.Add(ctx, item(1, "150")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	clock.advance(30 * time.Second)
	if registry.Sweep() != 0 {
		t.Fatal("session dropped before ttl")
	}
	clock.advance(2 * time.Minute)
	if dropped := registry.Sweep(); dropped != 1 {
		t.Fatalf("Sweep() = %d, want 1", dropped)
	}

	reloaded, err := registry.Session(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if reloaded == session {
		t.Fatal("expected a fresh session after expiry")
	}
	if reloaded.Cart.Snapshot().ItemCount != 1 {
		t.Fatalf("reloaded cart = %+v, want persisted line", reloaded.Cart.Snapshot())
	}
}

func TestSessionRemembersCatalog(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(newMemoryStore())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	session, err := registry.Session(context.Background(), "visitor-1")
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if _, ok := session.Lookup(1); ok {
		t.Fatal("lookup before remember should miss")
	}

	items := []catalog.DisplayItem{item(1, "150"), item(2, "300")}
	session.Remember(items)
	items[0].Title = "mutated"

	got, ok := session.Lookup(1)
	if !ok {
		t.Fatal("expected remembered item")
	}
	if got.Title != "Item 1" {
		t.Fatalf("remembered title = %q, want copy of original", got.Title)
	}
	if _, ok := session.Lookup(3); ok {
		t.Fatal("lookup of unknown id should miss")
	}
}

func TestRegistryDoesNotCacheFailedLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemoryStore()
	store.put("visitor-1", twoLineCart)
	store.failLoads(errDiskFull)
	registry, err := NewRegistry(store)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	if _, err := registry.Session(ctx, "visitor-1"); !errors.Is(err, errDiskFull) {
		t.Fatalf("Session() error = %v, want disk full", err)
	}
	if registry.Len() != 0 {
		t.Fatalf("Len() = %d, want failed session dropped", registry.Len())
	}

	store.failLoads(nil)
	session, err := registry.Session(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if _, _, err := session.Cart.Add(ctx, item(9, "150")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got := len(session.Cart.Lines()); got != 3 {
		t.Fatalf("lines = %d, want 3", got)
	}
	reloaded := newManager(t, ctx, "visitor-1", store)
	if got := len(reloaded.Lines()); got != 3 {
		t.Fatalf("persisted lines = %d, want 3", got)
	}
}

func TestRegistryLoadsSavedCartWithCancelledContext(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.put("visitor-1", twoLineCart)
	registry, err := NewRegistry(store)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	session, err := registry.Session(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if _, _, err := session.Cart.Add(context.Background(), item(9, "150")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	reloaded := newManager(t, context.Background(), "visitor-1", store)
	if got := len(reloaded.Lines()); got != 3 {
		t.Fatalf("persisted lines = %d, want 3", got)
	}
}

func TestRegistryKeepsHeldSessionPastTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemoryStore()
	clock := newTestClock()
	registry, err := NewRegistry(store, WithSessionTTL(time.Minute), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	old, releaseOld, err := registry.Acquire(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	clock.advance(2 * time.Minute)
	if dropped := registry.Sweep(); dropped != 0 {
		t.Fatalf("Sweep() = %d, want held session kept", dropped)
	}

	fresh, releaseFresh, err := registry.Acquire(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if fresh != old {
		t.Fatal("expected the held session to be reused")
	}
	if _, _, err := old.Cart.Add(ctx, item(1, "150")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, _, err := fresh.Cart.Add(ctx, item(2, "300")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	releaseOld()
	releaseOld()
	releaseFresh()

	reloaded := newManager(t, ctx, "visitor-1", store)
	if got := len(reloaded.Lines()); got != 2 {
		t.Fatalf("persisted lines = %d, want 2", got)
	}

	clock.advance(2 * time.Minute)
	if dropped := registry.Sweep(); dropped != 1 {
		t.Fatalf("Sweep() = %d, want released session dropped", dropped)
	}
}

func TestRegistryConcurrentAcquireLoadsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemoryStore()
	store.put("visitor-1", twoLineCart)
	registry, err := NewRegistry(store)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	sessions := make([]*Session, 8)
	var wg sync.WaitGroup
	for i := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, release, err := registry.Acquire(ctx, "visitor-1")
			if err != nil {
				t.Errorf("Acquire() error = %v", err)
				return
			}
			defer release()
			sessions[i] = session
		}()
	}
	wg.Wait()

	for _, session := range sessions[1:] {
		if session != sessions[0] {
			t.Fatal("expected one session for concurrent callers")
		}
	}
	if got := store.loadCount(); got != 1 {
		t.Fatalf("loads = %d, want 1", got)
	}
}
