package cart

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/storefront/internal/services/storefront/catalog"
	"github.com/louisbranch/storefront/internal/services/storefront/storage"
	"go.uber.org/zap"
)

// DefaultSessionTTL is how long an idle visitor session stays in memory.
const DefaultSessionTTL = 30 * time.Minute

// Session is one visitor's in-memory state: the cart owner plus the catalog
// last shown to them, so add requests can be resolved by id.
type Session struct {
	Cart *Manager

	mu      sync.Mutex
	catalog []catalog.DisplayItem
}

// Remember records the catalog rendered for the visitor.
func (s *Session) Remember(items []catalog.DisplayItem) {
	copied := make([]catalog.DisplayItem, len(items))
	copy(copied, items)
	s.mu.Lock()
	s.catalog = copied
	s.mu.Unlock()
}

// Lookup finds a remembered catalog item by id.
func (s *Session) Lookup(id int) (catalog.DisplayItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.catalog {
		if item.ID == id {
			return item, true
		}
	}
	return catalog.DisplayItem{}, false
}

// registryEntry is published before its cart loads; ready closes once
// session or err is set. refs counts requests holding the session.
type registryEntry struct {
	ready    chan struct{}
	session  *Session
	err      error
	refs     int
	lastSeen time.Time
}

// Registry maps visitor ids to sessions. Sessions are created on first use
// and dropped after sitting idle for the TTL; the persisted slot outlives
// them and is reloaded on the next visit.
type Registry struct {
	store    storage.SlotStore
	logger   *zap.Logger
	listener Listener
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*registryEntry
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithSessionTTL overrides DefaultSessionTTL. Non-positive values keep the
// default.
func WithSessionTTL(ttl time.Duration) RegistryOption {
	return func(r *Registry) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithRegistryLogger sets the logger passed to every Manager.
func WithRegistryLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRefreshListener sets the listener passed to every Manager.
func WithRefreshListener(listener Listener) RegistryOption {
	return func(r *Registry) {
		r.listener = listener
	}
}

// WithClock overrides the registry time source.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry builds a session registry over store.
func NewRegistry(store storage.SlotStore, opts ...RegistryOption) (*Registry, error) {
	if store == nil {
		return nil, errors.New("cart store is required")
	}
	r := &Registry{
		store:    store,
		logger:   zap.NewNop(),
		ttl:      DefaultSessionTTL,
		now:      time.Now,
		sessions: make(map[string]*registryEntry),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Acquire returns the visitor's session, loading the cart on first use, and
// a release func the caller must call when its request is done. A held
// session is never swept. Failed loads are not cached; the next call retries.
func (r *Registry) Acquire(ctx context.Context, visitorID string) (*Session, func(), error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return nil, nil, errors.New("visitor id is required")
	}

	r.mu.Lock()
	r.sweepLocked(r.now())
	entry, ok := r.sessions[visitorID]
	if !ok {
		entry = &registryEntry{ready: make(chan struct{})}
		r.sessions[visitorID] = entry
	}
	entry.refs++
	r.mu.Unlock()

	release := r.releaseFunc(entry)
	if !ok {
		r.load(ctx, visitorID, entry)
	} else {
		select {
		case <-entry.ready:
		default:
			if ctx == nil {
				ctx = context.Background()
			}
			select {
			case <-entry.ready:
			case <-ctx.Done():
				release()
				return nil, nil, ctx.Err()
			}
		}
	}
	if entry.err != nil {
		release()
		return nil, nil, entry.err
	}
	return entry.session, release, nil
}

// Session returns the visitor's session without holding it. Request
// handlers use Acquire so the session cannot be swept mid-request.
func (r *Registry) Session(ctx context.Context, visitorID string) (*Session, error) {
	session, release, err := r.Acquire(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	release()
	return session, nil
}

// load runs outside r.mu so one slow store read does not stall other
// visitors.
func (r *Registry) load(ctx context.Context, visitorID string, entry *registryEntry) {
	manager, err := NewManager(ctx, visitorID, r.store,
		WithLogger(r.logger),
		WithListener(r.listener),
	)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		entry.err = err
		if r.sessions[visitorID] == entry {
			delete(r.sessions, visitorID)
		}
		r.logger.Warn("cart session load failed", zap.String("visitor_id", visitorID), zap.Error(err))
	} else {
		entry.session = &Session{Cart: manager}
		r.logger.Debug("cart session started", zap.String("visitor_id", visitorID), zap.Int("lines", len(manager.Lines())))
	}
	entry.lastSeen = r.now()
	close(entry.ready)
}

func (r *Registry) releaseFunc(entry *registryEntry) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			entry.refs--
			entry.lastSeen = r.now()
			r.mu.Unlock()
		})
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops unheld sessions idle for longer than the TTL and returns how
// many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked(r.now())
}

func (r *Registry) sweepLocked(now time.Time) int {
	dropped := 0
	for visitorID, entry := range r.sessions {
		if entry.refs > 0 {
			continue
		}
		if now.Sub(entry.lastSeen) > r.ttl {
			delete(r.sessions, visitorID)
			dropped++
		}
	}
	return dropped
}
