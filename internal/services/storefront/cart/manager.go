package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/louisbranch/storefront/internal/services/storefront/catalog"
	"github.com/louisbranch/storefront/internal/services/storefront/storage"
	"go.uber.org/zap"
)

// Listener receives the refreshed summary after every cart change.
type Listener func(visitorID string, summary Summary)

// Manager owns one visitor's cart. All methods are safe for concurrent use;
// mutations are serialized.
type Manager struct {
	mu        sync.Mutex
	visitorID string
	store     storage.SlotStore
	codec     SlotCodec
	logger    *zap.Logger
	listener  Listener
	cart      Cart
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for load and persist diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithListener sets the refresh listener.
func WithListener(listener Listener) Option {
	return func(m *Manager) {
		m.listener = listener
	}
}

// NewManager builds the owner of visitorID's cart and reads the persisted
// slot once. A missing or corrupt slot starts an empty cart; any other read
// failure is returned so an empty cart never overwrites one that exists.
func NewManager(ctx context.Context, visitorID string, store storage.SlotStore, opts ...Option) (*Manager, error) {
	m := &Manager{
		visitorID: visitorID,
		store:     store,
		logger:    zap.NewNop(),
		cart:      Cart{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	m.logger = m.logger.With(zap.String("visitor_id", visitorID))
	loaded, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	m.cart = loaded
	return m, nil
}

// load reads the slot detached from ctx cancellation; a client that goes
// away mid-read must not turn into an empty cart.
func (m *Manager) load(ctx context.Context) (Cart, error) {
	if m.store == nil {
		return Cart{}, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	payload, err := m.store.LoadSlot(context.WithoutCancel(ctx), m.visitorID, storage.CartSlot)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return Cart{}, nil
	case err != nil:
		return nil, fmt.Errorf("load cart slot: %w", err)
	}
	loaded, err := m.codec.Decode(payload)
	if err != nil {
		m.logger.Warn("discard corrupt cart slot", zap.Error(err), zap.Int("payload_bytes", len(payload)))
		return Cart{}, nil
	}
	return loaded, nil
}

// Snapshot returns the current summary without changing anything.
func (m *Manager) Snapshot() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Summarize(m.cart)
}

// Lines returns a copy of the current cart.
func (m *Manager) Lines() Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.clone()
}

// Add adds one unit of item and returns the resulting line.
func (m *Manager) Add(ctx context.Context, item catalog.DisplayItem) (Line, Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart = Add(m.cart, item)
	line, _ := m.cart.Find(item.ID)
	summary, err := m.commit(ctx, "add")
	return line, summary, err
}

// Remove drops the line for id. Removing a missing line still persists and
// refreshes.
func (m *Manager) Remove(ctx context.Context, id int) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(ctx, id)
}

func (m *Manager) removeLocked(ctx context.Context, id int) (Summary, error) {
	m.cart = Remove(m.cart, id)
	return m.commit(ctx, "remove")
}

// ChangeQuantity adds delta to the line for id. Unknown ids are a no-op.
// A quantity that reaches zero goes through the removal path, so each call
// persists and refreshes at most once.
func (m *Manager) ChangeQuantity(ctx context.Context, id int, delta int) (Outcome, Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, outcome := ChangeQuantity(m.cart, id, delta)
	switch outcome {
	case Unchanged:
		return Unchanged, Summarize(m.cart), nil
	case Removed:
		summary, err := m.removeLocked(ctx, id)
		return Removed, summary, err
	default:
		m.cart = next
		summary, err := m.commit(ctx, "change_quantity")
		return Updated, summary, err
	}
}

// BeginCheckout returns the summary to confirm, or ErrEmptyCart.
func (m *Manager) BeginCheckout() (Summary, error) {
	summary := m.Snapshot()
	if summary.Empty() {
		return summary, ErrEmptyCart
	}
	return summary, nil
}

// ConfirmCheckout clears a non-empty cart. An empty cart returns
// ErrEmptyCart without writing to the store.
func (m *Manager) ConfirmCheckout(ctx context.Context) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.cart) == 0 {
		return Summarize(m.cart), ErrEmptyCart
	}
	m.cart = Cart{}
	return m.commit(ctx, "checkout")
}

// commit persists the current cart once and notifies the listener once.
// Callers hold m.mu.
func (m *Manager) commit(ctx context.Context, op string) (Summary, error) {
	summary := Summarize(m.cart)
	err := m.persist(ctx)
	if err != nil {
		m.logger.Warn("persist cart", zap.String("op", op), zap.Error(err))
		err = fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if m.listener != nil {
		m.listener(m.visitorID, summary)
	}
	return summary, err
}

func (m *Manager) persist(ctx context.Context) error {
	if m.store == nil {
		return errors.New("cart store is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	payload, err := m.codec.Encode(m.cart)
	if err != nil {
		return err
	}
	return m.store.SaveSlot(ctx, m.visitorID, storage.CartSlot, payload)
}
