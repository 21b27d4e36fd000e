package cart

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/nearbuy-market/storefront-gateway/internal/session"
	"github.com/nearbuy-market/storefront-gateway/internal/upstream"
	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
	"github.com/nearbuy-market/storefront-gateway/pkg/logger"
)

type backendCart interface {
	ListCartItems(ctx context.Context, token string) (*upstream.Page[upstream.CartItem], error)
	AddCartItem(ctx context.Context, token string, productID int64, quantity int) (*upstream.CartItem, error)
	UpdateCartItem(ctx context.Context, token string, itemID int64, quantity int) (*upstream.CartItem, error)
	RemoveCartItem(ctx context.Context, token string, itemID int64) error
}

// Service caches one cart per storefront session. Every mutation goes to the
// backend and is followed by a full refresh; the cache is never patched
// locally. All mutating methods propagate failures to the caller.
type Service interface {
	Items(ctx context.Context, sessionID string) []upstream.CartItem
	Count(ctx context.Context, sessionID string) int
	Refresh(ctx context.Context, sessionID string) ([]upstream.CartItem, error)
	Add(ctx context.Context, sessionID string, productID int64, quantity int) error
	UpdateQuantity(ctx context.Context, sessionID string, itemID int64, quantity int) error
	Remove(ctx context.Context, sessionID string, itemID int64) error
	Clear(ctx context.Context, sessionID string) error

	// auth.Observer
	OnLogin(ctx context.Context, sessionID string)
	OnLogout(sessionID string)
}

// sessionCart holds the cached snapshot plus the sequence counters that keep
// overlapping refreshes from applying out of order.
type sessionCart struct {
	mu      sync.Mutex
	items   []upstream.CartItem
	issued  uint64
	applied uint64
}

type service struct {
	backend  backendCart
	sessions session.Store
	logg     *logger.Logger

	mu    sync.RWMutex
	carts map[string]*sessionCart
}

// NewService builds the cart service backed by the provided stack.
func NewService(backend backendCart, sessions session.Store, logg *logger.Logger) (Service, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend client required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	return &service{
		backend:  backend,
		sessions: sessions,
		logg:     logg,
		carts:    map[string]*sessionCart{},
	}, nil
}

// Items returns the cached snapshot for the session; empty when anonymous or
// never refreshed.
func (s *service) Items(_ context.Context, sessionID string) []upstream.CartItem {
	state := s.cart(sessionID)
	state.mu.Lock()
	defer state.mu.Unlock()
	return append([]upstream.CartItem(nil), state.items...)
}

// Count is always recomputed from the cached items, never tracked separately,
// so it cannot drift from the list itself.
func (s *service) Count(ctx context.Context, sessionID string) int {
	total := 0
	for _, item := range s.Items(ctx, sessionID) {
		total += item.Quantity
	}
	return total
}

// Refresh re-fetches the whole cart. Stale responses from overlapping calls
// are discarded by sequence number; the last-issued fetch wins.
func (s *service) Refresh(ctx context.Context, sessionID string) ([]upstream.CartItem, error) {
	token, err := s.sessions.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if token == "" {
		s.OnLogout(sessionID)
		return nil, nil
	}

	state := s.cart(sessionID)
	state.mu.Lock()
	state.issued++
	seq := state.issued
	state.mu.Unlock()

	page, err := s.backend.ListCartItems(ctx, token)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	if seq > state.applied {
		state.applied = seq
		state.items = page.Results
	}
	return append([]upstream.CartItem(nil), state.items...), nil
}

// Add validates its inputs before touching the network, then creates the line
// upstream and refreshes the cache.
func (s *service) Add(ctx context.Context, sessionID string, productID int64, quantity int) error {
	if productID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}

	token, err := s.requireToken(ctx, sessionID)
	if err != nil {
		return err
	}

	if _, err := s.backend.AddCartItem(ctx, token, productID, quantity); err != nil {
		return err
	}
	_, err = s.Refresh(ctx, sessionID)
	return err
}

// UpdateQuantity replaces the quantity of one line and refreshes the cache.
func (s *service) UpdateQuantity(ctx context.Context, sessionID string, itemID int64, quantity int) error {
	if itemID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id must be positive")
	}
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}

	token, err := s.requireToken(ctx, sessionID)
	if err != nil {
		return err
	}

	if _, err := s.backend.UpdateCartItem(ctx, token, itemID, quantity); err != nil {
		return err
	}
	_, err = s.Refresh(ctx, sessionID)
	return err
}

// Remove deletes one line and refreshes the cache.
func (s *service) Remove(ctx context.Context, sessionID string, itemID int64) error {
	if itemID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id must be positive")
	}

	token, err := s.requireToken(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := s.backend.RemoveCartItem(ctx, token, itemID); err != nil {
		return err
	}
	_, err = s.Refresh(ctx, sessionID)
	return err
}

// Clear lists the server's current items and deletes them concurrently. The
// cache is only declared empty by the refresh that follows, so a partially
// failed clear leaves the surviving lines visible and reports every failure.
func (s *service) Clear(ctx context.Context, sessionID string) error {
	token, err := s.requireToken(ctx, sessionID)
	if err != nil {
		return err
	}

	page, err := s.backend.ListCartItems(ctx, token)
	if err != nil {
		return err
	}

	var (
		wg      sync.WaitGroup
		errMu   sync.Mutex
		deleteE error
	)
	for _, item := range page.Results {
		wg.Add(1)
		go func(itemID int64) {
			defer wg.Done()
			if err := s.backend.RemoveCartItem(ctx, token, itemID); err != nil {
				errMu.Lock()
				deleteE = multierr.Append(deleteE, fmt.Errorf("remove cart item %d: %w", itemID, err))
				errMu.Unlock()
			}
		}(item.ID)
	}
	wg.Wait()

	if _, refreshErr := s.Refresh(ctx, sessionID); refreshErr != nil {
		deleteE = multierr.Append(deleteE, refreshErr)
	}
	return deleteE
}

// OnLogin refreshes the cart once for the freshly authenticated session.
func (s *service) OnLogin(ctx context.Context, sessionID string) {
	if _, err := s.Refresh(ctx, sessionID); err != nil && s.logg != nil {
		s.logg.Error(ctx, "cart.refresh_on_login", err)
	}
}

// OnLogout discards the cached cart. The backend keeps the user's cart; only
// the local view is dropped.
func (s *service) OnLogout(sessionID string) {
	state := s.cart(sessionID)
	state.mu.Lock()
	defer state.mu.Unlock()
	state.items = nil
	state.issued++
	state.applied = state.issued
}

func (s *service) requireToken(ctx context.Context, sessionID string) (string, error) {
	token, err := s.sessions.Token(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "log in to use the cart")
	}
	return token, nil
}

func (s *service) cart(sessionID string) *sessionCart {
	s.mu.RLock()
	state, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return state
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.carts[sessionID]; ok {
		return state
	}
	state = &sessionCart{}
	s.carts[sessionID] = state
	return state
}
