package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/nearbuy-market/storefront-gateway/internal/session"
	"github.com/nearbuy-market/storefront-gateway/internal/upstream"
	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
)

type stubBackend struct {
	mu sync.Mutex

	listFn   func(ctx context.Context, token string) (*upstream.Page[upstream.CartItem], error)
	addFn    func(ctx context.Context, token string, productID int64, quantity int) (*upstream.CartItem, error)
	updateFn func(ctx context.Context, token string, itemID int64, quantity int) (*upstream.CartItem, error)
	removeFn func(ctx context.Context, token string, itemID int64) error

	listCalls   int
	addCalls    int
	updateCalls int
	removeCalls int
	removed     []int64
}

func (s *stubBackend) ListCartItems(ctx context.Context, token string) (*upstream.Page[upstream.CartItem], error) {
	s.mu.Lock()
	s.listCalls++
	fn := s.listFn
	s.mu.Unlock()
	if fn == nil {
		return &upstream.Page[upstream.CartItem]{}, nil
	}
	return fn(ctx, token)
}

func (s *stubBackend) AddCartItem(ctx context.Context, token string, productID int64, quantity int) (*upstream.CartItem, error) {
	s.mu.Lock()
	s.addCalls++
	fn := s.addFn
	s.mu.Unlock()
	if fn == nil {
		return &upstream.CartItem{ID: productID, Quantity: quantity}, nil
	}
	return fn(ctx, token, productID, quantity)
}

func (s *stubBackend) UpdateCartItem(ctx context.Context, token string, itemID int64, quantity int) (*upstream.CartItem, error) {
	s.mu.Lock()
	s.updateCalls++
	fn := s.updateFn
	s.mu.Unlock()
	if fn == nil {
		return &upstream.CartItem{ID: itemID, Quantity: quantity}, nil
	}
	return fn(ctx, token, itemID, quantity)
}

func (s *stubBackend) RemoveCartItem(ctx context.Context, token string, itemID int64) error {
	s.mu.Lock()
	s.removeCalls++
	s.removed = append(s.removed, itemID)
	fn := s.removeFn
	s.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx, token, itemID)
}

func items(pairs ...int) []upstream.CartItem {
	out := make([]upstream.CartItem, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, upstream.CartItem{ID: int64(pairs[i]), Quantity: pairs[i+1]})
	}
	return out
}

func page(list []upstream.CartItem) *upstream.Page[upstream.CartItem] {
	return &upstream.Page[upstream.CartItem]{Count: len(list), Results: list}
}

func newService(t *testing.T, backend *stubBackend) (Service, session.Store, string) {
	t.Helper()
	store := session.NewMemoryStore()
	sid := session.NewSessionID()
	if err := store.SaveToken(context.Background(), sid, "tok-1"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	svc, err := NewService(backend, store, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store, sid
}

func TestCountSumsQuantities(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{
		listFn: func(context.Context, string) (*upstream.Page[upstream.CartItem], error) {
			return page(items(1, 2, 2, 3, 3, 1)), nil
		},
	}
	svc, _, sid := newService(t, backend)
	ctx := context.Background()

	if got := svc.Count(ctx, sid); got != 0 {
		t.Fatalf("count before refresh = %d, want 0", got)
	}
	if _, err := svc.Refresh(ctx, sid); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := svc.Count(ctx, sid); got != 6 {
		t.Fatalf("count = %d, want 6", got)
	}
	if got := len(svc.Items(ctx, sid)); got != 3 {
		t.Fatalf("items = %d, want 3", got)
	}
}

func TestAddRefreshesFromServer(t *testing.T) {
	t.Parallel()

	current := items(10, 1)
	backend := &stubBackend{}
	backend.listFn = func(context.Context, string) (*upstream.Page[upstream.CartItem], error) {
		return page(current), nil
	}
	backend.addFn = func(_ context.Context, _ string, productID int64, quantity int) (*upstream.CartItem, error) {
		added := upstream.CartItem{ID: 99, Quantity: quantity}
		current = append(current, added)
		return &added, nil
	}
	svc, _, sid := newService(t, backend)
	ctx := context.Background()

	if err := svc.Add(ctx, sid, 42, 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := svc.Count(ctx, sid); got != 3 {
		t.Fatalf("count after add = %d, want 3", got)
	}
	if backend.listCalls != 1 {
		t.Fatalf("list calls = %d, want 1", backend.listCalls)
	}
}

func TestRepeatedAddKeepsSeparateLines(t *testing.T) {
	t.Parallel()

	// The marketplace appends a new cart line on every add, even for a
	// product already in the cart, so two adds of the same product must
	// surface as two lines whose quantities both count.
	var server []upstream.CartItem
	nextID := int64(100)
	backend := &stubBackend{}
	backend.listFn = func(context.Context, string) (*upstream.Page[upstream.CartItem], error) {
		return page(server), nil
	}
	backend.addFn = func(_ context.Context, _ string, productID int64, quantity int) (*upstream.CartItem, error) {
		nextID++
		added := upstream.CartItem{ID: nextID, Product: productID, Quantity: quantity}
		server = append(server, added)
		return &added, nil
	}
	svc, _, sid := newService(t, backend)
	ctx := context.Background()

	if err := svc.Add(ctx, sid, 42, 2); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if err := svc.Add(ctx, sid, 42, 3); err != nil {
		t.Fatalf("second Add: %v", err)
	}

	lines := svc.Items(ctx, sid)
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0].ID == lines[1].ID {
		t.Fatalf("line ids collide: %d", lines[0].ID)
	}
	for _, line := range lines {
		if line.Product != 42 {
			t.Fatalf("line product = %d, want 42", line.Product)
		}
	}
	if got := svc.Count(ctx, sid); got != 5 {
		t.Fatalf("count = %d, want 5", got)
	}
}

func TestAddValidatesBeforeNetwork(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{}
	svc, _, sid := newService(t, backend)
	ctx := context.Background()

	for _, tc := range []struct {
		name      string
		productID int64
		quantity  int
	}{
		{"zero product", 0, 1},
		{"negative product", -3, 1},
		{"zero quantity", 7, 0},
		{"negative quantity", 7, -1},
	} {
		err := svc.Add(ctx, sid, tc.productID, tc.quantity)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: got %v, want validation error", tc.name, err)
		}
	}
	if backend.addCalls != 0 || backend.listCalls != 0 {
		t.Fatalf("backend touched on invalid input: add=%d list=%d", backend.addCalls, backend.listCalls)
	}
}

func TestMutationsRequireAuth(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{}
	store := session.NewMemoryStore()
	svc, err := NewService(backend, store, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()
	sid := session.NewSessionID()

	checks := []error{
		svc.Add(ctx, sid, 1, 1),
		svc.UpdateQuantity(ctx, sid, 1, 1),
		svc.Remove(ctx, sid, 1),
		svc.Clear(ctx, sid),
	}
	for i, err := range checks {
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("call %d: got %v, want unauthorized", i, err)
		}
	}
	if backend.addCalls+backend.updateCalls+backend.removeCalls+backend.listCalls != 0 {
		t.Fatal("backend touched without a token")
	}
}

func TestMutationFailurePropagates(t *testing.T) {
	t.Parallel()

	boom := pkgerrors.New(pkgerrors.CodeUpstream, "marketplace backend unavailable")
	backend := &stubBackend{
		listFn: func(context.Context, string) (*upstream.Page[upstream.CartItem], error) {
			return page(items(1, 2)), nil
		},
		updateFn: func(context.Context, string, int64, int) (*upstream.CartItem, error) {
			return nil, boom
		},
	}
	svc, _, sid := newService(t, backend)
	ctx := context.Background()

	if _, err := svc.Refresh(ctx, sid); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if err := svc.UpdateQuantity(ctx, sid, 1, 5); err == nil {
		t.Fatal("expected update error")
	}
	// Cache keeps the last good snapshot.
	if got := svc.Count(ctx, sid); got != 2 {
		t.Fatalf("count after failed update = %d, want 2", got)
	}
}

func TestClearPartialFailureKeepsSurvivors(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	current := items(1, 1, 2, 2, 3, 3)
	backend := &stubBackend{}
	backend.listFn = func(context.Context, string) (*upstream.Page[upstream.CartItem], error) {
		mu.Lock()
		defer mu.Unlock()
		return page(append([]upstream.CartItem(nil), current...)), nil
	}
	backend.removeFn = func(_ context.Context, _ string, itemID int64) error {
		if itemID == 2 {
			return fmt.Errorf("deadlock detected")
		}
		mu.Lock()
		defer mu.Unlock()
		kept := current[:0]
		for _, item := range current {
			if item.ID != itemID {
				kept = append(kept, item)
			}
		}
		current = kept
		return nil
	}
	svc, _, sid := newService(t, backend)
	ctx := context.Background()

	err := svc.Clear(ctx, sid)
	if err == nil {
		t.Fatal("expected partial failure error")
	}
	if !strings.Contains(err.Error(), "remove cart item 2") {
		t.Fatalf("error does not name the failed line: %v", err)
	}

	got := svc.Items(ctx, sid)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("cache after partial clear = %+v, want only item 2", got)
	}
	if svc.Count(ctx, sid) != 2 {
		t.Fatalf("count = %d, want 2", svc.Count(ctx, sid))
	}
}

func TestClearFullSuccessEmptiesCart(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	current := items(1, 1, 2, 4)
	backend := &stubBackend{}
	backend.listFn = func(context.Context, string) (*upstream.Page[upstream.CartItem], error) {
		mu.Lock()
		defer mu.Unlock()
		return page(append([]upstream.CartItem(nil), current...)), nil
	}
	backend.removeFn = func(_ context.Context, _ string, itemID int64) error {
		mu.Lock()
		defer mu.Unlock()
		kept := current[:0]
		for _, item := range current {
			if item.ID != itemID {
				kept = append(kept, item)
			}
		}
		current = kept
		return nil
	}
	svc, _, sid := newService(t, backend)
	ctx := context.Background()

	if err := svc.Clear(ctx, sid); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if svc.Count(ctx, sid) != 0 {
		t.Fatalf("count = %d, want 0", svc.Count(ctx, sid))
	}
	if backend.removeCalls != 2 {
		t.Fatalf("remove calls = %d, want 2", backend.removeCalls)
	}
}

func TestStaleRefreshDiscarded(t *testing.T) {
	t.Parallel()

	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})
	var calls int
	var mu sync.Mutex
	backend := &stubBackend{}
	backend.listFn = func(context.Context, string) (*upstream.Page[upstream.CartItem], error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(slowStarted)
			<-releaseSlow
			return page(items(1, 1)), nil
		}
		return page(items(1, 1, 2, 5)), nil
	}
	svc, _, sid := newService(t, backend)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Refresh(ctx, sid)
	}()
	<-slowStarted

	// A later refresh completes while the first is still in flight.
	if _, err := svc.Refresh(ctx, sid); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if svc.Count(ctx, sid) != 6 {
		t.Fatalf("count = %d, want 6", svc.Count(ctx, sid))
	}

	close(releaseSlow)
	<-done

	// The slow response arrived last but was issued first; it must not win.
	if svc.Count(ctx, sid) != 6 {
		t.Fatalf("stale refresh overwrote cache: count = %d, want 6", svc.Count(ctx, sid))
	}
}

func TestObserverLifecycle(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{
		listFn: func(context.Context, string) (*upstream.Page[upstream.CartItem], error) {
			return page(items(9, 4)), nil
		},
	}
	svc, _, sid := newService(t, backend)
	ctx := context.Background()

	svc.OnLogin(ctx, sid)
	if svc.Count(ctx, sid) != 4 {
		t.Fatalf("count after login = %d, want 4", svc.Count(ctx, sid))
	}

	svc.OnLogout(sid)
	if svc.Count(ctx, sid) != 0 {
		t.Fatalf("count after logout = %d, want 0", svc.Count(ctx, sid))
	}
}

func TestRefreshAnonymousDropsCache(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{
		listFn: func(context.Context, string) (*upstream.Page[upstream.CartItem], error) {
			return page(items(1, 3)), nil
		},
	}
	svc, store, sid := newService(t, backend)
	ctx := context.Background()

	if _, err := svc.Refresh(ctx, sid); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if err := store.DeleteToken(ctx, sid); err != nil {
		t.Fatalf("DeleteToken: %v", err)
	}

	got, err := svc.Refresh(ctx, sid)
	if err != nil {
		t.Fatalf("anonymous Refresh: %v", err)
	}
	if len(got) != 0 || svc.Count(ctx, sid) != 0 {
		t.Fatalf("anonymous refresh kept cache: %+v", got)
	}
	if backend.listCalls != 1 {
		t.Fatalf("list calls = %d, want 1", backend.listCalls)
	}
}
