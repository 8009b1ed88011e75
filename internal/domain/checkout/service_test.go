package checkout

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront/internal/domain/cart"
	"github.com/xenking/storefront/internal/domain/order"
)

// --- Mock implementations ---

type mockSnapshotRepo struct {
	snaps map[string]cart.Snapshot
}

func newMockSnapshotRepo() *mockSnapshotRepo {
	return &mockSnapshotRepo{snaps: make(map[string]cart.Snapshot)}
}

func (m *mockSnapshotRepo) Save(_ context.Context, cartID string, snap cart.Snapshot) error {
	m.snaps[cartID] = snap
	return nil
}

func (m *mockSnapshotRepo) Load(_ context.Context, cartID string) (cart.Snapshot, error) {
	snap, ok := m.snaps[cartID]
	if !ok {
		return cart.Snapshot{}, cart.ErrNoSnapshot
	}
	return snap, nil
}

func (m *mockSnapshotRepo) Delete(_ context.Context, cartID string) error {
	delete(m.snaps, cartID)
	return nil
}

type mockOrderRepo struct {
	lastOrder *order.Order
	err       error
}

func (m *mockOrderRepo) Create(_ context.Context, o *order.Order) error {
	m.lastOrder = o
	return m.err
}

// --- Tests ---

func seededCarts(t *testing.T, repo cart.SnapshotRepository) *cart.Store {
	t.Helper()
	carts := cart.NewStore(repo)
	ctx := context.Background()

	_, err := carts.Add(ctx, "c1", "Mug", "$9.99", "mug.jpg")
	require.NoError(t, err)
	_, err = carts.Add(ctx, "c1", "Mug", "$9.99", "mug.jpg")
	require.NoError(t, err)
	return carts
}

func TestConfirm_EmptyCart(t *testing.T) {
	carts := cart.NewStore(newMockSnapshotRepo())
	svc := NewService(carts, &mockOrderRepo{}, approveAll())

	_, err := svc.Confirm(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestConfirm_ReturnsTotal(t *testing.T) {
	carts := seededCarts(t, newMockSnapshotRepo())
	svc := NewService(carts, &mockOrderRepo{}, approveAll())

	total, err := svc.Confirm(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("19.98").Equal(total))
}

func TestPay_EmptyCartNeverOpensFlow(t *testing.T) {
	carts := cart.NewStore(newMockSnapshotRepo())
	gw := gatewayFunc(func(context.Context, Payment) error {
		t.Fatal("gateway must not be reached for an empty cart")
		return nil
	})
	svc := NewService(carts, &mockOrderRepo{}, gw)

	_, err := svc.Pay(context.Background(), "nobody", validCard())
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestPay_SuccessClearsCartAndRecordsOrder(t *testing.T) {
	repo := newMockSnapshotRepo()
	carts := seededCarts(t, repo)
	orders := &mockOrderRepo{}
	svc := NewService(carts, orders, approveAll())

	o, err := svc.Pay(context.Background(), "c1", validCard())
	require.NoError(t, err)

	require.NotNil(t, o)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "c1", o.CartID)
	assert.True(t, decimal.RequireFromString("19.98").Equal(o.Total))
	require.Len(t, o.Items, 1)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Same(t, o, orders.lastOrder)

	// Persisted snapshot is gone and the cart reads back empty with count 0.
	_, ok := repo.snaps["c1"]
	assert.False(t, ok)

	got, err := carts.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.Equal(t, 0, got.Count)
}

func TestPay_DeclinedKeepsCart(t *testing.T) {
	repo := newMockSnapshotRepo()
	carts := seededCarts(t, repo)
	orders := &mockOrderRepo{}
	svc := NewService(carts, orders, declineAll())

	_, err := svc.Pay(context.Background(), "c1", validCard())
	require.ErrorIs(t, err, ErrDeclined)

	assert.Nil(t, orders.lastOrder)

	got, err := carts.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
}

func TestPay_ValidationFailureKeepsCart(t *testing.T) {
	carts := seededCarts(t, newMockSnapshotRepo())
	svc := NewService(carts, &mockOrderRepo{}, approveAll())

	bad := validCard()
	bad.CVV = "1"

	_, err := svc.Pay(context.Background(), "c1", bad)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "cvv", vErr.Field)

	got, err := carts.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
}
