package service

import (
	"context"
	"testing"

	"cafe-service/internal/docstore"
	"cafe-service/internal/models"
	"cafe-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderService() (*OrderService, *docstore.MemoryStore) {
	store := docstore.NewMemoryStore()
	return NewOrderService(repository.NewOrderRepository(store), nil, nil), store
}

func ordersWithIDs(ids ...string) []models.Order {
	orders := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		orders = append(orders, models.Order{ID: id})
	}
	return orders
}

func TestNextOrderID(t *testing.T) {
	tests := []struct {
		name   string
		loaded []models.Order
		want   string
	}{
		{"empty list", nil, "1"},
		{"contiguous", ordersWithIDs("1", "2", "3"), "4"},
		// count+1 collides with "3" and increments past it; the gap at
		// "2" is not reused.
		{"non-contiguous", ordersWithIDs("1", "3"), "4"},
		// count+1 is "2" here, which collides and increments to "3";
		// the free id "1" below it is never considered.
		{"single high id", ordersWithIDs("2"), "3"},
		{"repeated collisions", ordersWithIDs("2", "3", "4"), "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOrderID(tt.loaded)
			assert.Equal(t, tt.want, got)
			assert.False(t, hasOrderID(tt.loaded, got))
		})
	}
}

func TestValidate(t *testing.T) {
	lines := []models.OrderLine{{ProductID: "p1", Quantity: 2}}

	assert.ErrorIs(t, Validate("", "11122233344", lines), ErrMissingDate)
	assert.ErrorIs(t, Validate("01/01/2025", "", lines), ErrMissingClient)
	assert.ErrorIs(t, Validate("01/01/2025", "11122233344", nil), ErrEmptyOrder)
	assert.NoError(t, Validate("01/01/2025", "11122233344", lines))
}

func TestCreateOrderMissingDateWritesNothing(t *testing.T) {
	svc, store := newTestOrderService()

	_, err := svc.CreateOrder(context.Background(), "", "C1",
		[]models.OrderLine{{ProductID: "P1", Quantity: 2}})

	assert.ErrorIs(t, err, ErrMissingDate)
	assert.Equal(t, 0, store.Count("pedidos"))
}

func TestCreateOrderEmptyLines(t *testing.T) {
	svc, store := newTestOrderService()

	_, err := svc.CreateOrder(context.Background(), "01/01/2025", "C1", nil)

	assert.ErrorIs(t, err, ErrEmptyOrder)
	assert.Equal(t, 0, store.Count("pedidos"))
}

func TestCreateOrderPersistsAggregate(t *testing.T) {
	svc, store := newTestOrderService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "10/05/2025", "11122233344",
		[]models.OrderLine{{ProductID: "productA", Quantity: 3}})
	require.NoError(t, err)
	assert.Equal(t, "1", order.ID)

	assert.Equal(t, 1, store.Count("pedidos"))
	assert.Equal(t, 1, store.Count("pedidos/1/itens"))

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "10/05/2025", orders[0].Date)
	assert.Equal(t, "11122233344", orders[0].ClientCPF)
	require.Len(t, orders[0].Lines, 1)
	assert.Equal(t, "productA", orders[0].Lines[0].ProductID)
	assert.Equal(t, 3, orders[0].Lines[0].Quantity)
}

func TestCreateOrderAssignsSequentialIDs(t *testing.T) {
	svc, _ := newTestOrderService()
	ctx := context.Background()
	lines := []models.OrderLine{{ProductID: "p1", Quantity: 1}}

	for _, want := range []string{"1", "2", "3"} {
		order, err := svc.CreateOrder(ctx, "01/01/2025", "C1", lines)
		require.NoError(t, err)
		assert.Equal(t, want, order.ID)
	}
}

func TestUpdateOrderReplacesItemSet(t *testing.T) {
	svc, store := newTestOrderService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "01/01/2025", "C1", []models.OrderLine{
		{ProductID: "P1", Quantity: 2},
		{ProductID: "P2", Quantity: 1},
	})
	require.NoError(t, err)
	require.Equal(t, 2, store.Count("pedidos/"+order.ID+"/itens"))

	order.Lines = []models.OrderLine{{ProductID: "P1", Quantity: 5}}
	require.NoError(t, svc.UpdateOrder(ctx, order))

	// Delete-all-then-reinsert, not a merge: exactly one item remains.
	loaded, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 1)
	assert.Equal(t, "P1", loaded.Lines[0].ProductID)
	assert.Equal(t, 5, loaded.Lines[0].Quantity)
}

func TestUpdateOrderKeepsIdentifier(t *testing.T) {
	svc, _ := newTestOrderService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "01/01/2025", "C1",
		[]models.OrderLine{{ProductID: "P1", Quantity: 2}})
	require.NoError(t, err)

	order.Date = "02/01/2025"
	require.NoError(t, svc.UpdateOrder(ctx, order))

	loaded, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, loaded.ID)
	assert.Equal(t, "02/01/2025", loaded.Date)
}

func TestDeleteOrderRemovesHeaderAndItems(t *testing.T) {
	svc, store := newTestOrderService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "01/01/2025", "C1", []models.OrderLine{
		{ProductID: "P1", Quantity: 2},
		{ProductID: "P2", Quantity: 1},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(ctx, order.ID))

	assert.Equal(t, 0, store.Count("pedidos"))
	assert.Equal(t, 0, store.Count("pedidos/"+order.ID+"/itens"))

	_, err = svc.GetOrder(ctx, order.ID)
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestDeleteOrderNonexistentIsNoop(t *testing.T) {
	svc, _ := newTestOrderService()

	err := svc.DeleteOrder(context.Background(), "404")
	assert.NoError(t, err)
}

func TestListOrdersByClient(t *testing.T) {
	svc, _ := newTestOrderService()
	ctx := context.Background()
	lines := []models.OrderLine{{ProductID: "p1", Quantity: 1}}

	_, err := svc.CreateOrder(ctx, "01/01/2025", "C1", lines)
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, "01/01/2025", "C2", lines)
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, "02/01/2025", "C1", lines)
	require.NoError(t, err)

	orders, err := svc.ListOrdersByClient(ctx, "C1")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "C1", o.ClientCPF)
	}
}

func TestValidationFailureKeepsComposerState(t *testing.T) {
	svc, _ := newTestOrderService()
	composer := NewLineComposer(nil)

	_, err := composer.AddLine("P1", "2")
	require.NoError(t, err)

	// Rejected commit: the working set survives so the user can fix the
	// missing field and resubmit.
	_, err = svc.CreateOrder(context.Background(), "", "C1", composer.Snapshot())
	assert.ErrorIs(t, err, ErrMissingDate)
	assert.Equal(t, 1, composer.Len())

	_, err = svc.CreateOrder(context.Background(), "01/01/2025", "C1", composer.Snapshot())
	assert.NoError(t, err)
	composer.Reset()
	assert.Equal(t, 0, composer.Len())
}
