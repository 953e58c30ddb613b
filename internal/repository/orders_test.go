package repository

import (
	"context"
	"testing"

	"cafe-service/internal/docstore"
	"cafe-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutHeaderPersistedFieldNames(t *testing.T) {
	store := docstore.NewMemoryStore()
	repo := NewOrderRepository(store)
	ctx := context.Background()

	err := repo.PutHeader(ctx, &models.Order{ID: "1", Date: "10/05/2025", ClientCPF: "11122233344"})
	require.NoError(t, err)

	fields, err := store.Get(ctx, "pedidos", "1")
	require.NoError(t, err)
	assert.Equal(t, "10/05/2025", fields["data"])
	assert.Equal(t, "11122233344", fields["cpfCliente"])
}

func TestInsertAndListItems(t *testing.T) {
	store := docstore.NewMemoryStore()
	repo := NewOrderRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.InsertItem(ctx, "1", models.OrderLine{ProductID: "pA", Quantity: 3}))
	require.NoError(t, repo.InsertItem(ctx, "1", models.OrderLine{ProductID: "pB", Quantity: 1}))

	docs, err := store.List(ctx, "pedidos/1/itens")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "pA", docs[0].Fields["produtoId"])
	assert.Equal(t, 3, docs[0].Fields["quantidade"])
	// Each item gets its own store-assigned sub-key.
	assert.NotEqual(t, docs[0].Key, docs[1].Key)

	lines, err := repo.ListItems(ctx, "1")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "pA", lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestListItemsDecodesJSONNumbers(t *testing.T) {
	store := docstore.NewMemoryStore()
	repo := NewOrderRepository(store)
	ctx := context.Background()

	// A JSONB-backed store hands numbers back as float64.
	require.NoError(t, store.Put(ctx, "pedidos/1/itens", "i1",
		docstore.Fields{"produtoId": "pA", "quantidade": float64(4)}))

	lines, err := repo.ListItems(ctx, "1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantity)
}

func TestDeleteItemsEmptySubcollection(t *testing.T) {
	repo := NewOrderRepository(docstore.NewMemoryStore())

	err := repo.DeleteItems(context.Background(), "nope")
	assert.NoError(t, err)
}

func TestDeleteItemsClearsSubcollection(t *testing.T) {
	store := docstore.NewMemoryStore()
	repo := NewOrderRepository(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.InsertItem(ctx, "7", models.OrderLine{ProductID: "p", Quantity: i + 1}))
	}

	require.NoError(t, repo.DeleteItems(ctx, "7"))
	assert.Equal(t, 0, store.Count("pedidos/7/itens"))
}

func TestListHeaders(t *testing.T) {
	store := docstore.NewMemoryStore()
	repo := NewOrderRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.PutHeader(ctx, &models.Order{ID: "1", Date: "01/01/2025", ClientCPF: "c1"}))
	require.NoError(t, repo.PutHeader(ctx, &models.Order{ID: "2", Date: "02/01/2025", ClientCPF: "c2"}))

	headers, err := repo.ListHeaders(ctx)
	require.NoError(t, err)
	require.Len(t, headers, 2)
	assert.Equal(t, "1", headers[0].ID)
	assert.Empty(t, headers[0].Lines)
}
