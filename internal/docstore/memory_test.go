package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Put(ctx, "clientes", "111", Fields{"nome": "Ana", "status": "ACTIVE"})
	require.NoError(t, err)

	fields, err := store.Get(ctx, "clientes", "111")
	require.NoError(t, err)
	assert.Equal(t, "Ana", fields["nome"])

	// Put is a full overwrite, not a merge.
	err = store.Put(ctx, "clientes", "111", Fields{"nome": "Ana Maria"})
	require.NoError(t, err)

	fields, err = store.Get(ctx, "clientes", "111")
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", fields["nome"])
	assert.NotContains(t, fields, "status")
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "clientes", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "produtos", "p1", Fields{"descricao": "Bourbon"}))

	fields, err := store.Get(ctx, "produtos", "p1")
	require.NoError(t, err)
	fields["descricao"] = "mutated"

	again, err := store.Get(ctx, "produtos", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Bourbon", again["descricao"])
}

func TestMemoryStoreListInsertionOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, key := range []string{"c", "a", "b"} {
		require.NoError(t, store.Put(ctx, "pedidos", key, Fields{"data": "01/01/2025"}))
	}

	docs, err := store.List(ctx, "pedidos")
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "c", docs[0].Key)
	assert.Equal(t, "a", docs[1].Key)
	assert.Equal(t, "b", docs[2].Key)
}

func TestMemoryStoreDeleteAbsentIsNoop(t *testing.T) {
	store := NewMemoryStore()

	err := store.Delete(context.Background(), "pedidos", "missing")
	assert.NoError(t, err)
}

func TestMemoryStoreBatchDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, key := range []string{"i1", "i2", "i3"} {
		require.NoError(t, store.Put(ctx, "pedidos/1/itens", key, Fields{"quantidade": 1}))
	}

	err := store.BatchDelete(ctx, "pedidos/1/itens", []string{"i1", "i3", "never-existed"})
	require.NoError(t, err)

	docs, err := store.List(ctx, "pedidos/1/itens")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "i2", docs[0].Key)
}
