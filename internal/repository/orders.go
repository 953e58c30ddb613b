package repository

import (
	"context"
	"fmt"

	"cafe-service/internal/docstore"
	"cafe-service/internal/models"

	"github.com/google/uuid"
)

// Order header and item document fields.
const (
	orderFieldDate   = "data"
	orderFieldClient = "cpfCliente"
	itemFieldProduct = "produtoId"
	itemFieldQty     = "quantidade"
)

// OrderRepository persists order headers and their item subcollections.
// Sequencing of the multi-document writes that make up an aggregate
// commit belongs to the caller; this layer only maps single documents.
type OrderRepository struct {
	store docstore.Store
}

// NewOrderRepository creates an order repository over the given store.
func NewOrderRepository(store docstore.Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func itemsPath(orderID string) string {
	return ordersCollection + "/" + orderID + "/itens"
}

// PutHeader creates or fully overwrites the order header document.
// Items are not touched.
func (r *OrderRepository) PutHeader(ctx context.Context, order *models.Order) error {
	fields := docstore.Fields{
		orderFieldDate:   order.Date,
		orderFieldClient: order.ClientCPF,
	}
	if err := r.store.Put(ctx, ordersCollection, order.ID, fields); err != nil {
		return fmt.Errorf("failed to put order %s: %w", order.ID, err)
	}
	return nil
}

// GetHeader returns the order header without its items.
func (r *OrderRepository) GetHeader(ctx context.Context, orderID string) (*models.Order, error) {
	fields, err := r.store.Get(ctx, ordersCollection, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	return decodeOrderHeader(orderID, fields), nil
}

// ListHeaders returns every order header, items not loaded.
func (r *OrderRepository) ListHeaders(ctx context.Context) ([]models.Order, error) {
	docs, err := r.store.List(ctx, ordersCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	orders := make([]models.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, *decodeOrderHeader(doc.Key, doc.Fields))
	}
	return orders, nil
}

// InsertItem appends one line to the order's item subcollection under a
// store-assigned sub-key.
func (r *OrderRepository) InsertItem(ctx context.Context, orderID string, line models.OrderLine) error {
	fields := docstore.Fields{
		itemFieldProduct: line.ProductID,
		itemFieldQty:     line.Quantity,
	}
	if err := r.store.Put(ctx, itemsPath(orderID), uuid.NewString(), fields); err != nil {
		return fmt.Errorf("failed to insert item for order %s: %w", orderID, err)
	}
	return nil
}

// ListItems returns the order's persisted lines in store order.
func (r *OrderRepository) ListItems(ctx context.Context, orderID string) ([]models.OrderLine, error) {
	docs, err := r.store.List(ctx, itemsPath(orderID))
	if err != nil {
		return nil, fmt.Errorf("failed to list items for order %s: %w", orderID, err)
	}
	lines := make([]models.OrderLine, 0, len(docs))
	for _, doc := range docs {
		lines = append(lines, models.OrderLine{
			ProductID: fieldString(doc.Fields, itemFieldProduct),
			Quantity:  fieldInt(doc.Fields, itemFieldQty),
		})
	}
	return lines, nil
}

// DeleteItems batch-deletes the order's whole item subcollection.
func (r *OrderRepository) DeleteItems(ctx context.Context, orderID string) error {
	path := itemsPath(orderID)
	docs, err := r.store.List(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to list items for order %s: %w", orderID, err)
	}
	if len(docs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(docs))
	for _, doc := range docs {
		keys = append(keys, doc.Key)
	}
	if err := r.store.BatchDelete(ctx, path, keys); err != nil {
		return fmt.Errorf("failed to delete items for order %s: %w", orderID, err)
	}
	return nil
}

// DeleteHeader removes the order header document only.
func (r *OrderRepository) DeleteHeader(ctx context.Context, orderID string) error {
	if err := r.store.Delete(ctx, ordersCollection, orderID); err != nil {
		return fmt.Errorf("failed to delete order %s: %w", orderID, err)
	}
	return nil
}

func decodeOrderHeader(key string, fields docstore.Fields) *models.Order {
	return &models.Order{
		ID:        key,
		Date:      fieldString(fields, orderFieldDate),
		ClientCPF: fieldString(fields, orderFieldClient),
	}
}
