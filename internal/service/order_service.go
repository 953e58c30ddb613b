package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"cafe-service/internal/broker"
	"cafe-service/internal/models"
	"cafe-service/internal/redisclient"
	"cafe-service/internal/repository"
	"cafe-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService is the aggregate manager for orders: it assigns
// identifiers, validates the (date, client, lines) tuple and keeps an
// order's header and item subcollection consistent across create,
// update and delete. Cache and publisher are optional; a nil value
// disables that concern.
type OrderService struct {
	orders    *repository.OrderRepository
	cache     *redisclient.Client
	publisher *broker.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders *repository.OrderRepository,
	cache *redisclient.Client,
	publisher *broker.EventPublisher,
) *OrderService {
	return &OrderService{
		orders:    orders,
		cache:     cache,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// NextOrderID computes the identifier for a new order from the loaded
// order list: count+1 as a decimal string, incremented past any exact
// collision. Correct only while the supplied list is fresh; CreateOrder
// guards the reload-generate-commit window with a lock when a cache
// client is configured.
func NextOrderID(orders []models.Order) string {
	next := len(orders) + 1
	for hasOrderID(orders, strconv.Itoa(next)) {
		next++
	}
	return strconv.Itoa(next)
}

func hasOrderID(orders []models.Order, id string) bool {
	for _, o := range orders {
		if o.ID == id {
			return true
		}
	}
	return false
}

// Validate checks the commit preconditions in order: date present,
// client present, at least one line. The first failure is returned.
func Validate(date, clientCPF string, lines []models.OrderLine) error {
	if date == "" {
		return ErrMissingDate
	}
	if clientCPF == "" {
		return ErrMissingClient
	}
	if len(lines) == 0 {
		return ErrEmptyOrder
	}
	return nil
}

// CreateOrder validates the tuple, assigns an identifier and persists
// the aggregate: header first, then one write per line. The writes are
// sequential and not atomic; a failure partway through is returned as
// is and leaves whatever was already written.
func (s *OrderService) CreateOrder(ctx context.Context, date, clientCPF string, lines []models.OrderLine) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	start := time.Now()
	defer func() {
		util.OrderCommitLatency.Observe(time.Since(start).Seconds())
	}()

	if err := Validate(date, clientCPF, lines); err != nil {
		util.OrdersFailedTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	if s.cache != nil {
		locked, err := s.cache.AcquireLock(ctx, "orders:create", 10*time.Second)
		if err != nil {
			s.logger.Warn("Failed to acquire create lock", zap.Error(err))
		} else if locked {
			defer func() {
				if err := s.cache.ReleaseLock(ctx, "orders:create"); err != nil {
					s.logger.Warn("Failed to release create lock", zap.Error(err))
				}
			}()
		}
	}

	loaded, err := s.orders.ListHeaders(ctx)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("store_error").Inc()
		return nil, fmt.Errorf("failed to load orders for id generation: %w", err)
	}

	order := &models.Order{
		ID:        NextOrderID(loaded),
		Date:      date,
		ClientCPF: clientCPF,
		Lines:     lines,
	}

	if err := s.commitAggregate(ctx, order); err != nil {
		util.OrdersFailedTotal.WithLabelValues("store_error").Inc()
		return nil, err
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("client_cpf", order.ClientCPF),
		zap.Int("lines", len(order.Lines)))

	s.invalidateCache(ctx)
	s.publishCreated(ctx, order)

	return order, nil
}

// UpdateOrder overwrites the header under the order's existing
// identifier, then replaces the whole item subcollection: delete all
// persisted items, reinsert the supplied ones. Never a diff.
func (s *OrderService) UpdateOrder(ctx context.Context, order *models.Order) error {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateOrder")
	defer span.End()

	if err := Validate(order.Date, order.ClientCPF, order.Lines); err != nil {
		util.OrdersFailedTotal.WithLabelValues("validation").Inc()
		return err
	}

	if err := s.orders.PutHeader(ctx, order); err != nil {
		util.OrdersFailedTotal.WithLabelValues("store_error").Inc()
		return err
	}
	if err := s.orders.DeleteItems(ctx, order.ID); err != nil {
		util.OrdersFailedTotal.WithLabelValues("store_error").Inc()
		return err
	}
	for _, line := range order.Lines {
		if err := s.orders.InsertItem(ctx, order.ID, line); err != nil {
			util.OrdersFailedTotal.WithLabelValues("store_error").Inc()
			return err
		}
	}

	util.OrdersUpdatedTotal.Inc()
	s.logger.Info("Order updated",
		zap.String("order_id", order.ID),
		zap.Int("lines", len(order.Lines)))

	s.invalidateCache(ctx)
	s.publishUpdated(ctx, order)

	return nil
}

// DeleteOrder removes the item subcollection first, then the header.
// Deleting the header first could orphan items if the batch delete
// failed, so the order of the two steps is load-bearing. A nonexistent
// id deletes nothing and returns nil.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	ctx, span := util.StartSpan(ctx, "OrderService.DeleteOrder")
	defer span.End()

	if err := s.orders.DeleteItems(ctx, orderID); err != nil {
		util.OrdersFailedTotal.WithLabelValues("store_error").Inc()
		return err
	}
	if err := s.orders.DeleteHeader(ctx, orderID); err != nil {
		util.OrdersFailedTotal.WithLabelValues("store_error").Inc()
		return err
	}

	util.OrdersDeletedTotal.Inc()
	s.logger.Info("Order deleted", zap.String("order_id", orderID))

	s.invalidateCache(ctx)
	s.publishDeleted(ctx, orderID)

	return nil
}

// GetOrder loads one order with its items.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orders.GetHeader(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Lines, err = s.orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders loads every order header and, for each, its full item
// subcollection. Served from the Redis cache when one is configured and
// fresh; the cache is dropped on every successful mutation.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ListOrders")
	defer span.End()

	if s.cache != nil {
		if payload, ok, err := s.cache.GetOrderList(ctx); err == nil && ok {
			var orders []models.Order
			if err := json.Unmarshal(payload, &orders); err == nil {
				util.OrderCacheHits.Inc()
				return orders, nil
			}
		}
		util.OrderCacheMisses.Inc()
	}

	headers, err := s.orders.ListHeaders(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(headers))
	for _, header := range headers {
		lines, err := s.orders.ListItems(ctx, header.ID)
		if err != nil {
			return nil, err
		}
		header.Lines = lines
		orders = append(orders, header)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(orders); err == nil {
			if err := s.cache.SetOrderList(ctx, payload); err != nil {
				s.logger.Warn("Failed to cache order list", zap.Error(err))
			}
		}
	}

	return orders, nil
}

// ListOrdersByClient returns the orders referencing the given client.
func (s *OrderService) ListOrdersByClient(ctx context.Context, clientCPF string) ([]models.Order, error) {
	orders, err := s.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.ClientCPF == clientCPF {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

// commitAggregate writes the header, then each line, each write awaited
// before the next begins.
func (s *OrderService) commitAggregate(ctx context.Context, order *models.Order) error {
	if err := s.orders.PutHeader(ctx, order); err != nil {
		return err
	}
	for _, line := range order.Lines {
		if err := s.orders.InsertItem(ctx, order.ID, line); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrderService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateOrderList(ctx); err != nil {
		s.logger.Warn("Failed to invalidate order cache", zap.Error(err))
	}
}

func (s *OrderService) publishCreated(ctx context.Context, order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := &models.OrderCreatedEvent{
		BaseEvent: newBaseEvent(models.EventTypeOrderCreated),
		OrderID:   order.ID,
		ClientCPF: order.ClientCPF,
		Date:      order.Date,
		Lines:     models.LinesData(order.Lines),
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
	}
}

func (s *OrderService) publishUpdated(ctx context.Context, order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := &models.OrderUpdatedEvent{
		BaseEvent: newBaseEvent(models.EventTypeOrderUpdated),
		OrderID:   order.ID,
		ClientCPF: order.ClientCPF,
		Date:      order.Date,
		Lines:     models.LinesData(order.Lines),
	}
	if err := s.publisher.PublishOrderUpdated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderUpdated event", zap.Error(err))
	}
}

func (s *OrderService) publishDeleted(ctx context.Context, orderID string) {
	if s.publisher == nil {
		return
	}
	event := &models.OrderDeletedEvent{
		BaseEvent: newBaseEvent(models.EventTypeOrderDeleted),
		OrderID:   orderID,
	}
	if err := s.publisher.PublishOrderDeleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderDeleted event", zap.Error(err))
	}
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}
