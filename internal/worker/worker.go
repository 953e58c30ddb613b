package worker

import (
	"context"
	"log"

	"cafe-service/internal/broker"
	"cafe-service/internal/redisclient"
)

// CacheWorker listens for order lifecycle events and drops the Redis
// order-list cache, so mutations made by other processes become visible
// on the next list here.
type CacheWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
}

// NewCacheWorker creates a new cache worker.
func NewCacheWorker(consumer *broker.Consumer, cache *redisclient.Client) *CacheWorker {
	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderChanged(func(ctx context.Context, eventType, orderID string) error {
		log.Printf("Invalidating order cache: event=%s order=%s", eventType, orderID)
		return cache.InvalidateOrderList(ctx)
	})

	return &CacheWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
	}
}

// Start starts the worker
func (w *CacheWorker) Start(ctx context.Context) error {
	log.Println("Starting cache worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *CacheWorker) Stop() error {
	log.Println("Stopping cache worker...")
	return w.consumer.Close()
}
