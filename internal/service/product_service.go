package service

import (
	"context"

	"cafe-service/internal/models"
	"cafe-service/internal/repository"
	"cafe-service/internal/util"

	"go.uber.org/zap"
)

// ProductService handles catalog CRUD. Unlike clients, products are
// physically removed on delete; lines of existing orders then hold a
// key that no longer resolves.
type ProductService struct {
	products *repository.ProductRepository
	logger   *zap.Logger
}

// NewProductService creates a new product service.
func NewProductService(products *repository.ProductRepository) *ProductService {
	return &ProductService{
		products: products,
		logger:   util.GetLogger(),
	}
}

// CreateProduct adds a product to the catalog.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.products.Insert(ctx, product); err != nil {
		return err
	}
	s.logger.Info("Product created", zap.String("product_id", product.ID))
	return nil
}

// UpdateProduct overwrites the product document.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	return s.products.Update(ctx, product)
}

// GetProduct returns one product by key.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.products.Get(ctx, id)
}

// ListProducts returns the whole catalog.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

// DeleteProduct hard-deletes the product.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	util.ProductsDeletedTotal.Inc()
	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}

// ProductKeySet builds a composer lookup from a catalog snapshot.
func ProductKeySet(products []models.Product) ProductLookup {
	keys := make(map[string]struct{}, len(products))
	for _, p := range products {
		keys[p.ID] = struct{}{}
	}
	return func(productID string) bool {
		_, ok := keys[productID]
		return ok
	}
}
