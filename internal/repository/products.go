package repository

import (
	"context"
	"fmt"

	"cafe-service/internal/docstore"
	"cafe-service/internal/models"
)

// Product document fields.
const (
	productFieldID          = "id_produto"
	productFieldDescription = "descricao"
	productFieldBeanType    = "tipoDoGrao"
	productFieldRoastLevel  = "pontoDaTorra"
	productFieldPrice       = "valor"
	productFieldBlend       = "blend"
)

// ProductRepository persists catalog products.
type ProductRepository struct {
	store docstore.Store
}

// NewProductRepository creates a product repository over the given store.
func NewProductRepository(store docstore.Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// Insert creates or overwrites a product document.
func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	if err := r.store.Put(ctx, productsCollection, product.ID, encodeProduct(product)); err != nil {
		return fmt.Errorf("failed to insert product %s: %w", product.ID, err)
	}
	return nil
}

// Update overwrites the product document.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	if err := r.store.Put(ctx, productsCollection, product.ID, encodeProduct(product)); err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ID, err)
	}
	return nil
}

// Get returns the product at the given key.
func (r *ProductRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	fields, err := r.store.Get(ctx, productsCollection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return decodeProduct(id, fields), nil
}

// List returns every product in the catalog.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	docs, err := r.store.List(ctx, productsCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	products := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, *decodeProduct(doc.Key, doc.Fields))
	}
	return products, nil
}

// Delete physically removes the product. Order lines referencing it
// keep only the key and will no longer resolve a description.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, productsCollection, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

func encodeProduct(product *models.Product) docstore.Fields {
	return docstore.Fields{
		productFieldID:          product.ID,
		productFieldDescription: product.Description,
		productFieldBeanType:    product.BeanType,
		productFieldRoastLevel:  product.RoastLevel,
		productFieldPrice:       product.PriceCents,
		productFieldBlend:       product.Blend,
	}
}

func decodeProduct(key string, fields docstore.Fields) *models.Product {
	return &models.Product{
		ID:          key,
		Description: fieldString(fields, productFieldDescription),
		BeanType:    fieldString(fields, productFieldBeanType),
		RoastLevel:  fieldString(fields, productFieldRoastLevel),
		PriceCents:  fieldInt64(fields, productFieldPrice),
		Blend:       fieldBool(fields, productFieldBlend),
	}
}
