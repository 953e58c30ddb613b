// Package repository maps entity records to and from collection-store
// documents. Collection names and persisted field names follow the
// layout the mobile client already writes, so both talk to the same data.
package repository

import "cafe-service/internal/docstore"

// Collection paths.
const (
	clientsCollection  = "clientes"
	productsCollection = "produtos"
	ordersCollection   = "pedidos"
)

func fieldString(f docstore.Fields, name string) string {
	if v, ok := f[name].(string); ok {
		return v
	}
	return ""
}

// fieldInt tolerates the numeric types a JSON round trip can produce.
func fieldInt(f docstore.Fields, name string) int {
	switch v := f[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func fieldInt64(f docstore.Fields, name string) int64 {
	switch v := f[name].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

func fieldBool(f docstore.Fields, name string) bool {
	if v, ok := f[name].(bool); ok {
		return v
	}
	return false
}
