package models

// Client represents a coffee-shop customer, keyed by CPF
type Client struct {
	CPF       string `json:"cpf"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Instagram string `json:"instagram"`
	Status    string `json:"status"`
}

// Client statuses. Clients are never physically removed; deletion
// flips the status so historical orders keep resolving their client.
const (
	ClientStatusActive   = "ACTIVE"
	ClientStatusInactive = "INACTIVE"
)

// Active reports whether the client can be attached to new orders.
func (c *Client) Active() bool {
	return c.Status == ClientStatusActive
}

// Product represents a coffee product in the catalog
type Product struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	BeanType    string `json:"bean_type"`
	RoastLevel  string `json:"roast_level"`
	PriceCents  int64  `json:"price_cents"`
	Blend       bool   `json:"blend"`
}

// OrderLine is one (product, quantity) pair inside an order.
// LineID identifies the line while it only exists in memory; it is
// never persisted. Once stored, a line gets a store-assigned sub-key
// inside its parent order's item subcollection instead.
type OrderLine struct {
	LineID    string `json:"line_id,omitempty"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// SameValue reports structural equality on the persisted fields,
// ignoring the transient line ID.
func (l OrderLine) SameValue(o OrderLine) bool {
	return l.ProductID == o.ProductID && l.Quantity == o.Quantity
}

// Order is an order header together with its owned line items
type Order struct {
	ID        string      `json:"id"`
	Date      string      `json:"date"`
	ClientCPF string      `json:"client_cpf"`
	Lines     []OrderLine `json:"lines"`
}
