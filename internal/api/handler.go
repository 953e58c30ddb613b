package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"cafe-service/internal/docstore"
	"cafe-service/internal/models"
	"cafe-service/internal/service"
	"cafe-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	orders   *service.OrderService
	clients  *service.ClientService
	products *service.ProductService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	orders *service.OrderService,
	clients *service.ClientService,
	products *service.ProductService,
) *Handler {
	return &Handler{
		orders:   orders,
		clients:  clients,
		products: products,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/clients", h.createClient)
		v1.GET("/clients", h.listClients)
		v1.GET("/clients/:cpf", h.getClient)
		v1.PUT("/clients/:cpf", h.updateClient)
		v1.DELETE("/clients/:cpf", h.deactivateClient)

		v1.POST("/products", h.createProduct)
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)
		v1.PUT("/products/:id", h.updateProduct)
		v1.DELETE("/products/:id", h.deleteProduct)

		v1.POST("/orders", h.createOrder)
		v1.GET("/orders", h.listOrders)
		v1.GET("/orders/:id", h.getOrder)
		v1.PUT("/orders/:id", h.updateOrder)
		v1.DELETE("/orders/:id", h.deleteOrder)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// createClient handles client registration
func (h *Handler) createClient(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if client.CPF == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cpf is required"})
		return
	}

	if err := h.clients.CreateClient(c.Request.Context(), &client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, client)
}

// listClients handles client listing; ?active=true filters to clients
// eligible for new orders.
func (h *Handler) listClients(c *gin.Context) {
	var (
		clients []models.Client
		err     error
	)
	if c.Query("active") == "true" {
		clients, err = h.clients.ListActiveClients(c.Request.Context())
	} else {
		clients, err = h.clients.ListClients(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// getClient handles get client by CPF
func (h *Handler) getClient(c *gin.Context) {
	client, err := h.clients.GetClient(c.Request.Context(), c.Param("cpf"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, docstore.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Client not found", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, client)
}

// updateClient handles client updates
func (h *Handler) updateClient(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	client.CPF = c.Param("cpf")

	if err := h.clients.UpdateClient(c.Request.Context(), &client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, client)
}

// deactivateClient handles client soft deletion
func (h *Handler) deactivateClient(c *gin.Context) {
	if err := h.clients.DeactivateClient(c.Request.Context(), c.Param("cpf")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, docstore.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Failed to deactivate client", "details": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// createProduct handles product creation
func (h *Handler) createProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if product.ID == "" || product.PriceCents < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required and price must be non-negative"})
		return
	}

	if err := h.products.CreateProduct(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// listProducts handles product listing
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.products.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// getProduct handles get product by ID
func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, docstore.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Product not found", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// updateProduct handles product updates
func (h *Handler) updateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	product.ID = c.Param("id")

	if err := h.products.UpdateProduct(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// deleteProduct handles product hard deletion
func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.products.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product", "details": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateOrderRequest represents a request to create an order. Quantities
// arrive as text, exactly as typed into the quantity field, and are
// validated by the line composer.
type CreateOrderRequest struct {
	Date      string             `json:"date"`
	ClientCPF string             `json:"client_cpf"`
	Items     []OrderItemRequest `json:"items"`
}

// OrderItemRequest represents one requested line
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  string `json:"quantity"`
}

// createOrder handles order creation: compose lines, then commit the
// aggregate.
func (h *Handler) createOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	lines, ok := h.composeLines(c, req.Items)
	if !ok {
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), req.Date, req.ClientCPF, lines)
	if err != nil {
		h.orderError(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

// listOrders handles order listing; ?client_cpf= filters by client.
func (h *Handler) listOrders(c *gin.Context) {
	var (
		orders []models.Order
		err    error
	)
	if cpf := c.Query("client_cpf"); cpf != "" {
		orders, err = h.orders.ListOrdersByClient(c.Request.Context(), cpf)
	} else {
		orders, err = h.orders.ListOrders(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// getOrder handles get order by ID
func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, docstore.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Order not found", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

// updateOrder replaces the order's header and whole item set.
func (h *Handler) updateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	lines, ok := h.composeLines(c, req.Items)
	if !ok {
		return
	}

	order := &models.Order{
		ID:        c.Param("id"),
		Date:      req.Date,
		ClientCPF: req.ClientCPF,
		Lines:     lines,
	}
	if err := h.orders.UpdateOrder(c.Request.Context(), order); err != nil {
		h.orderError(c, err, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// deleteOrder handles order deletion
func (h *Handler) deleteOrder(c *gin.Context) {
	if err := h.orders.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order", "details": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// composeLines runs the request items through a line composer resolving
// against the current catalog. Writes the error response itself when
// composition fails.
func (h *Handler) composeLines(c *gin.Context, items []OrderItemRequest) ([]models.OrderLine, bool) {
	products, err := h.products.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products", "details": err.Error()})
		return nil, false
	}

	composer := service.NewLineComposer(service.ProductKeySet(products))
	for _, item := range items {
		if _, err := composer.AddLine(item.ProductID, item.Quantity); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order item", "details": err.Error()})
			return nil, false
		}
	}
	return composer.Snapshot(), true
}

func (h *Handler) orderError(c *gin.Context, err error, msg string) {
	status := http.StatusInternalServerError
	if service.IsValidationError(err) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": msg, "details": err.Error()})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
