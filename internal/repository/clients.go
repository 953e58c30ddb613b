package repository

import (
	"context"
	"fmt"

	"cafe-service/internal/docstore"
	"cafe-service/internal/models"
)

// Client document fields.
const (
	clientFieldCPF       = "cpf"
	clientFieldName      = "nome"
	clientFieldPhone     = "telefone"
	clientFieldAddress   = "endereco"
	clientFieldInstagram = "instagram"
	clientFieldStatus    = "status"
)

// ClientRepository persists clients, keyed by CPF.
type ClientRepository struct {
	store docstore.Store
}

// NewClientRepository creates a client repository over the given store.
func NewClientRepository(store docstore.Store) *ClientRepository {
	return &ClientRepository{store: store}
}

// Insert creates or overwrites a client document.
func (r *ClientRepository) Insert(ctx context.Context, client *models.Client) error {
	if client.Status == "" {
		client.Status = models.ClientStatusActive
	}
	fields := docstore.Fields{
		clientFieldCPF:       client.CPF,
		clientFieldName:      client.Name,
		clientFieldPhone:     client.Phone,
		clientFieldAddress:   client.Address,
		clientFieldInstagram: client.Instagram,
		clientFieldStatus:    client.Status,
	}
	if err := r.store.Put(ctx, clientsCollection, client.CPF, fields); err != nil {
		return fmt.Errorf("failed to insert client %s: %w", client.CPF, err)
	}
	return nil
}

// Update overwrites the client document with the supplied fields.
// Status is not part of the update payload, so the stored status does
// not survive an update; callers that care must re-insert instead.
func (r *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	fields := docstore.Fields{
		clientFieldCPF:       client.CPF,
		clientFieldName:      client.Name,
		clientFieldPhone:     client.Phone,
		clientFieldAddress:   client.Address,
		clientFieldInstagram: client.Instagram,
	}
	if err := r.store.Put(ctx, clientsCollection, client.CPF, fields); err != nil {
		return fmt.Errorf("failed to update client %s: %w", client.CPF, err)
	}
	return nil
}

// Get returns the client at the given CPF.
func (r *ClientRepository) Get(ctx context.Context, cpf string) (*models.Client, error) {
	fields, err := r.store.Get(ctx, clientsCollection, cpf)
	if err != nil {
		return nil, fmt.Errorf("failed to get client %s: %w", cpf, err)
	}
	return decodeClient(cpf, fields), nil
}

// List returns every client, active or not.
func (r *ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	docs, err := r.store.List(ctx, clientsCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	clients := make([]models.Client, 0, len(docs))
	for _, doc := range docs {
		clients = append(clients, *decodeClient(doc.Key, doc.Fields))
	}
	return clients, nil
}

// Deactivate soft-deletes the client by flipping its status. The
// document itself stays so historical orders keep resolving.
func (r *ClientRepository) Deactivate(ctx context.Context, cpf string) error {
	fields, err := r.store.Get(ctx, clientsCollection, cpf)
	if err != nil {
		return fmt.Errorf("failed to load client %s: %w", cpf, err)
	}
	fields[clientFieldStatus] = models.ClientStatusInactive
	if err := r.store.Put(ctx, clientsCollection, cpf, fields); err != nil {
		return fmt.Errorf("failed to deactivate client %s: %w", cpf, err)
	}
	return nil
}

func decodeClient(key string, fields docstore.Fields) *models.Client {
	return &models.Client{
		CPF:       key,
		Name:      fieldString(fields, clientFieldName),
		Phone:     fieldString(fields, clientFieldPhone),
		Address:   fieldString(fields, clientFieldAddress),
		Instagram: fieldString(fields, clientFieldInstagram),
		Status:    fieldString(fields, clientFieldStatus),
	}
}
