package service

import (
	"context"

	"cafe-service/internal/models"
	"cafe-service/internal/repository"
	"cafe-service/internal/util"

	"go.uber.org/zap"
)

// ClientService handles client CRUD. Deletion is a soft delete: the
// record stays and only its status flips, because orders reference
// clients by CPF and must keep resolving.
type ClientService struct {
	clients *repository.ClientRepository
	logger  *zap.Logger
}

// NewClientService creates a new client service.
func NewClientService(clients *repository.ClientRepository) *ClientService {
	return &ClientService{
		clients: clients,
		logger:  util.GetLogger(),
	}
}

// CreateClient registers a client; status defaults to active.
func (s *ClientService) CreateClient(ctx context.Context, client *models.Client) error {
	if err := s.clients.Insert(ctx, client); err != nil {
		return err
	}
	s.logger.Info("Client created", zap.String("cpf", client.CPF))
	return nil
}

// UpdateClient overwrites the client's contact fields.
func (s *ClientService) UpdateClient(ctx context.Context, client *models.Client) error {
	return s.clients.Update(ctx, client)
}

// GetClient returns one client by CPF.
func (s *ClientService) GetClient(ctx context.Context, cpf string) (*models.Client, error) {
	return s.clients.Get(ctx, cpf)
}

// ListClients returns every client regardless of status.
func (s *ClientService) ListClients(ctx context.Context) ([]models.Client, error) {
	return s.clients.List(ctx)
}

// ListActiveClients returns only clients eligible for new orders.
func (s *ClientService) ListActiveClients(ctx context.Context) ([]models.Client, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if c.Active() {
			active = append(active, c)
		}
	}
	return active, nil
}

// DeactivateClient soft-deletes the client.
func (s *ClientService) DeactivateClient(ctx context.Context, cpf string) error {
	if err := s.clients.Deactivate(ctx, cpf); err != nil {
		return err
	}
	util.ClientsDeactivatedTotal.Inc()
	s.logger.Info("Client deactivated", zap.String("cpf", cpf))
	return nil
}
