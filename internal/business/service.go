package business

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=business
type Repository interface {
	FindClientByBusinessID(ctx context.Context, businessID uuid.UUID) (*Client, error)
	CreateClient(ctx context.Context, client *Client) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ClientByBusinessID returns the registered client for a counterparty
// business, or nil if the business is not a client.
func (s *Service) ClientByBusinessID(ctx context.Context, businessID uuid.UUID) (*Client, error) {
	return s.repo.FindClientByBusinessID(ctx, businessID)
}

// Register records a counterparty business as a client of the owner.
func (s *Service) Register(ctx context.Context, ownerID, businessID uuid.UUID, name string) (*Client, error) {
	client := &Client{
		OwnerID:    ownerID,
		BusinessID: businessID,
		Name:       name,
	}
	if err := s.repo.CreateClient(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}
