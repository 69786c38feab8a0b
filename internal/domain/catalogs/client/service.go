package client

import (
	"context"
	"fmt"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/folio"
	"logiprofit/internal/core/id"
	"logiprofit/internal/domain"
)

// Service provides business logic for the Client catalog.
type Service struct {
	*domain.CatalogService[*Client]
	repo    Repository
	numbers folio.Generator
}

// NewService creates a new Client service.
// In Database-per-Tenant, TxManager is obtained from context.
func NewService(repo Repository, numbers folio.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Client]{
		Repo:       repo,
		EntityName: "client",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numbers:        numbers,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	base.Hooks().On(domain.BeforeUpdate, svc.checkRFCUnique)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, c *Client) error {
	if c.Code == "" {
		code, err := s.numbers.NextFolio(ctx, folio.DefaultConfig("CLI"))
		if err != nil {
			return fmt.Errorf("generate client code: %w", err)
		}
		c.Code = code
	}
	return s.checkRFCUnique(ctx, c)
}

func (s *Service) checkRFCUnique(ctx context.Context, c *Client) error {
	if c.RFC == nil || *c.RFC == "" {
		return nil
	}
	existing, err := s.repo.FindByRFC(ctx, *c.RFC)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID {
		return apperror.NewConflict("client with this RFC already exists").
			WithDetail("rfc", *c.RFC)
	}
	return nil
}

// FindByRFC retrieves a client by tax id.
func (s *Service) FindByRFC(ctx context.Context, rfc string) (*Client, error) {
	return s.repo.FindByRFC(ctx, rfc)
}

// ExistsLive reports whether the client id resolves to a live record.
func (s *Service) ExistsLive(ctx context.Context, clientID id.ID) (bool, error) {
	c, err := s.repo.GetByID(ctx, clientID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return !c.DeletionMark, nil
}
