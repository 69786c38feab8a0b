package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/domain/catalogs/client"
	"logiprofit/internal/infrastructure/storage/postgres"
)

const clientTable = "cat_clients"

// ClientRepo implements client.Repository.
type ClientRepo struct {
	*BaseCatalogRepo[*client.Client]
}

// NewClientRepo creates a new client repository.
func NewClientRepo() *ClientRepo {
	return &ClientRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*client.Client](
			clientTable,
			postgres.ExtractDBColumns[client.Client](),
			func() *client.Client { return &client.Client{} },
		),
	}
}

// FindByRFC retrieves client by tax id.
func (r *ClientRepo) FindByRFC(ctx context.Context, rfc string) (*client.Client, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"rfc": rfc}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("client", rfc)
		}
		return nil, err
	}
	return c, nil
}
