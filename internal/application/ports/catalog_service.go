package ports

import (
	"context"

	"github.com/posdesk/pos-engine/internal/domain/catalog"
)

type CatalogService interface {
	Search(ctx context.Context, query string) ([]catalog.Product, error)
}
