package catalog

import (
	"context"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
)

type SearchUseCase interface {
	SearchMenuItems(ctx context.Context, req dto.SearchMenuItemsRequest) (*dto.SearchMenuItemsResponse, error)
}

type Service interface {
	GetMenuItemsByIDs(ctx context.Context, ids []int) (found []domain.MenuItem, notFoundIDs []int, err error)
}

type Repository interface {
	FindByIDs(ctx context.Context, ids []int) ([]domain.MenuItem, error)
}
