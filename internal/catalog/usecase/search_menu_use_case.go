package usecase

import (
	"context"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
)

type Service interface {
	GetMenuItemsByIDs(ctx context.Context, ids []int) (found []domain.MenuItem, notFoundIDs []int, err error)
}

type SearchUseCase struct {
	service Service
}

func NewSearchUseCase(service Service) *SearchUseCase {
	return &SearchUseCase{service: service}
}

func (uc *SearchUseCase) SearchMenuItems(ctx context.Context, req dto.SearchMenuItemsRequest) (*dto.SearchMenuItemsResponse, error) {
	found, notFoundIDs, err := uc.service.GetMenuItemsByIDs(ctx, req.MenuItemIDs)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MenuItemDTO, 0, len(found))
	for _, item := range found {
		items = append(items, dto.MenuItemDTO{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price.StringFixed(2),
			Category:    item.Category,
			IsActive:    item.IsActive,
		})
	}

	if notFoundIDs == nil {
		notFoundIDs = []int{}
	}

	return &dto.SearchMenuItemsResponse{
		Items:    items,
		NotFound: notFoundIDs,
	}, nil
}
