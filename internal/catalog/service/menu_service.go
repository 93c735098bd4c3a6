package service

import (
	"context"

	"orderdesk/internal/domain"
)

type Repository interface {
	FindByIDs(ctx context.Context, ids []int) ([]domain.MenuItem, error)
}

type MenuService struct {
	repo Repository
}

func NewService(repo Repository) *MenuService {
	return &MenuService{repo: repo}
}

func (s *MenuService) GetMenuItemsByIDs(ctx context.Context, ids []int) ([]domain.MenuItem, []int, error) {
	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	foundSet := make(map[int]struct{}, len(found))
	for _, item := range found {
		foundSet[item.ID] = struct{}{}
	}

	var notFoundIDs []int
	for _, id := range ids {
		if _, ok := foundSet[id]; !ok {
			notFoundIDs = append(notFoundIDs, id)
		}
	}

	return found, notFoundIDs, nil
}
