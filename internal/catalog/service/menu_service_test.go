package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"orderdesk/internal/domain"
)

type mockRepository struct {
	FindByIDsFunc func(ctx context.Context, ids []int) ([]domain.MenuItem, error)
}

func (m *mockRepository) FindByIDs(ctx context.Context, ids []int) ([]domain.MenuItem, error) {
	return m.FindByIDsFunc(ctx, ids)
}

func TestGetMenuItemsByIDs_AllFound(t *testing.T) {
	repo := &mockRepository{
		FindByIDsFunc: func(ctx context.Context, ids []int) ([]domain.MenuItem, error) {
			return []domain.MenuItem{
				{ID: 1, Name: "Samosa", Price: decimal.RequireFromString("5.50")},
				{ID: 2, Name: "Biryani", Price: decimal.RequireFromString("16.00")},
			}, nil
		},
	}

	svc := NewService(repo)

	found, notFound, err := svc.GetMenuItemsByIDs(context.Background(), []int{1, 2})

	assert.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Empty(t, notFound)
}

func TestGetMenuItemsByIDs_SomeMissing(t *testing.T) {
	repo := &mockRepository{
		FindByIDsFunc: func(ctx context.Context, ids []int) ([]domain.MenuItem, error) {
			return []domain.MenuItem{
				{ID: 1, Name: "Samosa", Price: decimal.RequireFromString("5.50")},
			}, nil
		},
	}

	svc := NewService(repo)

	found, notFound, err := svc.GetMenuItemsByIDs(context.Background(), []int{1, 7, 9})

	assert.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, []int{7, 9}, notFound)
}

func TestGetMenuItemsByIDs_RepositoryError(t *testing.T) {
	repo := &mockRepository{
		FindByIDsFunc: func(ctx context.Context, ids []int) ([]domain.MenuItem, error) {
			return nil, errors.New("connection lost")
		},
	}

	svc := NewService(repo)

	_, _, err := svc.GetMenuItemsByIDs(context.Background(), []int{1})

	assert.Error(t, err)
}
