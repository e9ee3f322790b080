package services

import (
	"context"
	"fmt"

	"invoice-backend/internal/models"
	"invoice-backend/internal/repositories"
)

type ItemService struct {
	Repo *repositories.ItemRepository
}

func NewItemService(repo *repositories.ItemRepository) *ItemService {
	return &ItemService{Repo: repo}
}

func (s *ItemService) CreateItem(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: item name is required", models.ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: item price must be non-negative", models.ErrValidation)
	}

	item := &models.Item{
		Name:  req.Name,
		SKU:   req.SKU,
		Price: req.Price,
	}

	if err := s.Repo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *ItemService) GetItem(ctx context.Context, id int) (*models.Item, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ItemService) ListItems(ctx context.Context) ([]*models.Item, error) {
	return s.Repo.List(ctx)
}

func (s *ItemService) UpdateItem(ctx context.Context, id int, req *models.UpdateItemRequest) (*models.Item, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: item name is required", models.ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: item price must be non-negative", models.ErrValidation)
	}

	item := &models.Item{
		ID:    id,
		Name:  req.Name,
		SKU:   req.SKU,
		Price: req.Price,
	}

	if err := s.Repo.Update(ctx, item); err != nil {
		return nil, err
	}

	return s.Repo.Get(ctx, id)
}

func (s *ItemService) DeleteItem(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
