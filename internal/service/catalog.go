package service

import (
	"context"

	"github.com/adilzhm/textbook-service/internal/model"
	"github.com/adilzhm/textbook-service/internal/repository"
	"go.uber.org/zap"
)

type CatalogService struct {
	log  *zap.Logger
	repo repository.Catalog
}

func NewCatalogService(repo repository.Catalog, log *zap.Logger) *CatalogService {
	return &CatalogService{
		log:  log,
		repo: repo,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) error {
	return s.repo.CreateCategory(ctx, name)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, name string) error {
	return s.repo.DeleteCategory(ctx, name)
}

func (s *CatalogService) ListBooks(ctx context.Context, category, search string) ([]model.Book, error) {
	books, err := s.repo.ListBooks(ctx, category)
	if err != nil {
		return nil, err
	}
	return model.FilterBooks(books, search), nil
}

func (s *CatalogService) CreateBook(ctx context.Context, book model.Book) error {
	return s.repo.CreateBook(ctx, book)
}

func (s *CatalogService) UpdateQuantity(ctx context.Context, bookID string, quantity int) error {
	return s.repo.UpdateQuantity(ctx, bookID, quantity)
}

func (s *CatalogService) DeleteBook(ctx context.Context, bookID string) error {
	return s.repo.DeleteBook(ctx, bookID)
}
