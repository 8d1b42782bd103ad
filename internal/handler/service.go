package handler

import (
	"context"

	"github.com/adilzhm/textbook-service/internal/model"
	"github.com/adilzhm/textbook-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CatalogService interface {
	ListCategories(ctx context.Context) ([]string, error)
	CreateCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, name string) error
	ListBooks(ctx context.Context, category, search string) ([]model.Book, error)
	CreateBook(ctx context.Context, book model.Book) error
	UpdateQuantity(ctx context.Context, bookID string, quantity int) error
	DeleteBook(ctx context.Context, bookID string) error
}

type RequestService interface {
	CreateRequest(ctx context.Context, req model.CreateRequestRequest) (model.BookRequest, error)
	ListByStudent(ctx context.Context, username string) ([]model.StudentRequest, error)
	ListPending(ctx context.Context) ([]model.StudentRequest, error)
	ProcessRequest(ctx context.Context, requestID int, status model.Status) (model.BookRequest, error)
	DeleteByStudent(ctx context.Context, username string) error
	DeleteAllPending(ctx context.Context) error
}

var (
	_ CatalogService = (*service.CatalogService)(nil)
	_ RequestService = (*service.RequestService)(nil)
)
