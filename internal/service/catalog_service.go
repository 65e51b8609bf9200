package service

import (
	"context"

	"bibliotec/internal/db"
	"bibliotec/internal/repository"
)

type CatalogService struct {
	books repository.BookRepository
}

func NewCatalogService(books repository.BookRepository) *CatalogService {
	return &CatalogService{books: books}
}

func (s *CatalogService) ListBooks(ctx context.Context, search, category string) ([]db.Book, error) {
	return s.books.List(ctx, search, category)
}

func (s *CatalogService) GetBook(ctx context.Context, id int) (*db.Book, error) {
	return s.books.GetByID(ctx, id)
}
