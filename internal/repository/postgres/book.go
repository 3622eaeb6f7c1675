package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"library-selfcheck/internal/domain"
	"library-selfcheck/internal/repository/memory"
)

type BookRepository struct {
	db  *sql.DB
	mem *memory.BookRepository
}

func (r *BookRepository) AddBook(ctx context.Context, author, title, callNumber string) (*domain.Book, error) {
	book, err := r.mem.AddBook(ctx, author, title, callNumber)
	if err != nil {
		return nil, err
	}
	query := `INSERT INTO books (id, author, title, call_number, state) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, book.ID(), book.Author(), book.Title(), book.CallNumber(), book.State()); err != nil {
		return nil, fmt.Errorf("failed to persist book %d: %w", book.ID(), err)
	}
	return book, nil
}

func (r *BookRepository) BookByID(ctx context.Context, id int) (*domain.Book, error) {
	return r.mem.BookByID(ctx, id)
}

func (r *BookRepository) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return r.mem.ListBooks(ctx)
}

func (r *BookRepository) FindBooksByAuthor(ctx context.Context, author string) ([]*domain.Book, error) {
	return r.mem.FindBooksByAuthor(ctx, author)
}

func (r *BookRepository) FindBooksByTitle(ctx context.Context, title string) ([]*domain.Book, error) {
	return r.mem.FindBooksByTitle(ctx, title)
}

func (r *BookRepository) SaveBook(ctx context.Context, book *domain.Book) error {
	if book == nil {
		return &domain.ValidationError{Reason: "book is required"}
	}
	query := `UPDATE books SET state = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, book.State(), book.ID()); err != nil {
		return fmt.Errorf("failed to save book %d: %w", book.ID(), err)
	}
	return nil
}
