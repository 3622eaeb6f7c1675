package memory

import (
	"context"
	"sync"

	"library-selfcheck/internal/domain"
)

// BookRepository is an in-memory book store. Each instance owns its
// identity counter, advanced only on a successful add.
type BookRepository struct {
	mu     sync.Mutex
	byID   map[int]*domain.Book
	order  []*domain.Book
	nextID int
}

func NewBookRepository() *BookRepository {
	return &BookRepository{
		byID:   make(map[int]*domain.Book),
		nextID: 1,
	}
}

func (r *BookRepository) AddBook(ctx context.Context, author, title, callNumber string) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, err := domain.NewBook(r.nextID, author, title, callNumber)
	if err != nil {
		return nil, err
	}
	r.nextID++
	r.byID[book.ID()] = book
	r.order = append(r.order, book)
	return book, nil
}

func (r *BookRepository) BookByID(ctx context.Context, id int) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *BookRepository) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Book, len(r.order))
	copy(out, r.order)
	return out, nil
}

func (r *BookRepository) FindBooksByAuthor(ctx context.Context, author string) ([]*domain.Book, error) {
	if author == "" {
		return nil, &domain.ValidationError{Reason: "author query is required"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Book
	for _, b := range r.order {
		if b.Author() == author {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BookRepository) FindBooksByTitle(ctx context.Context, title string) ([]*domain.Book, error) {
	if title == "" {
		return nil, &domain.ValidationError{Reason: "title query is required"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Book
	for _, b := range r.order {
		if b.Title() == title {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BookRepository) SaveBook(ctx context.Context, book *domain.Book) error {
	if book == nil {
		return &domain.ValidationError{Reason: "book is required"}
	}
	// Entities are mutated in place; nothing further to persist
	return nil
}

// Restore re-registers a hydrated book, keeping the counter ahead of it.
// Used by persistent backends that load their catalog at startup.
func (r *BookRepository) Restore(book *domain.Book) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[book.ID()] = book
	r.order = append(r.order, book)
	if book.ID() >= r.nextID {
		r.nextID = book.ID() + 1
	}
}
