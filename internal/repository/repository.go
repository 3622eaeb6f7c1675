package repository

import (
	"context"
	"time"

	"library-selfcheck/internal/domain"
)

// Lookup misses are not errors: ByID methods return (nil, nil) when the
// entity is absent. Find methods reject empty query fields.

type BookRepository interface {
	// AddBook validates, assigns the next identity and stores the book
	AddBook(ctx context.Context, author, title, callNumber string) (*domain.Book, error)
	BookByID(ctx context.Context, id int) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	FindBooksByAuthor(ctx context.Context, author string) ([]*domain.Book, error)
	FindBooksByTitle(ctx context.Context, title string) ([]*domain.Book, error)
	// SaveBook persists state mutated outside the add path (returns,
	// repairs, disposals). A no-op for purely in-memory backends.
	SaveBook(ctx context.Context, book *domain.Book) error
}

type MemberRepository interface {
	AddMember(ctx context.Context, firstName, lastName, phone, email string) (*domain.Member, error)
	MemberByID(ctx context.Context, id int) (*domain.Member, error)
	ListMembers(ctx context.Context) ([]*domain.Member, error)
	FindMembersByLastName(ctx context.Context, lastName string) ([]*domain.Member, error)
	SaveMember(ctx context.Context, member *domain.Member) error
}

type LoanRepository interface {
	// CreateLoan builds a pending loan. It is not persisted and holds
	// identity 0 until committed.
	CreateLoan(ctx context.Context, member *domain.Member, book *domain.Book, borrowDate, dueDate time.Time) (*domain.Loan, error)
	// CommitLoan assigns the next identity, transitions the loan to
	// CURRENT, attaches it to its book and member, and persists it
	CommitLoan(ctx context.Context, loan *domain.Loan) error
	LoanByID(ctx context.Context, id int) (*domain.Loan, error)
	ListLoans(ctx context.Context) ([]*domain.Loan, error)
	// UpdateOverdueStatus checks every non-complete loan against asOf and
	// returns the loans that flipped to OVERDUE on this pass
	UpdateOverdueStatus(ctx context.Context, asOf time.Time) ([]*domain.Loan, error)
	FindOverdueLoans(ctx context.Context) ([]*domain.Loan, error)
	FindLoansByBorrower(ctx context.Context, member *domain.Member) ([]*domain.Loan, error)
	FindLoansByBookTitle(ctx context.Context, title string) ([]*domain.Loan, error)
	SaveLoan(ctx context.Context, loan *domain.Loan) error
}
