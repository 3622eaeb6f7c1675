package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"library-selfcheck/internal/domain"
	"library-selfcheck/internal/repository/memory"
)

type LoanRepository struct {
	db  *sql.DB
	mem *memory.LoanRepository
}

type loanRow struct {
	id         int
	bookID     int
	memberID   int
	borrowDate time.Time
	dueDate    time.Time
	state      string
}

func (r *LoanRepository) CreateLoan(ctx context.Context, member *domain.Member, book *domain.Book, borrowDate, dueDate time.Time) (*domain.Loan, error) {
	return r.mem.CreateLoan(ctx, member, book, borrowDate, dueDate)
}

func (r *LoanRepository) CommitLoan(ctx context.Context, loan *domain.Loan) error {
	if err := r.mem.CommitLoan(ctx, loan); err != nil {
		return err
	}
	query := `INSERT INTO loans (id, book_id, member_id, borrow_date, due_date, state) VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, loan.ID(), loan.Book().ID(), loan.Borrower().ID(), loan.BorrowDate(), loan.DueDate(), loan.State()); err != nil {
		return fmt.Errorf("failed to persist loan %d: %w", loan.ID(), err)
	}
	bookQuery := `UPDATE books SET state = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, bookQuery, loan.Book().State(), loan.Book().ID()); err != nil {
		return fmt.Errorf("failed to persist book state for loan %d: %w", loan.ID(), err)
	}
	return nil
}

func (r *LoanRepository) LoanByID(ctx context.Context, id int) (*domain.Loan, error) {
	return r.mem.LoanByID(ctx, id)
}

func (r *LoanRepository) ListLoans(ctx context.Context) ([]*domain.Loan, error) {
	return r.mem.ListLoans(ctx)
}

func (r *LoanRepository) UpdateOverdueStatus(ctx context.Context, asOf time.Time) ([]*domain.Loan, error) {
	flipped, err := r.mem.UpdateOverdueStatus(ctx, asOf)
	if err != nil {
		return flipped, err
	}
	for _, loan := range flipped {
		if err := r.SaveLoan(ctx, loan); err != nil {
			return flipped, err
		}
	}
	return flipped, nil
}

func (r *LoanRepository) FindOverdueLoans(ctx context.Context) ([]*domain.Loan, error) {
	return r.mem.FindOverdueLoans(ctx)
}

func (r *LoanRepository) FindLoansByBorrower(ctx context.Context, member *domain.Member) ([]*domain.Loan, error) {
	return r.mem.FindLoansByBorrower(ctx, member)
}

func (r *LoanRepository) FindLoansByBookTitle(ctx context.Context, title string) ([]*domain.Loan, error) {
	return r.mem.FindLoansByBookTitle(ctx, title)
}

func (r *LoanRepository) SaveLoan(ctx context.Context, loan *domain.Loan) error {
	if loan == nil {
		return &domain.ValidationError{Reason: "loan is required"}
	}
	query := `UPDATE loans SET state = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, loan.State(), loan.ID()); err != nil {
		return fmt.Errorf("failed to save loan %d: %w", loan.ID(), err)
	}
	return nil
}
