package memory

import (
	"context"
	"sync"
	"time"

	"library-selfcheck/internal/domain"
)

// LoanRepository is an in-memory loan store. Only committed loans are held;
// pending loans live in the workflow session until confirmed.
type LoanRepository struct {
	mu     sync.Mutex
	byID   map[int]*domain.Loan
	order  []*domain.Loan
	nextID int
}

func NewLoanRepository() *LoanRepository {
	return &LoanRepository{
		byID:   make(map[int]*domain.Loan),
		nextID: 1,
	}
}

func (r *LoanRepository) CreateLoan(ctx context.Context, member *domain.Member, book *domain.Book, borrowDate, dueDate time.Time) (*domain.Loan, error) {
	return domain.NewLoan(book, member, borrowDate, dueDate)
}

func (r *LoanRepository) CommitLoan(ctx context.Context, loan *domain.Loan) error {
	if loan == nil {
		return &domain.ValidationError{Reason: "loan is required"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := loan.Commit(r.nextID); err != nil {
		return err
	}
	r.nextID++
	r.byID[loan.ID()] = loan
	r.order = append(r.order, loan)
	return nil
}

func (r *LoanRepository) LoanByID(ctx context.Context, id int) (*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *LoanRepository) ListLoans(ctx context.Context) ([]*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Loan, len(r.order))
	copy(out, r.order)
	return out, nil
}

func (r *LoanRepository) UpdateOverdueStatus(ctx context.Context, asOf time.Time) ([]*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var flipped []*domain.Loan
	for _, l := range r.order {
		if l.IsComplete() || l.IsOverdue() {
			continue
		}
		over, err := l.CheckOverdue(asOf)
		if err != nil {
			return flipped, err
		}
		if over {
			flipped = append(flipped, l)
		}
	}
	return flipped, nil
}

func (r *LoanRepository) FindOverdueLoans(ctx context.Context) ([]*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Loan
	for _, l := range r.order {
		if l.IsOverdue() {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *LoanRepository) FindLoansByBorrower(ctx context.Context, member *domain.Member) ([]*domain.Loan, error) {
	if member == nil {
		return nil, &domain.ValidationError{Reason: "member query is required"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Loan
	for _, l := range r.order {
		if l.Borrower().ID() == member.ID() {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *LoanRepository) FindLoansByBookTitle(ctx context.Context, title string) ([]*domain.Loan, error) {
	if title == "" {
		return nil, &domain.ValidationError{Reason: "title query is required"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Loan
	for _, l := range r.order {
		if l.Book().Title() == title {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *LoanRepository) SaveLoan(ctx context.Context, loan *domain.Loan) error {
	if loan == nil {
		return &domain.ValidationError{Reason: "loan is required"}
	}
	return nil
}

// Restore re-registers a hydrated loan, keeping the counter ahead of it
func (r *LoanRepository) Restore(loan *domain.Loan) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[loan.ID()] = loan
	r.order = append(r.order, loan)
	if loan.ID() >= r.nextID {
		r.nextID = loan.ID() + 1
	}
}
