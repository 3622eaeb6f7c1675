package domain

import (
	"fmt"
	"strings"
	"time"
)

type LoanState string

const (
	LoanPending  LoanState = "PENDING"
	LoanCurrent  LoanState = "CURRENT"
	LoanOverdue  LoanState = "OVERDUE"
	LoanComplete LoanState = "COMPLETE"
)

// DateFormat is the rendering format for borrow and due dates
const DateFormat = "02/01/2006"

// Loan ties a book to a borrower for a period. A loan starts PENDING with
// identity 0 and becomes durable only once committed.
type Loan struct {
	id         int
	book       *Book
	borrower   *Member
	borrowDate time.Time
	dueDate    time.Time
	state      LoanState
}

// NewLoan validates and creates a pending loan. The identity stays 0 until
// the loan is committed by a LoanRepository.
func NewLoan(book *Book, borrower *Member, borrowDate, dueDate time.Time) (*Loan, error) {
	if book == nil {
		return nil, newValidationError("loan book is required")
	}
	if borrower == nil {
		return nil, newValidationError("loan borrower is required")
	}
	if borrowDate.IsZero() {
		return nil, newValidationError("loan borrow date is required")
	}
	if dueDate.IsZero() {
		return nil, newValidationError("loan due date is required")
	}
	if !dueDate.After(borrowDate) {
		return nil, newValidationError("loan due date %s must be after borrow date %s",
			dueDate.Format(DateFormat), borrowDate.Format(DateFormat))
	}
	return &Loan{
		book:       book,
		borrower:   borrower,
		borrowDate: borrowDate,
		dueDate:    dueDate,
		state:      LoanPending,
	}, nil
}

func (l *Loan) ID() int               { return l.id }
func (l *Loan) Book() *Book           { return l.book }
func (l *Loan) Borrower() *Member     { return l.borrower }
func (l *Loan) BorrowDate() time.Time { return l.borrowDate }
func (l *Loan) DueDate() time.Time    { return l.dueDate }
func (l *Loan) State() LoanState      { return l.state }

// IsCurrent reports whether the loan is committed and not yet complete
func (l *Loan) IsCurrent() bool {
	return l.state == LoanCurrent || l.state == LoanOverdue
}

// IsOverdue reports whether the loan has been marked overdue
func (l *Loan) IsOverdue() bool {
	return l.state == LoanOverdue
}

// IsComplete reports whether the loan has been returned
func (l *Loan) IsComplete() bool {
	return l.state == LoanComplete
}

// Commit assigns the identity and records the loan onto both the book and
// the borrower. Only valid from PENDING with a positive identity.
func (l *Loan) Commit(id int) error {
	if l.state != LoanPending {
		return newTransitionError("loan", "commit", string(l.state))
	}
	if id <= 0 {
		return newValidationError("loan id must be positive, got %d", id)
	}
	if err := l.book.Borrow(l); err != nil {
		return err
	}
	if err := l.borrower.AddLoan(l); err != nil {
		return err
	}
	l.id = id
	l.state = LoanCurrent
	return nil
}

// Complete closes the loan. Valid from CURRENT or OVERDUE.
func (l *Loan) Complete() error {
	if l.state != LoanCurrent && l.state != LoanOverdue {
		return newTransitionError("loan", "complete", string(l.state))
	}
	l.state = LoanComplete
	return nil
}

// CheckOverdue marks the loan overdue when asOf falls after the due date.
// Time of day is ignored on both sides. Idempotent once overdue.
func (l *Loan) CheckOverdue(asOf time.Time) (bool, error) {
	if l.state != LoanCurrent && l.state != LoanOverdue {
		return false, newTransitionError("loan", "checkOverdue", string(l.state))
	}
	if !truncateToDay(asOf).After(truncateToDay(l.dueDate)) {
		return false, nil
	}
	l.state = LoanOverdue
	return true, nil
}

// String renders the loan for display panels and printed slips
func (l *Loan) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Loan:  %d\n", l.id)
	fmt.Fprintf(&sb, "Author:  %s\n", l.book.Author())
	fmt.Fprintf(&sb, "Title:  %s\n", l.book.Title())
	fmt.Fprintf(&sb, "Borrower:  %s\n", l.borrower.FullName())
	fmt.Fprintf(&sb, "Borrowed:  %s\n", l.borrowDate.Format(DateFormat))
	fmt.Fprintf(&sb, "Due Date:  %s", l.dueDate.Format(DateFormat))
	return sb.String()
}

// RestoreLoan rebuilds a committed loan from persisted values and reattaches
// it to its book and borrower. Used by storage backends when hydrating.
func RestoreLoan(id int, book *Book, borrower *Member, borrowDate, dueDate time.Time, state LoanState) (*Loan, error) {
	if state == LoanPending {
		return nil, newValidationError("cannot restore a pending loan")
	}
	l, err := NewLoan(book, borrower, borrowDate, dueDate)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, newValidationError("loan id must be positive, got %d", id)
	}
	l.id = id
	l.state = state
	if l.IsCurrent() {
		book.state = BookOnLoan
		book.loan = l
	}
	borrower.loans = append(borrower.loans, l)
	return l, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
