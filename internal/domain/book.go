package domain

import "fmt"

type BookState string

const (
	BookAvailable BookState = "AVAILABLE"
	BookOnLoan    BookState = "ON_LOAN"
	BookDamaged   BookState = "DAMAGED"
	BookLost      BookState = "LOST"
	BookDisposed  BookState = "DISPOSED"
)

// Book is a physical copy in the catalog. It owns its lifecycle state and
// holds a reference to its active loan only while on loan.
type Book struct {
	id         int
	author     string
	title      string
	callNumber string
	state      BookState
	loan       *Loan
}

// NewBook validates and creates a book in the AVAILABLE state. Books are
// created by a BookRepository, which assigns the identity.
func NewBook(id int, author, title, callNumber string) (*Book, error) {
	if id <= 0 {
		return nil, newValidationError("book id must be positive, got %d", id)
	}
	if author == "" {
		return nil, newValidationError("book author is required")
	}
	if title == "" {
		return nil, newValidationError("book title is required")
	}
	if callNumber == "" {
		return nil, newValidationError("book call number is required")
	}
	return &Book{
		id:         id,
		author:     author,
		title:      title,
		callNumber: callNumber,
		state:      BookAvailable,
	}, nil
}

func (b *Book) ID() int            { return b.id }
func (b *Book) Author() string     { return b.author }
func (b *Book) Title() string      { return b.title }
func (b *Book) CallNumber() string { return b.callNumber }
func (b *Book) State() BookState   { return b.state }

// IsAvailable reports whether the book can be borrowed right now
func (b *Book) IsAvailable() bool {
	return b.state == BookAvailable
}

// CurrentLoan returns the active loan while the book is on loan
func (b *Book) CurrentLoan() (*Loan, bool) {
	if b.state != BookOnLoan {
		return nil, false
	}
	return b.loan, true
}

// Borrow attaches the loan and moves the book to ON_LOAN.
// Only valid from AVAILABLE.
func (b *Book) Borrow(loan *Loan) error {
	if loan == nil {
		return newValidationError("loan is required")
	}
	if b.state != BookAvailable {
		return newTransitionError("book", "borrow", string(b.state))
	}
	b.state = BookOnLoan
	b.loan = loan
	return nil
}

// Return clears the active loan and moves the book to DAMAGED or AVAILABLE.
// Valid from ON_LOAN, and from LOST when a lost book turns up again.
func (b *Book) Return(damaged bool) error {
	if b.state != BookOnLoan && b.state != BookLost {
		return newTransitionError("book", "return", string(b.state))
	}
	b.loan = nil
	if damaged {
		b.state = BookDamaged
	} else {
		b.state = BookAvailable
	}
	return nil
}

// Lose marks a borrowed book as lost. Only valid from ON_LOAN.
func (b *Book) Lose() error {
	if b.state != BookOnLoan {
		return newTransitionError("book", "lose", string(b.state))
	}
	b.state = BookLost
	return nil
}

// Repair returns a damaged book to circulation. Only valid from DAMAGED.
func (b *Book) Repair() error {
	if b.state != BookDamaged {
		return newTransitionError("book", "repair", string(b.state))
	}
	b.state = BookAvailable
	return nil
}

// Dispose retires the book. Books are never deleted, only disposed.
func (b *Book) Dispose() error {
	switch b.state {
	case BookAvailable, BookDamaged, BookLost:
		b.state = BookDisposed
		return nil
	default:
		return newTransitionError("book", "dispose", string(b.state))
	}
}

func (b *Book) String() string {
	return fmt.Sprintf("%d: %s, %s [%s] (%s)", b.id, b.author, b.title, b.callNumber, b.state)
}

// RestoreBook rebuilds a book from persisted values, bypassing transition
// checks. Used by storage backends when hydrating at startup.
func RestoreBook(id int, author, title, callNumber string, state BookState) (*Book, error) {
	b, err := NewBook(id, author, title, callNumber)
	if err != nil {
		return nil, err
	}
	b.state = state
	return b, nil
}
