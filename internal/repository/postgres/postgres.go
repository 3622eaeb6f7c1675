package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"library-selfcheck/internal/domain"
	"library-selfcheck/internal/logger"
	"library-selfcheck/internal/repository/memory"
)

// Store bundles the postgres-backed repositories. The kiosk works against
// the in-memory object graph; postgres is a write-through record hydrated
// once at startup.
type Store struct {
	db      *sql.DB
	Books   *BookRepository
	Members *MemberRepository
	Loans   *LoanRepository
}

func NewStore(db *sql.DB) *Store {
	books := &BookRepository{db: db, mem: memory.NewBookRepository()}
	members := &MemberRepository{db: db, mem: memory.NewMemberRepository()}
	loans := &LoanRepository{db: db, mem: memory.NewLoanRepository()}
	return &Store{
		db:      db,
		Books:   books,
		Members: members,
		Loans:   loans,
	}
}

// Hydrate loads members, books and loans and rebuilds the object graph.
// Must be called before the store is handed to the workflow.
func (s *Store) Hydrate(ctx context.Context) error {
	memberRows, err := s.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, phone, email, fines FROM members ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}
	defer memberRows.Close()

	membersByID := make(map[int]*domain.Member)
	for memberRows.Next() {
		var id int
		var firstName, lastName, phone, email string
		var fines float64
		if err := memberRows.Scan(&id, &firstName, &lastName, &phone, &email, &fines); err != nil {
			return fmt.Errorf("failed to scan member: %w", err)
		}
		member, err := domain.RestoreMember(id, firstName, lastName, phone, email, fines)
		if err != nil {
			return fmt.Errorf("failed to restore member %d: %w", id, err)
		}
		membersByID[id] = member
		s.Members.mem.Restore(member)
	}
	if err := memberRows.Err(); err != nil {
		return fmt.Errorf("error iterating members: %w", err)
	}

	bookRows, err := s.db.QueryContext(ctx,
		`SELECT id, author, title, call_number, state FROM books ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}
	defer bookRows.Close()

	booksByID := make(map[int]*domain.Book)
	for bookRows.Next() {
		var id int
		var author, title, callNumber, state string
		if err := bookRows.Scan(&id, &author, &title, &callNumber, &state); err != nil {
			return fmt.Errorf("failed to scan book: %w", err)
		}
		book, err := domain.RestoreBook(id, author, title, callNumber, domain.BookState(state))
		if err != nil {
			return fmt.Errorf("failed to restore book %d: %w", id, err)
		}
		booksByID[id] = book
		s.Books.mem.Restore(book)
	}
	if err := bookRows.Err(); err != nil {
		return fmt.Errorf("error iterating books: %w", err)
	}

	loanRows, err := s.db.QueryContext(ctx,
		`SELECT id, book_id, member_id, borrow_date, due_date, state FROM loans ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to load loans: %w", err)
	}
	defer loanRows.Close()

	loanCount := 0
	for loanRows.Next() {
		var row loanRow
		if err := loanRows.Scan(&row.id, &row.bookID, &row.memberID, &row.borrowDate, &row.dueDate, &row.state); err != nil {
			return fmt.Errorf("failed to scan loan: %w", err)
		}
		book := booksByID[row.bookID]
		member := membersByID[row.memberID]
		if book == nil || member == nil {
			return fmt.Errorf("loan %d references missing book %d or member %d", row.id, row.bookID, row.memberID)
		}
		loan, err := domain.RestoreLoan(row.id, book, member, row.borrowDate, row.dueDate, domain.LoanState(row.state))
		if err != nil {
			return fmt.Errorf("failed to restore loan %d: %w", row.id, err)
		}
		s.Loans.mem.Restore(loan)
		loanCount++
	}
	if err := loanRows.Err(); err != nil {
		return fmt.Errorf("error iterating loans: %w", err)
	}

	logger.WithComponent("postgres").Info("Hydrated catalog",
		"members", len(membersByID), "books", len(booksByID), "loans", loanCount)
	return nil
}
