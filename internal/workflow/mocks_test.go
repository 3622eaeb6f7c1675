package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"library-selfcheck/internal/device"
	"library-selfcheck/internal/domain"
)

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) AddBook(ctx context.Context, author, title, callNumber string) (*domain.Book, error) {
	args := m.Called(ctx, author, title, callNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepository) BookByID(ctx context.Context, id int) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepository) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Book), args.Error(1)
}

func (m *MockBookRepository) FindBooksByAuthor(ctx context.Context, author string) ([]*domain.Book, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Book), args.Error(1)
}

func (m *MockBookRepository) FindBooksByTitle(ctx context.Context, title string) ([]*domain.Book, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Book), args.Error(1)
}

func (m *MockBookRepository) SaveBook(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) AddMember(ctx context.Context, firstName, lastName, phone, email string) (*domain.Member, error) {
	args := m.Called(ctx, firstName, lastName, phone, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) MemberByID(ctx context.Context, id int) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) ListMembers(ctx context.Context) ([]*domain.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindMembersByLastName(ctx context.Context, lastName string) ([]*domain.Member, error) {
	args := m.Called(ctx, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) SaveMember(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) CreateLoan(ctx context.Context, member *domain.Member, book *domain.Book, borrowDate, dueDate time.Time) (*domain.Loan, error) {
	args := m.Called(ctx, member, book, borrowDate, dueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) CommitLoan(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) LoanByID(ctx context.Context, id int) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoans(ctx context.Context) ([]*domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) UpdateOverdueStatus(ctx context.Context, asOf time.Time) ([]*domain.Loan, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindOverdueLoans(ctx context.Context) ([]*domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindLoansByBorrower(ctx context.Context, member *domain.Member) ([]*domain.Loan, error) {
	args := m.Called(ctx, member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindLoansByBookTitle(ctx context.Context, title string) ([]*domain.Loan, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func newMockedController(books *MockBookRepository, members *MockMemberRepository, loans *MockLoanRepository, ui *recordingUI) *Controller {
	return NewController(books, members, loans,
		device.NewSimCardReader(), device.NewSimScanner(),
		&countingPrinter{}, device.NewMemoryDisplay(), ui,
		domain.DefaultBorrowPolicy())
}

func TestController_RepositoryErrors(t *testing.T) {
	ctx := context.Background()
	repoErr := errors.New("connection reset")

	t.Run("CardSwiped propagates lookup failure", func(t *testing.T) {
		books := new(MockBookRepository)
		members := new(MockMemberRepository)
		loans := new(MockLoanRepository)
		ui := &recordingUI{}
		ctrl := newMockedController(books, members, loans, ui)
		assert.NoError(t, ctrl.Initialise(ctx))

		members.On("MemberByID", ctx, 7).Return(nil, repoErr)

		err := ctrl.CardSwiped(ctx, 7)
		assert.ErrorIs(t, err, repoErr)
		assert.Equal(t, StateInitialized, ctrl.State())
		assert.Nil(t, ctrl.Borrower())
		members.AssertExpectations(t)
	})

	t.Run("BookScanned propagates lookup failure", func(t *testing.T) {
		books := new(MockBookRepository)
		members := new(MockMemberRepository)
		loans := new(MockLoanRepository)
		ui := &recordingUI{}
		ctrl := newMockedController(books, members, loans, ui)

		member, err := domain.NewMember(1, "Fred", "Bloggs", "0255551234", "fred@example.com")
		assert.NoError(t, err)
		members.On("MemberByID", ctx, 1).Return(member, nil)

		assert.NoError(t, ctrl.Initialise(ctx))
		assert.NoError(t, ctrl.CardSwiped(ctx, 1))

		books.On("BookByID", ctx, 3).Return(nil, repoErr)

		err = ctrl.BookScanned(ctx, 3)
		assert.ErrorIs(t, err, repoErr)
		assert.Equal(t, StateScanningBooks, ctrl.State())
		assert.Empty(t, ctrl.PendingLoans())
		books.AssertExpectations(t)
	})

	t.Run("LoansConfirmed propagates commit failure", func(t *testing.T) {
		books := new(MockBookRepository)
		members := new(MockMemberRepository)
		loans := new(MockLoanRepository)
		ui := &recordingUI{}
		ctrl := newMockedController(books, members, loans, ui)

		member, err := domain.NewMember(1, "Fred", "Bloggs", "0255551234", "fred@example.com")
		assert.NoError(t, err)
		book, err := domain.NewBook(1, "John Steinbeck", "The Pearl", "JM 8")
		assert.NoError(t, err)

		borrow := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		loan, err := domain.NewLoan(book, member, borrow, borrow.AddDate(0, 0, 14))
		assert.NoError(t, err)

		members.On("MemberByID", ctx, 1).Return(member, nil)
		books.On("BookByID", ctx, 1).Return(book, nil)
		loans.On("CreateLoan", ctx, member, book, mock.Anything, mock.Anything).Return(loan, nil)
		loans.On("CommitLoan", ctx, loan).Return(repoErr)

		assert.NoError(t, ctrl.Initialise(ctx))
		assert.NoError(t, ctrl.CardSwiped(ctx, 1))
		assert.NoError(t, ctrl.BookScanned(ctx, 1))
		assert.NoError(t, ctrl.ScansCompleted(ctx))

		err = ctrl.LoansConfirmed(ctx)
		assert.ErrorIs(t, err, repoErr)
		assert.Equal(t, StateConfirmingLoans, ctrl.State())
		assert.Len(t, ctrl.PendingLoans(), 1)
		loans.AssertExpectations(t)
	})
}
