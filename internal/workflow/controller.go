package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"library-selfcheck/internal/device"
	"library-selfcheck/internal/domain"
	"library-selfcheck/internal/logger"
	"library-selfcheck/internal/repository"
	"library-selfcheck/internal/ui"
)

// State is the borrowing workflow session state
type State string

const (
	StateCreated             State = "CREATED"
	StateInitialized         State = "INITIALIZED"
	StateScanningBooks       State = "SCANNING_BOOKS"
	StateBorrowingRestricted State = "BORROWING_RESTRICTED"
	StateConfirmingLoans     State = "CONFIRMING_LOANS"
	StateCompleted           State = "COMPLETED"
	StateCancelled           State = "CANCELLED"
)

// Display panel names shown on the kiosk display surface
const (
	ViewBorrowing = "borrowing"
	ViewMainMenu  = "main menu"
)

// Controller drives one borrowing session at a time: card swipe, book
// scans, then confirmation or rejection of the pending loans. It is
// single-threaded and not reentrant; it must be driven by one logical
// actor. It implements the device listener capabilities via adapters
// registered in NewController.
type Controller struct {
	books   repository.BookRepository
	members repository.MemberRepository
	loans   repository.LoanRepository
	reader  device.CardReader
	scanner device.Scanner
	printer device.Printer
	display device.DisplaySurface
	ui      ui.BorrowUI
	policy  domain.BorrowPolicy
	now     func() time.Time

	state        State
	sessionID    string
	borrower     *domain.Member
	scanCount    int
	scannedBooks []*domain.Book
	pendingLoans []*domain.Loan
}

// NewController wires the controller to its collaborators and registers it
// as the listener on the card reader and scanner
func NewController(
	books repository.BookRepository,
	members repository.MemberRepository,
	loans repository.LoanRepository,
	reader device.CardReader,
	scanner device.Scanner,
	printer device.Printer,
	display device.DisplaySurface,
	borrowUI ui.BorrowUI,
	policy domain.BorrowPolicy,
) *Controller {
	c := &Controller{
		books:   books,
		members: members,
		loans:   loans,
		reader:  reader,
		scanner: scanner,
		printer: printer,
		display: display,
		ui:      borrowUI,
		policy:  policy,
		now:     time.Now,
		state:   StateCreated,
	}
	reader.SetListener(cardListener{c})
	scanner.SetListener(scanListener{c})
	return c
}

// SetClock overrides the controller's time source. For tests.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

// Read-only inspection surface

func (c *Controller) State() State      { return c.state }
func (c *Controller) ScanCount() int    { return c.scanCount }
func (c *Controller) SessionID() string { return c.sessionID }

func (c *Controller) Borrower() *domain.Member { return c.borrower }

func (c *Controller) ScannedBooks() []*domain.Book {
	out := make([]*domain.Book, len(c.scannedBooks))
	copy(out, c.scannedBooks)
	return out
}

func (c *Controller) PendingLoans() []*domain.Loan {
	out := make([]*domain.Loan, len(c.pendingLoans))
	copy(out, c.pendingLoans)
	return out
}

func (c *Controller) invalidCall(op string) error {
	return &domain.TransitionError{Entity: "borrowWorkflow", Op: op, State: string(c.state)}
}

// Initialise starts a new borrowing session. Valid from CREATED and again
// after a prior session reached COMPLETED or CANCELLED.
func (c *Controller) Initialise(ctx context.Context) error {
	if c.state != StateCreated && c.state != StateCompleted && c.state != StateCancelled {
		return c.invalidCall("initialise")
	}
	c.sessionID = uuid.NewString()
	c.borrower = nil
	c.scanCount = 0
	c.scannedBooks = nil
	c.pendingLoans = nil
	c.state = StateInitialized

	c.reader.SetEnabled(true)
	c.scanner.SetEnabled(false)
	c.display.Show(ViewBorrowing, "Borrow Books")
	c.ui.SetState(string(c.state))
	logger.WithSession(c.sessionID).Info("Borrowing session started")
	return nil
}

// CardSwiped authenticates the borrower. An unknown member id is reported
// on the UI and leaves the session waiting for another swipe.
func (c *Controller) CardSwiped(ctx context.Context, memberID int) error {
	if c.state != StateInitialized {
		return c.invalidCall("cardSwiped")
	}
	member, err := c.members.MemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		c.ui.DisplayErrorMessage("Member not found")
		return nil
	}
	c.borrower = member
	log := logger.WithSession(c.sessionID)

	if member.IsRestricted(c.policy) {
		c.scanCount = member.ActiveLoanCount()
		c.state = StateBorrowingRestricted
		c.reader.SetEnabled(false)
		c.scanner.SetEnabled(false)
		c.showBorrowerPanels()
		c.showRestrictionReasons()
		c.ui.SetState(string(c.state))
		log.Info("Borrower restricted", "member_id", member.ID())
		return nil
	}

	c.scanCount = member.ActiveLoanCount()
	c.state = StateScanningBooks
	c.reader.SetEnabled(false)
	c.scanner.SetEnabled(true)
	c.ui.DisplayScannedBookDetails("")
	c.ui.DisplayPendingLoan("")
	c.ui.SetState(string(c.state))
	log.Info("Borrower accepted", "member_id", member.ID())
	return nil
}

// showBorrowerPanels displays member details and their non-complete loans
func (c *Controller) showBorrowerPanels() {
	c.ui.DisplayMemberDetails(c.borrower.String())
	for _, loan := range c.borrower.Loans() {
		if !loan.IsComplete() {
			c.ui.DisplayExistingLoan(loan.String())
		}
	}
}

// showRestrictionReasons shows every applicable restriction message,
// evaluated overdue first, then fine limit, then loan limit
func (c *Controller) showRestrictionReasons() {
	if c.borrower.HasOverdueLoans() {
		c.ui.DisplayOverdueMessage()
	}
	if c.borrower.HasReachedFineLimit(c.policy.FineLimit) {
		c.ui.DisplayOverFineLimitMessage(c.borrower.Fines())
	} else if c.borrower.Fines() > 0 {
		c.ui.DisplayOutstandingFineMessage(c.borrower.Fines())
	}
	if c.borrower.HasReachedLoanLimit(c.policy.LoanLimit) {
		c.ui.DisplayAtLoanLimitMessage()
	}
}

// BookScanned handles one barcode. Failed scans report on the UI and keep
// the session scanning; the scan that reaches the loan limit moves the
// session straight to confirmation.
func (c *Controller) BookScanned(ctx context.Context, barcode int) error {
	if c.state != StateScanningBooks {
		return c.invalidCall("bookScanned")
	}
	c.ui.DisplayErrorMessage("")

	book, err := c.books.BookByID(ctx, barcode)
	if err != nil {
		return err
	}
	if book == nil {
		c.ui.DisplayErrorMessage("Book not found")
		return nil
	}
	if !book.IsAvailable() {
		c.ui.DisplayErrorMessage("Book not available")
		return nil
	}
	for _, scanned := range c.scannedBooks {
		if scanned.ID() == book.ID() {
			c.ui.DisplayErrorMessage("Book already scanned")
			return nil
		}
	}

	today := c.now()
	due := today.AddDate(0, 0, c.policy.LoanPeriodDays)
	loan, err := c.loans.CreateLoan(ctx, c.borrower, book, today, due)
	if err != nil {
		return err
	}

	c.scannedBooks = append(c.scannedBooks, book)
	c.scanCount++
	c.pendingLoans = append(c.pendingLoans, loan)

	c.ui.DisplayScannedBookDetails(book.String())
	c.ui.DisplayPendingLoan(c.pendingLoanText())
	logger.WithSession(c.sessionID).Debug("Book scanned",
		"book_id", book.ID(), "scan_count", c.scanCount)

	if c.scanCount >= c.policy.LoanLimit {
		c.state = StateConfirmingLoans
		c.reader.SetEnabled(false)
		c.scanner.SetEnabled(false)
		c.ui.DisplayConfirmingLoan(c.pendingLoanText())
		c.ui.SetState(string(c.state))
	}
	return nil
}

// pendingLoanText joins the pending loan descriptions with blank lines
func (c *Controller) pendingLoanText() string {
	parts := make([]string, len(c.pendingLoans))
	for i, loan := range c.pendingLoans {
		parts[i] = loan.String()
	}
	return strings.Join(parts, "\n\n")
}

// ScansCompleted moves the session to confirmation
func (c *Controller) ScansCompleted(ctx context.Context) error {
	if c.state != StateScanningBooks {
		return c.invalidCall("scansCompleted")
	}
	if len(c.pendingLoans) == 0 {
		c.ui.DisplayErrorMessage("No books scanned")
		return &domain.ValidationError{Reason: "no pending loans"}
	}
	c.state = StateConfirmingLoans
	c.reader.SetEnabled(false)
	c.scanner.SetEnabled(false)
	c.ui.DisplayConfirmingLoan(c.pendingLoanText())
	c.ui.SetState(string(c.state))
	return nil
}

// LoansConfirmed commits every pending loan in scan order and prints one
// slip per committed loan
func (c *Controller) LoansConfirmed(ctx context.Context) error {
	if c.state != StateConfirmingLoans {
		return c.invalidCall("loansConfirmed")
	}
	if len(c.pendingLoans) == 0 {
		c.ui.DisplayErrorMessage("No loans to confirm")
		return &domain.ValidationError{Reason: "no pending loans"}
	}
	log := logger.WithSession(c.sessionID)
	for _, loan := range c.pendingLoans {
		if err := c.loans.CommitLoan(ctx, loan); err != nil {
			return err
		}
		c.printer.Print(loan.String())
		log.Info("Loan committed", "loan_id", loan.ID(), "book_id", loan.Book().ID())
	}

	c.scannedBooks = nil
	c.pendingLoans = nil
	c.scanCount = 0
	c.state = StateCompleted
	c.reader.SetEnabled(false)
	c.scanner.SetEnabled(false)
	c.display.Show(ViewMainMenu, "Library Self-Checkout")
	c.ui.SetState(string(c.state))
	return nil
}

// LoansRejected discards the pending loans and returns to scanning.
// Nothing was persisted, so the scanned books stay available.
func (c *Controller) LoansRejected(ctx context.Context) error {
	if c.state != StateConfirmingLoans {
		return c.invalidCall("loansRejected")
	}
	if len(c.pendingLoans) == 0 {
		c.ui.DisplayErrorMessage("No loans to reject")
		return &domain.ValidationError{Reason: "no pending loans"}
	}
	c.pendingLoans = nil
	c.scannedBooks = nil
	c.scanCount = c.borrower.ActiveLoanCount()
	c.state = StateScanningBooks
	c.reader.SetEnabled(false)
	c.scanner.SetEnabled(true)
	c.ui.DisplayScannedBookDetails("")
	c.ui.DisplayPendingLoan("")
	c.showBorrowerPanels()
	c.ui.SetState(string(c.state))
	logger.WithSession(c.sessionID).Info("Pending loans rejected")
	return nil
}

// Cancelled aborts the session from any non-terminal state
func (c *Controller) Cancelled(ctx context.Context) error {
	switch c.state {
	case StateCompleted, StateCancelled:
		return c.invalidCall("cancelled")
	}
	c.borrower = nil
	c.scannedBooks = nil
	c.pendingLoans = nil
	c.scanCount = 0
	c.state = StateCancelled
	c.reader.SetEnabled(false)
	c.scanner.SetEnabled(false)
	c.display.Show(ViewMainMenu, "Library Self-Checkout")
	c.ui.SetState(string(c.state))
	logger.WithSession(c.sessionID).Info("Borrowing session cancelled")
	return nil
}

// Listener adapters: hardware events are fire-and-forget, so workflow
// errors surface on the UI and in the log rather than propagating.

type cardListener struct{ c *Controller }

func (l cardListener) CardSwiped(ctx context.Context, memberID int) {
	if err := l.c.CardSwiped(ctx, memberID); err != nil {
		logger.WithSession(l.c.sessionID).Warn("Card swipe rejected", "error", err)
	}
}

type scanListener struct{ c *Controller }

func (l scanListener) BookScanned(ctx context.Context, barcode int) {
	if err := l.c.BookScanned(ctx, barcode); err != nil {
		logger.WithSession(l.c.sessionID).Warn("Scan rejected", "error", err)
	}
}
