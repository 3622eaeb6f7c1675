package workflow

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"library-selfcheck/internal/device"
	"library-selfcheck/internal/domain"
	"library-selfcheck/internal/repository/memory"
)

// recordingUI captures every BorrowUI call, preserving order in events
type recordingUI struct {
	events     []string
	states     []string
	errors     []string
	pending    []string
	confirming []string
	scanned    []string
}

func (u *recordingUI) SetState(state string) {
	u.events = append(u.events, "state:"+state)
	u.states = append(u.states, state)
}

func (u *recordingUI) DisplayMemberDetails(text string) {
	u.events = append(u.events, "memberDetails")
}

func (u *recordingUI) DisplayExistingLoan(text string) {
	u.events = append(u.events, "existingLoan")
}

func (u *recordingUI) DisplayOverdueMessage() {
	u.events = append(u.events, "overdue")
}

func (u *recordingUI) DisplayAtLoanLimitMessage() {
	u.events = append(u.events, "atLoanLimit")
}

func (u *recordingUI) DisplayOutstandingFineMessage(amount float64) {
	u.events = append(u.events, "outstandingFine")
}

func (u *recordingUI) DisplayOverFineLimitMessage(amount float64) {
	u.events = append(u.events, "overFineLimit")
}

func (u *recordingUI) DisplayScannedBookDetails(text string) {
	u.events = append(u.events, "scannedBook")
	u.scanned = append(u.scanned, text)
}

func (u *recordingUI) DisplayPendingLoan(text string) {
	u.events = append(u.events, "pendingLoan")
	u.pending = append(u.pending, text)
}

func (u *recordingUI) DisplayConfirmingLoan(text string) {
	u.events = append(u.events, "confirmingLoan")
	u.confirming = append(u.confirming, text)
}

func (u *recordingUI) DisplayErrorMessage(text string) {
	u.events = append(u.events, "error:"+text)
	if text != "" {
		u.errors = append(u.errors, text)
	}
}

func (u *recordingUI) lastError() string {
	if len(u.errors) == 0 {
		return ""
	}
	return u.errors[len(u.errors)-1]
}

// countingPrinter records printed slips
type countingPrinter struct {
	slips []string
}

func (p *countingPrinter) Print(text string) {
	p.slips = append(p.slips, text)
}

// fixture wires a controller against in-memory repositories and simulated
// devices, mirroring how cmd/kiosk assembles the kiosk
type fixture struct {
	books   *memory.BookRepository
	members *memory.MemberRepository
	loans   *memory.LoanRepository
	reader  *device.SimCardReader
	scanner *device.SimScanner
	printer *countingPrinter
	display *device.MemoryDisplay
	ui      *recordingUI
	ctrl    *Controller
	today   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		books:   memory.NewBookRepository(),
		members: memory.NewMemberRepository(),
		loans:   memory.NewLoanRepository(),
		reader:  device.NewSimCardReader(),
		scanner: device.NewSimScanner(),
		printer: &countingPrinter{},
		display: device.NewMemoryDisplay(),
		ui:      &recordingUI{},
		today:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	f.ctrl = NewController(f.books, f.members, f.loans,
		f.reader, f.scanner, f.printer, f.display, f.ui,
		domain.DefaultBorrowPolicy())
	f.ctrl.SetClock(func() time.Time { return f.today })
	return f
}

func (f *fixture) addBook(t *testing.T, title string) *domain.Book {
	t.Helper()
	b, err := f.books.AddBook(context.Background(), "Author", title, "CN 1")
	assert.NoError(t, err)
	return b
}

func (f *fixture) addBooks(t *testing.T, n int) []*domain.Book {
	t.Helper()
	out := make([]*domain.Book, n)
	for i := range out {
		out[i] = f.addBook(t, fmt.Sprintf("Title %d", i+1))
	}
	return out
}

func (f *fixture) addMember(t *testing.T) *domain.Member {
	t.Helper()
	m, err := f.members.AddMember(context.Background(), "Fred", "Bloggs", "0255551234", "fred@example.com")
	assert.NoError(t, err)
	return m
}

// commitExistingLoan puts a committed loan on the member outside any session
func (f *fixture) commitExistingLoan(t *testing.T, m *domain.Member, due time.Time) *domain.Loan {
	t.Helper()
	ctx := context.Background()
	book := f.addBook(t, fmt.Sprintf("Existing %s", due.Format("2006-01-02")))
	loan, err := f.loans.CreateLoan(ctx, m, book, due.AddDate(0, 0, -14), due)
	assert.NoError(t, err)
	assert.NoError(t, f.loans.CommitLoan(ctx, loan))
	return loan
}

// startScanning runs a session up to the SCANNING_BOOKS state
func (f *fixture) startScanning(t *testing.T, m *domain.Member) {
	t.Helper()
	ctx := context.Background()
	assert.NoError(t, f.ctrl.Initialise(ctx))
	assert.NoError(t, f.ctrl.CardSwiped(ctx, m.ID()))
	assert.Equal(t, StateScanningBooks, f.ctrl.State())
}
