package ui

import (
	"fmt"
	"io"
)

// ConsoleUI renders the borrowing panels as labelled lines on a writer.
// It stands in for the kiosk touch screen when running the simulator.
type ConsoleUI struct {
	w io.Writer
}

func NewConsoleUI(w io.Writer) *ConsoleUI {
	return &ConsoleUI{w: w}
}

func (u *ConsoleUI) panel(label, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(u.w, "[%s]\n%s\n", label, text)
}

func (u *ConsoleUI) SetState(state string) {
	fmt.Fprintf(u.w, "-- %s --\n", state)
}

func (u *ConsoleUI) DisplayMemberDetails(text string) {
	u.panel("member", text)
}

func (u *ConsoleUI) DisplayExistingLoan(text string) {
	u.panel("existing loan", text)
}

func (u *ConsoleUI) DisplayOverdueMessage() {
	u.panel("notice", "Borrowing suspended: you have overdue loans")
}

func (u *ConsoleUI) DisplayAtLoanLimitMessage() {
	u.panel("notice", "Borrowing suspended: you are at your loan limit")
}

func (u *ConsoleUI) DisplayOutstandingFineMessage(amount float64) {
	u.panel("notice", fmt.Sprintf("You have outstanding fines of $%.2f", amount))
}

func (u *ConsoleUI) DisplayOverFineLimitMessage(amount float64) {
	u.panel("notice", fmt.Sprintf("Borrowing suspended: fines of $%.2f exceed the limit", amount))
}

func (u *ConsoleUI) DisplayScannedBookDetails(text string) {
	u.panel("scanned", text)
}

func (u *ConsoleUI) DisplayPendingLoan(text string) {
	u.panel("pending loans", text)
}

func (u *ConsoleUI) DisplayConfirmingLoan(text string) {
	u.panel("confirm loans", text)
}

func (u *ConsoleUI) DisplayErrorMessage(text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(u.w, "!! %s\n", text)
}
