package ui

// BorrowUI is the borrowing panel consumed by the workflow controller.
// All calls are best-effort side effects with no retry. Passing an empty
// string to a Display* method clears that panel.
type BorrowUI interface {
	SetState(state string)
	DisplayMemberDetails(text string)
	DisplayExistingLoan(text string)
	DisplayOverdueMessage()
	DisplayAtLoanLimitMessage()
	DisplayOutstandingFineMessage(amount float64)
	DisplayOverFineLimitMessage(amount float64)
	DisplayScannedBookDetails(text string)
	DisplayPendingLoan(text string)
	DisplayConfirmingLoan(text string)
	DisplayErrorMessage(text string)
}
