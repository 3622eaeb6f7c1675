package jobs

import (
	"context"

	"library-selfcheck/internal/domain"
	"library-selfcheck/internal/logger"
)

// MarkOverdueLoans sweeps current loans past their due date into OVERDUE and
// accrues the daily fine for every loan that is overdue on this run
func (jr *JobRunner) MarkOverdueLoans() {
	jr.runWithRecovery("MarkOverdueLoans", func() {
		ctx := context.Background()
		asOf := jr.now()

		flipped, err := jr.loans.UpdateOverdueStatus(ctx, asOf)
		if err != nil {
			logger.Error("Failed to update overdue status", "error", err)
			return
		}
		if len(flipped) > 0 {
			logger.Info("Loans marked overdue", "count", len(flipped))
		}

		overdue, err := jr.loans.FindOverdueLoans(ctx)
		if err != nil {
			logger.Error("Failed to list overdue loans", "error", err)
			return
		}

		fined := jr.accrueDailyFines(ctx, overdue)
		if fined > 0 {
			logger.Info("Daily fines accrued",
				"loans", len(overdue), "members", fined,
				"fine_per_day", jr.config.Kiosk.OverdueFinePerDay)
		}
	})
}

// accrueDailyFines charges each overdue loan's borrower one day's fine and
// persists every affected member once. Returns the number of members fined.
func (jr *JobRunner) accrueDailyFines(ctx context.Context, overdue []*domain.Loan) int {
	perDay := jr.config.Kiosk.OverdueFinePerDay
	if perDay <= 0 {
		return 0
	}

	affected := make(map[int]*domain.Member)
	for _, loan := range overdue {
		borrower := loan.Borrower()
		if err := borrower.AddFine(perDay); err != nil {
			logger.Error("Failed to add fine",
				"member_id", borrower.ID(), "loan_id", loan.ID(), "error", err)
			continue
		}
		affected[borrower.ID()] = borrower
	}

	for _, member := range affected {
		if err := jr.members.SaveMember(ctx, member); err != nil {
			logger.Error("Failed to save member fines",
				"member_id", member.ID(), "error", err)
		}
	}
	return len(affected)
}
