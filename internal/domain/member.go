package domain

import "fmt"

// BorrowPolicy carries the limits the restriction policy evaluates against.
// Values come from configuration; the zero value is not usable.
type BorrowPolicy struct {
	LoanLimit      int
	FineLimit      float64
	LoanPeriodDays int
}

// DefaultBorrowPolicy returns the stock library policy
func DefaultBorrowPolicy() BorrowPolicy {
	return BorrowPolicy{LoanLimit: 5, FineLimit: 20.0, LoanPeriodDays: 14}
}

// Member is a registered library member. Fines and the loan list only ever
// grow here; fine payment happens elsewhere.
type Member struct {
	id        int
	firstName string
	lastName  string
	phone     string
	email     string
	fines     float64
	loans     []*Loan
}

// NewMember validates and creates a member. Members are created by a
// MemberRepository, which assigns the identity.
func NewMember(id int, firstName, lastName, phone, email string) (*Member, error) {
	if id <= 0 {
		return nil, newValidationError("member id must be positive, got %d", id)
	}
	if firstName == "" {
		return nil, newValidationError("member first name is required")
	}
	if lastName == "" {
		return nil, newValidationError("member last name is required")
	}
	if phone == "" {
		return nil, newValidationError("member phone is required")
	}
	if email == "" {
		return nil, newValidationError("member email is required")
	}
	return &Member{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
		phone:     phone,
		email:     email,
	}, nil
}

func (m *Member) ID() int           { return m.id }
func (m *Member) FirstName() string { return m.firstName }
func (m *Member) LastName() string  { return m.lastName }
func (m *Member) Phone() string     { return m.phone }
func (m *Member) Email() string     { return m.email }
func (m *Member) Fines() float64    { return m.fines }

func (m *Member) FullName() string {
	return m.firstName + " " + m.lastName
}

// Loans returns the loans ever committed to this member, in commit order
func (m *Member) Loans() []*Loan {
	out := make([]*Loan, len(m.loans))
	copy(out, m.loans)
	return out
}

// AddLoan appends a committed loan to the member's loan list
func (m *Member) AddLoan(loan *Loan) error {
	if loan == nil {
		return newValidationError("loan is required")
	}
	m.loans = append(m.loans, loan)
	return nil
}

// AddFine increases the member's accumulated fines
func (m *Member) AddFine(amount float64) error {
	if amount < 0 {
		return newValidationError("fine amount must not be negative, got %.2f", amount)
	}
	m.fines += amount
	return nil
}

// ActiveLoanCount counts loans not yet complete
func (m *Member) ActiveLoanCount() int {
	count := 0
	for _, l := range m.loans {
		if !l.IsComplete() {
			count++
		}
	}
	return count
}

// HasOverdueLoans reports whether any of the member's loans is overdue
func (m *Member) HasOverdueLoans() bool {
	for _, l := range m.loans {
		if l.IsOverdue() {
			return true
		}
	}
	return false
}

// HasReachedLoanLimit reports whether the member holds at least limit
// non-complete loans
func (m *Member) HasReachedLoanLimit(limit int) bool {
	return m.ActiveLoanCount() >= limit
}

// HasReachedFineLimit reports whether accumulated fines meet or exceed limit
func (m *Member) HasReachedFineLimit(limit float64) bool {
	return m.fines >= limit
}

// IsRestricted reports whether the member may currently borrow. Recomputed
// on every call, never cached.
func (m *Member) IsRestricted(policy BorrowPolicy) bool {
	return m.HasOverdueLoans() ||
		m.HasReachedFineLimit(policy.FineLimit) ||
		m.HasReachedLoanLimit(policy.LoanLimit)
}

func (m *Member) String() string {
	return fmt.Sprintf("%d: %s  phone: %s  email: %s  fines owed: $%.2f",
		m.id, m.FullName(), m.phone, m.email, m.fines)
}

// RestoreMember rebuilds a member from persisted values. Loans are
// reattached by RestoreLoan.
func RestoreMember(id int, firstName, lastName, phone, email string, fines float64) (*Member, error) {
	m, err := NewMember(id, firstName, lastName, phone, email)
	if err != nil {
		return nil, err
	}
	if fines < 0 {
		return nil, newValidationError("member fines must not be negative, got %.2f", fines)
	}
	m.fines = fines
	return m, nil
}
