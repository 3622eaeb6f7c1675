package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"library-selfcheck/internal/domain"
	"library-selfcheck/internal/jobs"
	"library-selfcheck/internal/logger"
	"library-selfcheck/internal/repository"
	"library-selfcheck/internal/workflow"
)

// AdminHandler serves the loopback maintenance endpoints: kiosk status,
// catalogue listings and manual job triggers
type AdminHandler struct {
	controller *workflow.Controller
	books      repository.BookRepository
	members    repository.MemberRepository
	loans      repository.LoanRepository
	jobs       *jobs.JobRunner
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(controller *workflow.Controller, books repository.BookRepository,
	members repository.MemberRepository, loans repository.LoanRepository, jobRunner *jobs.JobRunner) *AdminHandler {
	return &AdminHandler{
		controller: controller,
		books:      books,
		members:    members,
		loans:      loans,
		jobs:       jobRunner,
	}
}

type statusResponse struct {
	State        string   `json:"state"`
	SessionID    string   `json:"session_id"`
	BorrowerID   *int     `json:"borrower_id,omitempty"`
	ScanCount    int      `json:"scan_count"`
	PendingLoans []string `json:"pending_loans"`
}

type bookResponse struct {
	ID         int    `json:"id"`
	Author     string `json:"author"`
	Title      string `json:"title"`
	CallNumber string `json:"call_number"`
	State      string `json:"state"`
}

type memberResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Fines       float64 `json:"fines"`
	ActiveLoans int     `json:"active_loans"`
}

type loanResponse struct {
	ID         int    `json:"id"`
	BookID     int    `json:"book_id"`
	Title      string `json:"title"`
	BorrowerID int    `json:"borrower_id"`
	BorrowDate string `json:"borrow_date"`
	DueDate    string `json:"due_date"`
	State      string `json:"state"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// HandleHealth reports process liveness
func (h *AdminHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleStatus reports the controller's current session
func (h *AdminHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		State:        string(h.controller.State()),
		SessionID:    h.controller.SessionID(),
		ScanCount:    h.controller.ScanCount(),
		PendingLoans: []string{},
	}
	if b := h.controller.Borrower(); b != nil {
		id := b.ID()
		resp.BorrowerID = &id
	}
	for _, loan := range h.controller.PendingLoans() {
		resp.PendingLoans = append(resp.PendingLoans, loan.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleListBooks returns the whole catalogue
func (h *AdminHandler) HandleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.ListBooks(r.Context())
	if err != nil {
		http.Error(w, "Failed to list books", http.StatusInternalServerError)
		return
	}
	resp := make([]bookResponse, 0, len(books))
	for _, b := range books {
		resp = append(resp, bookResponse{
			ID:         b.ID(),
			Author:     b.Author(),
			Title:      b.Title(),
			CallNumber: b.CallNumber(),
			State:      string(b.State()),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleListMembers returns all registered members
func (h *AdminHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.ListMembers(r.Context())
	if err != nil {
		http.Error(w, "Failed to list members", http.StatusInternalServerError)
		return
	}
	resp := make([]memberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, memberResponse{
			ID:          m.ID(),
			Name:        m.FullName(),
			Phone:       m.Phone(),
			Email:       m.Email(),
			Fines:       m.Fines(),
			ActiveLoans: m.ActiveLoanCount(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleOverdueLoans returns the loans currently marked overdue
func (h *AdminHandler) HandleOverdueLoans(w http.ResponseWriter, r *http.Request) {
	overdue, err := h.loans.FindOverdueLoans(r.Context())
	if err != nil {
		http.Error(w, "Failed to list overdue loans", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, loanResponses(overdue))
}

func loanResponses(loans []*domain.Loan) []loanResponse {
	resp := make([]loanResponse, 0, len(loans))
	for _, l := range loans {
		resp = append(resp, loanResponse{
			ID:         l.ID(),
			BookID:     l.Book().ID(),
			Title:      l.Book().Title(),
			BorrowerID: l.Borrower().ID(),
			BorrowDate: l.BorrowDate().Format(domain.DateFormat),
			DueDate:    l.DueDate().Format(domain.DateFormat),
			State:      string(l.State()),
		})
	}
	return resp
}

// HandleMarkOverdue triggers the overdue sweep outside its schedule
func (h *AdminHandler) HandleMarkOverdue(w http.ResponseWriter, r *http.Request) {
	h.jobs.MarkOverdueLoans()
	writeJSON(w, http.StatusAccepted, map[string]string{"job": "MarkOverdueLoans", "status": "completed"})
}

// RegisterAdminRoutes registers the maintenance endpoints
func RegisterAdminRoutes(router *mux.Router, handler *AdminHandler) {
	router.HandleFunc("/healthz", handler.HandleHealth).Methods("GET")
	router.HandleFunc("/api/v1/status", handler.HandleStatus).Methods("GET")
	router.HandleFunc("/api/v1/books", handler.HandleListBooks).Methods("GET")
	router.HandleFunc("/api/v1/members", handler.HandleListMembers).Methods("GET")
	router.HandleFunc("/api/v1/loans/overdue", handler.HandleOverdueLoans).Methods("GET")
	router.HandleFunc("/api/v1/jobs/mark-overdue", handler.HandleMarkOverdue).Methods("POST")
}
