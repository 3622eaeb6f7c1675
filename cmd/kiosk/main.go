package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	_ "github.com/lib/pq"

	httpapi "library-selfcheck/internal/api/http"
	"library-selfcheck/internal/config"
	"library-selfcheck/internal/device"
	"library-selfcheck/internal/domain"
	"library-selfcheck/internal/jobs"
	"library-selfcheck/internal/logger"
	"library-selfcheck/internal/repository"
	"library-selfcheck/internal/repository/memory"
	"library-selfcheck/internal/repository/postgres"
	"library-selfcheck/internal/scheduler"
	"library-selfcheck/internal/ui"
	"library-selfcheck/internal/workflow"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "kiosk",
		Short: "Library self-checkout kiosk",
		Long:  "Runs the self-checkout borrowing kiosk with simulated card reader, scanner and slip printer.",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.dev.yaml", "Path to configuration file")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newSeedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the kiosk and drive it from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKiosk()
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample books and members into the configured storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seedKiosk()
		},
	}
}

// kiosk bundles the wired collaborators for one running kiosk process
type kiosk struct {
	cfg     *config.Config
	books   repository.BookRepository
	members repository.MemberRepository
	loans   repository.LoanRepository
	reader  *device.SimCardReader
	scanner *device.SimScanner
	ctrl    *workflow.Controller
	runner  *jobs.JobRunner
	close   func()
}

// buildKiosk loads config, opens the configured storage backend and wires the
// controller, devices, job runner and admin HTTP server
func buildKiosk() (*kiosk, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting library self-checkout kiosk...",
		"storage", cfg.Storage.Type, "log_level", cfg.Log.Level)

	books, members, loans, closeStore, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}

	reader := device.NewSimCardReader()
	scanner := device.NewSimScanner()
	printer := device.NewSlipPrinter(os.Stdout)
	display := device.NewMemoryDisplay()
	borrowUI := ui.NewConsoleUI(os.Stdout)

	policy := domain.BorrowPolicy{
		LoanLimit:      cfg.Kiosk.LoanLimit,
		FineLimit:      cfg.Kiosk.FineLimit,
		LoanPeriodDays: cfg.Kiosk.LoanPeriodDays,
	}
	ctrl := workflow.NewController(books, members, loans,
		reader, scanner, printer, display, borrowUI, policy)

	runner := jobs.NewJobRunner(loans, members, cfg)

	return &kiosk{
		cfg:     cfg,
		books:   books,
		members: members,
		loans:   loans,
		reader:  reader,
		scanner: scanner,
		ctrl:    ctrl,
		runner:  runner,
		close:   closeStore,
	}, nil
}

// openStorage returns the repositories for the configured backend. The
// postgres backend hydrates the in-memory object graph at startup.
func openStorage(cfg *config.Config) (repository.BookRepository, repository.MemberRepository, repository.LoanRepository, func(), error) {
	if cfg.Storage.Type == "memory" {
		return memory.NewBookRepository(), memory.NewMemberRepository(), memory.NewLoanRepository(), func() {}, nil
	}

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	if err := store.Hydrate(context.Background()); err != nil {
		db.Close()
		return nil, nil, nil, nil, fmt.Errorf("failed to hydrate storage: %w", err)
	}
	return store.Books, store.Members, store.Loans, func() { db.Close() }, nil
}

func runKiosk() error {
	k, err := buildKiosk()
	if err != nil {
		log.Fatalf("Failed to start kiosk: %v", err)
	}
	defer k.close()

	// Overdue sweep on its nightly schedule
	cronScheduler := scheduler.NewScheduler(k.runner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// Loopback maintenance server
	router := mux.NewRouter()
	httpapi.RegisterAdminRoutes(router,
		httpapi.NewAdminHandler(k.ctrl, k.books, k.members, k.loans, k.runner))
	go func() {
		addr := k.cfg.GetAdminAddress()
		logger.Info("Admin server listening", "address", addr)
		if err := http.ListenAndServe(addr, router); err != nil {
			logger.Error("Admin server error", "error", err)
		}
	}()

	if err := k.ctrl.Initialise(context.Background()); err != nil {
		return err
	}
	repl(k)
	return nil
}
