package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"library-selfcheck/internal/domain"
)

// repl reads kiosk events from stdin until quit or EOF. Card swipes and book
// scans go through the simulated hardware; the session buttons call the
// controller directly.
func repl(k *kiosk) {
	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)

	fmt.Println("Library self-checkout. Type 'help' for commands.")
	for {
		fmt.Printf("kiosk [%s]> ", k.ctrl.State())
		if !in.Scan() {
			return
		}
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "swipe":
			id, ok := parseID(args)
			if !ok {
				fmt.Println("usage: swipe <member-id>")
				continue
			}
			k.reader.Swipe(ctx, id)
		case "scan":
			id, ok := parseID(args)
			if !ok {
				fmt.Println("usage: scan <book-id>")
				continue
			}
			k.scanner.Scan(ctx, id)
		case "done":
			reportErr(k.ctrl.ScansCompleted(ctx))
		case "confirm":
			reportErr(k.ctrl.LoansConfirmed(ctx))
		case "reject":
			reportErr(k.ctrl.LoansRejected(ctx))
		case "cancel":
			reportErr(k.ctrl.Cancelled(ctx))
		case "new":
			reportErr(k.ctrl.Initialise(ctx))
		case "status":
			printStatus(k)
		case "books":
			printBooks(ctx, k)
		case "members":
			printMembers(ctx, k)
		case "sweep":
			k.runner.MarkOverdueLoans()
		case "help":
			printHelp()
		case "quit", "exit":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Printf("unknown command: %s\n", cmd)
		}
	}
}

func parseID(args []string) (int, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func reportErr(err error) {
	if err == nil {
		return
	}
	if domain.IsTransition(err) || domain.IsValidation(err) {
		fmt.Printf("rejected: %v\n", err)
		return
	}
	fmt.Printf("error: %v\n", err)
}

func printStatus(k *kiosk) {
	fmt.Printf("state: %s\n", k.ctrl.State())
	fmt.Printf("session: %s\n", k.ctrl.SessionID())
	if b := k.ctrl.Borrower(); b != nil {
		fmt.Printf("borrower: %s\n", b)
	}
	fmt.Printf("scan count: %d\n", k.ctrl.ScanCount())
	for _, loan := range k.ctrl.PendingLoans() {
		fmt.Printf("pending:\n%s\n", loan)
	}
}

func printBooks(ctx context.Context, k *kiosk) {
	books, err := k.books.ListBooks(ctx)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	for _, b := range books {
		fmt.Println(b)
	}
}

func printMembers(ctx context.Context, k *kiosk) {
	members, err := k.members.ListMembers(ctx)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	for _, m := range members {
		fmt.Println(m)
	}
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  swipe <member-id>   swipe a membership card")
	fmt.Println("  scan <book-id>      scan a book barcode")
	fmt.Println("  done                finish scanning, review pending loans")
	fmt.Println("  confirm             commit the pending loans")
	fmt.Println("  reject              discard the pending loans, keep scanning")
	fmt.Println("  cancel              abort the session")
	fmt.Println("  new                 start a fresh session")
	fmt.Println("  status              show the current session")
	fmt.Println("  books               list the catalogue")
	fmt.Println("  members             list registered members")
	fmt.Println("  sweep               run the overdue sweep now")
	fmt.Println("  quit                exit the kiosk")
}
