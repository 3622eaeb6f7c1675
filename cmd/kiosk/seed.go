package main

import (
	"context"
	"fmt"
	"log"

	"library-selfcheck/internal/logger"
)

var seedBooks = []struct {
	author, title, callNumber string
}{
	{"John Steinbeck", "The Pearl", "JM 82"},
	{"Harper Lee", "To Kill a Mockingbird", "HL 12"},
	{"George Orwell", "Nineteen Eighty-Four", "GO 45"},
	{"Jane Austen", "Pride and Prejudice", "JA 03"},
	{"Herman Melville", "Moby Dick", "HM 77"},
	{"Charlotte Bronte", "Jane Eyre", "CB 21"},
	{"Mark Twain", "Adventures of Huckleberry Finn", "MT 09"},
	{"Mary Shelley", "Frankenstein", "MS 56"},
}

var seedMembers = []struct {
	firstName, lastName, phone, email string
}{
	{"Fred", "Bloggs", "0255551234", "fred@example.com"},
	{"Mary", "Hill", "0255559876", "mary@example.com"},
	{"Jose", "Garcia", "0255554321", "jose@example.com"},
}

// seedKiosk loads the sample catalogue and membership into the configured
// storage. With the postgres backend every row is written through.
func seedKiosk() error {
	k, err := buildKiosk()
	if err != nil {
		log.Fatalf("Failed to start kiosk: %v", err)
	}
	defer k.close()

	ctx := context.Background()
	for _, b := range seedBooks {
		book, err := k.books.AddBook(ctx, b.author, b.title, b.callNumber)
		if err != nil {
			return fmt.Errorf("failed to seed book %q: %w", b.title, err)
		}
		fmt.Println(book)
	}
	for _, m := range seedMembers {
		member, err := k.members.AddMember(ctx, m.firstName, m.lastName, m.phone, m.email)
		if err != nil {
			return fmt.Errorf("failed to seed member %q: %w", m.email, err)
		}
		fmt.Println(member)
	}

	logger.Info("Seed data loaded", "books", len(seedBooks), "members", len(seedMembers))
	return nil
}
