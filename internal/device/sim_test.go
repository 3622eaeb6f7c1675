package device

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingCardListener struct {
	swipes []int
}

func (r *recordingCardListener) CardSwiped(ctx context.Context, memberID int) {
	r.swipes = append(r.swipes, memberID)
}

type recordingScanListener struct {
	scans []int
}

func (r *recordingScanListener) BookScanned(ctx context.Context, barcode int) {
	r.scans = append(r.scans, barcode)
}

func TestSimCardReader(t *testing.T) {
	ctx := context.Background()
	reader := NewSimCardReader()
	listener := &recordingCardListener{}
	reader.SetListener(listener)

	// Disabled readers swallow swipes
	reader.Swipe(ctx, 1)
	assert.Empty(t, listener.swipes)

	reader.SetEnabled(true)
	assert.True(t, reader.Enabled())
	reader.Swipe(ctx, 7)
	assert.Equal(t, []int{7}, listener.swipes)

	reader.SetEnabled(false)
	reader.Swipe(ctx, 8)
	assert.Equal(t, []int{7}, listener.swipes)
}

func TestSimScanner(t *testing.T) {
	ctx := context.Background()
	scanner := NewSimScanner()
	listener := &recordingScanListener{}
	scanner.SetListener(listener)
	scanner.SetEnabled(true)

	scanner.Scan(ctx, 3)
	scanner.Scan(ctx, 4)
	assert.Equal(t, []int{3, 4}, listener.scans)
}

func TestSlipPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewSlipPrinter(&buf)
	p.Print("slip text")
	assert.Contains(t, buf.String(), "slip text\n")
	assert.Contains(t, buf.String(), "----")
}

func TestMemoryDisplay(t *testing.T) {
	d := NewMemoryDisplay()
	d.Show("main menu", "Library Self-Checkout")
	assert.Equal(t, "main menu", d.Current())
	assert.Equal(t, "Library Self-Checkout", d.Title())
}
