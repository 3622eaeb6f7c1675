package device

import (
	"context"
	"fmt"
	"io"

	"library-selfcheck/internal/logger"
)

// SimCardReader is a simulated card reader driven from the kiosk prompt
type SimCardReader struct {
	listener CardListener
	enabled  bool
}

func NewSimCardReader() *SimCardReader {
	return &SimCardReader{}
}

func (r *SimCardReader) SetListener(l CardListener) { r.listener = l }
func (r *SimCardReader) SetEnabled(enabled bool)    { r.enabled = enabled }
func (r *SimCardReader) Enabled() bool              { return r.enabled }

// Swipe simulates a member swiping their card. Ignored while the reader is
// disabled, as the physical device would be powered off.
func (r *SimCardReader) Swipe(ctx context.Context, memberID int) {
	if !r.enabled {
		logger.Warn("Card swipe ignored: reader disabled", "member_id", memberID)
		return
	}
	if r.listener == nil {
		return
	}
	r.listener.CardSwiped(ctx, memberID)
}

// SimScanner is a simulated barcode scanner
type SimScanner struct {
	listener ScanListener
	enabled  bool
}

func NewSimScanner() *SimScanner {
	return &SimScanner{}
}

func (s *SimScanner) SetListener(l ScanListener) { s.listener = l }
func (s *SimScanner) SetEnabled(enabled bool)    { s.enabled = enabled }
func (s *SimScanner) Enabled() bool              { return s.enabled }

// Scan simulates scanning a book barcode
func (s *SimScanner) Scan(ctx context.Context, barcode int) {
	if !s.enabled {
		logger.Warn("Scan ignored: scanner disabled", "barcode", barcode)
		return
	}
	if s.listener == nil {
		return
	}
	s.listener.BookScanned(ctx, barcode)
}

// SlipPrinter writes printed slips to an io.Writer
type SlipPrinter struct {
	w io.Writer
}

func NewSlipPrinter(w io.Writer) *SlipPrinter {
	return &SlipPrinter{w: w}
}

func (p *SlipPrinter) Print(text string) {
	fmt.Fprintln(p.w, text)
	fmt.Fprintln(p.w, "----------------------------------------")
}

// MemoryDisplay holds the currently shown panel
type MemoryDisplay struct {
	view  string
	title string
}

func NewMemoryDisplay() *MemoryDisplay {
	return &MemoryDisplay{}
}

func (d *MemoryDisplay) Show(view, title string) {
	d.view = view
	d.title = title
}

func (d *MemoryDisplay) Current() string { return d.view }
func (d *MemoryDisplay) Title() string   { return d.title }
