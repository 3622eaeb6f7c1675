package device

import "context"

// CardListener receives card swipe events from a card reader.
// The workflow controller implements this.
type CardListener interface {
	CardSwiped(ctx context.Context, memberID int)
}

// ScanListener receives barcode events from a scanner
type ScanListener interface {
	BookScanned(ctx context.Context, barcode int)
}

// CardReader is the kiosk card reader. It holds a single registered
// listener and invokes it synchronously on each swipe.
type CardReader interface {
	SetListener(l CardListener)
	SetEnabled(enabled bool)
	Enabled() bool
}

// Scanner is the kiosk barcode scanner
type Scanner interface {
	SetListener(l ScanListener)
	SetEnabled(enabled bool)
	Enabled() bool
}

// Printer prints loan slips. Fire-and-forget: failures are not part of the
// workflow contract.
type Printer interface {
	Print(text string)
}

// DisplaySurface is the kiosk display panel, abstracted away from any
// rendering toolkit
type DisplaySurface interface {
	Show(view, title string)
	Current() string
}
