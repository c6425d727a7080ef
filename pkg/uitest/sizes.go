package uitest

// Size is a terminal size.
type Size struct {
	Width  int
	Height int
}

// Terminal sizes used in tests.
var (
	// Compact is the classic 80x24 terminal.
	Compact = Size{Width: 80, Height: 24}
	// Short fits a single page of ten records with a footer and status bar.
	Short = Size{Width: 80, Height: 14}
	// Narrow forces truncation.
	Narrow = Size{Width: 24, Height: 14}
)
