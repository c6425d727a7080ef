package widgets_test

import (
	"github.com/charmbracelet/x/ansi"
)

func stripStyles(s string) string {
	return ansi.Strip(s)
}
