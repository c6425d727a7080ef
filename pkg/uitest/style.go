package uitest

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

// SetupColorProfile forces TrueColor output so styles are rendered.
func SetupColorProfile() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

// Plain strips ANSI sequences and trailing spaces from every line of s.
func Plain(s string) string {
	lines := strings.Split(ansi.Strip(s), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}

	return strings.Join(lines, "\n")
}

// PlainLines returns the lines of [Plain].
func PlainLines(s string) []string {
	return strings.Split(Plain(s), "\n")
}

// AssertStyled asserts that output contains text rendered with style.
func AssertStyled(tb testing.TB, output, text string, style lipgloss.Style) {
	tb.Helper()

	want := style.Render(text)
	if want == text {
		tb.Logf("style renders %q without sequences, check the color profile", text)
	}

	assert.Contains(tb, output, want, "output should contain %q with the given style", text)
}
