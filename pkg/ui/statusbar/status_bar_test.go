package statusbar_test

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/macropower/folio/pkg/ui/statusbar"
	"github.com/macropower/folio/pkg/ui/theme"
)

func TestRender(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		check    func(*testing.T, string)
		message  string
		note     string
		position string
		style    statusbar.Style
		width    int
	}{
		"normal": {
			width:    100,
			note:     "records.txt",
			position: "3/10",
			check: func(t *testing.T, got string) {
				t.Helper()

				assert.Contains(t, got, "folio")
				assert.Contains(t, got, "records.txt")
				assert.Contains(t, got, "3/10")
				assert.Contains(t, got, "? Help")
			},
		},
		"message replaces note": {
			width:    100,
			note:     "records.txt",
			message:  "copied 10 records",
			style:    statusbar.StyleSuccess,
			position: "1/1",
			check: func(t *testing.T, got string) {
				t.Helper()

				assert.Contains(t, got, "copied 10 records")
				assert.NotContains(t, got, "records.txt")
			},
		},
		"narrow width truncates note": {
			width: 50,
			note:  "a-very-long-record-source-name-that-cannot-fit.txt",
			check: func(t *testing.T, got string) {
				t.Helper()

				assert.Contains(t, got, theme.Ellipsis)
				assert.Equal(t, 50, ansi.StringWidth(got))
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := statusbar.NewStatusBarRenderer(theme.Default, tc.width,
				statusbar.WithMessage(tc.message, tc.style))

			got := ansi.Strip(r.Render(tc.note, tc.position))
			tc.check(t, got)
		})
	}
}

type staticKeys string

func (s staticKeys) Render(int) string {
	return string(s)
}

func TestHelpRenderer(t *testing.T) {
	t.Parallel()

	r := statusbar.NewHelpRenderer(theme.Default, staticKeys("q  quit\n?  help"))

	got := ansi.Strip(r.Render(40))
	assert.Contains(t, got, "q  quit")
	assert.Equal(t, 4, r.Height(40))
}
