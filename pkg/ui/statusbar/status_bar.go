// Package statusbar renders the folio status and help bars.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/macropower/folio/pkg/ui/theme"
	"github.com/macropower/folio/pkg/version"
)

const helpText = " ? Help "

type Style int

const (
	StyleNormal Style = iota
	StyleSuccess
	StyleError
)

// StatusBarRenderer renders a single status line.
type StatusBarRenderer struct {
	theme   *theme.Theme
	message string
	width   int
	style   Style
}

func NewStatusBarRenderer(t *theme.Theme, width int, opts ...StatusBarOpt) *StatusBarRenderer {
	sb := &StatusBarRenderer{theme: t, width: width, style: StyleNormal}
	for _, opt := range opts {
		opt(sb)
	}

	return sb
}

type StatusBarOpt func(*StatusBarRenderer)

// WithMessage replaces the note with message. Empty messages are ignored.
func WithMessage(message string, style Style) StatusBarOpt {
	return func(r *StatusBarRenderer) {
		if message == "" {
			return
		}

		r.style = style
		r.message = message
	}
}

// Render renders the logo, the note and the position.
func (r *StatusBarRenderer) Render(note, position string) string {
	logo := r.logoView()
	pos := r.renderPosition(position)
	help := r.renderHelpNote()
	n := r.renderNote(note, logo, pos, help)
	empty := r.renderEmptySpace(logo, n, pos, help)

	return logo + n + empty + pos + help
}

func (r *StatusBarRenderer) renderPosition(position string) string {
	if position == "" {
		return ""
	}

	position = " " + position + " "

	switch r.style {
	case StyleError:
		return r.theme.StatusBarErrorStyle.Render(position)
	case StyleSuccess:
		return r.theme.StatusBarMessagePosStyle.Render(position)
	default:
		return r.theme.StatusBarPosStyle.Render(position)
	}
}

func (r *StatusBarRenderer) renderHelpNote() string {
	if r.style == StyleSuccess {
		return r.theme.StatusBarMessageHelpStyle.Render(helpText)
	}

	return r.theme.StatusBarHelpStyle.Render(helpText)
}

func (r *StatusBarRenderer) renderNote(msg string, others ...string) string {
	if r.message != "" {
		msg = r.message
	}

	msg = strings.TrimSpace(strings.ReplaceAll(msg, "\n", " "))

	available := r.width
	for _, o := range others {
		available -= ansi.PrintableRuneWidth(o)
	}

	note := truncate.StringWithTail(" "+msg+" ", uint(max(0, available)), r.theme.Ellipsis) //nolint:gosec // Uses max.

	return r.style.render(r.theme, note)
}

func (r *StatusBarRenderer) renderEmptySpace(components ...string) string {
	padding := r.width
	for _, comp := range components {
		padding -= ansi.PrintableRuneWidth(comp)
	}

	return r.style.render(r.theme, strings.Repeat(" ", max(0, padding)))
}

func (r *StatusBarRenderer) logoView() string {
	return r.theme.LogoStyle.Render(fmt.Sprintf(" folio %s ", version.GetVersion()))
}

func (s Style) render(t *theme.Theme, text string) string {
	switch s {
	case StyleError:
		return t.StatusBarErrorStyle.Render(text)
	case StyleSuccess:
		return t.StatusBarMessageStyle.Render(text)
	default:
		return t.StatusBarStyle.Render(text)
	}
}
