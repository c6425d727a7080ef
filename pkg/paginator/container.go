package paginator

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z0-9_ \-]+)\}`)

type segment struct {
	component Component
	text      string
	name      string
}

// Container is one render target of a [Paginator]. Rendering replaces every
// template placeholder with the matching registered component; placeholders
// without a component render as empty text.
type Container struct {
	p        *Paginator
	ID       string
	Class    string
	segments []segment
	visible  bool
}

func newContainer(p *Paginator, id string) *Container {
	return &Container{p: p, ID: id}
}

func (c *Container) render(idBase string) {
	c.Class = c.p.String(AttrContainerClass)
	c.segments = c.segments[:0]

	tpl := c.p.String(AttrTemplate)
	last := 0

	for _, m := range placeholderRe.FindAllStringSubmatchIndex(tpl, -1) {
		if m[0] > last {
			c.segments = append(c.segments, segment{text: tpl[last:m[0]]})
		}

		name := strings.TrimSpace(tpl[m[2]:m[3]])
		seg := segment{name: name}

		if f, ok := c.p.registry.Get(name); ok {
			seg.component = f.Render(c.p, idBase+"-"+name)
		}

		c.segments = append(c.segments, seg)
		last = m[1]
	}

	if last < len(tpl) {
		c.segments = append(c.segments, segment{text: tpl[last:]})
	}
}

func (c *Container) reset() {
	for _, s := range c.segments {
		if d, ok := s.component.(Destroyer); ok {
			d.Destroy()
		}
	}

	c.segments = nil
	c.Class = ""
}

// Visible reports whether the container is shown.
func (c *Container) Visible() bool {
	return c.visible
}

// Component returns the first component rendered for the placeholder name.
func (c *Container) Component(name string) (Component, bool) {
	for _, s := range c.segments {
		if s.name == name && s.component != nil {
			return s.component, true
		}
	}

	return nil, false
}

// Components returns the rendered components in template order.
func (c *Container) Components() []Component {
	var out []Component
	for _, s := range c.segments {
		if s.component != nil {
			out = append(out, s.component)
		}
	}

	return out
}

// View returns the rendered template, or an empty string when the container
// is hidden or not rendered.
func (c *Container) View() string {
	if !c.visible {
		return ""
	}

	var b strings.Builder
	for _, s := range c.segments {
		if s.component != nil {
			b.WriteString(s.component.View())
			continue
		}

		b.WriteString(s.text)
	}

	return b.String()
}

// ViewWidth is like [Container.View] but truncates the result to width
// cells.
func (c *Container) ViewWidth(width int) string {
	return ansi.Truncate(c.View(), width, "…")
}
