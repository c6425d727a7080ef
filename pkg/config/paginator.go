package config

import (
	"errors"
	"fmt"

	"github.com/macropower/folio/pkg/paginator"
	"github.com/macropower/folio/pkg/paginator/widgets"
)

// DefaultTemplate renders the navigation links followed by the page report.
const DefaultTemplate = paginator.TemplateDefault + " {CurrentPageReport}"

// DefaultRowsPerPage is used when no rows per page are configured.
const DefaultRowsPerPage = 10

var (
	ErrInvalidRowsPerPage = errors.New("rowsPerPage must be positive")
	ErrInvalidInitialPage = errors.New("initialPage must be positive")
	ErrInvalidOption      = errors.New("rowsPerPageOptions must not be negative")
)

// Paginator holds the defaults applied to new paginators.
type Paginator struct {
	// RowsPerPage is the number of records shown per page.
	RowsPerPage *int `json:"rowsPerPage,omitempty" jsonschema:"title=Rows Per Page,minimum=1"`
	// InitialPage is the page shown first.
	InitialPage *int `json:"initialPage,omitempty" jsonschema:"title=Initial Page,minimum=1"`
	// AlwaysVisible shows the controls even when everything fits on one page.
	AlwaysVisible *bool `json:"alwaysVisible,omitempty" jsonschema:"title=Always Visible"`
	// UpdateOnChange applies page requests directly instead of asking for
	// approval first. Policy rules only run when this is false.
	UpdateOnChange *bool `json:"updateOnChange,omitempty" jsonschema:"title=Update On Change"`
	// Labels overrides the link labels.
	Labels *Labels `json:"labels,omitempty" jsonschema:"title=Labels"`
	// PageLinks is the number of page links to show, -1 for all.
	PageLinks *int `json:"pageLinks,omitempty" jsonschema:"title=Page Links,minimum=-1"`
	// Template places components in each container with {Name} placeholders.
	Template string `json:"template,omitempty" jsonschema:"title=Template"`
	// PageReportTemplate formats the CurrentPageReport component.
	PageReportTemplate string `json:"pageReportTemplate,omitempty" jsonschema:"title=Page Report Template"`
	// Containers lists the container ids. A container named "header" is shown
	// above the records, all others below.
	Containers []string `json:"containers,omitempty" jsonschema:"title=Containers"`
	// RowsPerPageOptions are the choices of the RowsPerPageDropdown. 0 means
	// all records.
	RowsPerPageOptions []int `json:"rowsPerPageOptions,omitempty" jsonschema:"title=Rows Per Page Options"`
}

// Labels holds the link labels.
type Labels struct {
	First    string `json:"first,omitempty" jsonschema:"title=First"`
	Previous string `json:"previous,omitempty" jsonschema:"title=Previous"`
	Next     string `json:"next,omitempty" jsonschema:"title=Next"`
	Last     string `json:"last,omitempty" jsonschema:"title=Last"`
}

func (p *Paginator) EnsureDefaults() {
	if p.RowsPerPage == nil {
		p.RowsPerPage = paginator.Int(DefaultRowsPerPage)
	}

	if p.Template == "" {
		p.Template = DefaultTemplate
	}

	if len(p.Containers) == 0 {
		p.Containers = []string{"footer"}
	}
}

func (p *Paginator) Validate() error {
	if p.RowsPerPage != nil && *p.RowsPerPage <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRowsPerPage, *p.RowsPerPage)
	}

	if p.InitialPage != nil && *p.InitialPage <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInitialPage, *p.InitialPage)
	}

	for _, o := range p.RowsPerPageOptions {
		if o < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidOption, o)
		}
	}

	return nil
}

// Build returns the [paginator.Config] for a record set of the given size.
// rows overrides the configured rows per page when positive.
func (p *Paginator) Build(total, rows int) paginator.Config {
	attrs := map[string]any{
		paginator.AttrTemplate: p.Template,
	}

	if p.InitialPage != nil {
		attrs[paginator.AttrInitialPage] = *p.InitialPage
	}

	if p.AlwaysVisible != nil {
		attrs[paginator.AttrAlwaysVisible] = *p.AlwaysVisible
	}

	if p.UpdateOnChange != nil {
		attrs[paginator.AttrUpdateOnChange] = *p.UpdateOnChange
	}

	if p.PageLinks != nil {
		attrs[widgets.AttrPageLinks] = *p.PageLinks
	}

	if p.PageReportTemplate != "" {
		attrs[widgets.AttrPageReportTemplate] = p.PageReportTemplate
	}

	if len(p.RowsPerPageOptions) > 0 {
		attrs[paginator.AttrRowsPerPageOptions] = p.RowsPerPageOptions
	}

	if l := p.Labels; l != nil {
		for name, v := range map[string]string{
			widgets.AttrFirstPageLinkLabel:    l.First,
			widgets.AttrPreviousPageLinkLabel: l.Previous,
			widgets.AttrNextPageLinkLabel:     l.Next,
			widgets.AttrLastPageLinkLabel:     l.Last,
		} {
			if v != "" {
				attrs[name] = v
			}
		}
	}

	rpp := DefaultRowsPerPage
	if p.RowsPerPage != nil {
		rpp = *p.RowsPerPage
	}

	if rows > 0 {
		rpp = rows
	}

	return paginator.Config{
		RowsPerPage:  rpp,
		TotalRecords: total,
		Containers:   p.Containers,
		Attributes:   attrs,
	}
}
