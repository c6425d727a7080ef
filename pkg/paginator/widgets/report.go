package widgets

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/macropower/folio/pkg/attr"
	"github.com/macropower/folio/pkg/paginator"
)

const (
	// AttrPageReportTemplate is the template rendered by
	// [CurrentPageReport].
	AttrPageReportTemplate = "pageReportTemplate"

	// DefaultPageReportTemplate is the default value of
	// [AttrPageReportTemplate].
	DefaultPageReportTemplate = "({currentPage} of {totalPages})"

	// UnknownValue replaces report values that are unknown or unlimited.
	UnknownValue = "?"
)

// CurrentPageReportFactory creates [CurrentPageReport].
type CurrentPageReportFactory struct {
	styles *Styles
}

// Initialize implements [paginator.ComponentFactory].
func (f *CurrentPageReportFactory) Initialize(p *paginator.Paginator) {
	p.Define(AttrPageReportTemplate, attr.Definition{
		Value:     DefaultPageReportTemplate,
		Validator: attr.IsString,
	})
}

// Render implements [paginator.ComponentFactory].
func (f *CurrentPageReportFactory) Render(p *paginator.Paginator, id string) paginator.Component {
	r := &CurrentPageReport{p: p, id: id, styles: f.styles}
	r.watch(p, r.render, AttrPageReportTemplate+attr.ChangeSuffix)

	return r
}

// CurrentPageReport renders a summary of the current page.
//
// The template supports {currentPage}, {totalPages}, {startIndex},
// {endIndex}, {startRecord}, {endRecord} and {totalRecords}. Indexes are
// 0-based and records are 1-based.
type CurrentPageReport struct {
	binding

	p      *paginator.Paginator
	styles *Styles
	id     string
}

// Values returns the template values for the current state.
func (r *CurrentPageReport) Values() map[string]string {
	s := r.p.State()

	values := map[string]string{
		"currentPage":  humanize.Comma(int64(s.Page)),
		"totalPages":   UnknownValue,
		"startIndex":   "0",
		"endIndex":     "0",
		"startRecord":  "0",
		"endRecord":    "0",
		"totalRecords": UnknownValue,
	}

	if total, ok := r.p.TotalPages(); ok && total != paginator.Unlimited {
		values["totalPages"] = humanize.Comma(int64(total))
	}

	if s.TotalRecords != paginator.Unlimited {
		values["totalRecords"] = humanize.Comma(int64(s.TotalRecords))
	}

	if s.Records != nil {
		values["startIndex"] = humanize.Comma(int64(s.Records.Start))
		values["endIndex"] = humanize.Comma(int64(s.Records.End))
		values["startRecord"] = humanize.Comma(int64(s.Records.Start + 1))
		values["endRecord"] = humanize.Comma(int64(s.Records.End + 1))
	}

	return values
}

func (r *CurrentPageReport) render() string {
	values := r.Values()

	pairs := make([]string, 0, 2*len(values))
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}

	return r.styles.Report.Render(strings.NewReplacer(pairs...).Replace(r.p.String(AttrPageReportTemplate)))
}
