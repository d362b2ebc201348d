// Package export renders the plain-text summaries produced by the db
// package into downloadable PDF documents.
package export

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// RenderTextReport builds a simple A4 PDF from a report title and a
// multi-line ASCII body, one row per line, and returns the PDF bytes.
func RenderTextReport(title, body string) ([]byte, error) {
	if body == "" {
		body = "No data available."
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(10).Add(
		col.New(12).Add(
			text.New(asciiSafe(title), props.Text{Style: fontstyle.Bold, Size: 13, Top: 1}),
		),
	))
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))

	for _, bodyLine := range strings.Split(body, "\n") {
		if bodyLine == "" {
			m.AddRows(row.New(3))
			continue
		}
		m.AddRows(row.New(5).Add(
			col.New(12).Add(
				text.New(asciiSafe(bodyLine), props.Text{Size: 10, Top: 0.5}),
			),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("export: generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// asciiSafe replaces characters the built-in PDF fonts cannot encode.
// Summaries are ASCII by construction, but user-entered names may not be.
func asciiSafe(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 32 || r > 126 {
			b.WriteByte('?')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
