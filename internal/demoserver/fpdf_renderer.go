package demoserver

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// textRenderer lays the resume out with fpdf and the core Helvetica fonts.
// It needs no browser, so it is the default.
type textRenderer struct{}

const (
	pageMargin   = 18.0 // mm
	bodySize     = 10.0
	headingSize  = 13.0
	nameFontSize = 20.0
	lineHeight   = 5.0
)

// accentColors tints headings per template; unknown templates stay black.
var accentColors = map[string][3]int{
	"classic":    {0, 0, 0},
	"modern":     {37, 99, 235},
	"brussels":   {0, 51, 153},
	"eu_classic": {0, 51, 153},
}

func (textRenderer) Render(ctx context.Context, doc *document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pdf := buildPDF(doc)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// buildPDF renders doc into a new A4 document. Text goes through the
// cp1252 translator the core fonts expect; runes it cannot map become '.'.
func buildPDF(doc *document) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(doc.Name, true)
	pdf.SetCreator("mycv demoserver", false)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	accent := accentColors[doc.Template]

	text := func(s string, size float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, size)
		pdf.MultiCell(0, size*0.5, tr(s), "", "L", false)
	}
	section := func(label string) {
		pdf.Ln(4)
		pdf.SetTextColor(accent[0], accent[1], accent[2])
		text(label, headingSize, true)
		pdf.SetTextColor(0, 0, 0)
		y := pdf.GetY()
		pdf.SetDrawColor(accent[0], accent[1], accent[2])
		pdf.Line(pageMargin, y, 210-pageMargin, y)
		pdf.Ln(1.5)
	}
	body := func(s string) {
		pdf.SetFont("Helvetica", "", bodySize)
		pdf.MultiCell(0, lineHeight, tr(s), "", "L", false)
	}

	text(doc.Name, nameFontSize, true)
	if len(doc.Contact) > 0 {
		body(strings.Join(doc.Contact, " | "))
	}
	if doc.Summary != "" {
		section(doc.Labels["Professional Summary"])
		body(doc.Summary)
	}
	if len(doc.Jobs) > 0 {
		section(doc.Labels["Experience"])
		for _, j := range doc.Jobs {
			pdf.Ln(1.5)
			text(j.Heading, bodySize+1, true)
			body(j.Period)
			if j.Description != "" {
				body(j.Description)
			}
		}
	}
	if len(doc.Skills) > 0 {
		section(doc.Labels["Skills"])
		body(strings.Join(doc.Skills, ", "))
	}
	if len(doc.Education) > 0 {
		section(doc.Labels["Education"])
		for _, e := range doc.Education {
			body(e)
		}
	}
	if len(doc.Projects) > 0 {
		section(doc.Labels["Projects"])
		for _, p := range doc.Projects {
			pdf.Ln(1.5)
			text(p.Name, bodySize+1, true)
			if p.Description != "" {
				body(p.Description)
			}
			if p.Technologies != "" {
				body(p.Technologies)
			}
		}
	}
	if len(doc.Languages) > 0 {
		section(doc.Labels["Languages"])
		body(strings.Join(doc.Languages, ", "))
	}
	return pdf
}
