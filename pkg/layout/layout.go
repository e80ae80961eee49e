// Package layout provides the cursor-based page layout primitives the
// document renderers draw with: fixed-size cells, horizontal rules,
// wrapped text blocks, anchored images and automatic page breaks on an
// A4 portrait page measured in millimeters.
package layout

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const fontFamily = "Arial"

// Option is a functional option for configuring a new Doc.
type Option func(*docConfig)

type docConfig struct {
	title       string
	breakMargin float64
}

// WithTitle sets a centered bold title rendered by the page header hook.
func WithTitle(title string) Option {
	return func(c *docConfig) {
		c.title = title
	}
}

// WithBreakMargin sets the bottom margin that triggers the automatic
// page break. Default is 15mm.
func WithBreakMargin(margin float64) Option {
	return func(c *docConfig) {
		c.breakMargin = margin
	}
}

// Doc is an in-progress paginated document. It owns a mutable draw
// cursor and is not safe for concurrent use; finish it with Output.
type Doc struct {
	pdf      *gofpdf.Fpdf
	imageSeq int
}

// NewDoc creates an A4 portrait document with the header/footer hooks
// installed and the first page added.
func NewDoc(opts ...Option) *Doc {
	cfg := docConfig{breakMargin: 15}
	for _, opt := range opts {
		opt(&cfg)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, cfg.breakMargin)

	if cfg.title != "" {
		title := cfg.title
		pdf.SetTitle(title, false)
		pdf.SetHeaderFunc(func() {
			pdf.SetFont(fontFamily, "B", 14)
			pdf.CellFormat(0, 10, Sanitize(title), "", 1, "C", false, 0, "")
			pdf.Ln(5)
		})
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.SetFont(fontFamily, "", 12)
	pdf.AddPage()

	return &Doc{pdf: pdf}
}

// Font switches the current font style ("", "B", "I", "BI") and size.
func (d *Doc) Font(style string, size float64) {
	d.pdf.SetFont(fontFamily, style, size)
}

// Cell draws one rectangular cell at the cursor. border names the sides
// to draw ("", "T", "L", "R", "B", "1" for all); ln 0 keeps the cursor
// to the right of the cell, ln 1 moves it to the start of the next line.
func (d *Doc) Cell(w, h float64, txt, border string, ln int, align string) {
	d.pdf.CellFormat(w, h, Sanitize(txt), border, ln, align, false, 0, "")
}

// FillCell is Cell with the current fill color painted behind the text.
func (d *Doc) FillCell(w, h float64, txt, border string, ln int, align string) {
	d.pdf.CellFormat(w, h, Sanitize(txt), border, ln, align, true, 0, "")
}

// MultiCell draws a wrapped text block of the given width. A width of 0
// spans to the right margin.
func (d *Doc) MultiCell(w, h float64, txt, border, align string) {
	d.pdf.MultiCell(w, h, Sanitize(txt), border, align, false)
}

// Separator draws a full-width horizontal rule with vertical gaps above
// and below, in the given gray tone.
func (d *Doc) Separator(gapTop, gapBottom float64, gray int) {
	d.pdf.Ln(gapTop)
	d.pdf.SetDrawColor(gray, gray, gray)
	d.pdf.CellFormat(0, 0, "", "T", 1, "", false, 0, "")
	d.pdf.Ln(gapBottom)
}

// ImagePNG places a PNG raster anchored at (x, y), scaled to height h
// with the aspect ratio preserved. The cursor does not move.
func (d *Doc) ImagePNG(png []byte, x, y, h float64) {
	d.imageSeq++
	name := fmt.Sprintf("img%d", d.imageSeq)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	d.pdf.ImageOptions(name, x, y, 0, h, false, opts, 0, "")
}

// Rect draws a rectangle outline at explicit coordinates.
func (d *Doc) Rect(x, y, w, h float64) {
	d.pdf.Rect(x, y, w, h, "D")
}

// FillColor sets the cell background color.
func (d *Doc) FillColor(r, g, b int) {
	d.pdf.SetFillColor(r, g, b)
}

// DrawColor sets the line and border color.
func (d *Doc) DrawColor(r, g, b int) {
	d.pdf.SetDrawColor(r, g, b)
}

// Ln advances the cursor to the start of the next line, h deep.
func (d *Doc) Ln(h float64) {
	d.pdf.Ln(h)
}

// X returns the cursor x position.
func (d *Doc) X() float64 {
	return d.pdf.GetX()
}

// Y returns the cursor y position.
func (d *Doc) Y() float64 {
	return d.pdf.GetY()
}

// SetX moves the cursor horizontally.
func (d *Doc) SetX(x float64) {
	d.pdf.SetX(x)
}

// SetY moves the cursor vertically and returns x to the left margin.
// A negative y is measured up from the bottom of the page.
func (d *Doc) SetY(y float64) {
	d.pdf.SetY(y)
}

// SetXY moves the cursor to an explicit position.
func (d *Doc) SetXY(x, y float64) {
	d.pdf.SetXY(x, y)
}

// ContentWidth is the usable width between the left and right margins.
func (d *Doc) ContentWidth() float64 {
	w, _ := d.pdf.GetPageSize()
	left, _, right, _ := d.pdf.GetMargins()
	return w - left - right
}

// LeftMargin returns the left page margin.
func (d *Doc) LeftMargin() float64 {
	left, _, _, _ := d.pdf.GetMargins()
	return left
}

// PageCount returns the number of pages added so far.
func (d *Doc) PageCount() int {
	return d.pdf.PageCount()
}

// Output finalizes the document and returns the PDF bytes.
func (d *Doc) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("finalizing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Sanitize maps text onto the Latin-1 range the core PDF fonts support.
// Unsupported runes become '?'; the operation is lossy and never fails.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r > 0xFF {
			b.WriteByte('?')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
