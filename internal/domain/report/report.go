// Package report renders a balance result as a PDF document.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okian/dragonbalance/internal/domain/balance"
)

// ContentType is the media type of rendered reports.
const ContentType = "application/pdf"

// Page geometry in millimetres.
const (
	margin       = 15.0
	footerOffset = -12.0
	lineHeight   = 6.0
	rowHeight    = 7.0
	gap          = 4.0
	totalsColW   = 36.0
	benchColW    = 14.0
	seatColW     = 83.0
)

var (
	headerFill = [3]int{211, 211, 211}
	gridColor  = [3]int{128, 128, 128}
)

// Document is everything a report shows.
type Document struct {
	BoatSize int
	Benches  int
	Drummer  string
	Helm     string
	Result   balance.Result
}

// Localizer returns a printer for a language. *i18n.Bundle satisfies it.
type Localizer interface {
	Printer(tag language.Tag) *message.Printer
}

// Renderer builds PDF reports. It is safe for concurrent use; all per-document
// state lives in Render.
type Renderer struct {
	loc      Localizer
	compress bool
	now      func() time.Time
}

// NewRenderer returns a renderer using loc for labels.
func NewRenderer(loc Localizer, opts ...Option) *Renderer {
	r := &Renderer{loc: loc, compress: true, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// page carries the state of one document being written.
type page struct {
	pdf *fpdf.Fpdf
	p   *message.Printer
	enc *encoding.Encoder
}

// text converts UTF-8 to the cp1252 encoding of the core fonts; runes outside
// it become '?' rather than failing the document.
func (pg *page) text(s string) string {
	out, err := pg.enc.String(s)
	if err != nil {
		return s
	}
	return out
}

func (pg *page) tr(key string, args ...any) string {
	return pg.text(pg.p.Sprintf(key, args...))
}

func (pg *page) kg(v float64) string {
	return pg.p.Sprintf("%.1f", v)
}

// Render writes doc as a PDF to w using the labels of tag.
func (r *Renderer) Render(w io.Writer, tag language.Tag, doc Document) error {
	pg := &page{
		pdf: fpdf.New("P", "mm", "A4", ""),
		p:   r.loc.Printer(tag),
		enc: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
	}
	pdf := pg.pdf
	title := pg.p.Sprintf("app.title")

	pdf.SetCompression(r.compress)
	pdf.SetCreationDate(r.now())
	pdf.SetTitle(title, true)
	pdf.SetCreator("dragonbalance", false)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(footerOffset)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, pg.tr("report.page", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, pg.text(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, lineHeight, pg.tr("report.boat", doc.BoatSize, doc.Benches), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, pg.tr("report.crew",
		orDash(doc.Drummer), doc.Result.Totals.Drummer,
		orDash(doc.Helm), doc.Result.Totals.Helm,
	), "", 1, "L", false, 0, "")
	pdf.Ln(gap)

	pg.totals(doc.Result.Totals)
	pdf.Ln(gap)
	pg.benches(doc.Result.Assignments)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

func (pg *page) gridStyle() {
	pg.pdf.SetDrawColor(gridColor[0], gridColor[1], gridColor[2])
	pg.pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pg.pdf.SetLineWidth(0.2)
}

func (pg *page) totals(t balance.Totals) {
	pdf := pg.pdf
	pg.gridStyle()

	pdf.SetFont("Helvetica", "B", 10)
	for _, key := range []string{"zone.left_kg", "zone.right_kg", "zone.bow_kg", "zone.stern_kg", "zone.total_kg"} {
		pdf.CellFormat(totalsColW, rowHeight, pg.tr(key), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, v := range []float64{t.Left, t.Right, t.Bow, t.Stern, t.Total} {
		pdf.CellFormat(totalsColW, rowHeight, pg.kg(v), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
}

func (pg *page) benchHeader() {
	pdf := pg.pdf
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(benchColW, rowHeight, pg.tr("form.bench"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(seatColW, rowHeight, pg.tr("report.left_column"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(seatColW, rowHeight, pg.tr("report.right_column"), "1", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func (pg *page) benches(rows []balance.Bench) {
	pdf := pg.pdf
	pg.gridStyle()
	pg.benchHeader()

	_, pageH := pdf.GetPageSize()
	for _, b := range rows {
		if pdf.GetY()+rowHeight > pageH-margin {
			pdf.AddPage()
			pg.gridStyle()
			pg.benchHeader()
		}
		pdf.CellFormat(benchColW, rowHeight, strconv.Itoa(b.Bench), "1", 0, "C", false, 0, "")
		pdf.CellFormat(seatColW, rowHeight, pg.seat(b.LeftName, b.LeftWeight), "1", 0, "L", false, 0, "")
		pdf.CellFormat(seatColW, rowHeight, pg.seat(b.RightName, b.RightWeight), "1", 1, "L", false, 0, "")
	}
}

func (pg *page) seat(name string, weight float64) string {
	if name == "" {
		return "-"
	}
	return pg.tr("report.seat", name, weight)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
