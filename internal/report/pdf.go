package report

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"go.uber.org/zap"
)

const (
	marginX      = 15.0
	contentTop   = 28.0
	bottomMargin = 20.0

	logoImage  = "logo"
	coverImage = "cover"
)

// Artwork supplies the letterhead images. A nil slice means the image is unavailable.
type Artwork interface {
	Logo(ctx context.Context) []byte
	Cover(ctx context.Context) []byte
}

type rgb struct{ r, g, b int }

type palette struct {
	primary rgb
	accent  rgb
	light   rgb
}

var (
	white = rgb{255, 255, 255}
	dark  = rgb{31, 41, 55}
	muted = rgb{107, 114, 128}
	rule  = rgb{229, 231, 235}
)

var palettes = map[model.ReportType]palette{
	model.ReportSummary:      {primary: rgb{30, 58, 138}, accent: rgb{59, 130, 246}, light: rgb{239, 246, 255}},
	model.ReportFinancial:    {primary: rgb{6, 95, 70}, accent: rgb{16, 185, 129}, light: rgb{236, 253, 245}},
	model.ReportOccupancy:    {primary: rgb{76, 29, 149}, accent: rgb{139, 92, 246}, light: rgb{245, 243, 255}},
	model.ReportGuests:       {primary: rgb{17, 94, 89}, accent: rgb{20, 184, 166}, light: rgb{240, 253, 250}},
	model.ReportHousekeeping: {primary: rgb{146, 64, 14}, accent: rgb{245, 158, 11}, light: rgb{255, 251, 235}},
	model.ReportMonthly:      {primary: rgb{127, 29, 29}, accent: rgb{239, 68, 68}, light: rgb{254, 242, 242}},
}

func paletteFor(rt model.ReportType) palette {
	if p, ok := palettes[rt]; ok {
		return p
	}
	return palettes[model.ReportSummary]
}

// layoutFunc draws the content pages of one report type.
type layoutFunc func(ctx context.Context, d *pdfDoc) error

// PDFRenderer draws paged reports with a themed cover page.
type PDFRenderer struct {
	artwork Artwork
	ops     OperationalSource
	layouts map[model.ReportType]layoutFunc
	// uncompressed leaves page streams readable.
	uncompressed bool
}

// NewPDFRenderer creates a renderer. artwork and ops may be nil: the cover then
// falls back to drawn placeholders and the monthly report to the dataset collections.
func NewPDFRenderer(artwork Artwork, ops OperationalSource) *PDFRenderer {
	p := &PDFRenderer{artwork: artwork, ops: ops}
	p.layouts = map[model.ReportType]layoutFunc{
		model.ReportSummary:      layoutSummary,
		model.ReportFinancial:    layoutFinancial,
		model.ReportOccupancy:    layoutOccupancy,
		model.ReportGuests:       layoutGuests,
		model.ReportHousekeeping: layoutHousekeeping,
		model.ReportMonthly:      p.layoutMonthly,
	}
	return p
}

// Register binds every PDF layout in r.
func (p *PDFRenderer) Register(r *Registry) {
	for rt, layout := range p.layouts {
		layout := layout
		r.Register(rt, model.FormatPDF, func(ctx context.Context, in *Input) (*Document, error) {
			return p.render(ctx, in, layout)
		})
	}
}

func (p *PDFRenderer) render(ctx context.Context, in *Input, layout layoutFunc) (*Document, error) {
	ds := in.Dataset
	if ds == nil {
		ds = Build(in.Meta.GeneratedAt, in.DateRange.Days(), Collections{})
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, contentTop, marginX)
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.SetCompression(!p.uncompressed)
	pdf.SetTitle(in.Type.Title()+" Report", true)
	pdf.SetAuthor(in.Meta.PreparedBy, true)
	pdf.SetCreator(in.Meta.HotelName, true)

	d := &pdfDoc{
		Fpdf:    pdf,
		in:      in,
		ds:      ds,
		palette: paletteFor(in.Type),
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
	}

	var hasLogo, hasCover bool
	if p.artwork != nil {
		hasLogo = d.registerImage(logoImage, p.artwork.Logo(ctx))
		hasCover = d.registerImage(coverImage, p.artwork.Cover(ctx))
	}

	pdf.SetHeaderFunc(d.header)
	pdf.SetFooterFunc(d.footer)

	d.cover(hasLogo, hasCover)
	pdf.AddPage()
	if err := layout(ctx, d); err != nil {
		return nil, err
	}
	if pdf.Err() {
		return nil, fmt.Errorf("draw pdf: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return &Document{Bytes: buf.Bytes(), MIMEType: model.FormatPDF.MIMEType(), Extension: "pdf"}, nil
}

// pdfDoc is one document being drawn.
type pdfDoc struct {
	*gofpdf.Fpdf
	in      *Input
	ds      *Dataset
	palette palette
	tr      func(string) string
}

func (d *pdfDoc) fill(c rgb)  { d.SetFillColor(c.r, c.g, c.b) }
func (d *pdfDoc) draw(c rgb)  { d.SetDrawColor(c.r, c.g, c.b) }
func (d *pdfDoc) color(c rgb) { d.SetTextColor(c.r, c.g, c.b) }

func (d *pdfDoc) contentWidth() float64 {
	w, _ := d.GetPageSize()
	return w - 2*marginX
}

// registerImage embeds an image, reporting false when data is missing or undecodable.
func (d *pdfDoc) registerImage(name string, data []byte) bool {
	if len(data) == 0 {
		return false
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		zap.L().Warn("Skipping undecodable report image",
			zap.String("image", name),
			zap.Error(err))
		return false
	}

	var imageType string
	switch format {
	case "png":
		imageType = "PNG"
	case "jpeg":
		imageType = "JPG"
	case "gif":
		imageType = "GIF"
	default:
		return false
	}

	d.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if d.Err() {
		zap.L().Warn("Skipping unsupported report image",
			zap.String("image", name),
			zap.Error(d.Error()))
		d.ClearError()
		return false
	}
	return true
}

func (d *pdfDoc) cover(hasLogo, hasCover bool) {
	d.SetAutoPageBreak(false, 0)
	d.AddPage()

	w, h := d.GetPageSize()
	split := h * 0.58

	d.fill(d.palette.primary)
	d.Rect(0, 0, w, split, "F")
	if hasCover {
		d.SetAlpha(0.25, "Normal")
		d.ImageOptions(coverImage, 0, 0, w, split, false, gofpdf.ImageOptions{}, 0, "")
		d.SetAlpha(1, "Normal")
	}
	d.fill(d.palette.accent)
	d.Rect(0, split, w, 4, "F")
	d.fill(d.palette.light)
	d.Rect(0, split+4, w, h-split-4, "F")

	// Logo or a lettered placeholder
	cx, cy := w/2, 42.0
	if hasLogo {
		d.ImageOptions(logoImage, cx-18, cy-18, 36, 36, false, gofpdf.ImageOptions{}, 0, "")
	} else {
		d.fill(white)
		d.Circle(cx, cy, 18, "F")
		d.draw(d.palette.accent)
		d.SetLineWidth(1)
		d.Circle(cx, cy, 15, "D")
		d.color(d.palette.primary)
		d.SetFont("Helvetica", "B", 22)
		d.SetXY(cx-18, cy-6)
		d.CellFormat(36, 12, d.tr(initial(d.in.Meta.HotelName)), "", 0, "C", false, 0, "")
	}

	d.color(white)
	d.SetFont("Helvetica", "B", 20)
	d.SetXY(0, 72)
	d.CellFormat(w, 10, d.tr(strings.ToUpper(d.in.Meta.HotelName)), "", 1, "C", false, 0, "")

	d.SetFont("Helvetica", "B", 32)
	d.SetXY(0, 100)
	d.CellFormat(w, 16, d.tr(d.in.Type.Title()+" Report"), "", 1, "C", false, 0, "")

	d.SetFont("Helvetica", "", 14)
	d.SetXY(0, 120)
	d.CellFormat(w, 8, d.tr(d.in.DateRange.Label()), "", 1, "C", false, 0, "")

	d.draw(white)
	d.SetLineWidth(0.5)
	d.Line(w/2-30, 134, w/2+30, 134)

	details := [][2]string{
		{"Report Period", d.ds.Start.Format(LongLayout) + " - " + d.ds.Today.Format(LongLayout)},
		{"Generated On", d.in.Meta.GeneratedAt.Format(LongLayout)},
		{"Prepared By", d.in.Meta.PreparedBy},
		{"Report Type", d.in.Type.Title()},
	}
	y := split + 22
	for _, row := range details {
		d.SetXY(marginX+20, y)
		d.color(muted)
		d.SetFont("Helvetica", "", 10)
		d.CellFormat(50, 8, d.tr(row[0]), "", 0, "L", false, 0, "")
		d.color(d.palette.primary)
		d.SetFont("Helvetica", "B", 12)
		d.CellFormat(w-2*marginX-70, 8, d.tr(row[1]), "", 0, "L", false, 0, "")
		d.draw(rule)
		d.SetLineWidth(0.2)
		d.Line(marginX+20, y+10, w-marginX-20, y+10)
		y += 14
	}

	d.color(muted)
	d.SetFont("Helvetica", "I", 8)
	d.SetXY(0, h-14)
	d.CellFormat(w, 6, d.tr("Confidential - for internal use by "+d.in.Meta.HotelName+" management"), "", 0, "C", false, 0, "")

	d.SetAutoPageBreak(true, bottomMargin)
}

// header draws the branded band on content pages.
func (d *pdfDoc) header() {
	if d.PageNo() == 1 {
		return
	}
	w, _ := d.GetPageSize()
	d.fill(d.palette.primary)
	d.Rect(0, 0, w, 18, "F")
	d.fill(d.palette.accent)
	d.Rect(0, 18, w, 1.2, "F")

	d.color(white)
	d.SetFont("Helvetica", "B", 12)
	d.SetXY(marginX, 5)
	d.CellFormat(w/2-marginX, 8, d.tr(d.in.Meta.HotelName), "", 0, "L", false, 0, "")
	d.SetFont("Helvetica", "", 9)
	d.SetXY(w/2, 5)
	d.CellFormat(w/2-marginX, 8, d.tr(d.in.Type.Title()+" Report | "+d.in.DateRange.Label()), "", 0, "R", false, 0, "")

	d.color(dark)
	d.SetXY(marginX, contentTop)
}

// footer numbers content pages from 1; the cover is not counted.
func (d *pdfDoc) footer() {
	if d.PageNo() == 1 {
		return
	}
	w, h := d.GetPageSize()
	d.draw(rule)
	d.SetLineWidth(0.3)
	d.Line(marginX, h-14, w-marginX, h-14)

	d.color(muted)
	d.SetFont("Helvetica", "", 8)
	d.SetXY(marginX, h-12)
	d.CellFormat(w/2, 6, d.tr("Generated "+d.in.Meta.GeneratedAt.Format(LongLayout)+" by "+d.in.Meta.PreparedBy), "", 0, "L", false, 0, "")
	d.SetXY(w/2, h-12)
	d.CellFormat(w/2-marginX, 6, fmt.Sprintf("Page %d", d.PageNo()-1), "", 0, "R", false, 0, "")
}

func initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return strings.ToUpper(string(r))
	}
	return "H"
}
