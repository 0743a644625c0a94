package report

import (
	"math"
	"strings"
)

// card is one KPI tile.
type card struct {
	label string
	value string
}

// ensure starts a new page when fewer than h millimetres remain.
func (d *pdfDoc) ensure(h float64) {
	_, pageH := d.GetPageSize()
	if d.GetY()+h > pageH-bottomMargin {
		d.AddPage()
	}
}

func (d *pdfDoc) sectionTitle(title string) {
	d.ensure(20)
	d.Ln(2)
	d.color(d.palette.primary)
	d.SetFont("Helvetica", "B", 14)
	d.SetX(marginX)
	d.CellFormat(d.contentWidth(), 9, d.tr(title), "", 1, "L", false, 0, "")
	y := d.GetY()
	d.fill(d.palette.accent)
	d.Rect(marginX, y, 24, 0.8, "F")
	d.Ln(4)
	d.color(dark)
}

func (d *pdfDoc) paragraph(text string) {
	d.color(dark)
	d.SetFont("Helvetica", "", 10)
	d.SetX(marginX)
	d.MultiCell(d.contentWidth(), 5.5, d.tr(text), "", "L", false)
	d.Ln(3)
}

// kpiCards draws up to four cards per row.
func (d *pdfDoc) kpiCards(cards []card) {
	const perRow, gap, h = 4, 4.0, 24.0
	for start := 0; start < len(cards); start += perRow {
		row := cards[start:min(start+perRow, len(cards))]
		d.ensure(h + 6)
		w := (d.contentWidth() - gap*float64(perRow-1)) / perRow
		y := d.GetY()
		for i, c := range row {
			x := marginX + float64(i)*(w+gap)
			d.fill(d.palette.light)
			d.draw(rule)
			d.SetLineWidth(0.2)
			d.Rect(x, y, w, h, "FD")
			d.fill(d.palette.accent)
			d.Rect(x, y, 1.5, h, "F")

			d.color(muted)
			d.SetFont("Helvetica", "", 8)
			d.SetXY(x+4, y+3)
			d.CellFormat(w-6, 5, d.fit(strings.ToUpper(c.label), w-6), "", 0, "L", false, 0, "")
			d.color(d.palette.primary)
			d.SetFont("Helvetica", "B", 14)
			d.SetXY(x+4, y+11)
			d.CellFormat(w-6, 8, d.fit(c.value, w-6), "", 0, "L", false, 0, "")
		}
		d.SetXY(marginX, y+h+6)
	}
	d.color(dark)
}

// placeholder is drawn instead of an empty section.
func (d *pdfDoc) placeholder(msg string) {
	d.ensure(22)
	y := d.GetY()
	d.fill(d.palette.light)
	d.draw(rule)
	d.SetLineWidth(0.2)
	d.Rect(marginX, y, d.contentWidth(), 16, "FD")
	d.color(muted)
	d.SetFont("Helvetica", "I", 10)
	d.SetXY(marginX, y+5)
	d.CellFormat(d.contentWidth(), 6, d.tr(msg), "", 0, "C", false, 0, "")
	d.SetXY(marginX, y+22)
	d.color(dark)
}

// table draws rows under a header that repeats on every page. widths are
// fractions of the content width.
func (d *pdfDoc) table(headers []string, widths []float64, rows [][]string) {
	const rowH = 7.0
	cw := d.contentWidth()
	cols := make([]float64, len(headers))
	for i := range headers {
		frac := 1 / float64(len(headers))
		if i < len(widths) {
			frac = widths[i]
		}
		cols[i] = frac * cw
	}

	drawHeader := func() {
		d.fill(d.palette.primary)
		d.color(white)
		d.SetFont("Helvetica", "B", 9)
		d.SetX(marginX)
		for i, h := range headers {
			d.CellFormat(cols[i], rowH+1, d.fit(h, cols[i]), "", 0, "L", true, 0, "")
		}
		d.Ln(rowH + 1)
	}

	d.ensure(rowH * 3)
	drawHeader()
	_, pageH := d.GetPageSize()
	for n, row := range rows {
		if d.GetY()+rowH > pageH-bottomMargin {
			d.AddPage()
			drawHeader()
		}
		if n%2 == 1 {
			d.fill(d.palette.light)
		} else {
			d.fill(white)
		}
		d.color(dark)
		d.SetFont("Helvetica", "", 9)
		d.SetX(marginX)
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			d.CellFormat(cols[i], rowH, d.fit(cell, cols[i]), "B", 0, "L", true, 0, "")
		}
		d.Ln(rowH)
	}
	d.Ln(4)
}

// fit translates s and trims it with an ellipsis to fit w.
func (d *pdfDoc) fit(s string, w float64) string {
	s = d.tr(s)
	limit := w - 2
	if d.GetStringWidth(s) <= limit {
		return s
	}
	for len(s) > 0 && d.GetStringWidth(s+"...") > limit {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// lineChart plots points as a polyline with a light grid.
func (d *pdfDoc) lineChart(title string, points []SeriesPoint, label func(float64) string) {
	const chartH, axisW, labelH = 58.0, 22.0, 8.0
	d.ensure(chartH + labelH + 14)
	d.chartTitle(title)

	x0 := marginX + axisW
	y0 := d.GetY()
	w := d.contentWidth() - axisW
	top := maxValue(points)
	d.grid(x0, y0, w, chartH, top, label)

	n := len(points)
	if n == 0 {
		d.SetXY(marginX, y0+chartH+labelH)
		return
	}
	xAt := func(i int) float64 {
		if n == 1 {
			return x0 + w/2
		}
		return x0 + float64(i)*w/float64(n-1)
	}
	yAt := func(v float64) float64 { return y0 + chartH - v/top*chartH }

	d.draw(d.palette.accent)
	d.SetLineWidth(0.6)
	for i := 1; i < n; i++ {
		d.Line(xAt(i-1), yAt(points[i-1].Value), xAt(i), yAt(points[i].Value))
	}
	if n <= 31 {
		d.fill(d.palette.primary)
		for i, p := range points {
			d.Circle(xAt(i), yAt(p.Value), 0.8, "F")
		}
	}

	d.color(muted)
	d.SetFont("Helvetica", "", 7)
	step := int(math.Ceil(float64(n) / 8))
	for i := 0; i < n; i += step {
		d.SetXY(xAt(i)-10, y0+chartH+1)
		d.CellFormat(20, 5, points[i].Label, "", 0, "C", false, 0, "")
	}
	d.SetXY(marginX, y0+chartH+labelH+4)
	d.color(dark)
}

// barChart draws one bar per label.
func (d *pdfDoc) barChart(title string, labels []string, values []float64, label func(float64) string) {
	const chartH, axisW, labelH = 50.0, 22.0, 8.0
	d.ensure(chartH + labelH + 14)
	d.chartTitle(title)

	x0 := marginX + axisW
	y0 := d.GetY()
	w := d.contentWidth() - axisW
	points := make([]SeriesPoint, len(values))
	for i, v := range values {
		points[i].Value = v
	}
	top := maxValue(points)
	d.grid(x0, y0, w, chartH, top, label)

	n := len(values)
	if n == 0 {
		d.SetXY(marginX, y0+chartH+labelH)
		return
	}
	slot := w / float64(n)
	barW := slot * 0.6
	step := int(math.Ceil(float64(n) / 12))

	for i, v := range values {
		bh := v / top * chartH
		x := x0 + float64(i)*slot + (slot-barW)/2
		if i%2 == 0 {
			d.fill(d.palette.primary)
		} else {
			d.fill(d.palette.accent)
		}
		d.Rect(x, y0+chartH-bh, barW, bh, "F")
		if i%step == 0 {
			d.color(muted)
			d.SetFont("Helvetica", "", 7)
			d.SetXY(x0+float64(i)*slot, y0+chartH+1)
			d.CellFormat(slot*float64(step), 5, d.fit(labels[i], slot*float64(step)), "", 0, "C", false, 0, "")
		}
	}
	d.SetXY(marginX, y0+chartH+labelH+4)
	d.color(dark)
}

func (d *pdfDoc) chartTitle(title string) {
	d.color(dark)
	d.SetFont("Helvetica", "B", 11)
	d.SetX(marginX)
	d.CellFormat(d.contentWidth(), 7, d.tr(title), "", 1, "L", false, 0, "")
	d.Ln(2)
}

// grid draws four horizontal rules with value labels and the axes.
func (d *pdfDoc) grid(x0, y0, w, h, top float64, label func(float64) string) {
	d.SetLineWidth(0.2)
	d.SetFont("Helvetica", "", 7)
	for i := 0; i <= 4; i++ {
		y := y0 + h - float64(i)*h/4
		d.draw(rule)
		d.Line(x0, y, x0+w, y)
		d.color(muted)
		d.SetXY(marginX, y-2.5)
		d.CellFormat(x0-marginX-2, 5, d.tr(label(top*float64(i)/4)), "", 0, "R", false, 0, "")
	}
	d.draw(muted)
	d.Line(x0, y0, x0, y0+h)
	d.Line(x0, y0+h, x0+w, y0+h)
}

// maxValue returns the chart ceiling, never zero.
func maxValue(points []SeriesPoint) float64 {
	top := 0.0
	for _, p := range points {
		top = math.Max(top, p.Value)
	}
	if top <= 0 {
		return 1
	}
	return top
}
