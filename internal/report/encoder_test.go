package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"regexp"
	"strings"
	"testing"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleCollections() Collections {
	c := Collections{
		Rooms: []model.Room{
			{RoomNumber: "101", RoomType: "Deluxe", Status: model.RoomOccupied, GuestName: "Ama Owusu", CheckInDate: "2026-03-08", CheckOutDate: "2026-03-11"},
			{RoomNumber: "102", RoomType: "Standard", Status: model.RoomAvailable},
			{RoomNumber: "103", RoomType: "Suite", Status: model.RoomMaintenance},
		},
		Reservations: []model.Reservation{
			{GuestName: "Ama Owusu", RoomNumber: "101", CheckInDate: "2026-03-08", CheckOutDate: "2026-03-11", Status: model.ReservationCheckedIn, TotalAmount: 450, CreatedAt: day(1)},
		},
		Tasks: []model.Task{
			{Title: "Deep clean", RoomNumber: "103", AssignedTo: "Kofi", Priority: "High", Status: model.TaskInProgress, DueDate: "2026-03-11"},
			{Title: "Restock minibar", RoomNumber: "101", Status: model.TaskCompleted},
		},
	}
	for i := 0; i < 40; i++ {
		c.Guests = append(c.Guests, model.Guest{
			FirstName: fmt.Sprintf("Guest%02d", i), LastName: "Mensah", Email: "guest@example.com",
			RoomNumber: "101", CheckIn: "2026-03-08", CheckOut: "2026-03-11", Status: "Checked In",
		})
		status := model.InvoicePaid
		if i%3 == 0 {
			status = model.InvoicePending
		}
		c.Invoices = append(c.Invoices, model.Invoice{
			InvoiceNumber: fmt.Sprintf("INV-%03d", i), GuestName: "Ama Owusu", RoomNumber: "101",
			Amount: float64(50 + i), Status: status, IssueDate: "2026-03-05", DueDate: "2026-03-20",
			CreatedAt: day(1 + i%10),
		})
	}
	return c
}

func input(rt model.ReportType, days int, c Collections) *Input {
	ds := Build(fixedNow, days, c)
	return &Input{
		Type:      rt,
		DateRange: model.Range30Days,
		Dataset:   ds,
		KPIs:      CalculateKPIs(ds),
		Meta: Meta{
			HotelName:   "Lavimac Royal Hotel",
			PreparedBy:  "Front Desk",
			GeneratedAt: fixedNow,
			Formatter:   Formatter{CurrencySymbol: "$"},
		},
	}
}

func solidImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 30, G: 58, B: 138, A: 255})
		}
	}
	return img
}

type staticArtwork struct{ logo, cover []byte }

func (a staticArtwork) Logo(context.Context) []byte  { return a.logo }
func (a staticArtwork) Cover(context.Context) []byte { return a.cover }

func testArtwork(t *testing.T) staticArtwork {
	var logo, cover bytes.Buffer
	require.NoError(t, png.Encode(&logo, solidImage()))
	require.NoError(t, jpeg.Encode(&cover, solidImage(), nil))
	return staticArtwork{logo: logo.Bytes(), cover: cover.Bytes()}
}

func TestEveryTypeAndFormatRenders(t *testing.T) {
	artworks := map[string]Artwork{
		"no artwork":     nil,
		"with artwork":   testArtwork(t),
		"broken artwork": staticArtwork{logo: []byte("not an image"), cover: []byte{0x89, 'P', 'N', 'G'}},
	}
	datasets := map[string]Collections{
		"empty":     {},
		"populated": sampleCollections(),
	}

	for artName, art := range artworks {
		registry := NewDefaultRegistry(NewPDFRenderer(art, nil))
		for dsName, c := range datasets {
			for _, rt := range model.ReportTypes {
				for _, f := range model.Formats {
					t.Run(fmt.Sprintf("%s/%s/%s/%s", artName, dsName, rt, f), func(t *testing.T) {
						doc, err := registry.Render(context.Background(), f, input(rt, 30, c))
						require.NoError(t, err)
						require.NotEmpty(t, doc.Bytes)
						assert.Equal(t, f.MIMEType(), doc.MIMEType)
						assert.Equal(t, f.Extension(), doc.Extension)

						uri := EncodeDataURI(doc.MIMEType, doc.Bytes)
						assert.True(t, strings.HasPrefix(uri, "data:"+f.MIMEType()+";base64,"))

						switch f {
						case model.FormatPDF:
							assert.True(t, bytes.HasPrefix(doc.Bytes, []byte("%PDF")))
							assert.Nil(t, doc.Preview)
						default:
							require.NotNil(t, doc.Preview)
							assert.NotEmpty(t, doc.Preview.Rows)
							assert.LessOrEqual(t, len(doc.Preview.Rows), PreviewRows)
						}
					})
				}
			}
		}
	}
}

func TestMonthlyPDFUsesOperationalSource(t *testing.T) {
	src := &fakeSource{rooms: []model.Room{{Status: model.RoomOccupied}}}
	registry := NewDefaultRegistry(NewPDFRenderer(nil, src))

	doc, err := registry.Render(context.Background(), model.FormatPDF, input(model.ReportMonthly, 30, Collections{}))
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Bytes)
	assert.Equal(t, 1, src.calls["rooms"])
	assert.Equal(t, 1, src.calls["invoices"])
	assert.Zero(t, src.calls["guests"])
}

func TestPDFPagesAndPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		in       *Input
		contains []string
	}{
		{
			name:     "empty guests",
			in:       input(model.ReportGuests, 30, Collections{}),
			contains: []string{"Page 1", "No guest data available"},
		},
		{
			name:     "long guest register",
			in:       input(model.ReportGuests, 30, sampleCollections()),
			contains: []string{"Page 1", "Page 2"},
		},
		{
			name:     "empty housekeeping",
			in:       input(model.ReportHousekeeping, 30, Collections{}),
			contains: []string{"Page 1", "No housekeeping data available"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPDFRenderer(nil, nil)
			p.uncompressed = true
			doc, err := p.render(context.Background(), tt.in, p.layouts[tt.in.Type])
			require.NoError(t, err)

			text := string(doc.Bytes)
			for _, want := range tt.contains {
				assert.Contains(t, text, want)
			}
			assert.NotContains(t, text, "Page 0")
		})
	}
}

func TestFallbackRow(t *testing.T) {
	for _, rt := range []model.ReportType{model.ReportFinancial, model.ReportOccupancy, model.ReportGuests, model.ReportHousekeeping, model.ReportMonthly} {
		t.Run(string(rt), func(t *testing.T) {
			table := BuildTable(input(rt, 7, Collections{}))
			assert.True(t, table.Fallback)
			require.Len(t, table.Rows, 1)
			assert.Equal(t, []interface{}{"Mar 10", 0, "0%"}, table.Rows[0])
		})
	}

	t.Run("summary always has the series", func(t *testing.T) {
		table := BuildTable(input(model.ReportSummary, 7, Collections{}))
		assert.False(t, table.Fallback)
		assert.Len(t, table.Rows, 8)
	})
}

func TestFinancialWorkbookWithoutInvoices(t *testing.T) {
	in := input(model.ReportFinancial, 30, Collections{})
	data, err := EncodeExcel(in, BuildTable(in))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Financial"}, f.GetSheetList())
	rows, err := f.GetRows("Financial")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Invoice ID", "Guest", "Room", "Amount", "Status", "Issue Date", "Due Date"}, rows[0])
	assert.Equal(t, []string{"Mar 10", "0", "0%"}, rows[1])
}

func TestMonthlyWorkbookHasCoverSheet(t *testing.T) {
	in := input(model.ReportMonthly, 30, sampleCollections())
	data, err := EncodeExcel(in, BuildTable(in))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Cover", "Monthly"}, f.GetSheetList())
	title, err := f.GetCellValue("Cover", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Lavimac Royal Hotel - Monthly Report", title)

	rows, err := f.GetRows("Monthly")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Mar 2026", rows[1][0])
}

func TestCSV(t *testing.T) {
	c := Collections{Guests: []model.Guest{
		{FirstName: "Ama", LastName: `Owusu, "Jr"`, Email: "ama@example.com"},
	}}
	in := input(model.ReportGuests, 7, c)
	data, err := EncodeCSV(in, BuildTable(in))
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "# Lavimac Royal Hotel - Guests Report\n"))
	assert.Contains(t, text, "# Total Guests: 1\n")
	assert.Contains(t, text, `"Ama Owusu, ""Jr"""`)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comment = '#'
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Name", records[0][0])
	assert.Equal(t, `Ama Owusu, "Jr"`, records[1][0])
}

func TestCSVNotesStayOnOneLine(t *testing.T) {
	in := input(model.ReportGuests, 7, Collections{})
	in.Meta.PreparedBy = "Eve\nName,Email\r\nInjected"
	data, err := EncodeCSV(in, BuildTable(in))
	require.NoError(t, err)

	assert.Contains(t, string(data), "# Prepared by: Eve Name,Email Injected\n")
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" || strings.HasPrefix(line, "# ") {
			continue
		}
		assert.Equal(t, "Name,Email,Phone,Room,Check In,Check Out,Status", line)
		break
	}
}

func TestCSVAmounts(t *testing.T) {
	in := input(model.ReportFinancial, 7, Collections{Invoices: []model.Invoice{
		{InvoiceNumber: "INV-1", Amount: 1250.5, Status: model.InvoicePaid, CreatedAt: day(9)},
	}})
	data, err := EncodeCSV(in, BuildTable(in))
	require.NoError(t, err)
	assert.Contains(t, string(data), "INV-1,,,1250.50,Paid,,\n")
	assert.Contains(t, string(data), "# Collection Rate: 100%\n")
}

func TestRegistry(t *testing.T) {
	in := input(model.ReportSummary, 7, Collections{})

	t.Run("unsupported", func(t *testing.T) {
		_, err := NewRegistry().Render(context.Background(), model.FormatPDF, in)
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("panic becomes error", func(t *testing.T) {
		r := NewRegistry()
		r.Register(model.ReportSummary, model.FormatCSV, func(context.Context, *Input) (*Document, error) {
			panic("layout exploded")
		})
		doc, err := r.Render(context.Background(), model.FormatCSV, in)
		assert.Nil(t, doc)
		assert.ErrorContains(t, err, "layout exploded")
	})

	t.Run("empty output", func(t *testing.T) {
		r := NewRegistry()
		r.Register(model.ReportSummary, model.FormatCSV, func(context.Context, *Input) (*Document, error) {
			return &Document{}, nil
		})
		_, err := r.Render(context.Background(), model.FormatCSV, in)
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})

	t.Run("encoder error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		r := NewRegistry()
		r.RegisterTabular(model.FormatCSV, func(*Input, Table) ([]byte, error) { return nil, boom })
		_, err := r.Render(context.Background(), model.FormatCSV, in)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("default registry covers every pair", func(t *testing.T) {
		r := NewDefaultRegistry(NewPDFRenderer(nil, nil))
		for _, rt := range model.ReportTypes {
			for _, f := range model.Formats {
				assert.True(t, r.Supports(rt, f), "%s/%s", rt, f)
			}
		}
	})
}

func TestDataURI(t *testing.T) {
	uri := EncodeDataURI("text/csv", []byte("a,b\n"))
	assert.Equal(t, "data:text/csv;base64,YSxiCg==", uri)

	mimeType, data, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", mimeType)
	assert.Equal(t, []byte("a,b\n"), data)

	for _, bad := range []string{"", "text/csv;base64,YQ==", "data:text/csv,a", "data:text/csv;base64", "data:text/csv;base64,!!"} {
		_, _, err := DecodeDataURI(bad)
		assert.ErrorIs(t, err, ErrInvalidDataURI, bad)
	}
}

func TestFilename(t *testing.T) {
	name := Filename(model.ReportFinancial, model.FormatExcel, fixedNow, []byte("payload"))
	assert.Regexp(t, regexp.MustCompile(`^hotel_financial_report_20260310_[0-9a-f]{8}\.xlsx$`), name)
	assert.Equal(t, name, Filename(model.ReportFinancial, model.FormatExcel, fixedNow, []byte("payload")))
	assert.NotEqual(t, name, Filename(model.ReportFinancial, model.FormatExcel, fixedNow, []byte("other")))
}
