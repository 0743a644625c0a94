package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateRangeKey selects how many days a report covers.
type DateRangeKey string

const (
	Range7Days    DateRangeKey = "7days"
	Range30Days   DateRangeKey = "30days"
	Range90Days   DateRangeKey = "90days"
	Range12Months DateRangeKey = "12months"
)

// Days returns the day-count for the range. Unknown keys fall back to 7.
func (k DateRangeKey) Days() int {
	switch k {
	case Range30Days:
		return 30
	case Range90Days:
		return 90
	case Range12Months:
		return 365
	default:
		return 7
	}
}

// Label returns the human form used on report covers.
func (k DateRangeKey) Label() string {
	switch k {
	case Range30Days:
		return "Last 30 Days"
	case Range90Days:
		return "Last 90 Days"
	case Range12Months:
		return "Last 12 Months"
	default:
		return "Last 7 Days"
	}
}

// ParseDateRange parses a string into a DateRangeKey.
func ParseDateRange(s string) (DateRangeKey, error) {
	switch k := DateRangeKey(strings.ToLower(strings.TrimSpace(s))); k {
	case Range7Days, Range30Days, Range90Days, Range12Months:
		return k, nil
	default:
		return "", fmt.Errorf("invalid date range: %q (expected 7days, 30days, 90days, or 12months)", s)
	}
}

// ReportType selects the layout and data shaping of a report.
type ReportType string

const (
	ReportSummary      ReportType = "summary"
	ReportFinancial    ReportType = "financial"
	ReportOccupancy    ReportType = "occupancy"
	ReportGuests       ReportType = "guests"
	ReportHousekeeping ReportType = "housekeeping"
	ReportMonthly      ReportType = "monthly"
)

// ReportTypes lists every report type in display order.
var ReportTypes = []ReportType{
	ReportSummary, ReportFinancial, ReportOccupancy, ReportGuests, ReportHousekeeping, ReportMonthly,
}

// Title returns the capitalised name, also used as the primary sheet name.
func (rt ReportType) Title() string {
	switch rt {
	case ReportSummary:
		return "Summary"
	case ReportFinancial:
		return "Financial"
	case ReportOccupancy:
		return "Occupancy"
	case ReportGuests:
		return "Guests"
	case ReportHousekeeping:
		return "Housekeeping"
	case ReportMonthly:
		return "Monthly"
	default:
		return string(rt)
	}
}

// ParseReportType parses a string into a ReportType.
func ParseReportType(s string) (ReportType, error) {
	rt := ReportType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ReportTypes {
		if rt == known {
			return rt, nil
		}
	}
	return "", fmt.Errorf("invalid report type: %q", s)
}

// Format is the output encoding of a report.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
	FormatCSV   Format = "csv"
)

// Formats lists every output format.
var Formats = []Format{FormatPDF, FormatExcel, FormatCSV}

// MIMEType returns the media type embedded in the data URI.
func (f Format) MIMEType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the filename extension without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatExcel:
		return "xlsx"
	default:
		return string(f)
	}
}

// ParseFormat parses a string into a Format. "xlsx" is accepted for excel.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("invalid format: %q (expected pdf, excel, or csv)", s)
	}
}

// ReportRequest is built per generation click.
type ReportRequest struct {
	DateRange  DateRangeKey `json:"date_range" validate:"required,oneof=7days 30days 90days 12months"`
	ReportType ReportType   `json:"report_type" validate:"required,oneof=summary financial occupancy guests housekeeping monthly"`
	Format     Format       `json:"format" validate:"required,oneof=pdf excel csv"`
}

var validate = validator.New()

// Validate checks the request enums.
func (r ReportRequest) Validate() error {
	return validate.Struct(r)
}

// TablePreview is the tabular preview kept for spreadsheet and CSV reports.
type TablePreview struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// PreviewData is either a data URI (paged documents) or a TablePreview.
// It marshals to a JSON string or object accordingly.
type PreviewData struct {
	DataURI string
	Table   *TablePreview
}

func (p PreviewData) IsEmpty() bool {
	return p.DataURI == "" && p.Table == nil
}

func (p PreviewData) MarshalJSON() ([]byte, error) {
	switch {
	case p.DataURI != "":
		return json.Marshal(p.DataURI)
	case p.Table != nil:
		return json.Marshal(p.Table)
	default:
		return []byte("null"), nil
	}
}

func (p *PreviewData) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*p = PreviewData{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &p.DataURI)
	}
	var table TablePreview
	if err := json.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("decode preview data: %w", err)
	}
	p.Table = &table
	return nil
}

// ReportRecord is a generated report as seen by the history list.
type ReportRecord struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Date        string       `json:"date"`
	Type        Format       `json:"type"`
	ReportType  ReportType   `json:"reportType"`
	DateRange   DateRangeKey `json:"dateRange"`
	GeneratedBy string       `json:"generatedBy"`
	Filename    string       `json:"filename"`
	FileContent string       `json:"fileContent,omitempty"`
	PreviewData PreviewData  `json:"previewData"`
	CreatedAt   time.Time    `json:"createdAt"`
	Persisted   bool         `json:"persisted"`
}

// Valid reports whether the record carries a payload.
func (r *ReportRecord) Valid() bool {
	return r != nil && r.FileContent != ""
}

// Summary returns a copy without the encoded payload, for list responses.
func (r ReportRecord) Summary() ReportRecord {
	r.FileContent = ""
	if r.PreviewData.DataURI != "" {
		r.PreviewData = PreviewData{}
	}
	return r
}

// TimestampLayout is the fixed-width UTC layout stored in created_at columns,
// so lexical ordering matches chronological ordering.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// ReportRow is a reports table row using the store's native column names.
type ReportRow struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	ReportDate  string `json:"report_date" db:"report_date"`
	Type        string `json:"type" db:"type"`
	ReportType  string `json:"report_type" db:"report_type"`
	DateRange   string `json:"date_range" db:"date_range"`
	GeneratedBy string `json:"generated_by" db:"generated_by"`
	Filename    string `json:"filename" db:"filename"`
	FileContent string `json:"file_content" db:"file_content"`
	PreviewData string `json:"preview_data" db:"preview_data"` // JSON string
	CreatedAt   string `json:"created_at" db:"created_at"`
}

// NewReportRow maps a record to its table row.
func NewReportRow(r *ReportRecord) (ReportRow, error) {
	preview, err := json.Marshal(r.PreviewData)
	if err != nil {
		return ReportRow{}, err
	}
	return ReportRow{
		ID:          r.ID,
		Name:        r.Name,
		ReportDate:  r.Date,
		Type:        string(r.Type),
		ReportType:  string(r.ReportType),
		DateRange:   string(r.DateRange),
		GeneratedBy: r.GeneratedBy,
		Filename:    r.Filename,
		FileContent: r.FileContent,
		PreviewData: string(preview),
		CreatedAt:   r.CreatedAt.UTC().Format(TimestampLayout),
	}, nil
}

// ToRecord maps a table row to the in-memory record shape.
func (row ReportRow) ToRecord() ReportRecord {
	rec := ReportRecord{
		ID:          row.ID,
		Name:        row.Name,
		Date:        row.ReportDate,
		Type:        Format(row.Type),
		ReportType:  ReportType(row.ReportType),
		DateRange:   DateRangeKey(row.DateRange),
		GeneratedBy: row.GeneratedBy,
		Filename:    row.Filename,
		FileContent: row.FileContent,
		Persisted:   true,
	}
	if row.PreviewData != "" {
		// Malformed previews degrade to no preview
		_ = json.Unmarshal([]byte(row.PreviewData), &rec.PreviewData)
	}
	if t, err := time.Parse(time.RFC3339Nano, row.CreatedAt); err == nil {
		rec.CreatedAt = t
	}
	return rec
}

// HighlightMetric is a display tuple for the preview summary panel.
type HighlightMetric struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Caption string `json:"caption"`
}
