package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
)

var (
	// ErrUnsupported is returned for a report type and format pair with no handler.
	ErrUnsupported = errors.New("unsupported report type or format")
	// ErrEmptyDocument is returned when an encoder produced no bytes.
	ErrEmptyDocument = errors.New("encoder produced an empty document")
)

// Meta carries the letterhead values stamped on every document.
type Meta struct {
	HotelName   string
	PreparedBy  string
	GeneratedAt time.Time
	Formatter   Formatter
}

// Input is everything a layout needs to render one report.
type Input struct {
	Type      model.ReportType
	DateRange model.DateRangeKey
	Dataset   *Dataset
	KPIs      KPIs
	Meta      Meta
}

// Document is an encoded report.
type Document struct {
	Bytes     []byte
	MIMEType  string
	Extension string
	// Preview is set by tabular encoders.
	Preview *model.TablePreview
}

// RenderFunc renders one report type in one format.
type RenderFunc func(ctx context.Context, in *Input) (*Document, error)

type key struct {
	reportType model.ReportType
	format     model.Format
}

// Registry dispatches on report type and output format.
type Registry struct {
	handlers map[key]RenderFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: map[key]RenderFunc{}}
}

// Register binds fn to a report type and format, replacing any previous handler.
func (r *Registry) Register(rt model.ReportType, f model.Format, fn RenderFunc) {
	r.handlers[key{rt, f}] = fn
}

// Supports reports whether a handler exists.
func (r *Registry) Supports(rt model.ReportType, f model.Format) bool {
	_, ok := r.handlers[key{rt, f}]
	return ok
}

// Render runs the handler for f. A panicking layout or an empty result
// is returned as an error.
func (r *Registry) Render(ctx context.Context, f model.Format, in *Input) (doc *Document, err error) {
	fn, ok := r.handlers[key{in.Type, f}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnsupported, in.Type, f)
	}

	defer func() {
		if p := recover(); p != nil {
			doc = nil
			err = fmt.Errorf("render %s %s: panic: %v", in.Type, f, p)
		}
	}()

	doc, err = fn(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("render %s %s: %w", in.Type, f, err)
	}
	if doc == nil || len(doc.Bytes) == 0 {
		return nil, ErrEmptyDocument
	}
	if doc.MIMEType == "" {
		doc.MIMEType = f.MIMEType()
	}
	if doc.Extension == "" {
		doc.Extension = f.Extension()
	}
	return doc, nil
}

// RegisterTabular binds every report type to enc for format f.
func (r *Registry) RegisterTabular(f model.Format, enc func(in *Input, t Table) ([]byte, error)) {
	for _, rt := range model.ReportTypes {
		r.Register(rt, f, func(_ context.Context, in *Input) (*Document, error) {
			t := BuildTable(in)
			data, err := enc(in, t)
			if err != nil {
				return nil, err
			}
			return &Document{
				Bytes:     data,
				MIMEType:  f.MIMEType(),
				Extension: f.Extension(),
				Preview:   t.Preview(),
			}, nil
		})
	}
}

// NewDefaultRegistry registers every layout for every format.
func NewDefaultRegistry(pdf *PDFRenderer) *Registry {
	r := NewRegistry()
	r.RegisterTabular(model.FormatExcel, EncodeExcel)
	r.RegisterTabular(model.FormatCSV, EncodeCSV)
	pdf.Register(r)
	return r
}
