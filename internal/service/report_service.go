package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/mailer"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/preview"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/report"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/store"
	"go.uber.org/zap"
)

var (
	ErrReportNotFound   = errors.New("report not found")
	ErrInvalidRequest   = errors.New("invalid report request")
	ErrGenerationFailed = errors.New("failed to generate report")
	ErrRateLimited      = errors.New("too many share requests")
)

// PersistWarning is returned when a report was generated but could not be saved.
const PersistWarning = "Report generated but could not be saved; it is available until the service restarts"

// Options are the letterhead and link settings of the report service.
type Options struct {
	HotelName       string
	DefaultPreparer string
	ShareBaseURL    string
	Formatter       report.Formatter
}

// GenerateResult is the outcome of one generation.
type GenerateResult struct {
	Report    *model.ReportRecord `json:"report"`
	Persisted bool                `json:"persisted"`
	Warning   string              `json:"warning,omitempty"`
}

// Dashboard is the on-screen series and stat cards for a date range.
type Dashboard struct {
	DateRange  model.DateRangeKey      `json:"dateRange"`
	Label      string                  `json:"label"`
	Dataset    *report.Dataset         `json:"dataset"`
	KPIs       report.KPIs             `json:"kpis"`
	Highlights []model.HighlightMetric `json:"highlights"`
}

// ReportService runs the report pipeline and owns the session history.
// The history is the source of truth for the process lifetime; the store
// is written on a best-effort basis.
type ReportService struct {
	store      store.Store
	aggregator *report.Aggregator
	registry   *report.Registry
	mailer     mailer.Sender
	limiter    *RateLimiter
	opts       Options
	now        func() time.Time

	mu      sync.Mutex
	history []model.ReportRecord
}

// NewReportService wires the pipeline around st and registry.
func NewReportService(st store.Store, registry *report.Registry, opts Options) *ReportService {
	if opts.DefaultPreparer == "" {
		opts.DefaultPreparer = "Hotel Manager"
	}
	return &ReportService{
		store:      st,
		aggregator: report.NewAggregator(st),
		registry:   registry,
		limiter:    NewRateLimiter(10*time.Minute, 5),
		opts:       opts,
		now:        time.Now,
	}
}

// WithMailer enables e-mail sharing.
func (s *ReportService) WithMailer(m mailer.Sender) *ReportService {
	s.mailer = m
	return s
}

// WithRateLimiter replaces the e-mail share limiter.
func (s *ReportService) WithRateLimiter(l *RateLimiter) *ReportService {
	s.limiter = l
	return s
}

// WithClock replaces the clock used for generation and aggregation.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	s.aggregator.WithClock(now)
	return s
}

// Dashboard aggregates the dataset and KPIs for rangeKey.
func (s *ReportService) Dashboard(ctx context.Context, rangeKey model.DateRangeKey) *Dashboard {
	ds := s.aggregator.Aggregate(ctx, rangeKey.Days())
	kpis := report.CalculateKPIs(ds)
	return &Dashboard{
		DateRange:  rangeKey,
		Label:      rangeKey.Label(),
		Dataset:    ds,
		KPIs:       kpis,
		Highlights: report.Highlights(kpis, s.opts.Formatter),
	}
}

// Generate renders a report, records it in the history and attempts to persist it.
// A failed save keeps the record and sets a warning instead of returning an error.
func (s *ReportService) Generate(ctx context.Context, req model.ReportRequest, generatedBy string) (*GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if generatedBy == "" {
		generatedBy = s.opts.DefaultPreparer
	}

	generatedAt := s.now()
	ds := s.aggregator.Aggregate(ctx, req.DateRange.Days())
	in := &report.Input{
		Type:      req.ReportType,
		DateRange: req.DateRange,
		Dataset:   ds,
		KPIs:      report.CalculateKPIs(ds),
		Meta: report.Meta{
			HotelName:   s.opts.HotelName,
			PreparedBy:  generatedBy,
			GeneratedAt: generatedAt,
			Formatter:   s.opts.Formatter,
		},
	}

	doc, err := s.registry.Render(ctx, req.Format, in)
	if err != nil {
		zap.L().Error("Report generation failed",
			zap.String("report_type", string(req.ReportType)),
			zap.String("format", string(req.Format)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	uri := report.EncodeDataURI(doc.MIMEType, doc.Bytes)
	rec := model.ReportRecord{
		ID:          uuid.NewString(),
		Name:        req.ReportType.Title() + " Report",
		Date:        generatedAt.Format(report.LongLayout),
		Type:        req.Format,
		ReportType:  req.ReportType,
		DateRange:   req.DateRange,
		GeneratedBy: generatedBy,
		Filename:    report.Filename(req.ReportType, req.Format, generatedAt, doc.Bytes),
		FileContent: uri,
		CreatedAt:   generatedAt,
	}
	if doc.Preview != nil {
		rec.PreviewData = model.PreviewData{Table: doc.Preview}
	} else {
		rec.PreviewData = model.PreviewData{DataURI: uri}
	}
	if !rec.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, report.ErrEmptyDocument)
	}

	s.remember(rec)

	result := &GenerateResult{}
	if err := s.store.SaveReport(ctx, &rec); err != nil {
		zap.L().Warn("Failed to persist report, keeping it in session history",
			zap.String("report_id", rec.ID),
			zap.Error(err))
		result.Warning = PersistWarning
	} else {
		rec.Persisted = true
		result.Persisted = true
		s.markPersisted(rec.ID)
	}
	result.Report = &rec

	zap.L().Info("Report generated",
		zap.String("report_id", rec.ID),
		zap.String("filename", rec.Filename),
		zap.Bool("persisted", rec.Persisted))
	return result, nil
}

// List returns stored reports merged with session-only ones, newest first.
// A failing store read degrades to the session history.
func (s *ReportService) List(ctx context.Context) []model.ReportRecord {
	stored, err := s.store.Reports(ctx)
	if err != nil {
		zap.L().Error("Failed to list stored reports", zap.Error(err))
		stored = nil
	}

	seen := make(map[string]bool, len(stored))
	out := make([]model.ReportRecord, 0, len(stored))
	for _, r := range stored {
		seen[r.ID] = true
		out = append(out, r)
	}

	s.mu.Lock()
	for _, r := range s.history {
		if !seen[r.ID] {
			out = append(out, r)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Get returns a report from the session history or the store.
func (s *ReportService) Get(ctx context.Context, id string) (*model.ReportRecord, error) {
	if rec, ok := s.local(id); ok {
		return &rec, nil
	}
	rec, err := s.store.Report(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes a report from the store and the session history. If the
// store delete fails the session copy is kept.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	rec, inHistory := s.local(id)
	if inHistory && !rec.Persisted {
		s.forget(id)
		return nil
	}

	err := s.store.DeleteReport(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		if !inHistory {
			return ErrReportNotFound
		}
	case err != nil:
		return fmt.Errorf("delete report %s: %w", id, err)
	}

	s.forget(id)
	return nil
}

// Preview builds the preview surface for a report.
func (s *ReportService) Preview(ctx context.Context, id string, open bool) (preview.View, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return preview.View{}, err
	}
	if !open {
		return preview.Build(rec, false, preview.Options{}), nil
	}

	rangeKey := rec.DateRange
	if rangeKey == "" {
		rangeKey = model.Range7Days
	}
	kpis := report.CalculateKPIs(s.aggregator.Aggregate(ctx, rangeKey.Days()))
	return preview.Build(rec, true, preview.Options{
		BaseURL:    s.opts.ShareBaseURL,
		HotelName:  s.opts.HotelName,
		Highlights: report.Highlights(kpis, s.opts.Formatter),
	}), nil
}

// Download returns the decoded payload of a report.
func (s *ReportService) Download(ctx context.Context, id string) (filename, mimeType string, data []byte, err error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return "", "", nil, err
	}
	mimeType, data, err = report.DecodeDataURI(rec.FileContent)
	if err != nil {
		return "", "", nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return rec.Filename, mimeType, data, nil
}

// ShareByEmail sends the report as an attachment. clientKey scopes the rate limit.
func (s *ReportService) ShareByEmail(ctx context.Context, id, to, note, clientKey string) error {
	if s.mailer == nil {
		return mailer.ErrNotConfigured
	}
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if s.limiter != nil && !s.limiter.Allow(clientKey) {
		return ErrRateLimited
	}

	mimeType, data, err := report.DecodeDataURI(rec.FileContent)
	if err != nil {
		return fmt.Errorf("decode report %s: %w", id, err)
	}

	link := preview.ShareLink(s.opts.ShareBaseURL, id)
	var body strings.Builder
	body.WriteString("<p>" + html.EscapeString(s.opts.HotelName) + " - " + html.EscapeString(rec.Name) + " (" + html.EscapeString(rec.DateRange.Label()) + ")</p>")
	if note = strings.TrimSpace(note); note != "" {
		body.WriteString("<p>" + html.EscapeString(note) + "</p>")
	}
	body.WriteString(`<p><a href="` + html.EscapeString(link) + `">Open the report online</a></p>`)
	body.WriteString("<p>Prepared by " + html.EscapeString(rec.GeneratedBy) + "</p>")

	err = s.mailer.Send(mailer.Message{
		To:       to,
		Subject:  rec.Name + " - " + rec.Date,
		HTMLBody: body.String(),
		Attachment: &mailer.Attachment{
			Filename: rec.Filename,
			MIMEType: mimeType,
			Data:     data,
		},
	})
	if err != nil {
		return fmt.Errorf("send report %s: %w", id, err)
	}

	zap.L().Info("Report shared by e-mail",
		zap.String("report_id", id),
		zap.String("to", to))
	return nil
}

func (s *ReportService) remember(rec model.ReportRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]model.ReportRecord{rec}, s.history...)
}

func (s *ReportService) markPersisted(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.history {
		if s.history[i].ID == id {
			s.history[i].Persisted = true
			return
		}
	}
}

func (s *ReportService) local(id string) (model.ReportRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.history {
		if r.ID == id {
			return r, true
		}
	}
	return model.ReportRecord{}, false
}

func (s *ReportService) forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.history {
		if r.ID == id {
			s.history = append(s.history[:i], s.history[i+1:]...)
			return
		}
	}
}
