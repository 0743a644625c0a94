package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/mailer"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/report"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)

type memoryStore struct {
	mu         sync.Mutex
	invoices   []model.Invoice
	rooms      []model.Room
	reports    map[string]model.ReportRecord
	failSave   bool
	failDelete bool
	failList   bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{reports: map[string]model.ReportRecord{}}
}

func (m *memoryStore) Invoices(context.Context) ([]model.Invoice, error) { return m.invoices, nil }
func (m *memoryStore) Guests(context.Context) ([]model.Guest, error)     { return nil, nil }
func (m *memoryStore) Rooms(context.Context) ([]model.Room, error)       { return m.rooms, nil }
func (m *memoryStore) Reservations(context.Context) ([]model.Reservation, error) {
	return nil, nil
}
func (m *memoryStore) Tasks(context.Context) ([]model.Task, error) { return nil, nil }
func (m *memoryStore) LegacyRevenue(context.Context) ([]model.RevenueEntry, error) {
	return nil, errors.New("relation \"revenue\" does not exist")
}

func (m *memoryStore) Reports(context.Context) ([]model.ReportRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList {
		return nil, errors.New("store unavailable")
	}
	out := make([]model.ReportRecord, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, r)
	}
	return out, nil
}

func (m *memoryStore) Report(_ context.Context, id string) (*model.ReportRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &r, nil
}

func (m *memoryStore) SaveReport(_ context.Context, rec *model.ReportRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errors.New("permission denied for table reports")
	}
	saved := *rec
	saved.Persisted = true
	m.reports[rec.ID] = saved
	return nil
}

func (m *memoryStore) DeleteReport(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete {
		return errors.New("store unavailable")
	}
	if _, ok := m.reports[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.reports, id)
	return nil
}

type recordingMailer struct {
	sent []mailer.Message
	err  error
}

func (r *recordingMailer) Send(msg mailer.Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func newService(st *memoryStore) *ReportService {
	registry := report.NewDefaultRegistry(report.NewPDFRenderer(nil, st))
	return NewReportService(st, registry, Options{
		HotelName:    "Lavimac Royal Hotel",
		ShareBaseURL: "http://localhost:8080",
		Formatter:    report.Formatter{CurrencySymbol: "$"},
	}).WithClock(func() time.Time { return testNow })
}

func request(rt model.ReportType, f model.Format) model.ReportRequest {
	return model.ReportRequest{DateRange: model.Range7Days, ReportType: rt, Format: f}
}

func TestGenerate(t *testing.T) {
	st := newMemoryStore()
	st.invoices = []model.Invoice{
		{InvoiceNumber: "INV-1", Amount: 100, Status: model.InvoicePaid, CreatedAt: "2026-03-09T10:00:00Z"},
	}
	svc := newService(st)

	for _, f := range model.Formats {
		t.Run(string(f), func(t *testing.T) {
			res, err := svc.Generate(context.Background(), request(model.ReportFinancial, f), "")
			require.NoError(t, err)
			assert.True(t, res.Persisted)
			assert.Empty(t, res.Warning)

			rec := res.Report
			assert.Equal(t, "Financial Report", rec.Name)
			assert.Equal(t, "March 10, 2026", rec.Date)
			assert.Equal(t, "Hotel Manager", rec.GeneratedBy)
			assert.Equal(t, f, rec.Type)
			assert.True(t, strings.HasPrefix(rec.FileContent, "data:"+f.MIMEType()+";base64,"))
			assert.True(t, strings.HasPrefix(rec.Filename, "hotel_financial_report_20260310_"))
			assert.True(t, strings.HasSuffix(rec.Filename, "."+f.Extension()))
			if f == model.FormatPDF {
				assert.Equal(t, rec.FileContent, rec.PreviewData.DataURI)
			} else {
				require.NotNil(t, rec.PreviewData.Table)
				assert.Equal(t, []string{"INV-1", "", "", "100.00", "Paid", "", ""}, rec.PreviewData.Table.Rows[0])
			}

			stored, err := st.Report(context.Background(), rec.ID)
			require.NoError(t, err)
			assert.Equal(t, rec.Filename, stored.Filename)
		})
	}
}

func TestGenerateInvalidRequest(t *testing.T) {
	svc := newService(newMemoryStore())
	_, err := svc.Generate(context.Background(), model.ReportRequest{DateRange: "1day", ReportType: model.ReportSummary, Format: model.FormatCSV}, "x")
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, svc.List(context.Background()))
}

func TestGenerateKeepsReportWhenSaveFails(t *testing.T) {
	st := newMemoryStore()
	st.failSave = true
	svc := newService(st)

	res, err := svc.Generate(context.Background(), request(model.ReportSummary, model.FormatCSV), "Night Auditor")
	require.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.Equal(t, PersistWarning, res.Warning)
	assert.Equal(t, "Night Auditor", res.Report.GeneratedBy)

	list := svc.List(context.Background())
	require.Len(t, list, 1)
	assert.Equal(t, res.Report.ID, list[0].ID)
	assert.False(t, list[0].Persisted)

	got, err := svc.Get(context.Background(), res.Report.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Report.FileContent, got.FileContent)

	require.NoError(t, svc.Delete(context.Background(), res.Report.ID))
	assert.Empty(t, svc.List(context.Background()))
}

func TestListMergesStoreAndHistory(t *testing.T) {
	st := newMemoryStore()
	st.reports["old"] = model.ReportRecord{ID: "old", Name: "Summary Report", CreatedAt: testNow.Add(-48 * time.Hour), Persisted: true}
	svc := newService(st)

	first, err := svc.Generate(context.Background(), request(model.ReportSummary, model.FormatCSV), "")
	require.NoError(t, err)

	st.failSave = true
	svc.WithClock(func() time.Time { return testNow.Add(time.Minute) })
	second, err := svc.Generate(context.Background(), request(model.ReportGuests, model.FormatCSV), "")
	require.NoError(t, err)

	list := svc.List(context.Background())
	require.Len(t, list, 3)
	assert.Equal(t, []string{second.Report.ID, first.Report.ID, "old"}, []string{list[0].ID, list[1].ID, list[2].ID})

	st.failList = true
	list = svc.List(context.Background())
	assert.Len(t, list, 2)
}

func TestDelete(t *testing.T) {
	t.Run("unknown", func(t *testing.T) {
		svc := newService(newMemoryStore())
		assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), ErrReportNotFound)
	})

	t.Run("persisted", func(t *testing.T) {
		st := newMemoryStore()
		svc := newService(st)
		res, err := svc.Generate(context.Background(), request(model.ReportSummary, model.FormatPDF), "")
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), res.Report.ID))
		assert.Empty(t, st.reports)
		_, err = svc.Get(context.Background(), res.Report.ID)
		assert.ErrorIs(t, err, ErrReportNotFound)
	})

	t.Run("store failure keeps the report", func(t *testing.T) {
		st := newMemoryStore()
		svc := newService(st)
		res, err := svc.Generate(context.Background(), request(model.ReportSummary, model.FormatCSV), "")
		require.NoError(t, err)

		st.failDelete = true
		assert.Error(t, svc.Delete(context.Background(), res.Report.ID))
		assert.Len(t, svc.List(context.Background()), 1)
	})
}

func TestDownload(t *testing.T) {
	svc := newService(newMemoryStore())
	res, err := svc.Generate(context.Background(), request(model.ReportHousekeeping, model.FormatCSV), "")
	require.NoError(t, err)

	filename, mimeType, data, err := svc.Download(context.Background(), res.Report.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Report.Filename, filename)
	assert.Equal(t, "text/csv", mimeType)
	assert.Contains(t, string(data), "Task,Room,Assigned To,Priority,Status,Due Date")
}

func TestPreview(t *testing.T) {
	st := newMemoryStore()
	st.invoices = []model.Invoice{{Amount: 250, Status: model.InvoicePaid, CreatedAt: "2026-03-08T10:00:00Z"}}
	svc := newService(st)
	res, err := svc.Generate(context.Background(), request(model.ReportSummary, model.FormatPDF), "")
	require.NoError(t, err)

	closed, err := svc.Preview(context.Background(), res.Report.ID, false)
	require.NoError(t, err)
	assert.False(t, closed.Open)

	v, err := svc.Preview(context.Background(), res.Report.ID, true)
	require.NoError(t, err)
	assert.True(t, v.Open)
	assert.Equal(t, "http://localhost:8080/reports/"+res.Report.ID+"/preview", v.ShareLink)
	require.Len(t, v.Highlights, 5)
	assert.Equal(t, "$250.00", v.Highlights[0].Value)

	_, err = svc.Preview(context.Background(), "missing", true)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestShareByEmail(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		svc := newService(newMemoryStore())
		err := svc.ShareByEmail(context.Background(), "any", "gm@example.com", "", "client")
		assert.ErrorIs(t, err, mailer.ErrNotConfigured)
	})

	t.Run("sends attachment", func(t *testing.T) {
		m := &recordingMailer{}
		svc := newService(newMemoryStore()).WithMailer(m)
		res, err := svc.Generate(context.Background(), request(model.ReportOccupancy, model.FormatExcel), "Front Desk")
		require.NoError(t, err)

		require.NoError(t, svc.ShareByEmail(context.Background(), res.Report.ID, "gm@example.com", "Numbers for <Monday>", "client"))
		require.Len(t, m.sent, 1)
		msg := m.sent[0]
		assert.Equal(t, "gm@example.com", msg.To)
		assert.Equal(t, "Occupancy Report - March 10, 2026", msg.Subject)
		assert.Contains(t, msg.HTMLBody, "Numbers for &lt;Monday&gt;")
		assert.Contains(t, msg.HTMLBody, "/reports/"+res.Report.ID+"/preview")
		require.NotNil(t, msg.Attachment)
		assert.Equal(t, res.Report.Filename, msg.Attachment.Filename)
		assert.NotEmpty(t, msg.Attachment.Data)
	})

	t.Run("rate limited", func(t *testing.T) {
		m := &recordingMailer{}
		svc := newService(newMemoryStore()).WithMailer(m).WithRateLimiter(NewRateLimiter(time.Minute, 1))
		res, err := svc.Generate(context.Background(), request(model.ReportSummary, model.FormatCSV), "")
		require.NoError(t, err)

		assert.ErrorIs(t, svc.ShareByEmail(context.Background(), "missing", "a@example.com", "", "client"), ErrReportNotFound)
		require.NoError(t, svc.ShareByEmail(context.Background(), res.Report.ID, "a@example.com", "", "client"))
		assert.ErrorIs(t, svc.ShareByEmail(context.Background(), res.Report.ID, "a@example.com", "", "client"), ErrRateLimited)
		assert.ErrorIs(t, svc.ShareByEmail(context.Background(), "missing", "a@example.com", "", "client"), ErrReportNotFound)
		require.NoError(t, svc.ShareByEmail(context.Background(), res.Report.ID, "a@example.com", "", "other"))
	})

	t.Run("send failure", func(t *testing.T) {
		svc := newService(newMemoryStore()).WithMailer(&recordingMailer{err: errors.New("535 auth failed")})
		res, err := svc.Generate(context.Background(), request(model.ReportSummary, model.FormatCSV), "")
		require.NoError(t, err)
		assert.ErrorContains(t, svc.ShareByEmail(context.Background(), res.Report.ID, "a@example.com", "", "c"), "535 auth failed")
	})
}

func TestDashboard(t *testing.T) {
	st := newMemoryStore()
	st.rooms = []model.Room{{Status: model.RoomOccupied}, {Status: model.RoomAvailable}}
	svc := newService(st)

	d := svc.Dashboard(context.Background(), model.Range30Days)
	assert.Equal(t, "Last 30 Days", d.Label)
	assert.Len(t, d.Dataset.Revenue, 31)
	assert.Len(t, d.Highlights, 5)
	assert.Equal(t, 50.0, d.Dataset.Occupancy[30].Value)
}

func TestRateLimiter(t *testing.T) {
	now := testNow
	l := NewRateLimiter(time.Minute, 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("k"))
	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))
	assert.True(t, l.Allow("j"))

	now = now.Add(time.Minute)
	assert.True(t, l.Allow("k"))
}
