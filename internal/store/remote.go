package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
)

// Remote talks to the database service over HTTP.
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote creates a client for the table service at baseURL.
func NewRemote(baseURL string, timeout time.Duration) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *Remote) Invoices(ctx context.Context) ([]model.Invoice, error) {
	var out []model.Invoice
	return out, r.list(ctx, TableInvoices, &out)
}

func (r *Remote) Guests(ctx context.Context) ([]model.Guest, error) {
	var out []model.Guest
	return out, r.list(ctx, TableGuests, &out)
}

func (r *Remote) Rooms(ctx context.Context) ([]model.Room, error) {
	var out []model.Room
	return out, r.list(ctx, TableRooms, &out)
}

func (r *Remote) Reservations(ctx context.Context) ([]model.Reservation, error) {
	var out []model.Reservation
	return out, r.list(ctx, TableReservations, &out)
}

func (r *Remote) Tasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	return out, r.list(ctx, TableTasks, &out)
}

func (r *Remote) LegacyRevenue(ctx context.Context) ([]model.RevenueEntry, error) {
	var out []model.RevenueEntry
	return out, r.list(ctx, TableRevenue, &out)
}

func (r *Remote) Reports(ctx context.Context) ([]model.ReportRecord, error) {
	var rows []model.ReportRow
	if err := r.list(ctx, TableReports, &rows); err != nil {
		return nil, err
	}
	return recordsFromRows(rows), nil
}

func (r *Remote) Report(ctx context.Context, id string) (*model.ReportRecord, error) {
	var row model.ReportRow
	status, err := r.do(ctx, http.MethodGet, "/api/tables/"+TableReports+"/"+url.PathEscape(id), nil, &row)
	if status == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rec := row.ToRecord()
	return &rec, nil
}

func (r *Remote) SaveReport(ctx context.Context, record *model.ReportRecord) error {
	row, err := model.NewReportRow(record)
	if err != nil {
		return fmt.Errorf("encode report row: %w", err)
	}
	_, err = r.do(ctx, http.MethodPost, "/api/tables/"+TableReports, row, nil)
	return err
}

func (r *Remote) DeleteReport(ctx context.Context, id string) error {
	status, err := r.do(ctx, http.MethodDelete, "/api/tables/"+TableReports+"/"+url.PathEscape(id), nil, nil)
	if status == http.StatusNotFound {
		return ErrNotFound
	}
	return err
}

func (r *Remote) list(ctx context.Context, table string, out interface{}) error {
	_, err := r.do(ctx, http.MethodGet, "/api/tables/"+table+"?order=created_at&desc=true", nil, out)
	return err
}

// do sends a JSON request and decodes a JSON response into out when non-nil.
// The status code is returned even on error so callers can map 404s.
func (r *Remote) do(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return resp.StatusCode, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, apiErr.Detail)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
