package store

import (
	"context"
	"fmt"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/repository"
)

// Local reads and writes through the repository package in-process.
type Local struct{}

// NewLocal returns a Local store. repository.InitDB must have been called.
func NewLocal() *Local {
	return &Local{}
}

func (Local) Invoices(ctx context.Context) ([]model.Invoice, error) {
	return repository.ListInvoices(ctx)
}

func (Local) Guests(ctx context.Context) ([]model.Guest, error) {
	return repository.ListGuests(ctx)
}

func (Local) Rooms(ctx context.Context) ([]model.Room, error) {
	return repository.ListRooms(ctx)
}

func (Local) Reservations(ctx context.Context) ([]model.Reservation, error) {
	return repository.ListReservations(ctx)
}

func (Local) Tasks(ctx context.Context) ([]model.Task, error) {
	return repository.ListTasks(ctx)
}

func (Local) LegacyRevenue(ctx context.Context) ([]model.RevenueEntry, error) {
	return repository.ListRevenue(ctx)
}

func (Local) Reports(ctx context.Context) ([]model.ReportRecord, error) {
	rows, err := repository.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	return recordsFromRows(rows), nil
}

func (Local) Report(ctx context.Context, id string) (*model.ReportRecord, error) {
	row, err := repository.GetReportByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	rec := row.ToRecord()
	return &rec, nil
}

func (Local) SaveReport(ctx context.Context, record *model.ReportRecord) error {
	row, err := model.NewReportRow(record)
	if err != nil {
		return fmt.Errorf("encode report row: %w", err)
	}
	return repository.CreateReport(ctx, &row)
}

func (Local) DeleteReport(ctx context.Context, id string) error {
	deleted, err := repository.DeleteReport(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
