// Package store is the remote-table persistence collaborator seen by the report pipeline.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/config"
)

// ErrNotFound is returned when a report id is unknown to the store.
var ErrNotFound = errors.New("record not found")

// Table names shared by the table service and its clients.
const (
	TableInvoices     = "invoices"
	TableGuests       = "guests"
	TableRooms        = "rooms"
	TableReservations = "reservations"
	TableTasks        = "tasks"
	TableRevenue      = "revenue"
	TableReports      = "reports"
)

// Store reads the hotel tables wholesale and manages report records.
type Store interface {
	Invoices(ctx context.Context) ([]model.Invoice, error)
	Guests(ctx context.Context) ([]model.Guest, error)
	Rooms(ctx context.Context) ([]model.Room, error)
	Reservations(ctx context.Context) ([]model.Reservation, error)
	Tasks(ctx context.Context) ([]model.Task, error)
	LegacyRevenue(ctx context.Context) ([]model.RevenueEntry, error)

	// Reports returns every report, newest first.
	Reports(ctx context.Context) ([]model.ReportRecord, error)
	Report(ctx context.Context, id string) (*model.ReportRecord, error)
	SaveReport(ctx context.Context, record *model.ReportRecord) error
	DeleteReport(ctx context.Context, id string) error
}

func recordsFromRows(rows []model.ReportRow) []model.ReportRecord {
	records := make([]model.ReportRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.ToRecord())
	}
	return records
}

// Store modes.
const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

// FromConfig returns the store selected by cfg.Mode. The local store expects
// repository.InitDB to have been called.
func FromConfig(cfg config.StoreConfig) (Store, error) {
	switch cfg.Mode {
	case "", ModeLocal:
		return NewLocal(), nil
	case ModeRemote:
		if cfg.DatabaseServiceURL == "" {
			return nil, errors.New("store.database_service_url is required in remote mode")
		}
		return NewRemote(cfg.DatabaseServiceURL, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported store mode: %q", cfg.Mode)
	}
}
