package report

import (
	"testing"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeOperational(t *testing.T) {
	rooms := []model.Room{
		{Status: model.RoomOccupied},
		{Status: model.RoomReserved},
		{Status: model.RoomAvailable},
		{Status: model.RoomMaintenance},
	}
	reservations := []model.Reservation{
		{Status: model.ReservationCheckedIn, CheckInDate: "2026-03-02", CreatedAt: "2026-02-27T10:00:00Z"},
		{Status: model.ReservationCheckedOut, CheckInDate: "2026-03-04", CreatedAt: "2026-03-01T10:00:00Z"},
		{Status: model.ReservationConfirmed, CheckInDate: "2026-03-20", CreatedAt: "2026-03-05T10:00:00Z"},
		{Status: model.ReservationCheckedIn, CheckInDate: "2026-02-20"},
	}
	invoices := []model.Invoice{
		{Amount: 300, Status: model.InvoicePaid, CreatedAt: "2026-03-03T10:00:00Z"},
		{Amount: 125, Status: model.InvoicePaid, CreatedAt: "2026-03-04T10:00:00Z"},
		{Amount: 80, Status: model.InvoicePending, CreatedAt: "2026-03-05T10:00:00Z"},
		{Amount: 20, Status: model.InvoiceOverdue},
		{Amount: 200, Status: model.InvoicePaid, CreatedAt: "2025-12-10"},
		{Amount: 999, Status: model.InvoicePaid, CreatedAt: "2025-01-10"},
	}
	tasks := []model.Task{
		{Status: model.TaskCompleted},
		{Status: model.TaskInProgress},
		{Status: model.TaskPending},
		{Status: ""},
	}

	m := ComputeOperational(fixedNow, rooms, reservations, invoices, tasks)

	assert.Equal(t, "March 2026", m.Month)
	assert.Equal(t, 4, m.TotalRooms)
	assert.Equal(t, 50, m.OccupancyRate)
	assert.Equal(t, 1, m.AvailableRooms)
	assert.Equal(t, 1, m.MaintenanceRooms)
	assert.Equal(t, 2, m.ReservationsThisMonth)
	assert.Equal(t, 2, m.CheckInsThisMonth)
	assert.Equal(t, 425.0, m.RevenueThisMonth)
	assert.Equal(t, 100.0, m.OutstandingAmount)
	assert.Equal(t, 212.5, m.RevenuePerCheckIn)
	assert.Equal(t, 1, m.TasksCompleted)
	assert.Equal(t, 1, m.TasksInProgress)
	assert.Equal(t, 2, m.TasksPending)

	require.Len(t, m.RecentMonths, 6)
	assert.Equal(t, "Oct 2025", m.RecentMonths[0].Month)
	assert.Equal(t, "Mar 2026", m.RecentMonths[5].Month)
	assert.Equal(t, 200.0, m.RecentMonths[2].Revenue)
	assert.Equal(t, 425.0, m.RecentMonths[5].Revenue)
	assert.Equal(t, 80.0, m.RecentMonths[5].PendingAmount)
	assert.Equal(t, 3, m.RecentMonths[5].InvoiceCount)
	assert.Zero(t, m.RecentMonths[4].InvoiceCount)
}

func TestComputeOperationalEmpty(t *testing.T) {
	m := ComputeOperational(fixedNow, nil, nil, nil, nil)
	assert.Zero(t, m.OccupancyRate)
	assert.Zero(t, m.RevenuePerCheckIn)
	assert.Len(t, m.RecentMonths, 6)
}
