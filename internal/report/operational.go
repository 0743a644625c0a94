package report

import (
	"context"
	"time"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/shopspring/decimal"
)

// recentMonths is how many calendar months the monthly report charts.
const recentMonths = 6

// OperationalMetrics are the figures of the monthly report. They come from
// their own fetch and are not derived from the Dataset.
type OperationalMetrics struct {
	Month string `json:"month"`

	TotalRooms       int `json:"totalRooms"`
	OccupiedRooms    int `json:"occupiedRooms"`
	ReservedRooms    int `json:"reservedRooms"`
	AvailableRooms   int `json:"availableRooms"`
	MaintenanceRooms int `json:"maintenanceRooms"`
	OccupancyRate    int `json:"occupancyRate"`

	ReservationsThisMonth int `json:"reservationsThisMonth"`
	CheckInsThisMonth     int `json:"checkInsThisMonth"`

	RevenueThisMonth  float64 `json:"revenueThisMonth"`
	OutstandingAmount float64 `json:"outstandingAmount"`
	RevenuePerCheckIn float64 `json:"revenuePerCheckIn"`

	TasksCompleted  int `json:"tasksCompleted"`
	TasksInProgress int `json:"tasksInProgress"`
	TasksPending    int `json:"tasksPending"`

	// RecentMonths holds the trailing months, oldest first, zero-filled.
	RecentMonths []MonthlyRollup `json:"recentMonths"`
}

// CollectOperational re-reads rooms, reservations, invoices and tasks and computes
// the operational metrics as of now. Fetch errors are logged and treated as empty.
func CollectOperational(ctx context.Context, src OperationalSource, now time.Time) OperationalMetrics {
	return ComputeOperational(now,
		fetch(ctx, "rooms", src.Rooms),
		fetch(ctx, "reservations", src.Reservations),
		fetch(ctx, "invoices", src.Invoices),
		fetch(ctx, "tasks", src.Tasks),
	)
}

// ComputeOperational is the pure part of CollectOperational.
func ComputeOperational(now time.Time, rooms []model.Room, reservations []model.Reservation, invoices []model.Invoice, tasks []model.Task) OperationalMetrics {
	loc := now.Location()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	nextMonth := monthStart.AddDate(0, 1, 0)
	inMonth := func(t time.Time) bool { return !t.Before(monthStart) && t.Before(nextMonth) }

	m := OperationalMetrics{Month: now.Format("January 2006"), TotalRooms: len(rooms)}

	for _, r := range rooms {
		switch r.Status {
		case model.RoomOccupied:
			m.OccupiedRooms++
		case model.RoomReserved:
			m.ReservedRooms++
		case model.RoomMaintenance:
			m.MaintenanceRooms++
		default:
			m.AvailableRooms++
		}
	}
	if m.TotalRooms > 0 {
		m.OccupancyRate = roundInt(float64(m.OccupiedRooms+m.ReservedRooms) / float64(m.TotalRooms) * 100)
	}

	for _, r := range reservations {
		if created, ok := parseTime(r.CreatedAt, loc); ok && inMonth(created) {
			m.ReservationsThisMonth++
		}
		if r.Status == model.ReservationCheckedIn || r.Status == model.ReservationCheckedOut {
			if in, ok := parseTime(r.CheckInDate, loc); ok && inMonth(in) {
				m.CheckInsThisMonth++
			}
		}
	}

	months := make([]MonthlyRollup, recentMonths)
	for i := range months {
		start := monthStart.AddDate(0, i-recentMonths+1, 0)
		months[i] = MonthlyRollup{Month: start.Format(MonthLayout), start: start}
	}

	revenue, outstanding := decimal.Zero, decimal.Zero
	for _, inv := range invoices {
		amount := decimal.NewFromFloat(inv.Amount)
		if inv.Status == model.InvoicePending || inv.Status == model.InvoiceOverdue {
			outstanding = outstanding.Add(amount)
		}
		created, ok := parseTime(inv.CreatedAt, loc)
		if !ok {
			continue
		}
		if inv.Status == model.InvoicePaid && inMonth(created) {
			revenue = revenue.Add(amount)
		}
		for i := range months {
			if created.Format(MonthLayout) != months[i].Month {
				continue
			}
			months[i].InvoiceCount++
			switch inv.Status {
			case model.InvoicePaid:
				months[i].Revenue, _ = decimal.NewFromFloat(months[i].Revenue).Add(amount).Float64()
				months[i].PaidCount++
			case model.InvoicePending:
				months[i].PendingAmount, _ = decimal.NewFromFloat(months[i].PendingAmount).Add(amount).Float64()
				months[i].PendingCount++
			}
		}
	}
	m.RevenueThisMonth, _ = revenue.Float64()
	m.OutstandingAmount, _ = outstanding.Float64()
	if m.CheckInsThisMonth > 0 {
		m.RevenuePerCheckIn, _ = revenue.Div(decimal.NewFromInt(int64(m.CheckInsThisMonth))).Round(2).Float64()
	}
	m.RecentMonths = months

	for _, t := range tasks {
		switch t.Status {
		case model.TaskCompleted:
			m.TasksCompleted++
		case model.TaskInProgress:
			m.TasksInProgress++
		default:
			m.TasksPending++
		}
	}
	return m
}
