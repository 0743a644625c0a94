package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
)

func (d *pdfDoc) currency(v float64) string { return d.in.Meta.Formatter.Currency(v) }

func percentLabel(v float64) string { return Percent(roundInt(v)) }

func countLabel(v float64) string { return strconv.Itoa(roundInt(v)) }

func (d *pdfDoc) period() string {
	return fmt.Sprintf("%s (%s to %s)", d.in.DateRange.Label(), d.ds.Start.Format(LongLayout), d.ds.Today.Format(LongLayout))
}

func layoutSummary(_ context.Context, d *pdfDoc) error {
	k := d.in.KPIs
	d.sectionTitle("Executive Summary")
	d.paragraph(fmt.Sprintf("Operating summary for %s covering %s. Figures include paid invoices, legacy revenue entries and live room status.",
		d.in.Meta.HotelName, d.period()))
	d.kpiCards([]card{
		{"Total Revenue", d.currency(k.TotalRevenue)},
		{"Avg Occupancy", Percent(k.AverageOccupancy)},
		{"Pending Payments", d.currency(k.PendingPayments)},
		{"Total Bookings", strconv.Itoa(k.TotalBookings)},
	})

	d.lineChart("Revenue Trend", d.ds.Revenue, d.currency)
	d.lineChart("Occupancy Trend", d.ds.Occupancy, percentLabel)

	d.sectionTitle("Daily Breakdown")
	rows := make([][]string, 0, len(d.ds.Revenue))
	for i, p := range d.ds.Revenue {
		occ := 0
		if i < len(d.ds.Occupancy) {
			occ = int(d.ds.Occupancy[i].Value)
		}
		rows = append(rows, []string{p.Date.Format(LongLayout), d.currency(p.Value), Percent(occ)})
	}
	if len(rows) == 0 {
		d.placeholder("No revenue data available for this period")
		return nil
	}
	d.table([]string{"Date", "Revenue", "Occupancy"}, []float64{0.4, 0.35, 0.25}, rows)
	return nil
}

func layoutFinancial(_ context.Context, d *pdfDoc) error {
	k := d.in.KPIs
	d.sectionTitle("Financial Overview")
	d.paragraph("Invoices created during " + d.period() + ".")
	d.kpiCards([]card{
		{"Total Revenue", d.currency(k.TotalRevenue)},
		{"Paid Amount", d.currency(k.PaidAmount)},
		{"Pending Amount", d.currency(k.PendingPayments)},
		{"Collection Rate", Percent(k.CollectionRate)},
	})
	d.lineChart("Daily Revenue", d.ds.Revenue, d.currency)

	d.sectionTitle("Revenue by Month")
	if len(d.ds.Monthly) == 0 {
		d.placeholder("No monthly revenue data available")
	} else {
		labels := make([]string, len(d.ds.Monthly))
		values := make([]float64, len(d.ds.Monthly))
		for i, m := range d.ds.Monthly {
			labels[i], values[i] = m.Month, m.Revenue
		}
		d.barChart("Paid Revenue", labels, values, d.currency)
	}

	d.sectionTitle("Invoices")
	if len(d.ds.Invoices) == 0 {
		d.placeholder("No invoice data available for this period")
		return nil
	}
	rows := make([][]string, 0, len(d.ds.Invoices))
	for _, inv := range d.ds.Invoices {
		id := inv.InvoiceNumber
		if id == "" {
			id = inv.ID
		}
		rows = append(rows, []string{id, inv.GuestName, inv.RoomNumber, d.currency(inv.Amount), inv.Status, inv.DueDate})
	}
	d.table([]string{"Invoice", "Guest", "Room", "Amount", "Status", "Due Date"},
		[]float64{0.18, 0.26, 0.1, 0.16, 0.14, 0.16}, rows)
	return nil
}

func layoutOccupancy(_ context.Context, d *pdfDoc) error {
	k := d.in.KPIs
	rooms := d.ds.Rooms
	d.sectionTitle("Occupancy Overview")
	d.paragraph("Room utilisation for " + d.period() + ". Today's figure uses live room status; earlier days use stored stay windows.")
	d.kpiCards([]card{
		{"Avg Occupancy", Percent(k.AverageOccupancy)},
		{"Total Rooms", strconv.Itoa(len(rooms))},
		{"Occupied Today", strconv.Itoa(occupiedOn(d.ds.Today, d.ds.Today, rooms))},
		{"Total Bookings", strconv.Itoa(k.TotalBookings)},
	})
	d.lineChart("Daily Occupancy", d.ds.Occupancy, percentLabel)

	d.sectionTitle("Room Status")
	if len(rooms) == 0 {
		d.placeholder("No room data available")
		return nil
	}
	statuses := []string{model.RoomAvailable, model.RoomOccupied, model.RoomReserved, model.RoomMaintenance}
	counts := map[string]int{}
	for _, r := range rooms {
		counts[r.Status]++
	}
	values := make([]float64, len(statuses))
	for i, s := range statuses {
		values[i] = float64(counts[s])
	}
	d.barChart("Rooms by Status", statuses, values, countLabel)

	rows := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		rows = append(rows, []string{r.RoomNumber, r.RoomType, r.Status, r.GuestName, r.CheckInDate, r.CheckOutDate})
	}
	d.table([]string{"Room", "Type", "Status", "Guest", "Check In", "Check Out"},
		[]float64{0.1, 0.16, 0.16, 0.24, 0.17, 0.17}, rows)
	return nil
}

func layoutGuests(_ context.Context, d *pdfDoc) error {
	guests := d.ds.Guests
	checkedIn := 0
	for _, g := range guests {
		if g.Status == model.ReservationCheckedIn {
			checkedIn++
		}
	}
	d.sectionTitle("Guest Overview")
	d.kpiCards([]card{
		{"Total Guests", strconv.Itoa(len(guests))},
		{"Checked In", strconv.Itoa(checkedIn)},
		{"Reservations", strconv.Itoa(len(d.ds.Reservations))},
		{"Total Bookings", strconv.Itoa(d.in.KPIs.TotalBookings)},
	})

	d.sectionTitle("Guest Register")
	if len(guests) == 0 {
		d.placeholder("No guest data available")
		return nil
	}
	rows := make([][]string, 0, len(guests))
	for _, g := range guests {
		rows = append(rows, []string{g.FullName(), g.Email, g.Phone, g.RoomNumber, g.CheckIn, g.CheckOut, g.Status})
	}
	d.table([]string{"Name", "Email", "Phone", "Room", "Check In", "Check Out", "Status"},
		[]float64{0.18, 0.22, 0.14, 0.08, 0.13, 0.13, 0.12}, rows)
	return nil
}

func layoutHousekeeping(_ context.Context, d *pdfDoc) error {
	tasks := d.ds.Tasks
	counts := taskCounts(tasks)
	completion := 0
	if len(tasks) > 0 {
		completion = roundInt(float64(counts[model.TaskCompleted]) / float64(len(tasks)) * 100)
	}
	d.sectionTitle("Housekeeping Overview")
	d.kpiCards([]card{
		{"Total Tasks", strconv.Itoa(len(tasks))},
		{"Completed", strconv.Itoa(counts[model.TaskCompleted])},
		{"In Progress", strconv.Itoa(counts[model.TaskInProgress])},
		{"Completion Rate", Percent(completion)},
	})

	d.sectionTitle("Task Status")
	if len(tasks) == 0 {
		d.placeholder("No housekeeping data available")
		return nil
	}
	statuses := []string{model.TaskPending, model.TaskInProgress, model.TaskCompleted}
	values := make([]float64, len(statuses))
	for i, s := range statuses {
		values[i] = float64(counts[s])
	}
	d.barChart("Tasks by Status", statuses, values, countLabel)

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{t.Title, t.RoomNumber, t.AssignedTo, t.Priority, t.Status, t.DueDate})
	}
	d.table([]string{"Task", "Room", "Assigned To", "Priority", "Status", "Due Date"},
		[]float64{0.28, 0.09, 0.19, 0.12, 0.15, 0.17}, rows)
	return nil
}

// layoutMonthly fetches its own collections so the figures reflect the store at render time.
func (p *PDFRenderer) layoutMonthly(ctx context.Context, d *pdfDoc) error {
	now := d.in.Meta.GeneratedAt
	var ops OperationalMetrics
	if p.ops != nil {
		ops = CollectOperational(ctx, p.ops, now)
	} else {
		ops = ComputeOperational(now, d.ds.Rooms, d.ds.Reservations, d.ds.AllInvoices, d.ds.Tasks)
	}

	d.sectionTitle("Monthly Operations - " + ops.Month)
	d.kpiCards([]card{
		{"Occupancy Rate", Percent(ops.OccupancyRate)},
		{"Revenue This Month", d.currency(ops.RevenueThisMonth)},
		{"Outstanding", d.currency(ops.OutstandingAmount)},
		{"Revenue / Check-in", d.currency(ops.RevenuePerCheckIn)},
		{"Reservations", strconv.Itoa(ops.ReservationsThisMonth)},
		{"Check-ins", strconv.Itoa(ops.CheckInsThisMonth)},
		{"Tasks Completed", strconv.Itoa(ops.TasksCompleted)},
		{"Tasks Pending", strconv.Itoa(ops.TasksPending + ops.TasksInProgress)},
	})

	d.sectionTitle("Room Inventory")
	if ops.TotalRooms == 0 {
		d.placeholder("No room data available")
	} else {
		d.table([]string{"Status", "Rooms", "Share"}, []float64{0.5, 0.25, 0.25}, [][]string{
			roomShare(model.RoomOccupied, ops.OccupiedRooms, ops.TotalRooms),
			roomShare(model.RoomReserved, ops.ReservedRooms, ops.TotalRooms),
			roomShare(model.RoomAvailable, ops.AvailableRooms, ops.TotalRooms),
			roomShare(model.RoomMaintenance, ops.MaintenanceRooms, ops.TotalRooms),
			{"Total", strconv.Itoa(ops.TotalRooms), "100%"},
		})
	}

	d.sectionTitle("Revenue Trend")
	labels := make([]string, len(ops.RecentMonths))
	values := make([]float64, len(ops.RecentMonths))
	invoices := 0
	for i, m := range ops.RecentMonths {
		labels[i], values[i] = m.Month, m.Revenue
		invoices += m.InvoiceCount
	}
	if invoices == 0 {
		d.placeholder("No invoice data available for recent months")
		return nil
	}
	d.barChart("Paid Revenue by Month", labels, values, d.currency)

	rows := make([][]string, 0, len(ops.RecentMonths))
	for _, m := range ops.RecentMonths {
		rows = append(rows, []string{m.Month, d.currency(m.Revenue), d.currency(m.PendingAmount),
			strconv.Itoa(m.InvoiceCount), strconv.Itoa(m.PaidCount), strconv.Itoa(m.PendingCount)})
	}
	d.table([]string{"Month", "Revenue", "Pending", "Invoices", "Paid", "Pending #"},
		[]float64{0.2, 0.2, 0.2, 0.14, 0.13, 0.13}, rows)
	return nil
}

func roomShare(status string, n, total int) []string {
	return []string{status, strconv.Itoa(n), Percent(roundInt(float64(n) / float64(total) * 100))}
}
