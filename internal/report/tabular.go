package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
)

// PreviewRows is the maximum number of rows kept in a table preview.
const PreviewRows = 10

// Table is the tabular shape shared by the spreadsheet and delimited encoders.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]interface{}
	// Notes are letterhead and summary lines written ahead of the data.
	Notes    []string
	Fallback bool
}

// Preview returns the headers and up to PreviewRows rows as strings.
func (t Table) Preview() *model.TablePreview {
	p := &model.TablePreview{Headers: append([]string(nil), t.Headers...), Rows: [][]string{}}
	for i, row := range t.Rows {
		if i == PreviewRows {
			break
		}
		p.Rows = append(p.Rows, stringRow(row))
	}
	return p
}

func stringRow(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = cellString(v)
	}
	return out
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return Amount(x)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}

// FallbackRow is emitted when the primary source of a report is empty.
func FallbackRow(today time.Time) []interface{} {
	return []interface{}{today.Format(LabelLayout), 0, "0%"}
}

// BuildTable shapes the dataset into the rows of in.Type.
func BuildTable(in *Input) Table {
	ds := in.Dataset
	if ds == nil {
		ds = &Dataset{Today: startOfDay(in.Meta.GeneratedAt)}
	}

	t := Table{Sheet: in.Type.Title(), Notes: notes(in, ds)}
	switch in.Type {
	case model.ReportSummary:
		t.Headers = []string{"Date", "Revenue", "Occupancy"}
		for i, p := range ds.Revenue {
			occ := 0
			if i < len(ds.Occupancy) {
				occ = int(ds.Occupancy[i].Value)
			}
			t.Rows = append(t.Rows, []interface{}{p.Label, p.Value, Percent(occ)})
		}

	case model.ReportFinancial:
		t.Headers = []string{"Invoice ID", "Guest", "Room", "Amount", "Status", "Issue Date", "Due Date"}
		for _, inv := range ds.Invoices {
			id := inv.InvoiceNumber
			if id == "" {
				id = inv.ID
			}
			t.Rows = append(t.Rows, []interface{}{id, inv.GuestName, inv.RoomNumber, inv.Amount, inv.Status, inv.IssueDate, inv.DueDate})
		}

	case model.ReportOccupancy:
		t.Headers = []string{"Date", "Occupancy %", "Occupied Rooms", "Total Rooms"}
		if len(ds.Rooms) > 0 {
			for _, p := range ds.Occupancy {
				t.Rows = append(t.Rows, []interface{}{p.Label, Percent(int(p.Value)), occupiedOn(p.Date, ds.Today, ds.Rooms), len(ds.Rooms)})
			}
		}

	case model.ReportGuests:
		t.Headers = []string{"Name", "Email", "Phone", "Room", "Check In", "Check Out", "Status"}
		for _, g := range ds.Guests {
			t.Rows = append(t.Rows, []interface{}{g.FullName(), g.Email, g.Phone, g.RoomNumber, g.CheckIn, g.CheckOut, g.Status})
		}

	case model.ReportHousekeeping:
		t.Headers = []string{"Task", "Room", "Assigned To", "Priority", "Status", "Due Date"}
		for _, task := range ds.Tasks {
			t.Rows = append(t.Rows, []interface{}{task.Title, task.RoomNumber, task.AssignedTo, task.Priority, task.Status, task.DueDate})
		}

	case model.ReportMonthly:
		t.Headers = []string{"Month", "Revenue", "Pending Amount", "Invoices", "Paid", "Pending"}
		for _, m := range ds.Monthly {
			t.Rows = append(t.Rows, []interface{}{m.Month, m.Revenue, m.PendingAmount, m.InvoiceCount, m.PaidCount, m.PendingCount})
		}
	}

	if len(t.Rows) == 0 {
		t.Rows = [][]interface{}{FallbackRow(ds.Today)}
		t.Fallback = true
	}
	return t
}

// notes are the letterhead and type-specific aggregate lines.
func notes(in *Input, ds *Dataset) []string {
	f := in.Meta.Formatter
	k := in.KPIs
	lines := []string{
		fmt.Sprintf("%s - %s Report", in.Meta.HotelName, in.Type.Title()),
		"Generated: " + in.Meta.GeneratedAt.Format(LongLayout),
		"Prepared by: " + in.Meta.PreparedBy,
		"Period: " + in.DateRange.Label(),
	}

	switch in.Type {
	case model.ReportSummary:
		lines = append(lines,
			"Total Revenue: "+f.Currency(k.TotalRevenue),
			"Average Occupancy: "+Percent(k.AverageOccupancy),
			"Pending Payments: "+f.Currency(k.PendingPayments),
			"Total Bookings: "+strconv.Itoa(k.TotalBookings),
		)
	case model.ReportFinancial:
		lines = append(lines,
			"Total Amount: "+f.Currency(k.PaidAmount+k.PendingPayments),
			"Paid Amount: "+f.Currency(k.PaidAmount),
			"Pending Amount: "+f.Currency(k.PendingPayments),
			"Collection Rate: "+Percent(k.CollectionRate),
			"Invoices: "+strconv.Itoa(k.InvoiceCount),
		)
	case model.ReportOccupancy:
		lines = append(lines,
			"Average Occupancy: "+Percent(k.AverageOccupancy),
			"Total Rooms: "+strconv.Itoa(len(ds.Rooms)),
			"Occupied Today: "+strconv.Itoa(occupiedOn(ds.Today, ds.Today, ds.Rooms)),
		)
	case model.ReportGuests:
		lines = append(lines, "Total Guests: "+strconv.Itoa(len(ds.Guests)))
	case model.ReportHousekeeping:
		counts := taskCounts(ds.Tasks)
		lines = append(lines,
			"Total Tasks: "+strconv.Itoa(len(ds.Tasks)),
			"Completed: "+strconv.Itoa(counts[model.TaskCompleted]),
			"In Progress: "+strconv.Itoa(counts[model.TaskInProgress]),
			"Pending: "+strconv.Itoa(counts[model.TaskPending]),
		)
	case model.ReportMonthly:
		revenue, pending := 0.0, 0.0
		for _, m := range ds.Monthly {
			revenue += m.Revenue
			pending += m.PendingAmount
		}
		lines = append(lines,
			"Months: "+strconv.Itoa(len(ds.Monthly)),
			"Total Revenue: "+f.Currency(revenue),
			"Pending Amount: "+f.Currency(pending),
		)
	}
	return lines
}

func taskCounts(tasks []model.Task) map[string]int {
	counts := map[string]int{}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}
