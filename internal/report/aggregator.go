package report

import (
	"context"
	"sort"
	"time"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OperationalSource is the subset of the store read by the monthly report's own pass.
type OperationalSource interface {
	Invoices(ctx context.Context) ([]model.Invoice, error)
	Rooms(ctx context.Context) ([]model.Room, error)
	Reservations(ctx context.Context) ([]model.Reservation, error)
	Tasks(ctx context.Context) ([]model.Task, error)
}

// Source is everything the Aggregator reads.
type Source interface {
	OperationalSource
	Guests(ctx context.Context) ([]model.Guest, error)
	LegacyRevenue(ctx context.Context) ([]model.RevenueEntry, error)
}

// SeriesPoint is one day on the report axis.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
	Value float64   `json:"value"`
}

// MonthlyRollup accumulates invoices created in one calendar month.
type MonthlyRollup struct {
	Month         string  `json:"month"`
	Revenue       float64 `json:"revenue"`
	PendingAmount float64 `json:"pendingAmount"`
	InvoiceCount  int     `json:"invoiceCount"`
	PaidCount     int     `json:"paidCount"`
	PendingCount  int     `json:"pendingCount"`

	start time.Time
}

// Dataset is the in-memory aggregation every encoder consumes.
type Dataset struct {
	Days  int       `json:"days"`
	Start time.Time `json:"start"`
	Today time.Time `json:"today"`

	Revenue   []SeriesPoint   `json:"revenueSeries"`
	Occupancy []SeriesPoint   `json:"occupancySeries"`
	Monthly   []MonthlyRollup `json:"monthlyRollup"`

	// Invoices holds dated invoices created within the range.
	Invoices     []model.Invoice     `json:"-"`
	AllInvoices  []model.Invoice     `json:"-"`
	Guests       []model.Guest       `json:"-"`
	Rooms        []model.Room        `json:"-"`
	Reservations []model.Reservation `json:"-"`
	Tasks        []model.Task        `json:"-"`
}

// Month returns the rollup for a "Jan 2006" label.
func (d *Dataset) Month(label string) (MonthlyRollup, bool) {
	for _, m := range d.Monthly {
		if m.Month == label {
			return m, true
		}
	}
	return MonthlyRollup{}, false
}

// Aggregator fetches the hotel tables and shapes them into a Dataset.
type Aggregator struct {
	source Source
	now    func() time.Time
}

// NewAggregator creates an Aggregator reading from source.
func NewAggregator(source Source) *Aggregator {
	return &Aggregator{source: source, now: time.Now}
}

// WithClock replaces the clock, mostly for tests.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Aggregate builds the dataset for the last days days. Fetch errors are
// logged and the failing collection is treated as empty.
func (a *Aggregator) Aggregate(ctx context.Context, days int) *Dataset {
	if days < 0 {
		days = 0
	}

	invoices := fetch(ctx, "invoices", a.source.Invoices)
	guests := fetch(ctx, "guests", a.source.Guests)
	rooms := fetch(ctx, "rooms", a.source.Rooms)
	reservations := fetch(ctx, "reservations", a.source.Reservations)
	tasks := fetch(ctx, "tasks", a.source.Tasks)
	legacy := fetch(ctx, "revenue", a.source.LegacyRevenue)

	return Build(a.now(), days, Collections{
		Invoices:      invoices,
		Guests:        guests,
		Rooms:         rooms,
		Reservations:  reservations,
		Tasks:         tasks,
		LegacyRevenue: legacy,
	})
}

func fetch[T any](ctx context.Context, name string, fn func(context.Context) ([]T, error)) []T {
	rows, err := fn(ctx)
	if err != nil {
		zap.L().Error("Failed to fetch collection",
			zap.String("collection", name),
			zap.Error(err))
		return []T{}
	}
	if rows == nil {
		return []T{}
	}
	return rows
}

// Collections are the raw tables fed to Build.
type Collections struct {
	Invoices      []model.Invoice
	Guests        []model.Guest
	Rooms         []model.Room
	Reservations  []model.Reservation
	Tasks         []model.Task
	LegacyRevenue []model.RevenueEntry
}

// Build computes the dataset from already fetched collections as of now.
func Build(now time.Time, days int, c Collections) *Dataset {
	loc := now.Location()
	today := startOfDay(now)
	start := today.AddDate(0, 0, -days)
	end := today.AddDate(0, 0, 1)

	ds := &Dataset{
		Days:         days,
		Start:        start,
		Today:        today,
		Invoices:     []model.Invoice{},
		AllInvoices:  c.Invoices,
		Guests:       c.Guests,
		Rooms:        c.Rooms,
		Reservations: c.Reservations,
		Tasks:        c.Tasks,
	}

	// Revenue per calendar day, keyed by DayLayout rather than the "Jan 02"
	// label, so the 12months axis does not merge same-day points a year apart.
	revenue := map[string]decimal.Decimal{}
	months := map[string]*MonthlyRollup{}
	for _, inv := range c.Invoices {
		created, ok := parseTime(inv.CreatedAt, loc)
		if !ok {
			continue
		}
		if !created.Before(start) && created.Before(end) {
			ds.Invoices = append(ds.Invoices, inv)
		}

		amount := decimal.NewFromFloat(inv.Amount)
		if inv.Status == model.InvoicePaid {
			key := created.Format(DayLayout)
			revenue[key] = revenue[key].Add(amount)
		}

		label := created.Format(MonthLayout)
		m, ok := months[label]
		if !ok {
			m = &MonthlyRollup{Month: label, start: time.Date(created.Year(), created.Month(), 1, 0, 0, 0, 0, loc)}
			months[label] = m
		}
		m.InvoiceCount++
		switch inv.Status {
		case model.InvoicePaid:
			m.Revenue, _ = decimal.NewFromFloat(m.Revenue).Add(amount).Float64()
			m.PaidCount++
		case model.InvoicePending:
			m.PendingAmount, _ = decimal.NewFromFloat(m.PendingAmount).Add(amount).Float64()
			m.PendingCount++
		}
	}

	for _, e := range c.LegacyRevenue {
		day, ok := parseTime(e.Date, loc)
		if !ok {
			continue
		}
		key := day.Format(DayLayout)
		revenue[key] = revenue[key].Add(decimal.NewFromFloat(e.Amount))
	}

	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		label := day.Format(LabelLayout)
		amount, _ := revenue[day.Format(DayLayout)].Float64()
		ds.Revenue = append(ds.Revenue, SeriesPoint{Date: day, Label: label, Value: amount})
		ds.Occupancy = append(ds.Occupancy, SeriesPoint{
			Date:  day,
			Label: label,
			Value: float64(occupancyOn(day, today, c.Rooms)),
		})
	}

	ds.Monthly = make([]MonthlyRollup, 0, len(months))
	for _, m := range months {
		ds.Monthly = append(ds.Monthly, *m)
	}
	sort.Slice(ds.Monthly, func(i, j int) bool {
		return ds.Monthly[i].start.Before(ds.Monthly[j].start)
	})

	return ds
}

// occupancyOn returns the rounded occupancy percentage for day.
func occupancyOn(day, today time.Time, rooms []model.Room) int {
	if len(rooms) == 0 {
		return 0
	}
	return roundInt(float64(occupiedOn(day, today, rooms)) / float64(len(rooms)) * 100)
}

// occupiedOn counts occupied rooms on day. Today reads the live room status;
// other days use each room's stored stay window, both ends inclusive.
func occupiedOn(day, today time.Time, rooms []model.Room) int {
	n := 0
	for _, r := range rooms {
		if sameDay(day, today) {
			if r.Status == model.RoomOccupied || r.Status == model.RoomReserved {
				n++
			}
		} else if stayCovers(r, day) {
			n++
		}
	}
	return n
}

func stayCovers(r model.Room, day time.Time) bool {
	loc := day.Location()
	in, ok := parseTime(r.CheckInDate, loc)
	if !ok {
		return false
	}
	out, ok := parseTime(r.CheckOutDate, loc)
	if !ok {
		return false
	}
	return !day.Before(startOfDay(in)) && !day.After(startOfDay(out))
}
