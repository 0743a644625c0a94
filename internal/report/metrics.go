package report

import (
	"strconv"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/shopspring/decimal"
)

// KPIs are the scalar figures shown on the dashboard and in every report summary.
type KPIs struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	AverageOccupancy int     `json:"averageOccupancy"`
	PendingPayments  float64 `json:"pendingPayments"`
	TotalBookings    int     `json:"totalBookings"`
	InvoiceCount     int     `json:"invoiceCount"`
	PaidAmount       float64 `json:"paidAmount"`
	CollectionRate   int     `json:"collectionRate"`
}

// CalculateKPIs reduces a dataset to its KPIs. It is recomputed on every call.
func CalculateKPIs(ds *Dataset) KPIs {
	var k KPIs
	if ds == nil {
		return k
	}

	total := decimal.Zero
	for _, p := range ds.Revenue {
		total = total.Add(decimal.NewFromFloat(p.Value))
	}
	k.TotalRevenue, _ = total.Float64()

	if n := len(ds.Occupancy); n > 0 {
		sum := 0.0
		for _, p := range ds.Occupancy {
			sum += p.Value
		}
		k.AverageOccupancy = roundInt(sum / float64(n))
	}

	paid, pending := decimal.Zero, decimal.Zero
	for _, inv := range ds.Invoices {
		switch inv.Status {
		case model.InvoicePaid:
			paid = paid.Add(decimal.NewFromFloat(inv.Amount))
		case model.InvoicePending:
			pending = pending.Add(decimal.NewFromFloat(inv.Amount))
		}
	}
	k.PaidAmount, _ = paid.Float64()
	k.PendingPayments, _ = pending.Float64()
	k.InvoiceCount = len(ds.Invoices)
	k.CollectionRate = collectionRate(paid, pending)

	for _, r := range ds.Reservations {
		if r.Status == model.ReservationCheckedIn || r.Status == model.ReservationCheckedOut {
			k.TotalBookings++
		}
	}
	return k
}

func collectionRate(paid, pending decimal.Decimal) int {
	billed := paid.Add(pending)
	if billed.IsZero() {
		return 0
	}
	return int(paid.Div(billed).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// Highlights turns KPIs into the preview panel tuples.
func Highlights(k KPIs, f Formatter) []model.HighlightMetric {
	return []model.HighlightMetric{
		{Label: "Total Revenue", Value: f.Currency(k.TotalRevenue), Caption: "Paid invoices in range"},
		{Label: "Average Occupancy", Value: Percent(k.AverageOccupancy), Caption: "Mean daily occupancy"},
		{Label: "Pending Payments", Value: f.Currency(k.PendingPayments), Caption: strconv.Itoa(k.InvoiceCount) + " invoices in range"},
		{Label: "Total Bookings", Value: strconv.Itoa(k.TotalBookings), Caption: "Checked in or checked out"},
		{Label: "Collection Rate", Value: Percent(k.CollectionRate), Caption: "Paid share of billed amount"},
	}
}
