package report

import (
	"testing"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCalculateKPIs(t *testing.T) {
	ds := &Dataset{
		Revenue:   []SeriesPoint{{Value: 0.1}, {Value: 0.2}, {Value: 100}},
		Occupancy: []SeriesPoint{{Value: 50}, {Value: 51}},
		Invoices: []model.Invoice{
			{Amount: 300, Status: model.InvoicePaid},
			{Amount: 100, Status: model.InvoicePending},
			{Amount: 75, Status: model.InvoiceOverdue},
		},
		Reservations: []model.Reservation{
			{Status: model.ReservationCheckedIn},
			{Status: model.ReservationCheckedOut},
			{Status: model.ReservationConfirmed},
			{Status: model.ReservationCancelled},
		},
	}

	k := CalculateKPIs(ds)
	assert.InDelta(t, 100.3, k.TotalRevenue, 1e-9)
	assert.Equal(t, 51, k.AverageOccupancy)
	assert.Equal(t, 100.0, k.PendingPayments)
	assert.Equal(t, 300.0, k.PaidAmount)
	assert.Equal(t, 75, k.CollectionRate)
	assert.Equal(t, 2, k.TotalBookings)
	assert.Equal(t, 3, k.InvoiceCount)
}

func TestCalculateKPIsEmpty(t *testing.T) {
	assert.Equal(t, KPIs{}, CalculateKPIs(&Dataset{}))
	assert.Equal(t, KPIs{}, CalculateKPIs(nil))
}

func TestHighlights(t *testing.T) {
	h := Highlights(KPIs{TotalRevenue: 1234.5, AverageOccupancy: 64, TotalBookings: 3}, Formatter{CurrencySymbol: "$"})
	assert.Len(t, h, 5)
	assert.Equal(t, model.HighlightMetric{Label: "Total Revenue", Value: "$1,234.50", Caption: "Paid invoices in range"}, h[0])
	assert.Equal(t, "64%", h[1].Value)
	assert.Equal(t, "3", h[3].Value)
}

func TestFormatter(t *testing.T) {
	f := Formatter{CurrencySymbol: "$"}
	assert.Equal(t, "$1,234.50", f.Currency(1234.5))
	assert.Equal(t, "$1,234,567.89", f.Currency(1234567.891))
	assert.Equal(t, "-$5.25", f.Currency(-5.25))
	assert.Equal(t, "42%", Percent(42))
	assert.Equal(t, "10.50", Amount(10.5))
}
