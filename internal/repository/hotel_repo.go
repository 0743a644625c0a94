package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
)

// ListInvoices returns every invoice. Date filtering is the caller's job.
func ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	rows, err := query(ctx, `
		SELECT id, invoice_number, guest_name, room_number, amount, status, issue_date, due_date, created_at
		FROM invoices ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []model.Invoice{}
	for rows.Next() {
		var inv model.Invoice
		if err := rows.Scan(&inv.ID, &inv.InvoiceNumber, &inv.GuestName, &inv.RoomNumber,
			&inv.Amount, &inv.Status, &inv.IssueDate, &inv.DueDate, &inv.CreatedAt); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// CreateInvoice inserts an invoice, assigning an id and created_at when missing.
func CreateInvoice(ctx context.Context, inv *model.Invoice) error {
	return insertInvoice(ctx, dbExecer{}, inv)
}

func insertInvoice(ctx context.Context, ex execer, inv *model.Invoice) error {
	fillIdentity(&inv.ID, &inv.CreatedAt)
	_, err := ex.ExecContext(ctx, `
		INSERT INTO invoices (id, invoice_number, guest_name, room_number, amount, status, issue_date, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, inv.ID, inv.InvoiceNumber, inv.GuestName, inv.RoomNumber, inv.Amount, inv.Status, inv.IssueDate, inv.DueDate, inv.CreatedAt)
	return err
}

// ListGuests returns every guest
func ListGuests(ctx context.Context) ([]model.Guest, error) {
	rows, err := query(ctx, `
		SELECT id, first_name, last_name, email, phone, room_number, check_in, check_out, status, created_at
		FROM guests ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guests := []model.Guest{}
	for rows.Next() {
		var g model.Guest
		if err := rows.Scan(&g.ID, &g.FirstName, &g.LastName, &g.Email, &g.Phone,
			&g.RoomNumber, &g.CheckIn, &g.CheckOut, &g.Status, &g.CreatedAt); err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

// CreateGuest inserts a guest
func CreateGuest(ctx context.Context, g *model.Guest) error {
	return insertGuest(ctx, dbExecer{}, g)
}

func insertGuest(ctx context.Context, ex execer, g *model.Guest) error {
	fillIdentity(&g.ID, &g.CreatedAt)
	_, err := ex.ExecContext(ctx, `
		INSERT INTO guests (id, first_name, last_name, email, phone, room_number, check_in, check_out, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.FirstName, g.LastName, g.Email, g.Phone, g.RoomNumber, g.CheckIn, g.CheckOut, g.Status, g.CreatedAt)
	return err
}

// ListRooms returns every room ordered by room number
func ListRooms(ctx context.Context) ([]model.Room, error) {
	rows, err := query(ctx, `
		SELECT id, room_number, room_type, status, price, guest_name, check_in_date, check_out_date, created_at
		FROM rooms ORDER BY room_number ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := []model.Room{}
	for rows.Next() {
		var r model.Room
		if err := rows.Scan(&r.ID, &r.RoomNumber, &r.RoomType, &r.Status, &r.Price,
			&r.GuestName, &r.CheckInDate, &r.CheckOutDate, &r.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// CreateRoom inserts a room
func CreateRoom(ctx context.Context, r *model.Room) error {
	return insertRoom(ctx, dbExecer{}, r)
}

func insertRoom(ctx context.Context, ex execer, r *model.Room) error {
	fillIdentity(&r.ID, &r.CreatedAt)
	_, err := ex.ExecContext(ctx, `
		INSERT INTO rooms (id, room_number, room_type, status, price, guest_name, check_in_date, check_out_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.RoomNumber, r.RoomType, r.Status, r.Price, r.GuestName, r.CheckInDate, r.CheckOutDate, r.CreatedAt)
	return err
}

// ListReservations returns every reservation
func ListReservations(ctx context.Context) ([]model.Reservation, error) {
	rows, err := query(ctx, `
		SELECT id, guest_name, room_number, check_in_date, check_out_date, status, total_amount, created_at
		FROM reservations ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []model.Reservation{}
	for rows.Next() {
		var r model.Reservation
		if err := rows.Scan(&r.ID, &r.GuestName, &r.RoomNumber, &r.CheckInDate,
			&r.CheckOutDate, &r.Status, &r.TotalAmount, &r.CreatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

// CreateReservation inserts a reservation
func CreateReservation(ctx context.Context, r *model.Reservation) error {
	return insertReservation(ctx, dbExecer{}, r)
}

func insertReservation(ctx context.Context, ex execer, r *model.Reservation) error {
	fillIdentity(&r.ID, &r.CreatedAt)
	_, err := ex.ExecContext(ctx, `
		INSERT INTO reservations (id, guest_name, room_number, check_in_date, check_out_date, status, total_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.GuestName, r.RoomNumber, r.CheckInDate, r.CheckOutDate, r.Status, r.TotalAmount, r.CreatedAt)
	return err
}

// ListRevenue returns the legacy revenue entries
func ListRevenue(ctx context.Context) ([]model.RevenueEntry, error) {
	rows, err := query(ctx, `SELECT id, date, amount, source, created_at FROM revenue ORDER BY date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.RevenueEntry{}
	for rows.Next() {
		var e model.RevenueEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Amount, &e.Source, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CreateRevenue inserts a legacy revenue entry
func CreateRevenue(ctx context.Context, e *model.RevenueEntry) error {
	return insertRevenue(ctx, dbExecer{}, e)
}

func insertRevenue(ctx context.Context, ex execer, e *model.RevenueEntry) error {
	fillIdentity(&e.ID, &e.CreatedAt)
	_, err := ex.ExecContext(ctx, `
		INSERT INTO revenue (id, date, amount, source, created_at) VALUES (?, ?, ?, ?, ?)
	`, e.ID, e.Date, e.Amount, e.Source, e.CreatedAt)
	return err
}

// SeedData is a batch of rows inserted in one transaction.
type SeedData struct {
	Rooms        []model.Room
	Guests       []model.Guest
	Reservations []model.Reservation
	Invoices     []model.Invoice
	Tasks        []model.Task
}

// Seed inserts data atomically.
func Seed(ctx context.Context, data *SeedData) error {
	return WithTx(ctx, func(tx *sql.Tx) error {
		ex := txExecer{tx: tx}
		for i := range data.Rooms {
			if err := insertRoom(ctx, ex, &data.Rooms[i]); err != nil {
				return err
			}
		}
		for i := range data.Guests {
			if err := insertGuest(ctx, ex, &data.Guests[i]); err != nil {
				return err
			}
		}
		for i := range data.Reservations {
			if err := insertReservation(ctx, ex, &data.Reservations[i]); err != nil {
				return err
			}
		}
		for i := range data.Invoices {
			if err := insertInvoice(ctx, ex, &data.Invoices[i]); err != nil {
				return err
			}
		}
		for i := range data.Tasks {
			if err := insertTask(ctx, ex, &data.Tasks[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func fillIdentity(id, createdAt *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if *createdAt == "" {
		*createdAt = now()
	}
}
