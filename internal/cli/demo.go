package cli

import (
	"fmt"
	"time"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/report"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/repository"
)

var demoGuests = [][2]string{
	{"Ama", "Owusu"}, {"Kwame", "Mensah"}, {"Efua", "Boateng"}, {"Yaw", "Asante"},
	{"Akosua", "Darko"}, {"Kofi", "Adjei"}, {"Abena", "Ofori"}, {"Kojo", "Appiah"},
}

var demoRoomTypes = []struct {
	name  string
	price float64
}{
	{"Standard", 120}, {"Deluxe", 180}, {"Executive", 240}, {"Suite", 350},
}

// DemoData builds a small, internally consistent hotel as of now: twelve rooms,
// eight guests with stays around today and three months of invoices.
func DemoData(now time.Time) *repository.SeedData {
	day := func(offset int) string { return now.AddDate(0, 0, offset).Format(report.DayLayout) }
	stamp := func(offset int) string { return now.AddDate(0, 0, offset).UTC().Format(model.TimestampLayout) }

	data := &repository.SeedData{}
	for i := 0; i < 12; i++ {
		rt := demoRoomTypes[i%len(demoRoomTypes)]
		data.Rooms = append(data.Rooms, model.Room{
			RoomNumber: fmt.Sprintf("%d", 101+i),
			RoomType:   rt.name,
			Status:     model.RoomAvailable,
			Price:      rt.price,
		})
	}
	data.Rooms[10].Status = model.RoomMaintenance
	data.Rooms[11].Status = model.RoomReserved

	for i, name := range demoGuests {
		room := &data.Rooms[i]
		checkIn, checkOut := -3+i%3, 1+i%4
		guest := name[0] + " " + name[1]

		status, resStatus := "Checked In", model.ReservationCheckedIn
		room.Status = model.RoomOccupied
		if i >= 6 {
			checkIn, checkOut = -12-i, -8-i
			status, resStatus = "Checked Out", model.ReservationCheckedOut
			room.Status = model.RoomAvailable
		}
		room.GuestName = guest
		room.CheckInDate, room.CheckOutDate = day(checkIn), day(checkOut)

		data.Guests = append(data.Guests, model.Guest{
			FirstName:  name[0],
			LastName:   name[1],
			Email:      fmt.Sprintf("%s.%s@example.com", name[0], name[1]),
			Phone:      fmt.Sprintf("+233 20 555 %04d", 1000+i*37),
			RoomNumber: room.RoomNumber,
			CheckIn:    day(checkIn),
			CheckOut:   day(checkOut),
			Status:     status,
			CreatedAt:  stamp(checkIn - 2),
		})

		nights := checkOut - checkIn
		data.Reservations = append(data.Reservations, model.Reservation{
			GuestName:    guest,
			RoomNumber:   room.RoomNumber,
			CheckInDate:  day(checkIn),
			CheckOutDate: day(checkOut),
			Status:       resStatus,
			TotalAmount:  room.Price * float64(nights),
			CreatedAt:    stamp(checkIn - 2),
		})
	}

	statuses := []string{model.InvoicePaid, model.InvoicePaid, model.InvoicePaid, model.InvoicePending, model.InvoiceOverdue}
	for i := 0; i < 45; i++ {
		offset := -2 * i
		room := data.Rooms[i%len(data.Rooms)]
		name := demoGuests[i%len(demoGuests)]
		data.Invoices = append(data.Invoices, model.Invoice{
			InvoiceNumber: fmt.Sprintf("INV-%s-%03d", now.Format("0601"), i+1),
			GuestName:     name[0] + " " + name[1],
			RoomNumber:    room.RoomNumber,
			Amount:        room.Price * float64(1+i%4),
			Status:        statuses[i%len(statuses)],
			IssueDate:     day(offset),
			DueDate:       day(offset + 14),
			CreatedAt:     stamp(offset),
		})
	}

	tasks := []struct{ title, priority, status string }{
		{"Deep clean after checkout", "High", model.TaskPending},
		{"Replace bathroom towels", "Medium", model.TaskCompleted},
		{"Fix air conditioning", "High", model.TaskInProgress},
		{"Restock minibar", "Low", model.TaskCompleted},
		{"Vacuum corridor carpets", "Medium", model.TaskPending},
		{"Inspect smoke detector", "High", model.TaskInProgress},
	}
	staff := []string{"Grace", "Samuel", "Esi"}
	for i, t := range tasks {
		data.Tasks = append(data.Tasks, model.Task{
			Title:      t.title,
			RoomNumber: data.Rooms[(i*3)%len(data.Rooms)].RoomNumber,
			AssignedTo: staff[i%len(staff)],
			Priority:   t.priority,
			Status:     t.status,
			DueDate:    day(i % 3),
			CreatedAt:  stamp(-i),
		})
	}
	return data
}
