package model

// Invoice statuses used by the billing screens.
const (
	InvoicePaid      = "Paid"
	InvoicePending   = "Pending"
	InvoiceOverdue   = "Overdue"
	InvoiceCancelled = "Cancelled"
)

// Room statuses.
const (
	RoomAvailable   = "Available"
	RoomOccupied    = "Occupied"
	RoomReserved    = "Reserved"
	RoomMaintenance = "Maintenance"
)

// Reservation statuses.
const (
	ReservationConfirmed  = "Confirmed"
	ReservationCheckedIn  = "Checked In"
	ReservationCheckedOut = "Checked Out"
	ReservationCancelled  = "Cancelled"
)

// Task statuses.
const (
	TaskPending    = "Pending"
	TaskInProgress = "In Progress"
	TaskCompleted  = "Completed"
)

// Invoice represents a row of the invoices table
type Invoice struct {
	ID            string  `json:"id" db:"id"`
	InvoiceNumber string  `json:"invoice_number" db:"invoice_number"`
	GuestName     string  `json:"guest_name" db:"guest_name"`
	RoomNumber    string  `json:"room_number" db:"room_number"`
	Amount        float64 `json:"amount" db:"amount"`
	Status        string  `json:"status" db:"status"`
	IssueDate     string  `json:"issue_date" db:"issue_date"`
	DueDate       string  `json:"due_date" db:"due_date"`
	CreatedAt     string  `json:"created_at" db:"created_at"`
}

// Guest represents a row of the guests table
type Guest struct {
	ID         string `json:"id" db:"id"`
	FirstName  string `json:"first_name" db:"first_name"`
	LastName   string `json:"last_name" db:"last_name"`
	Email      string `json:"email" db:"email"`
	Phone      string `json:"phone" db:"phone"`
	RoomNumber string `json:"room_number" db:"room_number"`
	CheckIn    string `json:"check_in" db:"check_in"`
	CheckOut   string `json:"check_out" db:"check_out"`
	Status     string `json:"status" db:"status"`
	CreatedAt  string `json:"created_at" db:"created_at"`
}

// FullName joins first and last name.
func (g Guest) FullName() string {
	switch {
	case g.FirstName == "":
		return g.LastName
	case g.LastName == "":
		return g.FirstName
	default:
		return g.FirstName + " " + g.LastName
	}
}

// Room represents a row of the rooms table. CheckInDate/CheckOutDate hold the
// current or upcoming stay window.
type Room struct {
	ID           string  `json:"id" db:"id"`
	RoomNumber   string  `json:"room_number" db:"room_number"`
	RoomType     string  `json:"room_type" db:"room_type"`
	Status       string  `json:"status" db:"status"`
	Price        float64 `json:"price" db:"price"`
	GuestName    string  `json:"guest_name" db:"guest_name"`
	CheckInDate  string  `json:"check_in_date" db:"check_in_date"`
	CheckOutDate string  `json:"check_out_date" db:"check_out_date"`
	CreatedAt    string  `json:"created_at" db:"created_at"`
}

// Reservation represents a row of the reservations table
type Reservation struct {
	ID           string  `json:"id" db:"id"`
	GuestName    string  `json:"guest_name" db:"guest_name"`
	RoomNumber   string  `json:"room_number" db:"room_number"`
	CheckInDate  string  `json:"check_in_date" db:"check_in_date"`
	CheckOutDate string  `json:"check_out_date" db:"check_out_date"`
	Status       string  `json:"status" db:"status"`
	TotalAmount  float64 `json:"total_amount" db:"total_amount"`
	CreatedAt    string  `json:"created_at" db:"created_at"`
}

// Task represents a housekeeping task
type Task struct {
	ID         string `json:"id" db:"id"`
	Title      string `json:"title" db:"title"`
	RoomNumber string `json:"room_number" db:"room_number"`
	AssignedTo string `json:"assigned_to" db:"assigned_to"`
	Priority   string `json:"priority" db:"priority"`
	Status     string `json:"status" db:"status"`
	DueDate    string `json:"due_date" db:"due_date"`
	CreatedAt  string `json:"created_at" db:"created_at"`
}

// RevenueEntry is a row of the legacy revenue table, kept from before
// invoices were introduced. Amounts are added on top of paid invoices.
type RevenueEntry struct {
	ID        string  `json:"id" db:"id"`
	Date      string  `json:"date" db:"date"`
	Amount    float64 `json:"amount" db:"amount"`
	Source    string  `json:"source" db:"source"`
	CreatedAt string  `json:"created_at" db:"created_at"`
}
