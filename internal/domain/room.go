package domain

import "strconv"

// Room represents a bookable room on a floor
type Room struct {
	ID         int64
	FloorID    int64
	RoomNumber int
	RoomName   string
	Capacity   int

	// IsBooked derived flag: true while the room has a current or future booking.
	// Maintained by the admission and cancellation transactions, never written by clients.
	IsBooked bool

	// IsBookable administrative toggle
	IsBookable bool

	// Floor заполняется при чтении (вложенное представление)
	Floor *Floor
}

// DisplayName returns "<room name><room number>"
func (r *Room) DisplayName() string {
	return r.RoomName + strconv.Itoa(r.RoomNumber)
}

// CanBeBooked returns true if the administrator allows bookings for the room
func (r *Room) CanBeBooked() bool {
	return r.IsBookable
}
