package domain

import "time"

// Booking represents a reservation of a room for a time window [StartTime, EndTime)
type Booking struct {
	ID     int64
	UserID int64 // владелец бронирования
	RoomID int64

	// Контактные данные (опционально)
	Name        *string
	PhoneNumber *string
	Email       *string

	StartTime time.Time
	EndTime   time.Time

	CreatedAt time.Time
}

// Interval returns the booked time window
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// IsOwnedBy returns true if the booking belongs to the user
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}

// IsCurrentOrFuture returns true if the booking has not ended at the given moment
func (b *Booking) IsCurrentOrFuture(now time.Time) bool {
	return b.EndTime.After(now)
}

// ConflictingBookings returns the bookings whose windows overlap the candidate interval
func ConflictingBookings(candidate Interval, bookings []*Booking) []*Booking {
	conflicts := make([]*Booking, 0)
	for _, b := range bookings {
		if b.Interval().Overlaps(candidate) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

// HasCurrentOrFuture returns true if any booking has not ended at the given moment
func HasCurrentOrFuture(bookings []*Booking, now time.Time) bool {
	for _, b := range bookings {
		if b.IsCurrentOrFuture(now) {
			return true
		}
	}
	return false
}
