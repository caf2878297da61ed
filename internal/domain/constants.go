package domain

import "time"

// Booking rules
const (
	// MaxBookingDuration максимальная длительность одного бронирования
	MaxBookingDuration = 3 * time.Hour
)

// Field limits
const (
	MaxBuildingNameLength = 100
	MaxFloorNameLength    = 50
	MaxRoomNameLength     = 50
	MaxContactNameLength  = 100
	MaxPhoneNumberLength  = 100
)

// TimeFormat формат времени в API (RFC 3339, дробные секунды сохраняются)
const TimeFormat = time.RFC3339Nano

// TimePrecision точность хранения времени (TIMESTAMPTZ)
const TimePrecision = time.Microsecond
