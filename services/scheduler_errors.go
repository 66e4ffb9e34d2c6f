package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTableName       = errors.New("table name cannot be empty")
	ErrTableNameTaken       = errors.New("a table with that name already exists")
	ErrTableOccupied        = errors.New("table is already occupied")
	ErrTableInUse           = errors.New("cannot delete table with active status or upcoming reservations")
	ErrMissingGuestName     = errors.New("please enter a name for the reservation")
	ErrMissingDateOrTime    = errors.New("please select both date and time")
	ErrOutsideAllowedWindow = errors.New("reservations are only allowed between 7:00 AM and 11:59 PM")
	ErrInvalidTime          = errors.New("invalid time format, expected HH:MM")
	ErrInvalidDate          = errors.New("invalid date format, expected YYYY-MM-DD")
)

// WalkInConflictError -> walk-in berdurasi menabrak reservasi hari ini.
// Headroom = sisa waktu sampai reservasi, ReservationAt = jam 12-hour reservasi.
type WalkInConflictError struct {
	Headroom      string
	ReservationAt string
}

func (e *WalkInConflictError) Error() string {
	return fmt.Sprintf("Conflict! Only %s available before reservation at %s", e.Headroom, e.ReservationAt)
}

// OpenTimeTooSoonError -> open time diminta padahal reservasi berikutnya
// kurang dari satu jam lagi.
type OpenTimeTooSoonError struct {
	Headroom      string
	ReservationAt string
}

func (e *OpenTimeTooSoonError) Error() string {
	return fmt.Sprintf("Cannot select Open Time. Less than 1 hour (%s) available before reservation at %s.", e.Headroom, e.ReservationAt)
}
