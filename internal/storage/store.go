package storage

import (
	"errors"

	"train-ticketing/internal/models"
)

var (
	ErrTrainNotFound   = errors.New("train not found")
	ErrNoSeatsFree     = errors.New("no seats available")
	ErrBookingNotFound = errors.New("booking not found")
)

type Store interface {
	// Train registry operations
	AddTrain(train *models.Train) error
	GetTrain(number string) (*models.Train, error)
	ListTrains() ([]*models.Train, error)
	FreeSeats(number string) ([]int, error)

	// Compound booking operations. Each mutates the seat pool and the
	// ledger in a single critical section, so a seat can never be held by
	// two bookings at once, not even transiently.
	BookSeat(booking *models.Booking) error
	CancelBooking(ticketID string) (*models.Booking, error)

	// Booking ledger reads
	GetBooking(ticketID string) (*models.Booking, error)
	ListBookings() ([]*models.Booking, error)
}
