package storage

import (
	"sort"
	"sync"

	"train-ticketing/internal/models"
)

// InMemoryStore keeps the train catalog and the booking ledger in process
// memory. Trains live in a slice so lookups resolve to the first matching
// number; bookings keep insertion order, which the export report relies on.
type InMemoryStore struct {
	trains   []*models.Train
	bookings []*models.Booking
	mutex    sync.RWMutex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) AddTrain(train *models.Train) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.trains = append(s.trains, train)
	return nil
}

// findTrain must be called with the lock held.
func (s *InMemoryStore) findTrain(number string) *models.Train {
	for _, train := range s.trains {
		if train.Number == number {
			return train
		}
	}
	return nil
}

func (s *InMemoryStore) GetTrain(number string) (*models.Train, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	train := s.findTrain(number)
	if train == nil {
		return nil, ErrTrainNotFound
	}

	copied := *train
	copied.FreeSeats = append([]int(nil), train.FreeSeats...)
	return &copied, nil
}

func (s *InMemoryStore) ListTrains() ([]*models.Train, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	trains := make([]*models.Train, 0, len(s.trains))
	for _, train := range s.trains {
		copied := *train
		copied.FreeSeats = append([]int(nil), train.FreeSeats...)
		trains = append(trains, &copied)
	}
	return trains, nil
}

func (s *InMemoryStore) FreeSeats(number string) ([]int, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	train := s.findTrain(number)
	if train == nil {
		return nil, ErrTrainNotFound
	}

	return append([]int(nil), train.FreeSeats...), nil
}

// BookSeat sells the lowest-numbered free seat to the given booking and
// appends it to the ledger in one critical section. The train's name and
// fare are snapshotted onto the booking while the lock is held.
func (s *InMemoryStore) BookSeat(booking *models.Booking) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	train := s.findTrain(booking.TrainNumber)
	if train == nil {
		return ErrTrainNotFound
	}
	if len(train.FreeSeats) == 0 {
		return ErrNoSeatsFree
	}

	booking.SeatNumber = train.FreeSeats[0]
	booking.TrainName = train.Name
	booking.Fare = train.Fare
	train.FreeSeats = train.FreeSeats[1:]

	s.bookings = append(s.bookings, booking)
	return nil
}

// CancelBooking returns the booking's seat to its train, pool re-sorted
// ascending, and removes the booking from the ledger in one critical
// section. If the train is gone the booking is kept and ErrTrainNotFound
// is returned, rather than silently dropping capacity.
func (s *InMemoryStore) CancelBooking(ticketID string) (*models.Booking, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	idx := -1
	for i, booking := range s.bookings {
		if booking.TicketID == ticketID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrBookingNotFound
	}

	booking := s.bookings[idx]
	train := s.findTrain(booking.TrainNumber)
	if train == nil {
		return nil, ErrTrainNotFound
	}

	alreadyFree := false
	for _, seat := range train.FreeSeats {
		if seat == booking.SeatNumber {
			alreadyFree = true
			break
		}
	}
	if !alreadyFree {
		train.FreeSeats = append(train.FreeSeats, booking.SeatNumber)
		sort.Ints(train.FreeSeats)
	}

	s.bookings = append(s.bookings[:idx], s.bookings[idx+1:]...)

	copied := *booking
	return &copied, nil
}

func (s *InMemoryStore) GetBooking(ticketID string) (*models.Booking, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, booking := range s.bookings {
		if booking.TicketID == ticketID {
			copied := *booking
			return &copied, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (s *InMemoryStore) ListBookings() ([]*models.Booking, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	bookings := make([]*models.Booking, 0, len(s.bookings))
	for _, booking := range s.bookings {
		copied := *booking
		bookings = append(bookings, &copied)
	}
	return bookings, nil
}
