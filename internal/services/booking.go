package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"train-ticketing/internal/kafka"
	"train-ticketing/internal/logger"
	"train-ticketing/internal/models"
	"train-ticketing/internal/storage"
	"train-ticketing/internal/ticket"
)

var (
	ErrTrainNotFound    = errors.New("train not found")
	ErrNoSeatsAvailable = errors.New("no seats available")
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrInvalidInput     = errors.New("required field is empty")
)

// ExportEmptyNotice is returned by ExportBookings when the ledger is empty,
// so the caller never renders a blank report.
const ExportEmptyNotice = "No bookings to export."

// maxIDAttempts bounds the ticket-id re-roll loop. With 9000 possible ids a
// collision streak this long means the ledger is effectively full.
const maxIDAttempts = 25

// TicketReserver claims ticket ids across instances. A nil reserver is
// valid: uniqueness then rests on the in-process ledger check alone.
type TicketReserver interface {
	ReserveTicketID(ticketID string) (bool, error)
	ReleaseTicketID(ticketID string) error
}

// BookingService is the booking ledger: it owns the collection of bookings
// and the sale/cancellation protocol, touching train seat pools only through
// the store.
type BookingService struct {
	store    storage.Store
	producer *kafka.Producer
	log      *logger.Logger
	reserver TicketReserver
}

func NewBookingService(store storage.Store, producer *kafka.Producer, log *logger.Logger, reserver TicketReserver) *BookingService {
	return &BookingService{
		store:    store,
		producer: producer,
		log:      log,
		reserver: reserver,
	}
}

func (s *BookingService) BookTicket(ctx context.Context, passengerName, trainNumber string) (*models.Booking, error) {
	if strings.TrimSpace(passengerName) == "" || strings.TrimSpace(trainNumber) == "" {
		return nil, ErrInvalidInput
	}

	s.log.LogBooking("INIT", "new", fmt.Sprintf("Booking request for train %s by %s", trainNumber, passengerName))

	ticketID, err := s.mintTicketID()
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		TicketID:      ticketID,
		PassengerName: passengerName,
		TrainNumber:   trainNumber,
		BookedAt:      time.Now(),
	}

	// The seat sale and the ledger append happen in one store critical
	// section, so a concurrent cancellation can never leave the same seat
	// on two active bookings.
	if err := s.store.BookSeat(booking); err != nil {
		s.releaseReservation(ticketID)
		switch {
		case errors.Is(err, storage.ErrNoSeatsFree):
			s.log.LogBooking("FAILED", "new", fmt.Sprintf("Train %s is fully booked", trainNumber))
			return nil, ErrNoSeatsAvailable
		case errors.Is(err, storage.ErrTrainNotFound):
			s.log.LogBooking("FAILED", "new", fmt.Sprintf("Train %s not found", trainNumber))
			return nil, ErrTrainNotFound
		default:
			s.log.Error("BOOKING", fmt.Sprintf("Failed to save booking %s: %v", ticketID, err))
			return nil, fmt.Errorf("failed to save booking: %w", err)
		}
	}

	s.log.LogBooking("CREATED", ticketID, fmt.Sprintf("Seat %d on train %s for %s at %s%s",
		booking.SeatNumber, booking.TrainNumber, passengerName, models.CurrencyTag, models.FormatFare(booking.Fare)))

	s.publishBookingEvent("booking.created", booking)

	return booking, nil
}

// mintTicketID generates ticket ids until one is free in the ledger and, when
// a reserver is configured, claimed across instances.
func (s *BookingService) mintTicketID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := ticket.GenerateID()
		if err != nil {
			return "", fmt.Errorf("failed to generate ticket id: %w", err)
		}

		if _, err := s.store.GetBooking(id); err == nil {
			s.log.LogBooking("ID_COLLISION", id, "Ticket id already active, re-rolling")
			continue
		}

		if s.reserver != nil {
			ok, err := s.reserver.ReserveTicketID(id)
			if err != nil {
				return "", fmt.Errorf("failed to reserve ticket id: %w", err)
			}
			if !ok {
				s.log.LogBooking("ID_COLLISION", id, "Ticket id held by another instance, re-rolling")
				continue
			}
		}

		return id, nil
	}

	return "", fmt.Errorf("could not mint a unique ticket id after %d attempts", maxIDAttempts)
}

// releaseReservation frees a minted ticket id so it can be reused, both on
// cancellation and when a booking aborts after the id was claimed. The
// reservation has no TTL, so a leaked claim would block the id forever.
func (s *BookingService) releaseReservation(ticketID string) {
	if s.reserver == nil {
		return
	}
	if err := s.reserver.ReleaseTicketID(ticketID); err != nil {
		s.log.Warn("BOOKING", fmt.Sprintf("Failed to release ticket id reservation %s: %v", ticketID, err))
	}
}

func (s *BookingService) CancelTicket(ctx context.Context, ticketID string) error {
	if strings.TrimSpace(ticketID) == "" {
		return ErrInvalidInput
	}

	s.log.LogBooking("CANCEL_INIT", ticketID, "Cancellation requested")

	// The seat return and the ledger removal are one store critical
	// section. If the train is gone the cancellation fails and the booking
	// stays, rather than silently dropping capacity.
	booking, err := s.store.CancelBooking(ticketID)
	if err != nil {
		if errors.Is(err, storage.ErrTrainNotFound) {
			s.log.Error("BOOKING", fmt.Sprintf("Cannot return seat for ticket %s: train missing from registry", ticketID))
			return ErrTrainNotFound
		}
		s.log.LogBooking("CANCEL_FAILED", ticketID, "Ticket not found in ledger")
		return ErrTicketNotFound
	}

	s.releaseReservation(ticketID)

	s.log.LogBooking("CANCELLED", ticketID, fmt.Sprintf("Seat %d returned to train %s", booking.SeatNumber, booking.TrainNumber))

	s.publishBookingEvent("booking.cancelled", booking)

	return nil
}

func (s *BookingService) GetTicket(ctx context.Context, ticketID string) (*models.Booking, error) {
	if strings.TrimSpace(ticketID) == "" {
		return nil, ErrInvalidInput
	}

	booking, err := s.store.GetBooking(ticketID)
	if err != nil {
		s.log.LogBooking("NOT_FOUND", ticketID, "Ticket not found in ledger")
		return nil, ErrTicketNotFound
	}

	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	return s.store.ListBookings()
}

func (s *BookingService) AvailableSeats(ctx context.Context, trainNumber string) ([]int, error) {
	if strings.TrimSpace(trainNumber) == "" {
		return nil, ErrInvalidInput
	}

	seats, err := s.store.FreeSeats(trainNumber)
	if err != nil {
		return nil, ErrTrainNotFound
	}

	return seats, nil
}

// ExportBookings renders every booking in insertion order, one line each.
func (s *BookingService) ExportBookings(ctx context.Context) (string, error) {
	bookings, err := s.store.ListBookings()
	if err != nil {
		return "", fmt.Errorf("failed to list bookings: %w", err)
	}

	if len(bookings) == 0 {
		return ExportEmptyNotice, nil
	}

	lines := make([]string, len(bookings))
	for i, booking := range bookings {
		lines[i] = booking.ExportLine()
	}

	s.log.LogBooking("EXPORT", "all", fmt.Sprintf("Exported %d bookings", len(bookings)))
	return strings.Join(lines, "\n"), nil
}

func (s *BookingService) publishBookingEvent(eventType string, booking *models.Booking) {
	event := &models.BookingEvent{
		Type:      eventType,
		TicketID:  booking.TicketID,
		Booking:   booking,
		Timestamp: time.Now(),
	}

	if err := s.producer.PublishBookingEvent(event); err != nil {
		s.log.Error("KAFKA", fmt.Sprintf("Failed to publish %s event for ticket %s: %v", eventType, booking.TicketID, err))
	}
}
