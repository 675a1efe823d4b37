package models

import (
	"fmt"
	"time"
)

type Booking struct {
	TicketID      string    `json:"ticket_id"`
	PassengerName string    `json:"passenger_name"`
	TrainNumber   string    `json:"train_number"`
	TrainName     string    `json:"train_name"`
	SeatNumber    int       `json:"seat_number"`
	Fare          float64   `json:"fare"`
	BookedAt      time.Time `json:"booked_at"`
}

// ExportLine renders the flat one-line record used by the export report.
func (b *Booking) ExportLine() string {
	return fmt.Sprintf("%s - %s - %s - Seat %d - %s%s",
		b.TicketID, b.PassengerName, b.TrainName, b.SeatNumber, CurrencyTag, FormatFare(b.Fare))
}

// Details renders the multi-line ticket block shown to the clerk.
func (b *Booking) Details() string {
	return fmt.Sprintf("Ticket ID: %s\nPassenger: %s\nTrain: %s (Seat %d)\nFare: %s%s",
		b.TicketID, b.PassengerName, b.TrainName, b.SeatNumber, CurrencyTag, FormatFare(b.Fare))
}

type BookingRequest struct {
	PassengerName string `json:"passenger_name" binding:"required"`
	TrainNumber   string `json:"train_number" binding:"required"`
}

type BookingEvent struct {
	Type      string    `json:"type"`
	TicketID  string    `json:"ticket_id"`
	Booking   *Booking  `json:"booking"`
	Timestamp time.Time `json:"timestamp"`
}

// TrainEvent is the payload pushed by an external catalog feed on the
// train.created topic.
type TrainEvent struct {
	Number      string    `json:"number"`
	Name        string    `json:"name"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Capacity    int       `json:"capacity"`
	Fare        float64   `json:"fare"`
	CreatedAt   time.Time `json:"created_at"`
}
