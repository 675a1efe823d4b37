package models

import (
	"fmt"
	"strconv"
)

// CurrencyTag prefixes every fare shown to the clerk.
const CurrencyTag = "Ksh"

type Train struct {
	Number      string  `json:"number"`
	Name        string  `json:"name"`
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Capacity    int     `json:"capacity"`
	FreeSeats   []int   `json:"free_seats"`
	Fare        float64 `json:"fare"`
}

// NewTrain builds a train whose seat pool starts as the full range 1..capacity.
func NewTrain(number, name, source, destination string, capacity int, fare float64) *Train {
	seats := make([]int, capacity)
	for i := range seats {
		seats[i] = i + 1
	}
	return &Train{
		Number:      number,
		Name:        name,
		Source:      source,
		Destination: destination,
		Capacity:    capacity,
		FreeSeats:   seats,
		Fare:        fare,
	}
}

// Summary renders the single-line listing used by "view trains".
func (t *Train) Summary() string {
	return fmt.Sprintf("%s - %s | %s -> %s | Fare: %s%s | Available Seats: %d",
		t.Number, t.Name, t.Source, t.Destination, CurrencyTag, FormatFare(t.Fare), len(t.FreeSeats))
}

// FormatFare renders a fare without trailing zeros (1500, not 1500.00).
func FormatFare(fare float64) string {
	return strconv.FormatFloat(fare, 'f', -1, 64)
}

type TrainRequest struct {
	Number      string  `json:"number" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Capacity    int     `json:"capacity" binding:"required,gt=0"`
	Fare        float64 `json:"fare" binding:"required,gt=0"`
}
