package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"train-ticketing/internal/models"
	"train-ticketing/internal/services"
	"train-ticketing/internal/utils"
)

type BookingHandler struct {
	bookingService *services.BookingService
}

func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

func (h *BookingHandler) BookTicket(c *gin.Context) {
	var req models.BookingRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	booking, err := h.bookingService.BookTicket(c.Request.Context(), req.PassengerName, req.TrainNumber)
	if err != nil {
		switch err {
		case services.ErrTrainNotFound:
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Train not found", err.Error()))
		case services.ErrNoSeatsAvailable:
			c.JSON(http.StatusConflict, utils.ErrorResponse("No seats available", err.Error()))
		case services.ErrInvalidInput:
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Please fill in all fields", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Booking failed", err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Booking successful", gin.H{
		"booking": booking,
		"details": booking.Details(),
	}))
}

func (h *BookingHandler) CancelTicket(c *gin.Context) {
	ticketID := c.Param("id")
	if ticketID == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Ticket ID is required", ""))
		return
	}

	if err := h.bookingService.CancelTicket(c.Request.Context(), ticketID); err != nil {
		switch err {
		case services.ErrTicketNotFound:
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Ticket ID not found", err.Error()))
		case services.ErrTrainNotFound:
			c.JSON(http.StatusConflict, utils.ErrorResponse("Cannot return seat: train missing from registry", err.Error()))
		case services.ErrInvalidInput:
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Ticket ID is required", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Cancellation failed", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Ticket successfully canceled", nil))
}

func (h *BookingHandler) GetTicket(c *gin.Context) {
	ticketID := c.Param("id")
	if ticketID == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Ticket ID is required", ""))
		return
	}

	booking, err := h.bookingService.GetTicket(c.Request.Context(), ticketID)
	if err != nil {
		if err == services.ErrTicketNotFound {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Ticket not found", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to retrieve ticket", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Ticket retrieved", gin.H{
		"booking": booking,
		"details": booking.Details(),
	}))
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.bookingService.ListBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list bookings", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Bookings retrieved", gin.H{
		"count":    len(bookings),
		"bookings": bookings,
	}))
}

// ExportBookings returns the flat text report, one booking per line.
func (h *BookingHandler) ExportBookings(c *gin.Context) {
	report, err := h.bookingService.ExportBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Export failed", err.Error()))
		return
	}

	c.String(http.StatusOK, report)
}
