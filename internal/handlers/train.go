package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"train-ticketing/internal/models"
	"train-ticketing/internal/services"
	"train-ticketing/internal/utils"
)

type TrainHandler struct {
	registryService *services.RegistryService
	bookingService  *services.BookingService
}

func NewTrainHandler(registryService *services.RegistryService, bookingService *services.BookingService) *TrainHandler {
	return &TrainHandler{
		registryService: registryService,
		bookingService:  bookingService,
	}
}

func (h *TrainHandler) RegisterTrain(c *gin.Context) {
	var req models.TrainRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	train, err := h.registryService.RegisterTrain(c.Request.Context(), &req)
	if err != nil {
		if err == services.ErrInvalidInput {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Please fill in all fields", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to register train", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Train registered", train))
}

func (h *TrainHandler) ListTrains(c *gin.Context) {
	trains, err := h.registryService.ListTrains(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list trains", err.Error()))
		return
	}

	summaries := make([]string, len(trains))
	for i, train := range trains {
		summaries[i] = train.Summary()
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Trains retrieved", gin.H{
		"count":     len(trains),
		"trains":    trains,
		"summaries": summaries,
	}))
}

func (h *TrainHandler) GetTrain(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Train number is required", ""))
		return
	}

	train, err := h.registryService.GetTrain(c.Request.Context(), number)
	if err != nil {
		if err == services.ErrTrainNotFound {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Train not found", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to retrieve train", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Train retrieved", train))
}

func (h *TrainHandler) AvailableSeats(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Train number is required", ""))
		return
	}

	seats, err := h.bookingService.AvailableSeats(c.Request.Context(), number)
	if err != nil {
		if err == services.ErrTrainNotFound {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Train not found", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to retrieve seats", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Available seats retrieved", gin.H{
		"train_number": number,
		"count":        len(seats),
		"seats":        seats,
	}))
}
