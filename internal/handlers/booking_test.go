package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"train-ticketing/internal/kafka"
	"train-ticketing/internal/logger"
	"train-ticketing/internal/models"
	"train-ticketing/internal/services"
	"train-ticketing/internal/storage"
	"train-ticketing/internal/utils"
)

func newTestRouter(t *testing.T) (*gin.Engine, *storage.InMemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewLogger()
	producer, err := kafka.NewProducer(nil, true, log)
	require.NoError(t, err)

	store := storage.NewInMemoryStore()
	registryService := services.NewRegistryService(store, log)
	bookingService := services.NewBookingService(store, producer, log, nil)

	bookingHandler := NewBookingHandler(bookingService)
	trainHandler := NewTrainHandler(registryService, bookingService)

	router := gin.New()
	v1 := router.Group("/api/v1")
	{
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", bookingHandler.BookTicket)
			bookings.GET("", bookingHandler.ListBookings)
			bookings.GET("/export", bookingHandler.ExportBookings)
			bookings.GET("/:id", bookingHandler.GetTicket)
			bookings.DELETE("/:id", bookingHandler.CancelTicket)
		}
		trains := v1.Group("/trains")
		{
			trains.POST("", trainHandler.RegisterTrain)
			trains.GET("", trainHandler.ListTrains)
			trains.GET("/:number", trainHandler.GetTrain)
			trains.GET("/:number/seats", trainHandler.AvailableSeats)
		}
	}

	return router, store
}

func seedTrain(t *testing.T, store *storage.InMemoryStore, number string, capacity int) {
	t.Helper()
	require.NoError(t, store.AddTrain(models.NewTrain(number, "Express 101", "Nairobi", "Mombasa", capacity, 1500)))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBookTicketEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	seedTrain(t, store, "001", 2)

	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", models.BookingRequest{
		PassengerName: "Alice",
		TrainNumber:   "001",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "Booking successful", resp.Message)
}

func TestBookTicketEndpointUnknownTrain(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", models.BookingRequest{
		PassengerName: "Alice",
		TrainNumber:   "404",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
}

func TestBookTicketEndpointNoSeats(t *testing.T) {
	router, store := newTestRouter(t)
	seedTrain(t, store, "001", 1)

	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", models.BookingRequest{
		PassengerName: "Alice", TrainNumber: "001",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/bookings", models.BookingRequest{
		PassengerName: "Bob", TrainNumber: "001",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookTicketEndpointRejectsMissingFields(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", gin.H{"passenger_name": "Alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelTicketEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	seedTrain(t, store, "001", 2)

	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", models.BookingRequest{
		PassengerName: "Alice", TrainNumber: "001",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	bookings, err := store.ListBookings()
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	ticketID := bookings[0].TicketID

	w = doJSON(t, router, http.MethodDelete, "/api/v1/bookings/"+ticketID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Second cancel reports not-found
	w = doJSON(t, router, http.MethodDelete, "/api/v1/bookings/"+ticketID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTicketEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	seedTrain(t, store, "001", 2)

	w := doJSON(t, router, http.MethodPost, "/api/v1/bookings", models.BookingRequest{
		PassengerName: "Alice", TrainNumber: "001",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	bookings, err := store.ListBookings()
	require.NoError(t, err)
	ticketID := bookings[0].TicketID

	w = doJSON(t, router, http.MethodGet, "/api/v1/bookings/"+ticketID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ticket ID: "+ticketID)

	w = doJSON(t, router, http.MethodGet, "/api/v1/bookings/TICKET0000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	seedTrain(t, store, "001", 2)

	w := doJSON(t, router, http.MethodGet, "/api/v1/bookings/export", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No bookings to export.", w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/bookings", models.BookingRequest{
		PassengerName: "Alice", TrainNumber: "001",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/bookings/export", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), " - Alice - Express 101 - Seat 1 - Ksh1500")
}

func TestRegisterAndListTrainsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/trains", models.TrainRequest{
		Number: "001", Name: "Express 101", Source: "Nairobi", Destination: "Mombasa", Capacity: 50, Fare: 1500,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/trains", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	summaries, ok := data["summaries"].([]interface{})
	require.True(t, ok)
	require.Len(t, summaries, 1)
	assert.Equal(t, "001 - Express 101 | Nairobi -> Mombasa | Fare: Ksh1500 | Available Seats: 50", summaries[0])
}

func TestAvailableSeatsEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	seedTrain(t, store, "001", 3)

	w := doJSON(t, router, http.MethodGet, "/api/v1/trains/001/seats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"seats":[1,2,3]`)

	w = doJSON(t, router, http.MethodGet, "/api/v1/trains/404/seats", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
