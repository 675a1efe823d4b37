package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"train-ticketing/internal/logger"
	"train-ticketing/internal/models"
)

func TestMockProducerPublishesWithoutBroker(t *testing.T) {
	log := logger.NewLogger()
	producer, err := NewProducer(nil, true, log)
	require.NoError(t, err)
	defer producer.Close()

	event := &models.BookingEvent{
		Type:     "booking.created",
		TicketID: "TICKET1234",
		Booking: &models.Booking{
			TicketID:      "TICKET1234",
			PassengerName: "Alice",
			TrainNumber:   "001",
			TrainName:     "Express 101",
			SeatNumber:    1,
			Fare:          1500,
			BookedAt:      time.Now(),
		},
		Timestamp: time.Now(),
	}

	assert.NoError(t, producer.PublishBookingEvent(event))
}

func TestGetTopicForEvent(t *testing.T) {
	log := logger.NewLogger()
	producer, err := NewProducer(nil, true, log)
	require.NoError(t, err)
	defer producer.Close()

	assert.Equal(t, "booking-created", producer.getTopicForEvent("booking.created"))
	assert.Equal(t, "booking-cancelled", producer.getTopicForEvent("booking.cancelled"))
	assert.Equal(t, "booking-events", producer.getTopicForEvent("booking.unknown"))
}

// fakeSession records marked messages so the claim loop can be driven
// without a broker.
type fakeSession struct {
	marked []*sarama.ConsumerMessage
}

func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "test-member" }
func (s *fakeSession) GenerationID() int32                      { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Context() context.Context                 { return context.Background() }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	s.marked = append(s.marked, msg)
}

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Topic() string                            { return "train.created" }
func (c *fakeClaim) Partition() int32                         { return 0 }
func (c *fakeClaim) InitialOffset() int64                     { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64               { return 0 }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func TestCatalogConsumerHandlesTrainEvents(t *testing.T) {
	event := models.TrainEvent{
		Number:      "003",
		Name:        "Lake Shuttle",
		Source:      "Kisumu",
		Destination: "Nakuru",
		Capacity:    40,
		Fare:        800,
		CreatedAt:   time.Now(),
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 2)}
	claim.messages <- &sarama.ConsumerMessage{Topic: "train.created", Value: payload}
	close(claim.messages)

	var received []*models.TrainEvent
	handler := &catalogConsumerHandler{handler: func(e *models.TrainEvent) error {
		received = append(received, e)
		return nil
	}}

	session := &fakeSession{}
	require.NoError(t, handler.ConsumeClaim(session, claim))

	require.Len(t, received, 1)
	assert.Equal(t, "003", received[0].Number)
	assert.Len(t, session.marked, 1)
}

func TestCatalogConsumerSkipsMalformedMessages(t *testing.T) {
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 1)}
	claim.messages <- &sarama.ConsumerMessage{Topic: "train.created", Value: []byte("{not json")}
	close(claim.messages)

	called := false
	handler := &catalogConsumerHandler{handler: func(*models.TrainEvent) error {
		called = true
		return nil
	}}

	session := &fakeSession{}
	require.NoError(t, handler.ConsumeClaim(session, claim))

	assert.False(t, called)
	assert.Empty(t, session.marked)
}
