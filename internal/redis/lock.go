package redis

import (
	"context"

	"github.com/go-redis/redis/v8"
)

type Redis struct {
	Client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{Client: client}
}

const reservationPrefix = "ticket_id:"

// ReserveTicketID claims a ticket id across every instance sharing this
// Redis. Returns false when another instance already holds the id, in which
// case the caller re-rolls. No TTL: the claim lives as long as the booking
// and is released on cancellation.
func (r *Redis) ReserveTicketID(ticketID string) (bool, error) {
	key := reservationPrefix + ticketID
	return r.Client.SetNX(context.Background(), key, 1, 0).Result()
}

// ReleaseTicketID frees a claimed id so a future booking may mint it again.
func (r *Redis) ReleaseTicketID(ticketID string) error {
	_, err := r.Client.Del(context.Background(), reservationPrefix+ticketID).Result()
	if err == redis.Nil {
		return nil
	}
	return err
}
