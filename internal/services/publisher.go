package services

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"mindmate-backend/internal/models"
)

// UpdatePublisher pushes live updates toward connected clients. The websocket
// hub subscribes per identity on the other end.
type UpdatePublisher interface {
	Publish(ctx context.Context, identity string, msg models.WSMessage)
}

// UpdateChannel names the pub/sub channel for an identity.
func UpdateChannel(identity string) string {
	return "wellness_updates:" + identity
}

type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, identity string, msg models.WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	p.client.Publish(ctx, UpdateChannel(identity), string(data))
}

// NopPublisher drops updates; used in tests.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, models.WSMessage) {}
