package events

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
)

const (
	// Channel é o canal Redis compartilhado pelas instâncias da API
	Channel        = "mediafeed:events"
	defaultTimeout = 5 * time.Second
)

// Connect cria um cliente Redis a partir de uma URL e valida a conexão com ping
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// RedisBroker publica eventos no Redis e repassa ao hub local tudo que chega no canal,
// de modo que clientes conectados a qualquer instância recebem todos os eventos
type RedisBroker struct {
	client  *redis.Client
	channel string
	hub     *Hub
	log     ports.Logger
}

var _ ports.EventPublisher = (*RedisBroker)(nil)

// NewRedisBroker cria o broker sobre um cliente já conectado
func NewRedisBroker(client *redis.Client, hub *Hub, log ports.Logger) *RedisBroker {
	return &RedisBroker{
		client:  client,
		channel: Channel,
		hub:     hub,
		log:     log,
	}
}

func (b *RedisBroker) Publish(ctx context.Context, event ports.FeedEvent) error {
	msg, err := Encode(event)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, b.channel, msg).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Run assina o canal e repassa as mensagens ao hub até o contexto ser cancelado
func (b *RedisBroker) Run(ctx context.Context) {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	ch := sub.Channel()
	b.log.Info("feed event relay subscribed", "channel", b.channel)

	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			if err := b.hub.Broadcast(ctx, []byte(m.Payload)); err != nil {
				b.log.Warn("failed to relay feed event", "error", err)
			}
		}
	}
}
