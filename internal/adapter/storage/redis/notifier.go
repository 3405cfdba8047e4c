package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"brokerwallet/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const (
	withdrawalChannel = "events:withdrawals"
	accountChannel    = "events:accounts"
)

// Notifier implements ports.Notifier on Redis pub/sub. Socket gateways
// subscribe to the two channels and fan events out to connected
// clients; this process never tracks connections itself.
type Notifier struct {
	client *goredis.Client
}

// NewNotifier creates a Redis-backed notifier.
func NewNotifier(client *goredis.Client) *Notifier {
	return &Notifier{client: client}
}

// PublishWithdrawal pushes a withdrawal state change.
func (n *Notifier) PublishWithdrawal(ctx context.Context, ev ports.WithdrawalEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal withdrawal event: %w", err)
	}
	if err := n.client.Publish(ctx, withdrawalChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish withdrawal event: %w", err)
	}
	return nil
}

// PublishAccount pushes an account hold/unhold change.
func (n *Notifier) PublishAccount(ctx context.Context, ev ports.AccountEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal account event: %w", err)
	}
	if err := n.client.Publish(ctx, accountChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish account event: %w", err)
	}
	return nil
}
