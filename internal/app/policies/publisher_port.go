package policies

import "context"

// Publisher delivers a relayed message to the reservations backend.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}
