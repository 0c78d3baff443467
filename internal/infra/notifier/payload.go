package notifier

import (
	"context"
	"encoding/json"
)

type slackPayload struct {
	Text string `json:"text"`
}

func marshalPayload(message string) ([]byte, error) {
	return json.Marshal(slackPayload{Text: message})
}

type deliveryKeyCtxKey struct{}

// WithDeliveryKey attaches an idempotency key for the message sent with ctx.
// Sinks that support deduplication use it; the others ignore it.
func WithDeliveryKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, deliveryKeyCtxKey{}, key)
}

func DeliveryKeyFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(deliveryKeyCtxKey{}).(string); ok {
		return v
	}
	return ""
}
