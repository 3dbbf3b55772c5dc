package calls

import (
	"context"
)

// PlacedCall is the provider's acknowledgment of a new outbound call.
type PlacedCall struct {
	ProviderSID string
	Status      string
}

// ProviderStatus is the provider's current view of an existing call.
// DurationSeconds is nil until the provider reports one.
type ProviderStatus struct {
	Status          string
	DurationSeconds *int
}

// Transport places outbound voice calls and answers status queries.
// Concrete transports are injected; the tracker never references an SDK
// or HTTP client directly.
type Transport interface {
	Place(ctx context.Context, to, from, voiceURL, statusURL string) (*PlacedCall, error)
	FetchStatus(ctx context.Context, providerSID string) (*ProviderStatus, error)
}
