package calls

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// StubTransport simulates a call provider for environments without Twilio
// credentials. Calls are acknowledged immediately and complete with a
// fixed duration on the first status fetch. No phone call is made.
type StubTransport struct{}

// NewStubTransport creates the simulated transport.
func NewStubTransport() *StubTransport {
	return &StubTransport{}
}

func (t *StubTransport) Place(_ context.Context, _, _, _, _ string) (*PlacedCall, error) {
	sid := "stub_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return &PlacedCall{ProviderSID: sid, Status: "queued"}, nil
}

func (t *StubTransport) FetchStatus(_ context.Context, _ string) (*ProviderStatus, error) {
	duration := 120
	return &ProviderStatus{Status: "completed", DurationSeconds: &duration}, nil
}
