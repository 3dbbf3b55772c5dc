package calls

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gurnoor/vitalcall/pkg/config"
)

// Service tracks outbound notification calls through their lifecycle:
// creation, provider-driven status refresh, and summary payload lookup
// for the answer webhook.
type Service struct {
	store          Store
	transport      Transport
	to             string
	from           string
	webhookBaseURL string
	logger         *zap.Logger
}

// NewService wires a record store and a call transport together.
func NewService(store Store, transport Transport, cfg config.TwilioConfig, logger *zap.Logger) *Service {
	return &Service{
		store:          store,
		transport:      transport,
		to:             cfg.ProviderNumber,
		from:           cfg.CallerID,
		webhookBaseURL: cfg.WebhookBaseURL,
		logger:         logger,
	}
}

// StartCall places an outbound call that delivers the summary when
// answered, and records it. The returned call ID is globally unique.
func (s *Service) StartCall(ctx context.Context, summaryText, patientID string) (string, error) {
	callID := newCallID()

	voiceURL := fmt.Sprintf("%s/twilio/voice?call_id=%s", s.webhookBaseURL, callID)
	statusURL := s.webhookBaseURL + "/twilio/status"

	placed, err := s.transport.Place(ctx, s.to, s.from, voiceURL, statusURL)
	if err != nil {
		return "", fmt.Errorf("failed to place call: %w", err)
	}

	record := &Record{
		CallID:      callID,
		ProviderSID: placed.ProviderSID,
		PatientID:   patientID,
		SummaryText: summaryText,
		Status:      MapProviderStatus(placed.Status),
		To:          s.to,
		From:        s.from,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.Put(ctx, record); err != nil {
		return "", fmt.Errorf("failed to store call record: %w", err)
	}

	s.logger.Info("call created",
		zap.String("call_id", callID),
		zap.String("call_sid", placed.ProviderSID),
		zap.String("patient_id", patientID),
		zap.String("status", record.Status),
	)

	return callID, nil
}

// GetCallStatus returns the record for a call, refreshing it from the
// provider first. If the provider query fails the last known local state
// is returned unchanged; a transport failure during refresh is never a
// state transition. Returns nil when the call ID is unknown.
func (s *Service) GetCallStatus(ctx context.Context, callID string) (*Record, error) {
	record, ok, err := s.store.Get(ctx, callID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	providerStatus, err := s.transport.FetchStatus(ctx, record.ProviderSID)
	if err != nil {
		s.logger.Warn("provider status refresh failed, returning stored state",
			zap.String("call_id", callID),
			zap.Error(err),
		)
		return record, nil
	}

	updated, _, err := s.store.Update(ctx, callID, func(r *Record) {
		r.Status = MapProviderStatus(providerStatus.Status)
		if providerStatus.DurationSeconds != nil {
			r.DurationSeconds = providerStatus.DurationSeconds
		}
		if isTerminalProviderStatus(providerStatus.Status) && r.CompletedAt == nil {
			now := time.Now().UTC()
			r.CompletedAt = &now
		}
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// GetSummaryForCall returns the summary text stored for a call, used by
// the answer webhook to render spoken content.
func (s *Service) GetSummaryForCall(ctx context.Context, callID string) (string, bool, error) {
	record, ok, err := s.store.Get(ctx, callID)
	if err != nil || !ok {
		return "", ok, err
	}
	return record.SummaryText, true, nil
}

func newCallID() string {
	return "call_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
