package calls

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/gurnoor/vitalcall/pkg/config"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// ErrMissingTwilioConfig is a configuration error raised when the
// transport is constructed with incomplete credentials.
var ErrMissingTwilioConfig = errors.New(
	"missing required environment variables: TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, TWILIO_CALLER_ID, PROVIDER_PHONE_NUMBER")

type twilioCallResponse struct {
	SID      string  `json:"sid"`
	Status   string  `json:"status"`
	Duration *string `json:"duration"`
}

// TwilioTransport places calls through the Twilio programmable voice API.
type TwilioTransport struct {
	httpClient *resty.Client
	accountSID string
	logger     *zap.Logger
}

// NewTwilioTransport builds the transport, validating credentials up
// front.
func NewTwilioTransport(cfg config.TwilioConfig, logger *zap.Logger) (*TwilioTransport, error) {
	if !cfg.Configured() {
		return nil, ErrMissingTwilioConfig
	}

	client := resty.New().
		SetBaseURL(twilioAPIBase).
		SetBasicAuth(cfg.AccountSID, cfg.AuthToken)

	return &TwilioTransport{
		httpClient: client,
		accountSID: cfg.AccountSID,
		logger:     logger,
	}, nil
}

// Place initiates an outbound call that fetches its voice content from
// voiceURL when answered and reports terminal status to statusURL.
func (t *TwilioTransport) Place(ctx context.Context, to, from, voiceURL, statusURL string) (*PlacedCall, error) {
	var response twilioCallResponse
	resp, err := t.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"To":                   to,
			"From":                 from,
			"Url":                  voiceURL,
			"Method":               "POST",
			"StatusCallback":       statusURL,
			"StatusCallbackEvent":  "completed",
			"StatusCallbackMethod": "POST",
		}).
		SetResult(&response).
		Post(fmt.Sprintf("/Accounts/%s/Calls.json", t.accountSID))

	if err != nil {
		return nil, fmt.Errorf("twilio api call failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("twilio api returned status %d: %s", resp.StatusCode(), resp.String())
	}

	t.logger.Info("outbound call placed",
		zap.String("call_sid", response.SID),
		zap.String("provider_status", response.Status),
	)

	return &PlacedCall{ProviderSID: response.SID, Status: response.Status}, nil
}

// FetchStatus queries the provider for the latest call state.
func (t *TwilioTransport) FetchStatus(ctx context.Context, providerSID string) (*ProviderStatus, error) {
	var response twilioCallResponse
	resp, err := t.httpClient.R().
		SetContext(ctx).
		SetResult(&response).
		Get(fmt.Sprintf("/Accounts/%s/Calls/%s.json", t.accountSID, providerSID))

	if err != nil {
		return nil, fmt.Errorf("twilio status fetch failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("twilio api returned status %d: %s", resp.StatusCode(), resp.String())
	}

	status := &ProviderStatus{Status: response.Status}
	if response.Duration != nil {
		if seconds, err := strconv.Atoi(*response.Duration); err == nil {
			status.DurationSeconds = &seconds
		}
	}

	return status, nil
}
