package summary

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gurnoor/vitalcall/internal/database"
	"github.com/gurnoor/vitalcall/internal/risk"
)

const (
	maxSummaryWords       = 200
	minSummaryWords       = 50
	maxSummaryWordsBuffer = 250

	retryMaxAttempts   = 3
	retryBackoffFactor = 2.0
)

// Result is one successful summary generation. Immutable after creation.
type Result struct {
	SummaryText      string    `json:"summary_text"`
	WordCount        int       `json:"word_count"`
	GeneratedAt      time.Time `json:"generated_at"`
	ModelUsed        string    `json:"model_used"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
}

// Service orchestrates summary generation: prompt construction, the
// retry-governed transport call, and output validation.
type Service struct {
	completer   Completer
	maxTokens   int
	temperature float64
	sleep       func(time.Duration)
	logger      *zap.Logger
}

// NewService wires a summarization transport into the pipeline.
func NewService(completer Completer, maxTokens int, temperature float64, logger *zap.Logger) *Service {
	return &Service{
		completer:   completer,
		maxTokens:   maxTokens,
		temperature: temperature,
		sleep:       time.Sleep,
		logger:      logger,
	}
}

// Generate runs the full workflow for one patient window: format vitals,
// build prompts, invoke the model with retries, validate the output.
func (s *Service) Generate(ctx context.Context, patientID string, window []*database.VitalReading, assessment *risk.Assessment) (*Result, error) {
	if patientID == "" {
		return nil, ErrEmptyPatientID
	}
	if len(window) == 0 {
		return nil, ErrEmptyVitals
	}
	if assessment == nil {
		return nil, ErrMissingAssessment
	}

	data, err := formatVitals(window, assessment)
	if err != nil {
		return nil, err
	}

	system, user := buildPrompts(patientID, data)

	completion, err := s.invoke(ctx, system, user)
	if err != nil {
		return nil, err
	}

	if valid, reason := Validate(completion.Text, patientID); !valid {
		return nil, &ValidationError{Reason: reason}
	}

	return &Result{
		SummaryText:      completion.Text,
		WordCount:        CountWords(completion.Text),
		GeneratedAt:      time.Now().UTC(),
		ModelUsed:        completion.Model,
		PromptTokens:     completion.InputTokens,
		CompletionTokens: completion.OutputTokens,
	}, nil
}

// invoke calls the transport with up to retryMaxAttempts attempts and
// exponential backoff between them. Authentication failures are fatal
// immediately; every other failure is treated as transient until the
// attempts are exhausted.
func (s *Service) invoke(ctx context.Context, systemPrompt, userPrompt string) (*Completion, error) {
	var lastErr error
	for attempt := 0; attempt < retryMaxAttempts; attempt++ {
		completion, err := s.completer.Complete(ctx, systemPrompt, userPrompt, s.maxTokens, s.temperature)
		if err == nil {
			return completion, nil
		}
		lastErr = err

		if isAuthError(err) {
			return nil, &APIError{Err: fmt.Errorf("authentication failed: %w", err)}
		}

		if attempt < retryMaxAttempts-1 {
			wait := time.Duration(math.Pow(retryBackoffFactor, float64(attempt)) * float64(time.Second))
			s.logger.Warn("summarization call failed, retrying",
				zap.Int("attempt", attempt+1),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
			s.sleep(wait)
		}
	}

	return nil, &APIError{Err: fmt.Errorf("call failed after %d attempts: %w", retryMaxAttempts, lastErr)}
}

func isAuthError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "401") || strings.Contains(msg, "authentication")
}
