package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gurnoor/vitalcall/internal/calls"
	"github.com/gurnoor/vitalcall/internal/database"
	"github.com/gurnoor/vitalcall/internal/risk"
	"github.com/gurnoor/vitalcall/internal/summary"
	"github.com/gurnoor/vitalcall/pkg/config"
)

const serviceName = "vitalcall"

// VitalsProvider supplies a patient's readings for a trailing time window,
// ordered ascending by timestamp.
type VitalsProvider interface {
	GetRecentVitals(patientID string, windowHours int) ([]*database.VitalReading, error)
}

// Summarizer generates a validated natural-language summary for a window.
type Summarizer interface {
	Generate(ctx context.Context, patientID string, window []*database.VitalReading, assessment *risk.Assessment) (*summary.Result, error)
}

// CallManager tracks outbound notification calls.
type CallManager interface {
	StartCall(ctx context.Context, summaryText, patientID string) (string, error)
	GetCallStatus(ctx context.Context, callID string) (*calls.Record, error)
	GetSummaryForCall(ctx context.Context, callID string) (string, bool, error)
}

// Server is the HTTP shell around the analysis pipeline.
type Server struct {
	vitals     VitalsProvider
	summarizer Summarizer
	calls      CallManager
	logger     *zap.Logger
}

// New creates a Server over the given collaborators.
func New(vitals VitalsProvider, summarizer Summarizer, callManager CallManager, logger *zap.Logger) *Server {
	return &Server{
		vitals:     vitals,
		summarizer: summarizer,
		calls:      callManager,
		logger:     logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())

	router.GET("/health", s.handleHealth)
	router.GET("/patients/:patient_id/vitals/recent", s.handleRecentVitals)
	router.POST("/call-doctor", s.handleCallDoctor)
	router.GET("/calls/:call_id/status", s.handleCallStatus)
	router.POST("/twilio/voice", s.handleVoiceWebhook)
	router.POST("/twilio/status", s.handleStatusCallback)

	return router
}

// HTTPServer wraps the router in an http.Server with the configured timeouts.
func (s *Server) HTTPServer(cfg config.HTTPConfig) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
