package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gurnoor/vitalcall/internal/risk"
	"github.com/gurnoor/vitalcall/internal/summary"
)

const (
	defaultWindowHours = 2
	minWindowHours     = 1
	maxWindowHours     = 24

	summaryPreviewLength = 150
)

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success":     false,
		"error":       message,
		"status_code": statusCode,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRecentVitals(c *gin.Context) {
	patientID := c.Param("patient_id")

	hours := defaultWindowHours
	if raw := c.Query("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "hours must be between 1 and 24")
			return
		}
		hours = parsed
	}
	if hours < minWindowHours || hours > maxWindowHours {
		errorResponse(c, http.StatusBadRequest, "hours must be between 1 and 24")
		return
	}

	vitals, err := s.vitals.GetRecentVitals(patientID, hours)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", err))
		return
	}

	if len(vitals) == 0 {
		errorResponse(c, http.StatusNotFound,
			fmt.Sprintf("no vitals found for patient %s in last %d hours", patientID, hours))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"patient_id":        patientID,
		"time_window_hours": hours,
		"vitals_count":      len(vitals),
		"vitals":            vitals,
	})
}

type callDoctorRequest struct {
	PatientID string `json:"patient_id"`
	Hours     *int   `json:"hours"`
}

// handleCallDoctor runs the full workflow: fetch vitals, assess risk,
// generate summary, place the outbound call.
func (s *Server) handleCallDoctor(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		errorResponse(c, http.StatusBadRequest, "request body is required")
		return
	}

	var req callDoctorRequest
	if err := json.Unmarshal(body, &req); err != nil {
		errorResponse(c, http.StatusBadRequest, "hours must be an integer between 1 and 24")
		return
	}

	if req.PatientID == "" {
		errorResponse(c, http.StatusBadRequest, "patient_id is required")
		return
	}

	hours := defaultWindowHours
	if req.Hours != nil {
		hours = *req.Hours
	}
	if hours < minWindowHours || hours > maxWindowHours {
		errorResponse(c, http.StatusBadRequest, "hours must be an integer between 1 and 24")
		return
	}

	window, err := s.vitals.GetRecentVitals(req.PatientID, hours)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", err))
		return
	}
	if len(window) == 0 {
		errorResponse(c, http.StatusNotFound,
			fmt.Sprintf("no vitals found for patient %s in last %d hours", req.PatientID, hours))
		return
	}

	assessment := risk.Analyze(window)

	result, err := s.summarizer.Generate(c.Request.Context(), req.PatientID, window, assessment)
	if err != nil {
		var apiErr *summary.APIError
		if errors.As(err, &apiErr) {
			errorResponse(c, http.StatusInternalServerError, fmt.Sprintf("llm api error: %v", err))
			return
		}
		errorResponse(c, http.StatusInternalServerError, fmt.Sprintf("summary generation failed: %v", err))
		return
	}

	callID, err := s.calls.StartCall(c.Request.Context(), result.SummaryText, req.PatientID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         fmt.Sprintf("call initiated successfully for patient %s", req.PatientID),
		"call_id":         callID,
		"patient_id":      req.PatientID,
		"risk_level":      assessment.RiskLevel,
		"summary_preview": preview(result.SummaryText),
		"vitals_analyzed": len(window),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCallStatus(c *gin.Context) {
	callID := c.Param("call_id")

	record, err := s.calls.GetCallStatus(c.Request.Context(), callID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", err))
		return
	}
	if record == nil {
		errorResponse(c, http.StatusNotFound, fmt.Sprintf("call %s not found", callID))
		return
	}

	// summary text excluded for brevity
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"call_id":          record.CallID,
		"status":           record.Status,
		"patient_id":       record.PatientID,
		"created_at":       record.CreatedAt,
		"completed_at":     record.CompletedAt,
		"duration_seconds": record.DurationSeconds,
	})
}

// handleVoiceWebhook is called by the provider when the call is answered.
// Always answers 200 with spoken content, even on errors, so the call
// degrades to an audible error instead of provider-side failure handling.
func (s *Server) handleVoiceWebhook(c *gin.Context) {
	callID := c.Query("call_id")
	if callID == "" {
		c.Data(http.StatusOK, "text/xml", []byte(errorTwiML("Error: missing call identifier.")))
		return
	}

	summaryText, found, err := s.calls.GetSummaryForCall(c.Request.Context(), callID)
	if err != nil {
		s.logger.Error("summary lookup failed", zap.String("call_id", callID), zap.Error(err))
		c.Data(http.StatusOK, "text/xml", []byte(errorTwiML("An error occurred.")))
		return
	}
	if !found {
		c.Data(http.StatusOK, "text/xml", []byte(errorTwiML("Error: call data not found.")))
		return
	}

	c.Data(http.StatusOK, "text/xml", []byte(voiceTwiML(summaryText)))
}

// handleStatusCallback receives asynchronous status updates from the
// provider. Updates arrive again on the next status poll, so this only
// logs.
func (s *Server) handleStatusCallback(c *gin.Context) {
	s.logger.Info("provider status callback",
		zap.String("call_sid", c.PostForm("CallSid")),
		zap.String("call_status", c.PostForm("CallStatus")),
	)
	c.Status(http.StatusOK)
}

func preview(text string) string {
	if len(text) > summaryPreviewLength {
		return text[:summaryPreviewLength] + "..."
	}
	return text
}
