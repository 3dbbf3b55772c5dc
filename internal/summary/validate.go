package summary

import (
	"fmt"
	"strings"
)

// Strict phrase lists for the content-safety check. Matching is exact and
// case-insensitive: a forbidden term embedded in a longer benign phrase
// outside these patterns is allowed. Keep the lists stable; callers assert
// on the reason substrings.
var strictDiagnosisPatterns = []string{
	"diagnosed with",
	"diagnosis of",
	"patient has",
	"patient is suffering",
	"condition is",
}

var strictTreatmentPatterns = []string{
	"recommend treatment",
	"prescribe",
	"administer",
	"should be given",
	"requires medication",
}

var timeKeywords = []string{"hour", "time", "period", "window", "monitoring"}

var riskKeywords = []string{"risk", "low", "moderate", "high", "normal", "concerning"}

// Validate checks a generated summary against length, content-safety and
// completeness constraints, in fixed order with short-circuit. Returns
// (true, "") when valid, otherwise (false, reason) with a distinguishable
// reason per failure.
func Validate(summaryText, patientID string) (bool, string) {
	if summaryText == "" {
		return false, "summary is empty"
	}

	wordCount := CountWords(summaryText)
	if wordCount < minSummaryWords {
		return false, fmt.Sprintf("summary too short (%d words, minimum %d)", wordCount, minSummaryWords)
	}
	if wordCount > maxSummaryWordsBuffer {
		return false, fmt.Sprintf("summary too long (%d words, maximum %d)", wordCount, maxSummaryWordsBuffer)
	}

	if !strings.Contains(strings.ToUpper(summaryText), strings.ToUpper(patientID)) {
		return false, fmt.Sprintf("summary does not reference patient %s", patientID)
	}

	summaryLower := strings.ToLower(summaryText)

	for _, pattern := range strictDiagnosisPatterns {
		if strings.Contains(summaryLower, pattern) {
			return false, fmt.Sprintf("contains diagnostic language: '%s'", pattern)
		}
	}

	for _, pattern := range strictTreatmentPatterns {
		if strings.Contains(summaryLower, pattern) {
			return false, fmt.Sprintf("contains treatment recommendation: '%s'", pattern)
		}
	}

	if !containsAny(summaryLower, timeKeywords) {
		return false, "summary does not mention time window"
	}

	if !containsAny(summaryLower, riskKeywords) {
		return false, "summary does not mention risk assessment"
	}

	return true, ""
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
