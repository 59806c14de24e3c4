// Package chartanalysis turns a vision model's free-form answer about trading
// charts into a structured recommendation.
package chartanalysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const SystemPrompt = `You are an expert technical analyst reviewing trading chart images. Analyze the provided chart images together to determine market trends, patterns, and trading opportunities. Focus on:

1. Overall trend direction and strength
2. Key reversal patterns
3. Support and resistance levels
4. Trading recommendation (LONG, SHORT, or WAIT)

Provide a structured analysis with a clear recommendation and confidence level.`

const (
	Long  = "LONG"
	Short = "SHORT"
	Wait  = "WAIT"
)

// PatternKeywords are matched case-insensitively against the answer text.
var PatternKeywords = []string{
	"Head and Shoulders",
	"Double Top",
	"Double Bottom",
	"Triangle",
	"Flag",
	"Pennant",
	"Channel",
	"Cup and Handle",
	"Wedge",
}

var confidencePattern = regexp.MustCompile(`(?i)confidence[:\s]+(\d+)%?`)

type Result struct {
	Recommendation string   `json:"recommendation"`
	Confidence     int      `json:"confidence"`
	Analysis       string   `json:"analysis"`
	Patterns       []string `json:"patterns"`
}

// UserPrompt is the text part sent with the chart images.
func UserPrompt(symbol string, timeframes []string) string {
	return fmt.Sprintf("Please analyze these %s charts across different timeframes (%s) and provide trading recommendations.",
		symbol, strings.Join(timeframes, ", "))
}

// Parse reads a JSON object when the model produced one and otherwise falls
// back to keyword extraction over the whole text.
func Parse(text string) Result {
	if r, ok := parseJSON(text); ok {
		return r
	}
	return parseHeuristic(text)
}

func parseJSON(text string) (Result, bool) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if !strings.HasPrefix(trimmed, "{") {
		return Result{}, false
	}

	var raw struct {
		Recommendation string   `json:"recommendation"`
		Confidence     *float64 `json:"confidence"`
		Analysis       string   `json:"analysis"`
		Patterns       []string `json:"patterns"`
	}
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return Result{}, false
	}

	rec := strings.ToUpper(strings.TrimSpace(raw.Recommendation))
	if rec != Long && rec != Short && rec != Wait {
		return Result{}, false
	}

	confidence := 0
	if raw.Confidence != nil {
		confidence = clampFloat(*raw.Confidence)
	}
	patterns := raw.Patterns
	if patterns == nil {
		patterns = []string{}
	}
	analysis := raw.Analysis
	if analysis == "" {
		analysis = text
	}

	return Result{
		Recommendation: rec,
		Confidence:     confidence,
		Analysis:       analysis,
		Patterns:       patterns,
	}, true
}

func parseHeuristic(text string) Result {
	lower := strings.ToLower(text)

	patterns := []string{}
	for _, p := range PatternKeywords {
		if strings.Contains(lower, strings.ToLower(p)) {
			patterns = append(patterns, p)
		}
	}

	rec := Wait
	if strings.Contains(lower, "long") {
		rec = Long
	} else if strings.Contains(lower, "short") {
		rec = Short
	}

	confidence := 0
	if m := confidencePattern.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		switch {
		case err == nil:
			confidence = clamp(n)
		case errors.Is(err, strconv.ErrRange):
			// only digits match, so out of range means too large
			confidence = 100
		}
	}

	return Result{
		Recommendation: rec,
		Confidence:     confidence,
		Analysis:       text,
		Patterns:       patterns,
	}
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// clampFloat clamps before converting, so huge values cannot overflow int.
func clampFloat(f float64) int {
	if f <= 0 {
		return 0
	}
	if f >= 100 {
		return 100
	}
	return int(f)
}
