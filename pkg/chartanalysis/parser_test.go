package chartanalysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Heuristic(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		rec        string
		confidence int
		patterns   []string
	}{
		{
			name:       "long with confidence and patterns",
			text:       "A Double Bottom and a bull flag suggest going LONG. Confidence: 72%",
			rec:        Long,
			confidence: 72,
			patterns:   []string{"Double Bottom", "Flag"},
		},
		{
			name:       "short only",
			text:       "Price broke the rising wedge; consider a short. confidence 40",
			rec:        Short,
			confidence: 40,
			patterns:   []string{"Wedge"},
		},
		{
			name:       "long wins over short",
			text:       "Short-term weakness but long-term strength.",
			rec:        Long,
			confidence: 0,
			patterns:   []string{},
		},
		{
			name:       "nothing recognisable",
			text:       "Sideways action, no clear edge.",
			rec:        Wait,
			confidence: 0,
			patterns:   []string{},
		},
		{
			name:       "confidence clamped",
			text:       "Wait. Confidence: 250%",
			rec:        Wait,
			confidence: 100,
			patterns:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Parse(tt.text)
			assert.Equal(t, tt.rec, r.Recommendation)
			assert.Equal(t, tt.confidence, r.Confidence)
			assert.Equal(t, tt.patterns, r.Patterns)
			assert.Equal(t, tt.text, r.Analysis)
		})
	}
}

func TestParse_JSON(t *testing.T) {
	text := "```json\n{\"recommendation\":\"short\",\"confidence\":65,\"analysis\":\"Bearish channel\",\"patterns\":[\"Channel\"]}\n```"

	r := Parse(text)

	assert.Equal(t, Short, r.Recommendation)
	assert.Equal(t, 65, r.Confidence)
	assert.Equal(t, "Bearish channel", r.Analysis)
	assert.Equal(t, []string{"Channel"}, r.Patterns)
}

func TestParse_JSONWithUnknownRecommendationFallsBack(t *testing.T) {
	text := `{"recommendation":"HOLD","confidence":50,"analysis":"go long"}`

	r := Parse(text)

	assert.Equal(t, Long, r.Recommendation)
	assert.Equal(t, text, r.Analysis)
}

func TestParse_OversizedConfidenceClampsTo100(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"heuristic", "Go long. Confidence: 99999999999999999999%"},
		{"json", `{"recommendation":"LONG","confidence":1e30,"analysis":"Strong trend"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Parse(tt.text)

			assert.Equal(t, Long, r.Recommendation)
			assert.Equal(t, 100, r.Confidence)
		})
	}
}

func TestUserPrompt(t *testing.T) {
	assert.Equal(t,
		"Please analyze these BTCUSD charts across different timeframes (1h, 4h) and provide trading recommendations.",
		UserPrompt("BTCUSD", []string{"1h", "4h"}))
}
