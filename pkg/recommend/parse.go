package recommend

import (
	"encoding/json"
	"strings"

	"github.com/cropwise/cropwise/pkg/models"
)

// Placeholder values used when the model reply cannot be used.
const (
	FallbackCropName        = "Rice"
	FallbackConfidence      = 0.8
	FallbackEstimatedYield  = 2500
	FallbackEstimatedProfit = 45000
)

// ParseRecommendation interprets a raw model reply. The reply may wrap the
// JSON object in a code fence or surrounding prose. A reply with no usable
// crop suggestion is Degraded, never an error.
func ParseRecommendation(raw string) models.Outcome {
	body, ok := extractJSONObject(raw)
	if !ok {
		return degrade(raw)
	}

	var result models.RecommendationResult
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		log.Debugf("model reply is not valid recommendation JSON: %s", err)
		return degrade(raw)
	}

	suggestions := result.Recommendations[:0]
	for _, s := range result.Recommendations {
		if strings.TrimSpace(s.CropName) == "" {
			continue
		}
		s.Confidence = clamp(s.Confidence, 0, 1)
		suggestions = append(suggestions, s)
	}
	if len(suggestions) == 0 {
		return degrade(raw)
	}
	result.Recommendations = suggestions
	result.Degraded = false

	return models.Parsed{Recommendation: &result}
}

// extractJSONObject returns the text between the first '{' and the last '}'.
func extractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

func degrade(raw string) models.Degraded {
	return models.Degraded{
		Recommendation: FallbackRecommendation(raw),
		RawText:        raw,
	}
}

// FallbackRecommendation is a single placeholder suggestion carrying text
// as its reasoning.
func FallbackRecommendation(text string) *models.RecommendationResult {
	return &models.RecommendationResult{
		Recommendations: []models.CropSuggestion{
			fallbackSuggestion(FallbackCropName, text),
		},
		Summary:               text,
		MarketInsights:        "Consider local market conditions",
		WeatherConsiderations: "Monitor weather forecasts",
		Degraded:              true,
	}
}

func fallbackSuggestion(crop, reasoning string) models.CropSuggestion {
	return models.CropSuggestion{
		CropName:        crop,
		Confidence:      FallbackConfidence,
		Reasoning:       reasoning,
		EstimatedYield:  FallbackEstimatedYield,
		EstimatedProfit: FallbackEstimatedProfit,
		RiskFactors:     []string{"Weather dependency"},
		Suggestions:     []string{"Ensure proper irrigation"},
		CultivationTips: []string{"Follow recommended spacing"},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
