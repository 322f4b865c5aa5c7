package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Location struct {
	State    string `json:"state"`
	District string `json:"district"`
}

type FarmDetails struct {
	SoilType      string   `json:"soilType"`
	TotalLandArea Quantity `json:"totalLandArea"`
	IrrigatedArea Quantity `json:"irrigatedArea"`
}

type FarmerProfile struct {
	Location    Location    `json:"location"`
	FarmDetails FarmDetails `json:"farmDetails"`
}

type RecommendationContext struct {
	Season   string `json:"season,omitempty"`
	Budget   Text   `json:"budget,omitempty"`
	Region   string `json:"region,omitempty"`
	SoilType string `json:"soilType,omitempty"`
}

// Text is a free-form value that clients send either as a JSON string or as
// a number or boolean. Non-string scalars keep their JSON spelling.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		return fmt.Errorf("expected a string or number, got %s", data)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = Text(data)
	return nil
}

// Quantity is a number that may also arrive as a numeric JSON string.
type Quantity float64

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*q = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("expected a number, got %q", s)
		}
		*q = Quantity(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*q = Quantity(f)
	return nil
}

type RecommendationRequest struct {
	Context     *RecommendationContext `json:"context"               validate:"required"`
	FarmerData  *FarmerProfile         `json:"farmerData"            validate:"required"`
	WeatherData map[string]any         `json:"weatherData,omitempty"`
	MarketData  map[string]any         `json:"marketData,omitempty"`
	Language    string                 `json:"language,omitempty"`
}

type CropSuggestion struct {
	CropName        string   `json:"cropName"`
	Confidence      float64  `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
	EstimatedYield  float64  `json:"estimatedYield"`
	EstimatedProfit float64  `json:"estimatedProfit"`
	RiskFactors     []string `json:"riskFactors"`
	Suggestions     []string `json:"suggestions"`
	CultivationTips []string `json:"cultivationTips"`
}

type RecommendationResult struct {
	Recommendations       []CropSuggestion `json:"recommendations"`
	Summary               string           `json:"summary"`
	MarketInsights        string           `json:"marketInsights"`
	WeatherConsiderations string           `json:"weatherConsiderations"`
	// Degraded is set when the model output could not be used as-is and the
	// result was synthesized.
	Degraded bool `json:"degraded"`
}

// Outcome is the result of interpreting a model response: either Parsed or
// Degraded.
type Outcome interface {
	Result() *RecommendationResult
	outcome()
}

type Parsed struct {
	Recommendation *RecommendationResult
}

func (p Parsed) Result() *RecommendationResult { return p.Recommendation }
func (Parsed) outcome() {}

type Degraded struct {
	Recommendation *RecommendationResult
	RawText        string
}

func (d Degraded) Result() *RecommendationResult { return d.Recommendation }
func (Degraded) outcome() {}

type RecommendationResponse struct {
	Recommendation *RecommendationResult `json:"recommendation"`
	Timestamp      time.Time             `json:"timestamp"`
}
