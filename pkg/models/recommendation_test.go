package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Text
		wantErr bool
	}{
		{"string", `"50000 INR"`, "50000 INR", false},
		{"integer", `50000`, "50000", false},
		{"float", `12500.5`, "12500.5", false},
		{"bool", `true`, "true", false},
		{"null", `null`, "", false},
		{"object", `{"amount": 5}`, "", true},
		{"array", `[1, 2]`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Text
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuantityUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Quantity
		wantErr bool
	}{
		{"number", `5.5`, 5.5, false},
		{"numeric string", `" 12 "`, 12, false},
		{"empty string", `""`, 0, false},
		{"null", `null`, 0, false},
		{"words", `"five acres"`, 0, true},
		{"object", `{}`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Quantity
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecommendationRequestNumericBudget(t *testing.T) {
	var req RecommendationRequest
	body := `{"context":{"budget":50000},"farmerData":{"farmDetails":{"totalLandArea":"3"}}}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, Text("50000"), req.Context.Budget)
	assert.Equal(t, Quantity(3), req.FarmerData.FarmDetails.TotalLandArea)
}
