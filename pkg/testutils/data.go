package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/cropwise/cropwise/pkg/models"
)

var SoilTypes = []string{"Clay", "Sandy", "Loamy", "Red", "Black", "Alluvial", "Laterite"}
var Seasons = []string{"Kharif", "Rabi", "Zaid"}

// NewTestRecommendationRequest returns a request with a random farmer
// profile. Seed gofakeit for reproducible values.
func NewTestRecommendationRequest() *models.RecommendationRequest {
	soil := gofakeit.RandomString(SoilTypes)
	land := gofakeit.Float64Range(1, 20)

	return &models.RecommendationRequest{
		Context: &models.RecommendationContext{
			Season:   gofakeit.RandomString(Seasons),
			Budget:   models.Text(fmt.Sprintf("%.0f INR", gofakeit.Price(10000, 200000))),
			Region:   gofakeit.State(),
			SoilType: soil,
		},
		FarmerData: &models.FarmerProfile{
			Location: models.Location{
				State:    gofakeit.State(),
				District: gofakeit.City(),
			},
			FarmDetails: models.FarmDetails{
				SoilType:      soil,
				TotalLandArea: models.Quantity(land),
				IrrigatedArea: models.Quantity(land / 2),
			},
		},
		Language: "English",
	}
}

// ValidRecommendationJSON is a well-formed model reply.
const ValidRecommendationJSON = `{
  "recommendations": [
    {
      "cropName": "Cotton",
      "confidence": 0.82,
      "reasoning": "Black soil retains moisture well for cotton.",
      "estimatedYield": 1800,
      "estimatedProfit": 38000,
      "riskFactors": ["Pink bollworm"],
      "suggestions": ["Use Bt cotton varieties"],
      "cultivationTips": ["Sow after the first monsoon rains"]
    }
  ],
  "summary": "Cotton suits black soil in Kharif.",
  "marketInsights": "Cotton prices are stable.",
  "weatherConsiderations": "Avoid waterlogging."
}`
