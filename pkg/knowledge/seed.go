package knowledge

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/crops.yaml
var cropsYAML []byte

// CropEntry is one document of the seed corpus.
type CropEntry struct {
	Crop     string   `yaml:"crop"`
	Category string   `yaml:"category"`
	Season   []string `yaml:"season"`
	SoilType []string `yaml:"soilType"`
	Regions  []string `yaml:"regions"`
	Content  string   `yaml:"content"`
}

func (c CropEntry) metadata() map[string]any {
	return map[string]any{
		"crop":     c.Crop,
		"category": c.Category,
		"season":   c.Season,
		"soilType": c.SoilType,
		"regions":  c.Regions,
		"source":   "seed",
	}
}

// SeedCorpus returns the built-in crop documents.
func SeedCorpus() ([]CropEntry, error) {
	var entries []CropEntry
	if err := yaml.Unmarshal(cropsYAML, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse seed corpus: %w", err)
	}
	return entries, nil
}

// Seed adds every seed document to the knowledge base. A failed document
// does not stop the rest; the failures are returned joined.
func (s *Service) Seed(ctx context.Context) (int, error) {
	entries, err := SeedCorpus()
	if err != nil {
		return 0, err
	}

	added := 0
	var errs []error
	for _, e := range entries {
		if _, err := s.AddDocument(ctx, strings.TrimSpace(e.Content), e.metadata()); err != nil {
			log.Errorf("failed to add %s: %s", e.Crop, err)
			errs = append(errs, fmt.Errorf("%s: %w", e.Crop, err))
			continue
		}
		added++
		log.Infof("added %s", e.Crop)
	}

	log.Infof("seeding completed: %d added, %d failed", added, len(errs))
	return added, errors.Join(errs...)
}
