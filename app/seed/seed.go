// Package seed loads the lifeline and round category catalogue from YAML and
// installs it through the application services.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	lifelineservice "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/application"
	roundservice "github.com/Black-And-White-Club/quiz-host/app/modules/round/application"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability/attr"
	"gopkg.in/yaml.v3"
)

//go:embed default_seed.yaml
var defaultSeed []byte

// Catalogue is a parsed seed file.
type Catalogue struct {
	Lifelines  []lifelineservice.SeedLifeline
	Categories []roundservice.SeedCategory
}

type document struct {
	Lifelines  []lifelineservice.SeedLifeline `yaml:"lifelines"`
	Categories []categoryDocument             `yaml:"categories"`
}

type categoryDocument struct {
	Name                 string         `yaml:"name"`
	DefaultConfiguration map[string]any `yaml:"defaultConfiguration"`
}

// Default returns the catalogue compiled into the binary.
func Default() (*Catalogue, error) {
	return Parse(defaultSeed)
}

// Load reads a seed file. An empty path selects the embedded default.
func Load(path string) (*Catalogue, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document. Category configurations are re-encoded as
// JSON so they pass through the same decoder as RPC input.
func Parse(data []byte) (*Catalogue, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed: %w", err)
	}

	cat := &Catalogue{Lifelines: doc.Lifelines}
	for i, c := range doc.Categories {
		if c.DefaultConfiguration == nil {
			return nil, fmt.Errorf("category %d (%q) has no defaultConfiguration", i, c.Name)
		}
		raw, err := json.Marshal(c.DefaultConfiguration)
		if err != nil {
			return nil, fmt.Errorf("encode configuration of %q: %w", c.Name, err)
		}
		cat.Categories = append(cat.Categories, roundservice.SeedCategory{
			Name:                 c.Name,
			DefaultConfiguration: raw,
		})
	}
	return cat, nil
}

// Result counts the entries a seed run inserted.
type Result struct {
	Lifelines  int
	Categories int
}

// Apply installs cat. Lifelines go first so category allowances can name them.
// Existing entries are left alone, so Apply is safe to repeat.
func Apply(
	ctx context.Context,
	logger *slog.Logger,
	lifelines lifelineservice.Service,
	categories roundservice.CategoryService,
	cat *Catalogue,
) (Result, error) {
	var res Result
	n, err := lifelines.SeedLifelines(ctx, cat.Lifelines)
	if err != nil {
		return res, fmt.Errorf("seed lifelines: %w", err)
	}
	res.Lifelines = n

	n, err = categories.SeedCategories(ctx, cat.Categories)
	if err != nil {
		return res, fmt.Errorf("seed round categories: %w", err)
	}
	res.Categories = n

	logger.InfoContext(ctx, "Catalogue seeded",
		attr.Int("lifelines_inserted", res.Lifelines),
		attr.Int("categories_inserted", res.Categories),
	)
	return res, nil
}
