
// Package plan loads a YAML file of named discovery runs, the way per-type
// index builds are operated in batches.
package plan

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/kcarka/pairpedia/internal/classifier"
)

var (
	ErrNoPlans      = errors.New("no plans found in file")
	ErrMissingField = errors.New("missing required field")
)

const (
	defaultLimit    = 200
	defaultMaxDepth = 2
)

// Plan is one discovery-and-pair run.
type Plan struct {
	Name     string `mapstructure:"name"`
	Category string `mapstructure:"category"`
	Type     string `mapstructure:"type"`
	Limit    int    `mapstructure:"limit"`
	MaxDepth int    `mapstructure:"max_depth"`
}

type planFile struct {
	Plans []map[string]any `yaml:"plans"`
}

// Load reads and validates a plan file. Entries must carry name and
// category; limit and max_depth get defaults, type must be a known label
// when present.
func Load(path string) ([]Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file planFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse plan file: %w", err)
	}
	if len(file.Plans) == 0 {
		return nil, ErrNoPlans
	}

	plans := make([]Plan, 0, len(file.Plans))
	for i, entry := range file.Plans {
		var p Plan
		if err := mapstructure.Decode(entry, &p); err != nil {
			return nil, fmt.Errorf("plan %d: %w", i, err)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("plan %d: %w: name", i, ErrMissingField)
		}
		if p.Category == "" {
			return nil, fmt.Errorf("plan %q: %w: category", p.Name, ErrMissingField)
		}
		if p.Type != "" && !validType(p.Type) {
			return nil, fmt.Errorf("plan %q: unknown type %q", p.Name, p.Type)
		}
		if p.Limit <= 0 {
			p.Limit = defaultLimit
		}
		if p.MaxDepth <= 0 {
			p.MaxDepth = defaultMaxDepth
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func validType(ty string) bool {
	for _, t := range classifier.Types {
		if t == ty {
			return true
		}
	}
	return false
}
