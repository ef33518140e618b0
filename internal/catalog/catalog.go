// Package catalog holds the skills and roadmaps compiled into the binary.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"skillpath/internal/model"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the static content every store is seeded with.
type Catalog struct {
	Skills   []model.Skill   `yaml:"skills"`
	Roadmaps []model.Roadmap `yaml:"roadmaps"`
}

// Load decodes and validates the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a catalog document and validates it.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the structural invariants the store relies on: unique skill and
// roadmap ids, roadmaps pointing at a known skill, step ids unique per roadmap and
// known resource types.
func (c *Catalog) Validate() error {
	skillIDs := make(map[uint]struct{}, len(c.Skills))
	for _, s := range c.Skills {
		if s.ID == 0 {
			return fmt.Errorf("skill %q: id must be positive", s.Name)
		}
		if s.Name == "" {
			return fmt.Errorf("skill %d: name is required", s.ID)
		}
		if _, dup := skillIDs[s.ID]; dup {
			return fmt.Errorf("skill %d: duplicate id", s.ID)
		}
		skillIDs[s.ID] = struct{}{}
	}

	roadmapIDs := make(map[uint]struct{}, len(c.Roadmaps))
	for _, r := range c.Roadmaps {
		if r.ID == 0 {
			return fmt.Errorf("roadmap %q: id must be positive", r.Title)
		}
		if _, dup := roadmapIDs[r.ID]; dup {
			return fmt.Errorf("roadmap %d: duplicate id", r.ID)
		}
		roadmapIDs[r.ID] = struct{}{}
		if _, ok := skillIDs[r.SkillID]; !ok {
			return fmt.Errorf("roadmap %d: unknown skill %d", r.ID, r.SkillID)
		}

		stepIDs := make(map[string]struct{}, len(r.Steps))
		for _, step := range r.Steps {
			if step.ID == "" {
				return fmt.Errorf("roadmap %d: step %q has no id", r.ID, step.Title)
			}
			if _, dup := stepIDs[step.ID]; dup {
				return fmt.Errorf("roadmap %d: duplicate step id %q", r.ID, step.ID)
			}
			stepIDs[step.ID] = struct{}{}
			for _, res := range step.Resources {
				if !res.Type.Valid() {
					return fmt.Errorf("roadmap %d step %q: unknown resource type %q", r.ID, step.ID, res.Type)
				}
			}
		}
	}
	return nil
}
