package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/armcalc/internal/game/armament"
	"github.com/udisondev/armcalc/internal/model"
)

// buildFile is the YAML layout read by the batch command:
//
//	builds:
//	  - weapon: Clayman's Harpoon
//	    affinity: Poison
//	    level: 14
//	    attributes: [23, 23, 11, 10, 10]
type buildFile struct {
	Builds []buildEntry `yaml:"builds"`
}

type buildEntry struct {
	Weapon     string         `yaml:"weapon"`
	Affinity   model.Affinity `yaml:"affinity"`
	Level      int            `yaml:"level"`
	Attributes []int          `yaml:"attributes"`
}

func readBuilds(path string) ([]armament.Build, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading builds %s: %w", path, err)
	}
	var f buildFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing builds %s: %w", path, err)
	}
	return f.toBuilds()
}

func (f buildFile) toBuilds() ([]armament.Build, error) {
	builds := make([]armament.Build, 0, len(f.Builds))
	for i, e := range f.Builds {
		if e.Weapon == "" {
			return nil, fmt.Errorf("build %d: weapon is required", i)
		}
		if len(e.Attributes) != model.AttributeCount {
			return nil, fmt.Errorf("build %d: %w", i, errBadAttrs)
		}
		var attrs model.Attributes
		for j, v := range e.Attributes {
			if v < 0 {
				return nil, fmt.Errorf("build %d: %w", i, errBadAttrs)
			}
			attrs[j] = v
		}
		builds = append(builds, armament.Build{
			Identity:   armament.Identity{Name: e.Weapon, Affinity: e.Affinity, Level: e.Level},
			Attributes: attrs,
		})
	}
	return builds, nil
}
