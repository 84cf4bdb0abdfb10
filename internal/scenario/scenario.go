package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/byt/internal/core/models"
	"github.com/zeusync/byt/internal/core/systems"
)

var (
	ErrUnknownComponent = errors.New("unknown component type")
	ErrUnknownFormat    = errors.New("unknown scenario format")
)

// Scenario describes the initial population of a world in JSON or YAML.
//
//	name: basic
//	entities:
//	  - count: 100
//	    components:
//	      - type: name
//	        params: {value: "npc_{n}"}
//	      - type: position
type Scenario struct {
	Name     string       `json:"name" yaml:"name"`
	Entities []EntitySpec `json:"entities" yaml:"entities"`
}

// EntitySpec creates Count entities sharing the same component layout.
type EntitySpec struct {
	Count      int             `json:"count,omitempty" yaml:"count,omitempty"`
	Components []ComponentSpec `json:"components" yaml:"components"`
}

type ComponentSpec struct {
	Type   string `json:"type" yaml:"type"`
	Params Params `json:"params,omitempty" yaml:"params,omitempty"`
}

// LoadJSON loads a scenario from JSON reader.
func LoadJSON(r io.Reader) (*Scenario, error) {
	var s Scenario
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadYAML loads a scenario from YAML reader.
func LoadYAML(r io.Reader) (*Scenario, error) {
	var s Scenario
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile picks the decoder from the file extension.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f)
	case ".json":
		return LoadJSON(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Size returns how many entities Build creates.
func (s *Scenario) Size() int {
	n := 0
	for _, group := range s.Entities {
		n += group.count()
	}
	return n
}

// Build creates the scenario's entities in w. Components are built for an
// entity before it is created, so a failing factory leaves no partial entity.
// Entities created before the failure are kept and returned with the error.
func (s *Scenario) Build(w systems.World, reg Registry) ([]*models.Entity, error) {
	created := make([]*models.Entity, 0, s.Size())
	for i, group := range s.Entities {
		if group.Count < 0 {
			return created, fmt.Errorf("entity group %d: negative count %d", i, group.Count)
		}
		for n := range group.count() {
			components := make([]models.Component, 0, len(group.Components))
			for _, cs := range group.Components {
				c, err := reg.New(cs.Type, n, cs.Params)
				if err != nil {
					return created, fmt.Errorf("entity group %d, component %s: %w", i, cs.Type, err)
				}
				components = append(components, c)
			}
			e, err := w.CreateEntity(components...)
			if e != nil {
				created = append(created, e)
			}
			if err != nil {
				return created, fmt.Errorf("entity group %d: %w", i, err)
			}
		}
	}
	return created, nil
}

func (e EntitySpec) count() int {
	if e.Count == 0 {
		return 1
	}
	return max(e.Count, 0)
}
