// Package rules loads data-driven entity definitions: units and buildings
// described as explicit capability sets with component tables, not
// inheritance chains. An entity has exactly the capabilities it lists.
package rules

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Capability names one thing an entity can do. The known set is fixed in
// code; rule files may only reference these.
type Capability string

const (
	// CapMobile entities move; requires a "mobile" component (speed).
	CapMobile Capability = "mobile"
	// CapTargetable entities can be attacked.
	CapTargetable Capability = "targetable"
	// CapRenderable entities draw sprites.
	CapRenderable Capability = "renderable"
	// CapDisposable entities are removed when expended.
	CapDisposable Capability = "disposable"
	// CapExtinguisher entities put out fires; requires an "extinguisher"
	// component (water capacity, range).
	CapExtinguisher Capability = "extinguisher"
	// CapFlammable entities catch and spread fire; requires a "flammable"
	// component (ignite chance, burn time, spread radius).
	CapFlammable Capability = "flammable"
)

// needsComponent lists which capabilities require a component table of the
// same name in the entity definition.
var needsComponent = map[Capability]bool{
	CapMobile:       true,
	CapTargetable:   false,
	CapRenderable:   false,
	CapDisposable:   false,
	CapExtinguisher: true,
	CapFlammable:    true,
}

// EntityDef is one unit or building definition.
type EntityDef struct {
	Name         string
	Capabilities []Capability
	Components   map[string]map[string]float64
}

// Has reports whether the entity lists the given capability.
func (e *EntityDef) Has(c Capability) bool {
	for _, have := range e.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// Component returns the named component table.
func (e *EntityDef) Component(name string) (map[string]float64, bool) {
	c, ok := e.Components[name]
	return c, ok
}

// RuleSet holds all loaded entity definitions.
type RuleSet struct {
	entities map[string]*EntityDef
	names    []string // sorted, fixes iteration and validation order
}

type rulesFile struct {
	Entities []struct {
		Name         string                        `yaml:"name"`
		Capabilities []string                      `yaml:"capabilities"`
		Components   map[string]map[string]float64 `yaml:"components"`
	} `yaml:"entities"`
}

// Parse builds a RuleSet from YAML rule data. Structural problems (bad YAML,
// duplicate or empty names) are fatal; semantic problems are collected by
// Validate so one run reports all of them.
func Parse(data []byte) (*RuleSet, error) {
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}

	rs := &RuleSet{entities: make(map[string]*EntityDef, len(f.Entities))}
	for _, e := range f.Entities {
		if e.Name == "" {
			return nil, fmt.Errorf("rules: entity with empty name")
		}
		if _, dup := rs.entities[e.Name]; dup {
			return nil, fmt.Errorf("rules: duplicate entity %q", e.Name)
		}
		def := &EntityDef{
			Name:       e.Name,
			Components: e.Components,
		}
		for _, c := range e.Capabilities {
			def.Capabilities = append(def.Capabilities, Capability(c))
		}
		rs.entities[e.Name] = def
		rs.names = append(rs.names, e.Name)
	}
	sort.Strings(rs.names)
	return rs, nil
}

// LoadFile reads and parses entity rules from disk.
func LoadFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	return Parse(data)
}

// Entity returns the named entity definition.
func (rs *RuleSet) Entity(name string) (*EntityDef, bool) {
	e, ok := rs.entities[name]
	return e, ok
}

// Names returns all entity names in sorted order.
func (rs *RuleSet) Names() []string {
	return rs.names
}

// Validate checks every entity exhaustively and returns all problems found:
// unknown capabilities, capabilities missing their component table, and
// component tables no listed capability uses.
func (rs *RuleSet) Validate() []string {
	var errs []string
	for _, name := range rs.names {
		e := rs.entities[name]

		listed := make(map[string]bool, len(e.Capabilities))
		for _, c := range e.Capabilities {
			listed[string(c)] = true
			required, known := needsComponent[c]
			if !known {
				errs = append(errs, fmt.Sprintf("Entity '%s' lists unknown capability '%s'.", name, c))
				continue
			}
			if required {
				if _, ok := e.Components[string(c)]; !ok {
					errs = append(errs, fmt.Sprintf("Entity '%s' capability '%s' has no component table.", name, c))
				}
			}
		}

		components := make([]string, 0, len(e.Components))
		for comp := range e.Components {
			components = append(components, comp)
		}
		sort.Strings(components)
		for _, comp := range components {
			if !listed[comp] {
				errs = append(errs, fmt.Sprintf("Entity '%s' has component table '%s' without the matching capability.", name, comp))
			}
		}
	}
	return errs
}
