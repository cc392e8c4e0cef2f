// Package palette provides the named palette registry used to annotate draw
// output. Our sheets are true-color, so a palette is an RGBA tint rather than
// an index lookup table.
package palette

// Palette tints sprites drawn with it. Components are in [0, 1].
type Palette struct {
	Name string
	Tint [4]float32
}

// Registry maps palette names to palettes.
type Registry struct {
	palettes    map[string]Palette
	defaultName string
}

// NewRegistry creates a registry containing only the neutral default palette.
func NewRegistry(defaultName string) *Registry {
	r := &Registry{
		palettes:    make(map[string]Palette),
		defaultName: defaultName,
	}
	r.Add(Palette{Name: defaultName, Tint: [4]float32{1, 1, 1, 1}})
	return r
}

// Add registers or replaces a palette.
func (r *Registry) Add(p Palette) {
	r.palettes[p.Name] = p
}

// Get returns the named palette, falling back to the default for the empty
// string or an unknown name.
func (r *Registry) Get(name string) Palette {
	if name == "" {
		name = r.defaultName
	}
	if p, ok := r.palettes[name]; ok {
		return p
	}
	return r.palettes[r.defaultName]
}
