package design

// Preset is a fixed bundle of text styling applied atomically over the four
// text fields. Overlay image and background color are left untouched.
type Preset struct {
	ID        string
	Name      string
	Text      string
	TextColor string
	TextFont  string
	TextSize  int
}

var presets = []Preset{
	{
		ID:        "bold-white",
		Name:      "Bold White",
		Text:      "Custom Design",
		TextColor: "#ffffff",
		TextFont:  "Arial",
		TextSize:  36,
	},
	{
		ID:        "classic-black",
		Name:      "Classic Black",
		Text:      "Prints Creations",
		TextColor: "#000000",
		TextFont:  "Georgia",
		TextSize:  28,
	},
	{
		ID:        "brand-blue",
		Name:      "Brand Blue",
		Text:      "Made to Order",
		TextColor: "#007cba",
		TextFont:  "Helvetica",
		TextSize:  32,
	},
}

// Presets returns the quick-design bundles in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// FindPreset looks a preset up by id.
func FindPreset(id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// ApplyPreset overwrites the text fields from the bundle in one mutation.
func (s *Store) ApplyPreset(p Preset) State {
	return s.Apply(Update{
		Text:      &p.Text,
		TextColor: &p.TextColor,
		TextFont:  &p.TextFont,
		TextSize:  &p.TextSize,
	})
}
