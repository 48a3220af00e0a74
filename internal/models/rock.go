package models

// Property names shown by the hint command, in display order.
const (
	PropHardness = "hardness"
	PropLuster   = "luster"
	PropStreak   = "streak"
	PropCategory = "category"
	PropDensity  = "density"

	UnknownProperty = "Unknown"
)

var HintProperties = []string{PropHardness, PropLuster, PropStreak, PropCategory, PropDensity}

// RockEntry is one guessable item. Entries are built once per catalog load and
// never mutated afterwards, so they are safe to share between rounds.
type RockEntry struct {
	ID         int               `json:"id"`
	Name       string            `json:"name"`
	Aliases    []string          `json:"aliases"`
	Images     []string          `json:"images"`
	Properties map[string]string `json:"properties"`
}

// Property returns the named property or "Unknown" when it is absent or blank.
func (r RockEntry) Property(name string) string {
	if v, ok := r.Properties[name]; ok && v != "" {
		return v
	}
	return UnknownProperty
}

// Answers returns the name followed by the aliases.
func (r RockEntry) Answers() []string {
	answers := make([]string, 0, len(r.Aliases)+1)
	answers = append(answers, r.Name)
	return append(answers, r.Aliases...)
}

type HintProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hint lists HintProperties in order with "Unknown" defaults.
func (r RockEntry) Hint() []HintProperty {
	hint := make([]HintProperty, 0, len(HintProperties))
	for _, name := range HintProperties {
		hint = append(hint, HintProperty{Name: name, Value: r.Property(name)})
	}
	return hint
}

// FallbackRocks is served when no feed has ever loaded.
func FallbackRocks() []RockEntry {
	return []RockEntry{
		{
			ID:      1,
			Name:    "Bornite",
			Aliases: []string{"Peacock ore"},
			Images: []string{
				"https://upload.wikimedia.org/wikipedia/commons/9/95/Bornite-Quartz-135210.jpg",
			},
			Properties: map[string]string{
				PropHardness: "3",
				PropLuster:   "Metallic",
				PropStreak:   "Gray-black",
				PropCategory: "Sulfide",
			},
		},
		{
			ID:      2,
			Name:    "Rose Quartz",
			Aliases: []string{"Rock crystal"},
			Images: []string{
				"https://upload.wikimedia.org/wikipedia/commons/d/db/Rose_quartz_-_01.jpg",
			},
			Properties: map[string]string{
				PropHardness: "7",
				PropLuster:   "Vitreous",
				PropStreak:   "White",
				PropCategory: "Silicate (Quartz)",
			},
		},
		{
			ID:      3,
			Name:    "Obsidian",
			Aliases: []string{"Volcanic glass"},
			Images: []string{
				"https://upload.wikimedia.org/wikipedia/commons/f/fb/Obsidian.jpg",
				"https://upload.wikimedia.org/wikipedia/commons/a/ae/Obsidian_-_Igneous_Rock.jpg",
			},
			Properties: map[string]string{
				PropHardness: "5–5.5",
				PropLuster:   "Glassy",
				PropStreak:   "None (harder than streak plate)",
				PropCategory: "Volcanic glass (igneous)",
			},
		},
	}
}
