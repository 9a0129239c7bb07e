// Package catalog defines the static questionnaire payload: the ordered
// module list and the question definitions consumed by the survey UI.
// The payload is data, not logic; it is embedded at build time and can be
// overridden with an external YAML file for field trials.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultPayload []byte

// FieldType is the closed set of question input kinds.
type FieldType int

const (
	Text FieldType = iota
	Number
	Dropdown
	Radio
	GpsButton
)

var fieldTypeNames = map[FieldType]string{
	Text:      "text",
	Number:    "number",
	Dropdown:  "dropdown",
	Radio:     "radio",
	GpsButton: "gps_button",
}

var fieldTypesByName = map[string]FieldType{
	"text":       Text,
	"number":     Number,
	"dropdown":   Dropdown,
	"radio":      Radio,
	"gps_button": GpsButton,
}

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("fieldtype(%d)", int(t))
}

// NeedsOptions reports whether the type requires a non-empty option list.
func (t FieldType) NeedsOptions() bool {
	return t == Dropdown || t == Radio
}

// UnmarshalYAML enforces the closed union: an unknown type tag is a payload
// error, not a silent "render nothing" branch.
func (t *FieldType) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	ft, ok := fieldTypesByName[raw]
	if !ok {
		return fmt.Errorf("unknown field type %q", raw)
	}
	*t = ft
	return nil
}

// MarshalYAML keeps round-trips symmetric with UnmarshalYAML.
func (t FieldType) MarshalYAML() (interface{}, error) {
	name, ok := fieldTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown field type %d", int(t))
	}
	return name, nil
}

// Question is one immutable entry of the questionnaire.
type Question struct {
	ID          string    `yaml:"id"`
	ModuleIndex int       `yaml:"module"`
	Label       string    `yaml:"label"`
	Type        FieldType `yaml:"type"`
	Options     []string  `yaml:"options,omitempty"`
	Placeholder string    `yaml:"placeholder,omitempty"`
	HideIfGPS   bool      `yaml:"hide_if_gps,omitempty"`
	Info        string    `yaml:"info,omitempty"`
}

// Catalog holds the module display names and the full ordered question list.
type Catalog struct {
	Modules   []string   `yaml:"modules"`
	Questions []Question `yaml:"questions"`
}

// Load parses and validates a catalog payload.
func Load(payload []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile loads a catalog from an external YAML file.
func LoadFile(path string) (*Catalog, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Load(payload)
}

// Default returns the embedded questionnaire. The embedded payload is
// validated by tests, so a failure here is a build defect.
func Default() *Catalog {
	c, err := Load(defaultPayload)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog invalid: %v", err))
	}
	return c
}

// Validate enforces the catalog invariants: unique ids, options present
// exactly where the type requires them, module indices in range.
func (c *Catalog) Validate() error {
	if len(c.Modules) == 0 {
		return fmt.Errorf("catalog has no modules")
	}
	seen := make(map[string]bool, len(c.Questions))
	for _, q := range c.Questions {
		if q.ID == "" {
			return fmt.Errorf("question with empty id")
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if q.ModuleIndex < 0 || q.ModuleIndex >= len(c.Modules) {
			return fmt.Errorf("question %q: module index %d out of range", q.ID, q.ModuleIndex)
		}
		if q.Type.NeedsOptions() && len(q.Options) == 0 {
			return fmt.Errorf("question %q: %s requires options", q.ID, q.Type)
		}
		if !q.Type.NeedsOptions() && q.Type != Text && q.Type != Number && len(q.Options) > 0 {
			return fmt.Errorf("question %q: %s does not take options", q.ID, q.Type)
		}
	}
	return nil
}

// QuestionsForModule returns the ordered questions of one module.
func (c *Catalog) QuestionsForModule(index int) []Question {
	var out []Question
	for _, q := range c.Questions {
		if q.ModuleIndex == index {
			out = append(out, q)
		}
	}
	return out
}

// ByID looks a question up by id.
func (c *Catalog) ByID(id string) (Question, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
